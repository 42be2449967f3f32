// Package propertytax estimates California property tax from a purchase price.
package propertytax

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// ErrInvalidPrice is returned, wrapped, for prices that cannot be taxed.
var ErrInvalidPrice = errors.New("invalid purchase price")

// Estimate pairs a purchase price with its estimated tax.
type Estimate struct {
	PurchasePrice float64
	MonthlyTax    float64
	AnnualTax     float64
}

// CAMonthlyPropertyTax returns the monthly property tax for a California home.
//
// A good rule of thumb for California homebuyers is to multiply the purchase
// price by 1.25%: the 1% base rate plus about 0.25% of local taxes.
func CAMonthlyPropertyTax(purchasePrice float64) float64 {
	return purchasePrice * constants.CAPropertyTaxRate / constants.MonthsPerYear
}

// Validate rejects negative or non-finite purchase prices.
func Validate(purchasePrice float64) error {
	if !mathutil.IsFinite(purchasePrice) {
		return fmt.Errorf("%w: must be a finite number, got %v", ErrInvalidPrice, purchasePrice)
	}
	if purchasePrice < 0 {
		return fmt.Errorf("%w: must not be negative, got %v", ErrInvalidPrice, purchasePrice)
	}
	return nil
}

// NewEstimate validates the price and computes its monthly and annual tax.
func NewEstimate(purchasePrice float64) (Estimate, error) {
	if err := Validate(purchasePrice); err != nil {
		return Estimate{}, err
	}
	return Estimate{
		PurchasePrice: purchasePrice,
		MonthlyTax:    CAMonthlyPropertyTax(purchasePrice),
		AnnualTax:     mathutil.ApplyPercentage(purchasePrice, constants.CAPropertyTaxPercent),
	}, nil
}
