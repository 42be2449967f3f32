// Package amortization computes fixed-rate loan payments and their
// period-by-period principal/interest breakdown.
package amortization

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// ErrInvalidTerms is returned, wrapped, for any loan terms the annuity
// formula cannot be evaluated on.
var ErrInvalidTerms = errors.New("invalid loan terms")

// Terms are the inputs of a fixed-rate loan.
type Terms struct {
	Principal    float64
	PeriodicRate float64
	NumPayments  int
}

// Validate reports the first problem with the terms, if any.
func (t Terms) Validate() error {
	if !mathutil.IsFinite(t.Principal) || t.Principal <= 0 {
		return fmt.Errorf("%w: principal must be a positive number, got %v", ErrInvalidTerms, t.Principal)
	}
	if !mathutil.IsFinite(t.PeriodicRate) || t.PeriodicRate < 0 {
		return fmt.Errorf("%w: periodic interest rate must be a non-negative number, got %v", ErrInvalidTerms, t.PeriodicRate)
	}
	if t.NumPayments <= 0 {
		return fmt.Errorf("%w: number of payments must be positive, got %d", ErrInvalidTerms, t.NumPayments)
	}
	return nil
}

// MonthlyRate converts an annual percentage rate (e.g. 7 for 7%) into the
// periodic rate applied to each monthly payment.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// PaymentCount returns the number of monthly payments in a term of years, or
// -1 when that count does not fit in an int. Terms built from -1 fail
// Validate.
func PaymentCount(years int) int {
	if years > math.MaxInt/constants.MonthsPerYear || years < math.MinInt/constants.MonthsPerYear {
		return -1
	}
	return years * constants.MonthsPerYear
}

// MonthlyTerms builds Terms for a loan repaid monthly.
func MonthlyTerms(principal, annualPercent float64, years int) Terms {
	return Terms{
		Principal:    principal,
		PeriodicRate: MonthlyRate(annualPercent),
		NumPayments:  PaymentCount(years),
	}
}
