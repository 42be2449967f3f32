// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// Thresholds above which otherwise valid inputs are flagged.
const (
	HighAnnualRate = 30.0
	LongTermYears  = 50
)

// LoanWarnings returns non-fatal observations about loan inputs that are
// valid but likely mistakes.
func LoanWarnings(annualRate float64, years int) []string {
	var warnings []string

	if annualRate == 0 {
		warnings = append(warnings, "Loan has a zero interest rate - payments repay principal only")
	}
	if annualRate > HighAnnualRate {
		warnings = append(warnings, fmt.Sprintf("Loan APR of %.2f%% is unusually high - rates are given in percent, not as fractions", annualRate))
	}
	if annualRate > 0 && annualRate < 0.5 {
		warnings = append(warnings, fmt.Sprintf("Loan APR of %.4g%% is unusually low - did you mean %.4g%%?", annualRate, annualRate*100))
	}
	if years > LongTermYears {
		warnings = append(warnings, fmt.Sprintf("Loan term of %d years is unusually long", years))
	}

	return warnings
}

// PropertyTaxWarnings returns non-fatal observations about the purchase price.
func PropertyTaxWarnings(purchasePrice float64) []string {
	if purchasePrice == 0 {
		return []string{"Purchase price is zero - the property tax estimate will be zero"}
	}
	return nil
}
