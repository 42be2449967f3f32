package output

import (
	"github.com/iwvelando/loan-amortization/internal/report"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/propertytax"
	"github.com/shopspring/decimal"
)

// Document is the machine-readable form of a report. Money values are
// rounded to cents.
type Document struct {
	Summary     SummaryDocument      `json:"summary"`
	Schedule    []PeriodDocument     `json:"schedule"`
	PropertyTax *PropertyTaxDocument `json:"propertyTax,omitempty"`
}

// SummaryDocument mirrors amortization.Summary.
type SummaryDocument struct {
	Principal       decimal.Decimal `json:"principal"`
	PeriodicRate    float64         `json:"periodicRate"`
	APR             decimal.Decimal `json:"apr"`
	NumPayments     int             `json:"numPayments"`
	TermYears       int             `json:"termYears"`
	PeriodicPayment decimal.Decimal `json:"periodicPayment"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	TotalLoan       decimal.Decimal `json:"totalLoan"`
}

// PeriodDocument mirrors amortization.Period.
type PeriodDocument struct {
	Period             int             `json:"period"`
	Payment            decimal.Decimal `json:"payment"`
	Principal          decimal.Decimal `json:"principal"`
	Interest           decimal.Decimal `json:"interest"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	RemainingPrincipal decimal.Decimal `json:"remainingPrincipal"`
}

// PropertyTaxDocument mirrors propertytax.Estimate.
type PropertyTaxDocument struct {
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	MonthlyTax    decimal.Decimal `json:"monthlyTax"`
	AnnualTax     decimal.Decimal `json:"annualTax"`
}

// Money rounds a float amount to cents.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
}

// NewDocument converts a report.
func NewDocument(r *report.Report) Document {
	doc := NewLoanDocument(r.Summary, r.Schedule)
	tax := NewPropertyTaxDocument(r.PropertyTax)
	doc.PropertyTax = &tax
	return doc
}

// NewLoanDocument converts a summary and its schedule.
func NewLoanDocument(summary amortization.Summary, schedule []amortization.Period) Document {
	periods := make([]PeriodDocument, 0, len(schedule))
	for _, p := range schedule {
		periods = append(periods, PeriodDocument{
			Period:             p.Number,
			Payment:            Money(p.Payment),
			Principal:          Money(p.Principal),
			Interest:           Money(p.Interest),
			TotalInterest:      Money(p.TotalInterest),
			RemainingPrincipal: Money(p.RemainingPrincipal),
		})
	}

	return Document{
		Summary: SummaryDocument{
			Principal:       Money(summary.Principal),
			PeriodicRate:    summary.PeriodicRate,
			APR:             decimal.NewFromFloat(summary.APR()).Round(6),
			NumPayments:     summary.NumPayments,
			TermYears:       summary.TermYears(),
			PeriodicPayment: Money(summary.PeriodicPayment),
			TotalInterest:   Money(summary.TotalInterest),
			TotalLoan:       Money(summary.TotalLoan),
		},
		Schedule: periods,
	}
}

// NewPropertyTaxDocument converts a property tax estimate.
func NewPropertyTaxDocument(e propertytax.Estimate) PropertyTaxDocument {
	return PropertyTaxDocument{
		PurchasePrice: Money(e.PurchasePrice),
		MonthlyTax:    Money(e.MonthlyTax),
		AnnualTax:     Money(e.AnnualTax),
	}
}
