// Package report assembles the loan summary, amortization schedule and
// property tax estimate for a configuration.
package report

import (
	"fmt"

	"github.com/iwvelando/loan-amortization/internal/config"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/propertytax"
	"go.uber.org/zap"
)

// Report holds every computed result for one configuration.
type Report struct {
	Summary     amortization.Summary
	Schedule    []amortization.Period
	PropertyTax propertytax.Estimate
}

// Build computes the report for conf. Nothing is returned on failure.
func Build(logger *zap.Logger, conf config.Configuration) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	terms := conf.Terms()
	logger.Debug("computing amortization",
		zap.String("op", "report.Build"),
		zap.Float64("principal", terms.Principal),
		zap.Float64("periodic_rate", terms.PeriodicRate),
		zap.Int("payments", terms.NumPayments),
	)

	summary, err := amortization.SummarizeTerms(terms)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize loan: %w", err)
	}

	schedule, err := amortization.NewScheduleGenerator(logger).Generate(terms)
	if err != nil {
		return nil, fmt.Errorf("failed to generate amortization schedule: %w", err)
	}

	estimate, err := propertytax.NewEstimate(conf.PropertyTax.PurchasePrice)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate property tax: %w", err)
	}

	logger.Debug("computed loan summary",
		zap.String("op", "report.Build"),
		zap.Float64("periodic_payment", summary.PeriodicPayment),
		zap.Int("payments", summary.NumPayments),
		zap.Float64("total_interest", summary.TotalInterest),
		zap.Float64("monthly_property_tax", estimate.MonthlyTax),
	)

	return &Report{
		Summary:     summary,
		Schedule:    schedule,
		PropertyTax: estimate,
	}, nil
}
