package report

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/loan-amortization/internal/config"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/propertytax"
	"go.uber.org/zap"
)

func TestBuildDefaults(t *testing.T) {
	result, err := Build(zap.NewNop(), *config.Default())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(result.Schedule) != 360 {
		t.Errorf("expected 360 periods, got %d", len(result.Schedule))
	}
	if math.Abs(result.Summary.PeriodicPayment-6653.02) > 0.01 {
		t.Errorf("PeriodicPayment = %.4f, expected about 6653.02", result.Summary.PeriodicPayment)
	}
	if math.Abs(result.PropertyTax.MonthlyTax-1041.67) > 0.01 {
		t.Errorf("MonthlyTax = %.4f, expected about 1041.67", result.PropertyTax.MonthlyTax)
	}
	if last := result.Schedule[len(result.Schedule)-1]; last.RemainingPrincipal != 0 {
		t.Errorf("final remaining principal = %v, expected 0", last.RemainingPrincipal)
	}
}

func TestBuildNilLogger(t *testing.T) {
	if _, err := Build(nil, *config.Default()); err != nil {
		t.Fatalf("Build() with nil logger error = %v", err)
	}
}

func TestBuildInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Configuration)
		target error
	}{
		{
			name:   "Zero principal",
			modify: func(c *config.Configuration) { c.Loan.Principal = 0 },
			target: amortization.ErrInvalidTerms,
		},
		{
			name:   "Zero years",
			modify: func(c *config.Configuration) { c.Loan.Years = 0 },
			target: amortization.ErrInvalidTerms,
		},
		{
			name:   "Negative purchase price",
			modify: func(c *config.Configuration) { c.PropertyTax.PurchasePrice = -1 },
			target: propertytax.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := config.Default()
			tt.modify(conf)

			result, err := Build(zap.NewNop(), *conf)
			if !errors.Is(err, tt.target) {
				t.Errorf("Build() error = %v, expected %v", err, tt.target)
			}
			if result != nil {
				t.Error("Build() returned a partial report alongside an error")
			}
		})
	}
}
