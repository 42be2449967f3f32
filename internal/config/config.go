// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. AMORTIZATION_LOAN_PRINCIPAL.
const EnvPrefix = "AMORTIZATION"

var validate = validator.New()

// Configuration holds all configuration for loan-amortization.
type Configuration struct {
	Loan        Loan          `yaml:"loan"`
	PropertyTax PropertyTax   `yaml:"propertyTax"`
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// Loan holds the loan to amortize. Payments are monthly.
type Loan struct {
	Principal  float64 `yaml:"principal" validate:"gt=0"`
	AnnualRate float64 `yaml:"annualRate" validate:"gte=0,lte=100"` // percent
	Years      int     `yaml:"years" validate:"gt=0,lte=100"` // constants.MaxTermYears
}

// PropertyTax holds the inputs of the property tax estimate.
type PropertyTax struct {
	PurchasePrice float64 `yaml:"purchasePrice" validate:"gte=0"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=pretty csv json"`
}

// Default returns the configuration used when no file is present: a
// 1,000,000 loan at 7% over 30 years and a 1,000,000 purchase price.
func Default() *Configuration {
	return &Configuration{
		Loan: Loan{
			Principal:  constants.DefaultPrincipal,
			AnnualRate: constants.DefaultAnnualRate,
			Years:      constants.DefaultTermYears,
		},
		PropertyTax: PropertyTax{
			PurchasePrice: constants.DefaultPurchasePrice,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys missing from the file, or a missing file, fall
// back to Default.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		_, err := os.Stat(configPath)
		switch {
		case err == nil:
			v.SetConfigFile(configPath)
			v.SetConfigType("yml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// Run with defaults.
		default:
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("loan.principal", def.Loan.Principal)
	v.SetDefault("loan.annualRate", def.Loan.AnnualRate)
	v.SetDefault("loan.years", def.Loan.Years)
	v.SetDefault("propertyTax.purchasePrice", def.PropertyTax.PurchasePrice)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
}

// Validate checks the configuration against its field constraints.
func (c *Configuration) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Namespace(), describeTag(fe), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	warnings = append(warnings, validation.LoanWarnings(c.Loan.AnnualRate, c.Loan.Years)...)
	warnings = append(warnings, validation.PropertyTaxWarnings(c.PropertyTax.PurchasePrice)...)
	return warnings
}

// Terms returns the amortization terms of the configured loan.
func (c *Configuration) Terms() amortization.Terms {
	return amortization.MonthlyTerms(c.Loan.Principal, c.Loan.AnnualRate, c.Loan.Years)
}
