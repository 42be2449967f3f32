// Package constants provides shared constants for the loan-amortization application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// CurrencyPlaces is the number of decimal places used for rendered money values
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CAPropertyTaxPercent is the rule-of-thumb California rate: the 1% base
	// rate plus roughly 0.25% of local assessments.
	CAPropertyTaxPercent = 1.25

	// CAPropertyTaxRate is CAPropertyTaxPercent as a fraction
	CAPropertyTaxRate = CAPropertyTaxPercent / PercentageMultiplier
)

// Sample inputs used when no configuration file is present.
const (
	// DefaultPrincipal is the sample loan principal
	DefaultPrincipal = 1_000_000.0

	// DefaultAnnualRate is the sample APR, in percent
	DefaultAnnualRate = 7.0

	// DefaultTermYears is the sample loan term
	DefaultTermYears = 30

	// DefaultPurchasePrice is the sample home purchase price
	DefaultPurchasePrice = 1_000_000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024

	// MaxTermYears bounds the loan term accepted from configuration files and
	// API requests; the validator tags on Years repeat it as lte=100
	MaxTermYears = 100
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RelativeTolerance is the relative tolerance used when comparing sums of
	// floating-point schedule values against their expected totals
	RelativeTolerance = 1e-6
)
