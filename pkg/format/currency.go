// Package format renders money values for console and CSV output.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + formatted
	}
	return formatted
}

// Padded right-aligns NumericCurrency(amount) in a field of the given width.
func Padded(amount float64, width int) string {
	return fmt.Sprintf("%*s", width, NumericCurrency(amount))
}

func formatPositiveCurrency(value float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.2f", value)
}
