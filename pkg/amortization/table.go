package amortization

import (
	"fmt"
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/format"
)

// Column widths of the rendered table.
const (
	numberWidth    = 6
	amountWidth    = 11
	totalWidth     = 15
	remainingWidth = 20
)

// TableHeader is the column title line of the rendered table.
var TableHeader = fmt.Sprintf("%*s %*s %*s %*s %*s %*s",
	numberWidth, "Period",
	amountWidth, "Payment",
	amountWidth, "Principal",
	amountWidth, "Interest",
	totalWidth, "Total Interest",
	remainingWidth, "Remaining Principal",
)

// TableRule underlines TableHeader.
var TableRule = strings.Repeat("-", len(TableHeader))

// String renders the period as one table row.
func (p Period) String() string {
	return fmt.Sprintf("%*d %s %s %s %s %s",
		numberWidth, p.Number,
		format.Padded(p.Payment, amountWidth),
		format.Padded(p.Principal, amountWidth),
		format.Padded(p.Interest, amountWidth),
		format.Padded(p.TotalInterest, totalWidth),
		format.Padded(p.RemainingPrincipal, remainingWidth),
	)
}

// Table renders the amortization schedule as text: a header, a rule, and one
// row per period.
func Table(principal, rate float64, n int) (string, error) {
	schedule, err := Schedule(principal, rate, n)
	if err != nil {
		return "", err
	}
	return RenderTable(schedule), nil
}

// RenderTable renders an already computed schedule the same way Table does.
func RenderTable(schedule []Period) string {
	lines := make([]string, 0, len(schedule)+2)
	lines = append(lines, TableHeader, TableRule)
	for _, period := range schedule {
		lines = append(lines, period.String())
	}
	return strings.Join(lines, "\n")
}
