package amortization

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/loan-amortization/pkg/constants"
	"github.com/iwvelando/loan-amortization/pkg/format"
	"github.com/iwvelando/loan-amortization/pkg/mathutil"
)

// Summary holds the loan-level figures derived from Terms.
type Summary struct {
	Principal       float64
	PeriodicRate    float64
	NumPayments     int
	PeriodicPayment float64
	TotalInterest   float64
	TotalLoan       float64
}

// PeriodicPayment returns the fixed payment that repays principal over n
// periods at the periodic rate, using the annuity formula
//
//	A = P * i * (1 + i)^n / ((1 + i)^n - 1)
//
// evaluated as P * i / (1 - (1 + i)^-n) through Log1p and Expm1, so tiny rates
// and very long terms give a finite payment. The formula is undefined at
// i == 0; a zero rate repays principal only, P/n.
func PeriodicPayment(principal, rate float64, n int) (float64, error) {
	return Terms{Principal: principal, PeriodicRate: rate, NumPayments: n}.payment()
}

// payment validates t and returns its periodic payment.
func (t Terms) payment() (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	payment := periodicPayment(t)
	if !mathutil.IsFinite(payment) {
		return 0, fmt.Errorf("%w: payment on principal %v at rate %v overflows", ErrInvalidTerms, t.Principal, t.PeriodicRate)
	}
	return payment, nil
}

func periodicPayment(t Terms) float64 {
	if t.PeriodicRate == 0 {
		return t.Principal / float64(t.NumPayments)
	}
	return t.Principal * (t.PeriodicRate / -math.Expm1(-float64(t.NumPayments)*math.Log1p(t.PeriodicRate)))
}

// Summarize computes the payment summary for the given loan.
func Summarize(principal, rate float64, n int) (Summary, error) {
	return SummarizeTerms(Terms{Principal: principal, PeriodicRate: rate, NumPayments: n})
}

// SummarizeTerms is Summarize for a Terms value.
func SummarizeTerms(t Terms) (Summary, error) {
	payment, err := t.payment()
	if err != nil {
		return Summary{}, err
	}
	totalLoan := payment * float64(t.NumPayments)
	if !mathutil.IsFinite(totalLoan) {
		return Summary{}, fmt.Errorf("%w: total of %d payments overflows", ErrInvalidTerms, t.NumPayments)
	}
	return Summary{
		Principal:       t.Principal,
		PeriodicRate:    t.PeriodicRate,
		NumPayments:     t.NumPayments,
		PeriodicPayment: payment,
		TotalInterest:   totalLoan - t.Principal,
		TotalLoan:       totalLoan,
	}, nil
}

// APR returns the annual percentage rate implied by the monthly periodic rate.
func (s Summary) APR() float64 {
	return s.PeriodicRate * constants.PercentageMultiplier * constants.MonthsPerYear
}

// TermYears returns the whole number of years covered by the payments.
func (s Summary) TermYears() int {
	return s.NumPayments / constants.MonthsPerYear
}

// String renders the summary as a labelled block.
func (s Summary) String() string {
	// Round away float noise such as 7.000000000000001 before printing.
	apr := strconv.FormatFloat(math.Round(s.APR()*1e6)/1e6, 'f', -1, 64)

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "Loan APR (percent) %12s\n", apr)
	fmt.Fprintf(&b, "Loan term (years)  %12d\n", s.TermYears())
	fmt.Fprintf(&b, "Periodic amount    %s\n", format.Padded(s.PeriodicPayment, 12))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Principal          %s\n", format.Padded(s.Principal, 12))
	fmt.Fprintf(&b, "Total interest     %s\n", format.Padded(s.TotalInterest, 12))
	fmt.Fprintf(&b, "Total loan amount  %s\n", format.Padded(s.TotalLoan, 12))
	return b.String()
}
