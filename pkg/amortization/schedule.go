package amortization

import (
	"iter"
	"math"

	"go.uber.org/zap"
)

// Period holds the values for a given payment period.
type Period struct {
	Number             int
	Payment            float64
	Principal          float64
	Interest           float64
	TotalInterest      float64
	RemainingPrincipal float64
}

// ScheduleGenerator produces amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Schedule returns the full amortization schedule, one Period per payment.
func Schedule(principal, rate float64, n int) ([]Period, error) {
	return NewScheduleGenerator(nil).Generate(Terms{Principal: principal, PeriodicRate: rate, NumPayments: n})
}

// Generate returns exactly t.NumPayments periods. Every call builds a new
// slice.
func (g *ScheduleGenerator) Generate(t Terms) ([]Period, error) {
	periods, err := g.Periods(t)
	if err != nil {
		return nil, err
	}

	schedule := make([]Period, 0, t.NumPayments)
	for period := range periods {
		schedule = append(schedule, period)
	}

	last := schedule[len(schedule)-1]
	g.logger.Debug("generated amortization schedule",
		zap.String("op", "amortization.Generate"),
		zap.Int("payments", t.NumPayments),
		zap.Float64("payment", last.Payment),
		zap.Float64("total_interest", last.TotalInterest),
	)
	return schedule, nil
}

// Periods validates t and returns the schedule as a lazy sequence. Ranging
// over the sequence again replays it from period one.
func (g *ScheduleGenerator) Periods(t Terms) (iter.Seq[Period], error) {
	payment, err := t.payment()
	if err != nil {
		return nil, err
	}
	return func(yield func(Period) bool) {
		walk(t, payment, yield)
	}, nil
}

// walk emits one Period per payment. Interest accrues on the balance carried
// into the period and the rest of the payment goes to principal. Balances
// come from balanceCurve rather than a running subtraction, are floored at
// zero, and reach exactly zero after the last payment.
func walk(t Terms, payment float64, yield func(Period) bool) {
	curve := newBalanceCurve(t)
	remaining := t.Principal
	totalInterest := 0.0

	for number := 1; number <= t.NumPayments; number++ {
		interest := remaining * t.PeriodicRate
		totalInterest += interest
		next := max(curve.after(number), 0)

		if !yield(Period{
			Number:             number,
			Payment:            payment,
			Principal:          payment - interest,
			Interest:           interest,
			TotalInterest:      totalInterest,
			RemainingPrincipal: next,
		}) {
			return
		}
		remaining = next
	}
}

// balanceCurve is the closed form of the outstanding principal after k
// payments,
//
//	B(k) = P * (1 - (1 + i)^(k-n)) / (1 - (1 + i)^-n)
//
// Each balance is evaluated independently, which keeps the rounding error of
// one period out of the next. At i == 0 it is the straight line P * (n-k) / n.
type balanceCurve struct {
	principal float64
	n         int
	logGrowth float64 // ln(1 + i)
	span      float64 // (1 + i)^-n - 1, negative when i > 0
}

func newBalanceCurve(t Terms) balanceCurve {
	logGrowth := math.Log1p(t.PeriodicRate)
	return balanceCurve{
		principal: t.Principal,
		n:         t.NumPayments,
		logGrowth: logGrowth,
		span:      math.Expm1(-float64(t.NumPayments) * logGrowth),
	}
}

func (c balanceCurve) after(k int) float64 {
	if k >= c.n {
		return 0
	}
	if c.logGrowth == 0 {
		return c.principal * (float64(c.n-k) / float64(c.n))
	}
	return c.principal * (math.Expm1(float64(k-c.n)*c.logGrowth) / c.span)
}
