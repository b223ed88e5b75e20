package fincalc

import (
	"errors"
	"math"

	"github.com/jtammet/fincalc/date"
	"go.uber.org/zap"
)

const (
	daysPerYear = 365.0

	maxIterations     = 100
	npvTolerance      = 1e-7
	derivativeEpsilon = 1e-10
	initialGuess      = 0.1

	bisectLow  = -0.999
	bisectHigh = 100.0

	// Annualizing over a holding period of a few days extrapolates a small
	// move into an absurd figure. Rates are attenuated linearly until the
	// investment-weighted age reaches fullDampingDays; below
	// minInvestmentDays there is nothing meaningful to annualize at all.
	minInvestmentDays = 2.0
	fullDampingDays   = 60.0
)

// RateFloor and RateCeil bound every rate returned by AdjustedRate.
const (
	RateFloor = -10.0
	RateCeil  = 10.0
)

var (
	errTooFewCashFlows = errors.New("xirr: need at least two cash flows")
	errOneSided        = errors.New("xirr: need both an outflow and an inflow")
	errNoConvergence   = errors.New("xirr: no convergence")
)

// Solver finds the annualized rate that zeroes the net present value of a
// dated cash-flow series. It holds no state across calls; the same inputs
// always produce the same output.
type Solver struct {
	log *zap.Logger
}

// NewSolver returns a Solver logging through the given logger.
// A nil logger disables logging.
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{log: logger.Named("xirr")}
}

// AdjustedRate computes the annualized money-weighted rate of return of the
// series, damped for very young investments and clamped to
// [RateFloor, RateCeil].
//
// Degenerate inputs (fewer than two flows, no outflow, an
// investment-weighted age under minInvestmentDays, or a series the solver
// cannot converge on) yield the neutral rate 0. AdjustedRate never returns
// an error and never panics on well-typed input.
func (s *Solver) AdjustedRate(flows []CashFlow, asOf date.Date) float64 {
	if len(flows) < 2 {
		return 0
	}
	var totalOutflow, weightedDays float64
	for _, f := range flows {
		if f.Amount < 0 {
			totalOutflow += -f.Amount
			weightedDays += -f.Amount * float64(asOf.Sub(f.Date))
		}
	}
	if totalOutflow == 0 {
		return 0
	}
	weightedDays /= totalOutflow
	if weightedDays < minInvestmentDays {
		return 0
	}

	raw, err := s.Rate(flows)
	if err != nil {
		s.log.Debug("returning neutral rate", zap.Error(err))
		return 0
	}
	damping := math.Min(1, weightedDays/fullDampingDays)
	rate := clampRate(raw) * damping
	s.log.Debug("adjusted xirr",
		zap.Float64("raw", raw),
		zap.Float64("weighted_days", weightedDays),
		zap.Float64("rate", rate))
	return rate
}

// Rate solves for the undamped, unclamped annual rate r such that
//
//	Σ amount_i / (1+r)^(days_i/365) = 0
//
// where days_i is the signed day offset from the earliest cash flow. It
// tries Newton-Raphson first and falls back to bisection over
// [bisectLow, bisectHigh] when the derivative vanishes or the iteration
// escapes the domain.
func (s *Solver) Rate(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, errTooFewCashFlows
	}
	var hasOutflow, hasInflow bool
	for _, f := range flows {
		switch {
		case f.Amount < 0:
			hasOutflow = true
		case f.Amount > 0:
			hasInflow = true
		}
	}
	if !hasOutflow || !hasInflow {
		return 0, errOneSided
	}

	origin := earliestDate(flows)
	if rate, ok := s.newton(flows, origin); ok {
		return rate, nil
	}
	return s.bisect(flows, origin)
}

func earliestDate(flows []CashFlow) date.Date {
	first := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(first) {
			first = f.Date
		}
	}
	return first
}

// npv discounts every flow back to origin at the given rate.
func npv(flows []CashFlow, origin date.Date, rate float64) float64 {
	var sum float64
	for _, f := range flows {
		t := float64(f.Date.Sub(origin)) / daysPerYear
		sum += f.Amount * math.Pow(1+rate, -t)
	}
	return sum
}

// npvDerivative is d npv / d rate, used by Newton-Raphson.
func npvDerivative(flows []CashFlow, origin date.Date, rate float64) float64 {
	var sum float64
	for _, f := range flows {
		t := float64(f.Date.Sub(origin)) / daysPerYear
		sum += -f.Amount * t * math.Pow(1+rate, -t-1)
	}
	return sum
}

func (s *Solver) newton(flows []CashFlow, origin date.Date) (float64, bool) {
	rate := initialGuess
	for i := 0; i < maxIterations; i++ {
		value := npv(flows, origin, rate)
		if math.Abs(value) < npvTolerance {
			s.log.Debug("newton converged", zap.Int("iterations", i), zap.Float64("rate", rate))
			return rate, true
		}
		derivative := npvDerivative(flows, origin, rate)
		if math.Abs(derivative) < derivativeEpsilon {
			break
		}
		next := rate - value/derivative
		// The NPV function is only defined for rates above -1.
		if next <= -1 || math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		rate = next
	}
	return 0, false
}

func (s *Solver) bisect(flows []CashFlow, origin date.Date) (float64, error) {
	lo, hi := bisectLow, bisectHigh
	flo := npv(flows, origin, lo)
	fhi := npv(flows, origin, hi)
	if math.Abs(flo) < npvTolerance {
		return lo, nil
	}
	if math.Abs(fhi) < npvTolerance {
		return hi, nil
	}
	if (flo < 0) == (fhi < 0) {
		return 0, errNoConvergence
	}
	for i := 0; i < maxIterations; i++ {
		mid := (lo + hi) / 2
		fmid := npv(flows, origin, mid)
		if math.Abs(fmid) < npvTolerance {
			s.log.Debug("bisection converged", zap.Int("iterations", i), zap.Float64("rate", mid))
			return mid, nil
		}
		if (fmid < 0) == (flo < 0) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

func clampRate(r float64) float64 {
	switch {
	case r < RateFloor:
		return RateFloor
	case r > RateCeil:
		return RateCeil
	default:
		return r
	}
}
