package fincalc

import (
	"sort"

	"github.com/jtammet/fincalc/date"
	"go.uber.org/zap"
)

const (
	// windowStepDays is both the width of an evaluation window and the step
	// between consecutive window end dates.
	windowStepDays = 15
	// notionalAmount is the hypothetical amount invested at every sampled
	// price inside a window.
	notionalAmount = 1000.0
)

// WindowResult is the outcome of one evaluation window: the synthetic cash
// flows invested across the window and the annualized rate they produce.
type WindowResult struct {
	End       date.Date
	CashFlows []CashFlow
	Rate      float64
}

// RatePercent returns the window's rate as a percentage.
func (w WindowResult) RatePercent() Percent { return Percent(w.Rate * 100) }

// RollingAnalyzer turns a price history into a trend series of annualized
// rates by simulating a fixed investment plan over rolling windows.
type RollingAnalyzer struct {
	solver *Solver
	log    *zap.Logger
}

// NewRollingAnalyzer returns an analyzer backed by the given solver.
// A nil solver or logger gets a default.
func NewRollingAnalyzer(solver *Solver, logger *zap.Logger) *RollingAnalyzer {
	if solver == nil {
		solver = NewSolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RollingAnalyzer{solver: solver, log: logger.Named("rolling")}
}

// Trend slices the price history into windows whose end dates are anchored
// every windowStepDays from the earliest price, synthesizes a notional
// investment plan per window (one notionalAmount buy at each sampled price
// inside the window, one terminal sell valuing the accumulated quantity at
// the window-end price), and solves each window's series for its rate.
//
// Fewer than two price points yield an empty trend: a single observation has
// no trend to show. Windows whose synthetic series is degenerate are
// skipped. Results are ordered by ascending End; consecutive End values are
// exactly windowStepDays apart wherever the source data supports both.
func (a *RollingAnalyzer) Trend(prices *date.History[float64]) []WindowResult {
	if prices.Len() < 2 {
		return nil
	}

	days := make([]date.Date, 0, prices.Len())
	values := make([]float64, 0, prices.Len())
	for on, p := range prices.Values() {
		days = append(days, on)
		values = append(values, p)
	}

	first, last := days[0], days[len(days)-1]
	var results []WindowResult
	for end := first.Add(windowStepDays); !end.After(last); end = end.Add(windowStepDays) {
		if res, ok := a.window(days, values, end); ok {
			results = append(results, res)
		}
	}
	a.log.Debug("rolling trend computed",
		zap.Int("prices", len(days)),
		zap.Int("windows", len(results)))
	return results
}

// window builds the synthetic series for the window ending at end and
// solves it. It reports false when the window cannot produce a
// non-degenerate series.
func (a *RollingAnalyzer) window(days []date.Date, values []float64, end date.Date) (WindowResult, bool) {
	start := end.Add(-windowStepDays)

	// terminal is the last sample on or before the window end.
	terminal := sort.Search(len(days), func(i int) bool { return days[i].After(end) }) - 1
	if terminal < 0 || days[terminal].Before(start) {
		return WindowResult{}, false
	}

	var flows []CashFlow
	var quantity float64
	for i := 0; i < terminal; i++ {
		if days[i].Before(start) || values[i] <= 0 {
			continue
		}
		quantity += notionalAmount / values[i]
		flows = append(flows, CashFlow{Amount: -notionalAmount, Date: days[i]})
	}

	finalValue := quantity * values[terminal]
	if len(flows) == 0 || finalValue <= 0 {
		return WindowResult{}, false
	}
	flows = append(flows, CashFlow{Amount: finalValue, Date: days[terminal]})

	return WindowResult{
		End:       end,
		CashFlows: flows,
		Rate:      a.solver.AdjustedRate(flows, end),
	}, true
}

// TrendSummary condenses a trend series into its median and average rate.
// An empty series summarizes to zeroes.
func TrendSummary(results []WindowResult) (median, average float64) {
	if len(results) == 0 {
		return 0, 0
	}
	rates := make([]float64, len(results))
	var sum float64
	for i, r := range results {
		rates[i] = r.Rate
		sum += r.Rate
	}
	return medianOf(rates), sum / float64(len(rates))
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}
	return sorted[middle]
}
