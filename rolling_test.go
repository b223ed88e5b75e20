package fincalc

import (
	"testing"
	"time"

	"github.com/jtammet/fincalc/date"
)

// risingHistory builds a daily price series of n days starting at start,
// rising by step per day from base.
func risingHistory(start date.Date, n int, base, step float64) *date.History[float64] {
	h := new(date.History[float64])
	for i := 0; i < n; i++ {
		h.Append(start.Add(i), base+step*float64(i))
	}
	return h
}

func TestTrend_NeedsTwoPricePoints(t *testing.T) {
	a := NewRollingAnalyzer(nil, nil)

	if got := a.Trend(new(date.History[float64])); len(got) != 0 {
		t.Errorf("Trend(empty) = %d results want 0", len(got))
	}

	single := new(date.History[float64])
	single.Append(day(2025, time.January, 1), 100)
	if got := a.Trend(single); len(got) != 0 {
		t.Errorf("Trend(single point) = %d results want 0", len(got))
	}
}

func TestTrend_SixMonthsOfRisingPrices(t *testing.T) {
	start := day(2025, time.January, 1)
	prices := risingHistory(start, 180, 100, 0.1)

	a := NewRollingAnalyzer(nil, nil)
	results := a.Trend(prices)

	if len(results) < 2 {
		t.Fatalf("len(results) = %d want >= 2", len(results))
	}
	for i, r := range results {
		if len(r.CashFlows) < 2 {
			t.Errorf("window %d: %d cash flows want >= 2", i, len(r.CashFlows))
		}
		if last := r.CashFlows[len(r.CashFlows)-1]; last.Amount <= 0 {
			t.Errorf("window %d: terminal amount = %v want > 0", i, last.Amount)
		}
		if r.Rate <= 0 {
			t.Errorf("window %d: rate = %v want > 0 for rising prices", i, r.Rate)
		}
		if i == 0 {
			continue
		}
		if !results[i-1].End.Before(r.End) {
			t.Errorf("window %d: end %s not after previous %s", i, r.End, results[i-1].End)
		}
		if got := r.End.Sub(results[i-1].End); got != windowStepDays {
			t.Errorf("window %d: spacing = %d days want %d", i, got, windowStepDays)
		}
	}
}

func TestTrend_SkipsWindowsWithoutSamples(t *testing.T) {
	h := new(date.History[float64])
	start := day(2025, time.January, 1)
	// Two dense months, a two-month hole, then two more dense months.
	for i := 0; i < 60; i++ {
		h.Append(start.Add(i), 100+float64(i))
	}
	for i := 120; i < 180; i++ {
		h.Append(start.Add(i), 160+float64(i-120))
	}

	a := NewRollingAnalyzer(nil, nil)
	results := a.Trend(h)

	if len(results) == 0 {
		t.Fatal("len(results) = 0 want > 0")
	}
	hole := struct{ from, to date.Date }{start.Add(60), start.Add(119)}
	for _, r := range results {
		last := r.CashFlows[len(r.CashFlows)-1]
		if last.Date.After(hole.from) && last.Date.Before(hole.to) {
			t.Errorf("window ending %s has terminal flow inside the data hole", r.End)
		}
	}
}

func TestTrendSummary(t *testing.T) {
	results := []WindowResult{
		{Rate: 0.1},
		{Rate: 0.3},
		{Rate: 0.2},
	}
	median, average := TrendSummary(results)
	if median != 0.2 {
		t.Errorf("median = %v want 0.2", median)
	}
	if average-0.2 > 1e-12 || average-0.2 < -1e-12 {
		t.Errorf("average = %v want 0.2", average)
	}

	if m, a := TrendSummary(nil); m != 0 || a != 0 {
		t.Errorf("TrendSummary(nil) = %v, %v want 0, 0", m, a)
	}
}

func TestTrendSummary_EvenCount(t *testing.T) {
	results := []WindowResult{{Rate: 0.1}, {Rate: 0.2}, {Rate: 0.4}, {Rate: 0.3}}
	median, _ := TrendSummary(results)
	if median != 0.25 {
		t.Errorf("median = %v want 0.25", median)
	}
}
