package fincalc

import (
	"sort"

	"github.com/jtammet/fincalc/date"
	"go.uber.org/zap"
)

// InstrumentMetrics summarizes one (platform, instrument) holding.
//
// A fully sold holding still reports its TotalInvestment and profits from
// the transaction history; only Quantity, AverageCost and CurrentValue
// collapse to zero.
type InstrumentMetrics struct {
	Quantity         Quantity
	AverageCost      Money // weighted average across open lots
	TotalInvestment  Money // sum of all buy costs, commissions capitalized
	CurrentValue     Money
	RealizedProfit   Money
	UnrealizedProfit Money
	Profit           Money
	Rate             float64
}

// RatePercent returns the holding's annualized rate as a percentage.
func (m InstrumentMetrics) RatePercent() Percent { return Percent(m.Rate * 100) }

// PortfolioMetrics sums instrument metrics across a whole portfolio and
// carries a portfolio-level rate over the merged cash flows.
type PortfolioMetrics struct {
	TotalValue       Money
	TotalInvestment  Money
	RealizedProfit   Money
	UnrealizedProfit Money
	TotalProfit      Money
	Rate             float64
}

// Aggregator composes the profit engine and the solver into per-instrument
// and portfolio summaries.
type Aggregator struct {
	engine *ProfitEngine
	solver *Solver
	log    *zap.Logger
}

// NewAggregator returns an aggregator over the given engine and solver.
// Nil arguments get defaults.
func NewAggregator(engine *ProfitEngine, solver *Solver, logger *zap.Logger) *Aggregator {
	if engine == nil {
		engine = NewProfitEngine(nil, nil)
	}
	if solver == nil {
		solver = NewSolver(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{engine: engine, solver: solver, log: logger.Named("metrics")}
}

// Instrument computes the summary for the transactions of one
// (platform, instrument) group, valuing open lots at currentPrice when it is
// positive, else at the engine's last known price.
func (a *Aggregator) Instrument(txs []*TransactionRecord, currentPrice Money, asOf date.Date) InstrumentMetrics {
	if len(txs) == 0 {
		return InstrumentMetrics{}
	}
	a.engine.CalculateWithPrice(txs, currentPrice)

	var m InstrumentMetrics
	var openCost Money
	for _, tx := range txs {
		m.RealizedProfit = m.RealizedProfit.Add(tx.RealizedProfit)
		if tx.Type == Buy {
			m.TotalInvestment = m.TotalInvestment.Add(tx.Cost())
			m.UnrealizedProfit = m.UnrealizedProfit.Add(tx.UnrealizedProfit)
			m.Quantity = m.Quantity.Add(tx.RemainingQuantity)
			openCost = openCost.Add(tx.AverageCost.Mul(tx.RemainingQuantity))
		}
	}
	if m.Quantity.IsPositive() {
		m.AverageCost = openCost.Div(m.Quantity)
		key := GroupKey{Platform: txs[0].Platform, Instrument: txs[0].Instrument}
		if price := a.engine.effectivePrice(key, currentPrice); price.IsPositive() {
			m.CurrentValue = price.Mul(m.Quantity)
		}
	}
	m.Profit = m.RealizedProfit.Add(m.UnrealizedProfit)
	m.Rate = a.solver.AdjustedRate(BuildCashFlows(txs, m.CurrentValue, asOf), asOf)
	return m
}

// Portfolio sums metrics across groups and solves a portfolio-level rate
// from the merged cash flows. Groups are processed in key order so the
// merged series, and therefore the rate, is reproducible.
func (a *Aggregator) Portfolio(groups map[GroupKey][]*TransactionRecord, prices map[GroupKey]Money, asOf date.Date) PortfolioMetrics {
	keys := make([]GroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Platform != keys[j].Platform {
			return keys[i].Platform < keys[j].Platform
		}
		return keys[i].Instrument < keys[j].Instrument
	})

	var pm PortfolioMetrics
	var flows []CashFlow
	for _, key := range keys {
		txs := groups[key]
		m := a.Instrument(txs, prices[key], asOf)
		pm.TotalValue = pm.TotalValue.Add(m.CurrentValue)
		pm.TotalInvestment = pm.TotalInvestment.Add(m.TotalInvestment)
		pm.RealizedProfit = pm.RealizedProfit.Add(m.RealizedProfit)
		pm.UnrealizedProfit = pm.UnrealizedProfit.Add(m.UnrealizedProfit)
		flows = append(flows, BuildCashFlows(txs, m.CurrentValue, asOf)...)
	}
	pm.TotalProfit = pm.RealizedProfit.Add(pm.UnrealizedProfit)
	pm.Rate = a.solver.AdjustedRate(flows, asOf)
	a.log.Debug("portfolio metrics",
		zap.Int("groups", len(keys)),
		zap.Float64("rate", pm.Rate))
	return pm
}

// WeightedTrendRate combines per-group trend rates into one portfolio rate,
// weighting each group by its current value. Groups without a positive
// value contribute nothing.
func WeightedTrendRate(rates map[GroupKey]float64, values map[GroupKey]Money) float64 {
	var total float64
	for key, v := range values {
		if _, ok := rates[key]; ok && v.IsPositive() {
			total += v.AsFloat()
		}
	}
	if total <= 0 {
		return 0
	}
	var weighted float64
	for key, rate := range rates {
		if v := values[key]; v.IsPositive() {
			weighted += rate * v.AsFloat() / total
		}
	}
	return weighted
}
