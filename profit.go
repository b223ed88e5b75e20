package fincalc

import (
	"go.uber.org/zap"
)

// PriceFunc returns the last known price for an instrument, or a zero Money
// when no price is known.
type PriceFunc func(instrument string) Money

// ProfitEngine computes realized and unrealized profit, average cost and
// remaining quantity for every transaction, matching sells against buys
// FIFO within each (platform, instrument) group.
//
// The engine is stateless across calls; all matching state lives in
// per-group lot books local to one invocation.
type ProfitEngine struct {
	lastPrice PriceFunc
	log       *zap.Logger
}

// NewProfitEngine returns an engine that values open lots with lastPrice
// when no explicit price override is given. Both arguments may be nil.
func NewProfitEngine(lastPrice PriceFunc, logger *zap.Logger) *ProfitEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfitEngine{lastPrice: lastPrice, log: logger.Named("profit")}
}

// Calculate annotates every transaction with its computed profit fields,
// valuing open lots at each instrument's last known price.
func (e *ProfitEngine) Calculate(txs []*TransactionRecord) {
	e.calculate(txs, Money{})
}

// CalculateWithPrice is Calculate with an explicit current price: when the
// override is positive it is used for every group instead of the last known
// price.
func (e *ProfitEngine) CalculateWithPrice(txs []*TransactionRecord, override Money) {
	e.calculate(txs, override)
}

func (e *ProfitEngine) calculate(txs []*TransactionRecord, override Money) {
	for key, group := range GroupTransactions(txs) {
		e.calculateGroup(key, group, override)
	}
}

func (e *ProfitEngine) calculateGroup(key GroupKey, group []*TransactionRecord, override Money) {
	sortByDate(group)

	book := new(lotBook)
	for _, tx := range group {
		switch tx.Type {
		case Buy:
			tx.RealizedProfit = Money{}
			tx.UnrealizedProfit = Money{}
			tx.RemainingQuantity = Quantity{}
			if !tx.Quantity.IsPositive() {
				tx.AverageCost = Money{}
				continue
			}
			unitCost := tx.Cost().Div(tx.Quantity)
			tx.AverageCost = unitCost
			book.push(tx, tx.Quantity, unitCost)

		case Sell:
			cost, matched := book.consume(tx.Quantity)
			// Any unmatched portion of an oversell carries a zero cost
			// basis: its full proceeds count as realized profit.
			tx.RealizedProfit = tx.Proceeds().Sub(cost)
			if matched.IsPositive() {
				tx.AverageCost = cost.Div(matched)
			} else {
				tx.AverageCost = Money{}
			}
			tx.UnrealizedProfit = Money{}
			tx.RemainingQuantity = Quantity{}
			if matched.LessThan(tx.Quantity) {
				e.log.Warn("sell exceeds open lots",
					zap.String("group", key.String()),
					zap.String("quantity", tx.Quantity.String()),
					zap.String("matched", matched.String()))
			}
		}
	}

	price := e.effectivePrice(key, override)
	book.open(func(l *lot) {
		l.buy.RemainingQuantity = l.remaining
		if price.IsPositive() {
			l.buy.UnrealizedProfit = price.Sub(l.unitCost).Mul(l.remaining)
		}
	})
}

// effectivePrice picks the valuation price for a group: the positive
// override if given, otherwise the instrument's last known price. A zero
// result means "no usable price" and open lots get zero unrealized profit.
func (e *ProfitEngine) effectivePrice(key GroupKey, override Money) Money {
	if override.IsPositive() {
		return override
	}
	if e.lastPrice != nil {
		return e.lastPrice(key.Instrument)
	}
	return Money{}
}
