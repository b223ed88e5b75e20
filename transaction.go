package fincalc

import (
	"fmt"
	"sort"

	"github.com/jtammet/fincalc/date"
)

// TransactionType distinguishes purchases from sales.
type TransactionType int

const (
	Buy TransactionType = iota
	Sell
)

func (t TransactionType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseTransactionType parses a string into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown transaction type: %q", s)
	}
}

// TransactionRecord is one buy or sell of an instrument on a platform.
//
// The engine treats Type, Quantity, Price, Commission, Date, Platform and
// Instrument as read-only, and only ever writes the four computed fields.
type TransactionRecord struct {
	Type       TransactionType
	Quantity   Quantity
	Price      Money // per unit
	Commission Money
	Date       date.Date
	Platform   string
	Instrument string

	// Computed by the profit engine.
	RealizedProfit    Money
	UnrealizedProfit  Money
	AverageCost       Money
	RemainingQuantity Quantity
}

// Cost returns the full acquisition cost of a buy: quantity times price,
// commission capitalized.
func (t *TransactionRecord) Cost() Money {
	return t.Price.Mul(t.Quantity).Add(t.Commission)
}

// Proceeds returns the net proceeds of a sell: quantity times price,
// commission deducted.
func (t *TransactionRecord) Proceeds() Money {
	return t.Price.Mul(t.Quantity).Sub(t.Commission)
}

// GroupKey identifies one independently accounted holding.
type GroupKey struct {
	Platform   string
	Instrument string
}

func (k GroupKey) String() string { return k.Platform + "/" + k.Instrument }

// GroupTransactions splits transactions by (platform, instrument),
// preserving their relative order inside each group.
func GroupTransactions(txs []*TransactionRecord) map[GroupKey][]*TransactionRecord {
	groups := make(map[GroupKey][]*TransactionRecord)
	for _, tx := range txs {
		key := GroupKey{Platform: tx.Platform, Instrument: tx.Instrument}
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// sortByDate orders transactions by ascending date. The sort is stable so
// same-day transactions keep their original relative order and results are
// reproducible.
func sortByDate(txs []*TransactionRecord) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
}
