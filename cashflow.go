package fincalc

import (
	"github.com/jtammet/fincalc/date"
)

// CashFlow is a dated signed amount, the atomic unit consumed by the XIRR
// solver. Outflows (purchases) are negative, inflows (sales, terminal
// valuations) are positive.
type CashFlow struct {
	Amount float64
	Date   date.Date
}

// Convert maps a transaction into a signed cash flow.
// A buy is an outflow of quantity*price plus commission; a sell is an inflow
// of quantity*price minus commission.
func Convert(tx *TransactionRecord) CashFlow {
	switch tx.Type {
	case Sell:
		return CashFlow{Amount: tx.Proceeds().AsFloat(), Date: tx.Date}
	default:
		return CashFlow{Amount: tx.Cost().Neg().AsFloat(), Date: tx.Date}
	}
}

// BuildCashFlows converts every transaction and appends a terminal valuation
// flow at asOf. A zero or negative current value yields no terminal entry: an
// all-sold position must not fabricate a zero cash flow.
func BuildCashFlows(txs []*TransactionRecord, currentValue Money, asOf date.Date) []CashFlow {
	flows := make([]CashFlow, 0, len(txs)+1)
	for _, tx := range txs {
		flows = append(flows, Convert(tx))
	}
	if currentValue.IsPositive() {
		flows = append(flows, CashFlow{Amount: currentValue.AsFloat(), Date: asOf})
	}
	return flows
}
