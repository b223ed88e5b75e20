package fincalc

import (
	"time"

	"github.com/jtammet/fincalc/date"
)

// EUR is a compact way to write euro amounts in tests.
func EUR(v float64) Money { return M(v, "EUR") }

func day(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }

func buy(on date.Date, quantity, price, commission float64) *TransactionRecord {
	return &TransactionRecord{
		Type:       Buy,
		Quantity:   Q(quantity),
		Price:      EUR(price),
		Commission: EUR(commission),
		Date:       on,
		Platform:   "TRADING212",
		Instrument: "QDVE",
	}
}

func sell(on date.Date, quantity, price, commission float64) *TransactionRecord {
	tx := buy(on, quantity, price, commission)
	tx.Type = Sell
	return tx
}
