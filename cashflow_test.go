package fincalc

import (
	"testing"
	"time"
)

func TestConvert(t *testing.T) {
	on := day(2025, time.March, 1)

	if got := Convert(buy(on, 10, 100, 10)); got.Amount != -1010.0 || got.Date != on {
		t.Errorf("Convert(buy 10@100 c10) = %+v want amount -1010 on %s", got, on)
	}
	if got := Convert(sell(on, 10, 100, 10)); got.Amount != 990.0 || got.Date != on {
		t.Errorf("Convert(sell 10@100 c10) = %+v want amount 990 on %s", got, on)
	}
}

func TestBuildCashFlows_TerminalEntry(t *testing.T) {
	asOf := day(2025, time.June, 1)
	txs := []*TransactionRecord{
		buy(day(2025, time.January, 1), 10, 100, 0),
		sell(day(2025, time.February, 1), 5, 110, 0),
	}

	flows := BuildCashFlows(txs, EUR(600), asOf)
	if len(flows) != 3 {
		t.Fatalf("len(flows) = %d want 3", len(flows))
	}
	last := flows[len(flows)-1]
	if last.Amount != 600.0 {
		t.Errorf("terminal amount = %v want 600", last.Amount)
	}
	if last.Date != asOf {
		t.Errorf("terminal date = %s want %s", last.Date, asOf)
	}
}

func TestBuildCashFlows_NoTerminalForSoldOutPosition(t *testing.T) {
	asOf := day(2025, time.June, 1)
	txs := []*TransactionRecord{
		buy(day(2025, time.January, 1), 10, 100, 0),
		sell(day(2025, time.February, 1), 10, 110, 0),
	}

	flows := BuildCashFlows(txs, EUR(0), asOf)
	if len(flows) != 2 {
		t.Fatalf("len(flows) = %d want 2 (no fabricated zero flow)", len(flows))
	}
	for _, f := range flows {
		if f.Date == asOf {
			t.Errorf("unexpected terminal flow at %s", asOf)
		}
	}
}
