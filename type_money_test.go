package fincalc

import "testing"

func TestMoneyArithmetic(t *testing.T) {
	if got := EUR(100).Add(EUR(50)); !got.Equal(EUR(150)) {
		t.Errorf("100+50 = %s want %s", got, EUR(150))
	}
	if got := EUR(100).Sub(EUR(150)); !got.IsNegative() {
		t.Errorf("100-150 = %s want negative", got)
	}
	if got := EUR(100).Mul(Q(3)); !got.Equal(EUR(300)) {
		t.Errorf("100*3 = %s want %s", got, EUR(300))
	}
	if got := EUR(100).Div(Q(8)); !got.Equal(EUR(12.5)) {
		t.Errorf("100/8 = %s want %s", got, EUR(12.5))
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// The zero Money carries no currency and must combine with any.
	var zero Money
	got := zero.Add(EUR(10))
	if got.Currency() != "EUR" {
		t.Errorf("zero.Add(EUR).Currency() = %q want EUR", got.Currency())
	}
	if !got.Equal(EUR(10)) {
		t.Errorf("zero.Add(EUR(10)) = %s want %s", got, EUR(10))
	}
}

func TestMoneyMismatchedCurrencyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding EUR to USD did not panic")
		}
	}()
	EUR(1).Add(M(1, "USD"))
}
