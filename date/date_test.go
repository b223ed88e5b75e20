package date

import "testing"

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		a, b Date
		want int
	}{
		{New(2025, 7, 31), New(2025, 7, 31), 0},
		{New(2025, 8, 1), New(2025, 7, 31), 1},
		{New(2025, 7, 31), New(2025, 8, 1), -1},
		{New(2026, 1, 1), New(2025, 1, 1), 365},
		{New(2025, 1, 1), New(2024, 1, 1), 366}, // 2024 is a leap year
	}
	for _, tc := range tests {
		if got := tc.a.Sub(tc.b); got != tc.want {
			t.Errorf("%s.Sub(%s) = %d want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestAddNormalizes(t *testing.T) {
	if got := New(2025, 1, 31).Add(1); got != New(2025, 2, 1) {
		t.Errorf("Add(1) = %s want 2025-02-01", got)
	}
	if got := New(2025, 3, 1).Add(-1); got != New(2025, 2, 28) {
		t.Errorf("Add(-1) = %s want 2025-02-28", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.String() != "2025-07-01" {
		t.Errorf("String() = %q want %q", d.String(), "2025-07-01")
	}
}
