package pricing

import (
	"testing"

	"lumiere-booking-cli/config"
)

func testTable() Table {
	return FromConfig(config.PricingConfig{
		StandardRate: 15,
		PremiumRate:  25,
		PremiumFrom:  5,
		PremiumTo:    8,
	})
}

func TestSeatPrice(t *testing.T) {
	table := testTable()

	cases := []struct {
		label string
		want  float64
	}{
		{"A1", 15},
		{"A4", 15},
		{"C5", 25},
		{"C6", 25},
		{"B8", 25},
		{"C9", 15},
		{"D12", 15},
		{"A", 15},
	}
	for _, tc := range cases {
		if got := table.SeatPrice(tc.label); got != tc.want {
			t.Errorf("SeatPrice(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}

func TestTotal(t *testing.T) {
	table := testTable()

	if got := table.Total(nil); got != 0 {
		t.Fatalf("expected 0 for empty selection, got %v", got)
	}
	if got := table.Total([]string{"A1", "C6", "C9"}); got != 55 {
		t.Fatalf("expected 55, got %v", got)
	}
}

func TestSeatPrice_NoBands(t *testing.T) {
	table := Table{Standard: 10}
	if got := table.SeatPrice("C6"); got != 10 {
		t.Fatalf("expected standard rate, got %v", got)
	}
}
