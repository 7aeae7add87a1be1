package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundWithCompensation_ExactAmountPassesThrough(t *testing.T) {
	rounded, balance := RoundWithCompensation(decimal.NewFromFloat(310.00), decimal.Zero)

	if !rounded.Equal(decimal.NewFromFloat(310.00)) {
		t.Errorf("Expected 310.00, got %s", rounded)
	}
	if !balance.IsZero() {
		t.Errorf("Expected zero balance, got %s", balance)
	}
}

func TestRoundWithCompensation_TruncatesBelowHalfCent(t *testing.T) {
	rounded, balance := RoundWithCompensation(decimal.NewFromFloat(100.124), decimal.Zero)

	if !rounded.Equal(decimal.NewFromFloat(100.12)) {
		t.Errorf("Expected 100.12, got %s", rounded)
	}
	if !balance.Equal(decimal.NewFromFloat(0.004)) {
		t.Errorf("Expected balance 0.004, got %s", balance)
	}
}

func TestRoundWithCompensation_BumpsAtHalfCent(t *testing.T) {
	rounded, balance := RoundWithCompensation(decimal.NewFromFloat(100.125), decimal.Zero)

	if !rounded.Equal(decimal.NewFromFloat(100.13)) {
		t.Errorf("Expected 100.13, got %s", rounded)
	}
	if !balance.Equal(decimal.NewFromFloat(-0.005)) {
		t.Errorf("Expected balance -0.005, got %s", balance)
	}
}

func TestRoundWithCompensation_AlternatesLikeAPayrollLedger(t *testing.T) {
	// 1.005 repeated: bump, truncate, bump, truncate ...
	raw := decimal.NewFromFloat(1.005)
	balance := decimal.Zero

	var rounded decimal.Decimal
	expected := []string{"1.01", "1.00", "1.01", "1.00"}
	for i, want := range expected {
		rounded, balance = RoundWithCompensation(raw, balance)
		if rounded.StringFixed(2) != want {
			t.Errorf("Period %d: expected %s, got %s", i+1, want, rounded.StringFixed(2))
		}
	}
}

func TestRoundWithCompensation_ErrorStaysBoundedOverAYear(t *testing.T) {
	// The same raw fractional amount every period must not drift: the sum of
	// compensated outputs stays within half a cent of the true total.
	raw := decimal.NewFromFloat(394.66596)
	balance := decimal.Zero

	sum := decimal.Zero
	periods := 26
	for i := 0; i < periods; i++ {
		var rounded decimal.Decimal
		rounded, balance = RoundWithCompensation(raw, balance)
		sum = sum.Add(rounded)
	}

	trueTotal := raw.Mul(decimal.NewFromInt(int64(periods)))
	drift := sum.Sub(trueTotal).Abs()
	if drift.GreaterThan(decimal.NewFromFloat(0.005)) {
		t.Errorf("Expected drift within half a cent, got %s", drift)
	}
}

func TestRoundWithCompensation_BalanceStaysSubCent(t *testing.T) {
	raw := decimal.NewFromFloat(123.456789)
	balance := decimal.Zero
	limit := decimal.NewFromFloat(0.005)

	for i := 0; i < 100; i++ {
		_, balance = RoundWithCompensation(raw, balance)
		if balance.Abs().GreaterThan(limit) {
			t.Fatalf("Period %d: balance %s escaped (-0.005, 0.005]", i+1, balance)
		}
	}
}
