package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentCashSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		settled float64
		price   float64
		pct     float64
		maxPos  int
		open    int
		want    int
	}{
		{"pct_binds", 1000, 10, 0.2, 1, 0, 20},            // 200 < 1000/1
		{"slot_split_binds", 1000, 10, 0.9, 4, 0, 25},     // 1000/4 < 900
		{"single_slot", 1000, 10, 0.5, 1, 0, 50},          // min(500, 1000)
		{"price_above_alloc", 1000, 600, 0.5, 1, 0, 0},    // floor(500/600)
		{"fractional_floors", 1000, 333, 0.5, 1, 0, 1},    // floor(1.5)
		{"cap_exceeded_floors_slot", 1000, 10, 0.1, 2, 3, 10}, // slots max(1, -1)
		{"no_cash", 0, 10, 0.5, 5, 0, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			acct := NewPaperAccount(tt.settled, 1)
			for i := 0; i < tt.open; i++ {
				acct.Positions[string(rune('A'+i))] = Position{Qty: 1}
			}
			got := PercentCashSize(acct, day(1), tt.price, tt.pct, tt.maxPos)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Sizing is a pure preview: it must not touch account state.
func TestPercentCashSizeNoSideEffects(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	_, err := acct.Buy(day(1), "X", 10, 10, 0)
	require.NoError(t, err)

	before := acct.CashRunning()
	_ = PercentCashSize(acct, day(5), 10, 0.5, 5)
	assert.InDelta(t, before, acct.CashRunning(), 1e-9)
	assert.Len(t, acct.Ledger.Events, 1)
	assert.Len(t, acct.Positions, 1)
}

func TestPercentCashSizeNeverNegative(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	// Drive settled cash negative with an oversized unsettled-then-settled buy.
	acct.Ledger.Record(day(1), -5000, "X", "buy")
	got := PercentCashSize(acct, day(3), 10, 0.5, 5)
	assert.Equal(t, 0, got)
}
