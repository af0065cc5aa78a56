package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyRejectsInvalidOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price float64
		qty   int
	}{
		{"zero_qty", 10, 0},
		{"negative_qty", 10, -5},
		{"zero_price", 0, 10},
		{"negative_price", -1, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			acct := NewPaperAccount(1000, 1)
			tr, err := acct.Buy(day(1), "X", tt.price, tt.qty, 0)
			assert.Nil(t, tr)
			assert.ErrorIs(t, err, ErrInvalidOrder)
			assert.InDelta(t, 1000, acct.CashRunning(), 1e-9)
			assert.Empty(t, acct.Ledger.Events)
		})
	}
}

func TestBuyOpensAndMergesPosition(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(10000, 1)

	tr1, err := acct.Buy(day(1), "X", 10, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tr1.ID)
	assert.InDelta(t, 1000, tr1.Notional, 1e-9)
	assert.InDelta(t, 9000, tr1.CashAfter, 1e-9)
	assert.InDelta(t, 0, tr1.RealizedPnL, 1e-9)
	assert.False(t, tr1.Settled)
	assert.Equal(t, day(2), tr1.SettleDate)

	// Second buy at a different price merges into a weighted-average lot
	// and keeps the first buy's entry date.
	tr2, err := acct.Buy(day(5), "X", 20, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, tr2.ID)

	pos := acct.Positions["X"]
	assert.Equal(t, 150, pos.Qty)
	assert.InDelta(t, (10.0*100+20.0*50)/150, pos.AvgPrice, 1e-9)
	assert.Equal(t, day(1), pos.EntryDate)
}

func TestSellNoPositionIsNoop(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	assert.Nil(t, acct.Sell(day(1), "X", 10, 5, 0))
	assert.InDelta(t, 1000, acct.CashRunning(), 1e-9)
}

func TestSellClampsOversell(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	_, err := acct.Buy(day(1), "X", 10, 30, 0)
	require.NoError(t, err)

	tr := acct.Sell(day(2), "X", 12, 500, 0)
	require.NotNil(t, tr)
	assert.Equal(t, 30, tr.Qty)
	assert.InDelta(t, (12.0-10.0)*30, tr.RealizedPnL, 1e-9)
	assert.NotContains(t, acct.Positions, "X")
}

func TestSellPartialKeepsBasisAndEntry(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	_, err := acct.Buy(day(1), "X", 10, 30, 0)
	require.NoError(t, err)

	tr := acct.Sell(day(3), "X", 11, 10, 0)
	require.NotNil(t, tr)
	assert.InDelta(t, 10, tr.RealizedPnL, 1e-9)

	pos := acct.Positions["X"]
	assert.Equal(t, 20, pos.Qty)
	assert.InDelta(t, 10, pos.AvgPrice, 1e-9)
	assert.Equal(t, day(1), pos.EntryDate)
}

func TestSellZeroQtyMeansAll(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	_, err := acct.Buy(day(1), "X", 10, 30, 0)
	require.NoError(t, err)

	tr := acct.Sell(day(2), "X", 10, 0, 0)
	require.NotNil(t, tr)
	assert.Equal(t, 30, tr.Qty)
	assert.NotContains(t, acct.Positions, "X")
}

// Running cash must satisfy the independent identity
// starting - sum(buy notional+fee) + sum(sell notional-fee) after each call.
func TestRunningCashIdentity(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(5000, 1)
	want := 5000.0

	buy := func(d int, sym string, px float64, qty int, fee float64) {
		t.Helper()
		tr, err := acct.Buy(day(d), sym, px, qty, fee)
		require.NoError(t, err)
		want -= px*float64(qty) + fee
		assert.InDelta(t, want, acct.CashRunning(), 1e-9)
		assert.InDelta(t, want, tr.CashAfter, 1e-9)
	}
	sell := func(d int, sym string, px float64, qty int, fee float64) {
		t.Helper()
		tr := acct.Sell(day(d), sym, px, qty, fee)
		require.NotNil(t, tr)
		want += px*float64(tr.Qty) - fee
		assert.InDelta(t, want, acct.CashRunning(), 1e-9)
		assert.InDelta(t, want, tr.CashAfter, 1e-9)
	}

	buy(1, "X", 10, 100, 1.5)
	buy(1, "Y", 25, 40, 0)
	sell(2, "X", 11, 50, 0.5)
	buy(3, "X", 9, 10, 0)
	sell(4, "Y", 24, 0, 2)
	sell(5, "X", 12, 0, 0)
}

// Trade IDs increase by one from 1 regardless of symbol interleaving.
func TestTradeIDsMonotonic(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(100000, 1)
	var ids []int

	for i, sym := range []string{"A", "B", "A", "C"} {
		tr, err := acct.Buy(day(i+1), sym, 10, 10, 0)
		require.NoError(t, err)
		ids = append(ids, tr.ID)
	}
	if tr := acct.Sell(day(9), "B", 10, 0, 0); tr != nil {
		ids = append(ids, tr.ID)
	}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)
}

func TestEquityMarkToMarket(t *testing.T) {
	t.Parallel()

	acct := NewPaperAccount(1000, 1)
	_, err := acct.Buy(day(1), "X", 10, 50, 0)
	require.NoError(t, err)
	_, err = acct.Buy(day(1), "Y", 20, 10, 0)
	require.NoError(t, err)

	// X marked at 12, Y has no mark and falls back to cost.
	eq := acct.Equity(map[string]float64{"X": 12})
	assert.InDelta(t, 300+12*50+20*10, eq, 1e-9)
}
