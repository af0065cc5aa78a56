package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoswing/engine"
)

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	j, err := NewSQLite(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSQLiteTradeRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)
	want := sampleTrades()
	require.NoError(t, j.AppendTrades(want))

	got, err := j.ListTradesByRun(j.RunID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[0].Date, got[0].Date)
	assert.Equal(t, engine.Buy, got[0].Side)
	assert.Equal(t, 50, got[0].Qty)
	assert.InDelta(t, want[1].RealizedPnL, got[1].RealizedPnL, 1e-9)
	assert.Equal(t, want[1].SettleDate, got[1].SettleDate)
}

func TestSQLiteRealizedPnLsSellsOnly(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)
	require.NoError(t, j.AppendTrades(sampleTrades()))

	pnls, err := j.RealizedPnLs()
	require.NoError(t, err)
	require.Len(t, pnls, 1)
	assert.InDelta(t, -50, pnls[0], 1e-9)
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j := newTestDB(t)
	trades := sampleTrades()
	require.NoError(t, j.AppendTrades(trades))

	sum := Summarize(j.RunID, "sma-pullback", 1000, 950, trades)
	require.NoError(t, j.RecordRun(sum))

	runs, err := j.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, j.RunID, runs[0].RunID)
	assert.Equal(t, "sma-pullback", runs[0].Strategy)
	assert.Equal(t, 2, runs[0].Trades)
	assert.Equal(t, 0, runs[0].Wins)
	assert.Equal(t, 1, runs[0].Losses)
	assert.InDelta(t, 950, runs[0].FinalEquity, 1e-9)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	d := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	trades := []engine.Trade{
		{ID: 1, Date: d, Side: engine.Buy},
		{ID: 2, Date: d.AddDate(0, 0, 2), Side: engine.Sell, RealizedPnL: 40},
		{ID: 3, Date: d.AddDate(0, 0, 4), Side: engine.Sell, RealizedPnL: -10},
		{ID: 4, Date: d.AddDate(0, 0, 6), Side: engine.Sell, RealizedPnL: 0},
	}

	s := Summarize("run", "noop", 1000, 1030, trades)
	assert.Equal(t, 4, s.Trades)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, d, s.Start)
	assert.Equal(t, d.AddDate(0, 0, 6), s.End)
}
