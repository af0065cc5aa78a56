package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoswing/market"
)

func uptrend(n int) market.Series {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(market.Series, 0, n)
	for i := 0; i < n; i++ {
		px := 100 + 0.5*float64(i)
		series = append(series, market.Bar{
			Date:   base.AddDate(0, 0, i),
			Open:   px,
			High:   px + 1,
			Low:    px - 1,
			Close:  px,
			Volume: 1000,
		})
	}
	return series
}

func TestWalkForwardUptrend(t *testing.T) {
	t.Parallel()

	bundle := market.Bundle{"UP": uptrend(260)}
	recs := WalkForward(bundle, 200, 60, 100)

	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "UP", rec.Symbol)
	assert.Equal(t, bundle["UP"][200].Date, rec.Start)
	assert.Equal(t, bundle["UP"][259].Date, rec.End)
	assert.Equal(t, 10, rec.Fast, "steady uptrend keeps the first grid pair")
	assert.Equal(t, 50, rec.Slow)
	assert.Greater(t, rec.Return, 0.0, "regime-gated return is positive in an uptrend")
}

func TestWalkForwardWindowStepping(t *testing.T) {
	t.Parallel()

	bundle := market.Bundle{"UP": uptrend(300)}
	recs := WalkForward(bundle, 160, 60, 40)

	// idx = 0, 40, 80 all fit; idx = 120 would need 340 bars.
	require.Len(t, recs, 3)
	assert.Equal(t, bundle["UP"][160].Date, recs[0].Start)
	assert.Equal(t, bundle["UP"][200].Date, recs[1].Start)
	assert.Equal(t, bundle["UP"][240].Date, recs[2].Start)
}

func TestWalkForwardSkipsShortHistory(t *testing.T) {
	t.Parallel()

	bundle := market.Bundle{"SHORT": uptrend(100)}
	recs := WalkForward(bundle, 50, 20, 10)
	assert.Empty(t, recs, "symbols shorter than the largest slow period are skipped")
}

func TestWalkForwardShortTestWindowIsFlat(t *testing.T) {
	t.Parallel()

	bundle := market.Bundle{"UP": uptrend(230)}
	recs := WalkForward(bundle, 200, 30, 100)

	require.Len(t, recs, 1)
	assert.Zero(t, recs[0].Return, "test windows shorter than the slow period never enter the regime")
}

func TestSortRecords(t *testing.T) {
	t.Parallel()

	d := func(day int) time.Time { return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC) }
	recs := []WindowRecord{
		{Symbol: "B", Start: d(1)},
		{Symbol: "A", Start: d(5)},
		{Symbol: "A", Start: d(1)},
	}
	SortRecords(recs)

	assert.Equal(t, "A", recs[0].Symbol)
	assert.Equal(t, d(1), recs[0].Start)
	assert.Equal(t, d(5), recs[1].Start)
	assert.Equal(t, "B", recs[2].Symbol)
}
