package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func series(days ...int) Series {
	s := make(Series, 0, len(days))
	for _, day := range days {
		s = append(s, Bar{Date: d(day), Close: float64(day)})
	}
	return s
}

func TestSeriesThrough(t *testing.T) {
	t.Parallel()

	s := series(1, 2, 3, 5, 8)

	tests := []struct {
		name string
		day  time.Time
		want int
	}{
		{"before_first", d(1).AddDate(0, 0, -1), 0},
		{"exact_first", d(1), 1},
		{"gap_day", d(4), 3},
		{"exact_last", d(8), 5},
		{"after_last", d(9), 5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, s.Through(tt.day), tt.want)
		})
	}
}

func TestSeriesLastClose(t *testing.T) {
	t.Parallel()

	_, ok := Series{}.LastClose()
	assert.False(t, ok)

	px, ok := series(1, 2, 7).LastClose()
	require.True(t, ok)
	assert.Equal(t, 7.0, px)
}

func TestSeriesSort(t *testing.T) {
	t.Parallel()

	s := Series{
		{Date: d(5)},
		{Date: d(1)},
		{Date: d(3)},
	}
	s.Sort()
	assert.Equal(t, d(1), s[0].Date)
	assert.Equal(t, d(3), s[1].Date)
	assert.Equal(t, d(5), s[2].Date)
}

func TestBundleCalendarUnion(t *testing.T) {
	t.Parallel()

	b := Bundle{
		"X": series(1, 3),
		"Y": series(2, 3, 4),
	}
	cal := b.Calendar()
	require.Len(t, cal, 4)
	assert.Equal(t, []time.Time{d(1), d(2), d(3), d(4)}, cal)
}

func TestBundleCalendarEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Bundle{}.Calendar())
	assert.Empty(t, Bundle{"X": {}}.Calendar())
}

func TestBundleThroughDropsEmptySymbols(t *testing.T) {
	t.Parallel()

	b := Bundle{
		"X": series(1, 2),
		"Y": series(3),
	}
	sliced := b.Through(d(2))
	require.Contains(t, sliced, "X")
	assert.NotContains(t, sliced, "Y")
	assert.Len(t, sliced["X"], 2)
}

func TestBundleLastCloses(t *testing.T) {
	t.Parallel()

	b := Bundle{
		"X": series(1, 2, 3),
		"Y": {},
	}
	marks := b.LastCloses()
	assert.Equal(t, map[string]float64{"X": 3}, marks)
}

func TestDayNormalizes(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("EST", -5*3600)
	ts := time.Date(2026, 3, 2, 21, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Day(ts))
}
