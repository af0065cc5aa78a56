package market

import (
	"sort"
	"time"
)

// Bar is one daily OHLCV bar. Dates are normalized to UTC midnight so bars
// from different sources line up on the same calendar.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Day normalizes t to UTC midnight.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Series is one symbol's bar history, ascending by date once Sort is called.
type Series []Bar

func (s Series) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
}

// LastClose returns the close of the most recent bar. ok is false for an
// empty series.
func (s Series) LastClose() (px float64, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Close, true
}

// Through returns the prefix of s with Date <= day. The series must be
// sorted. The returned slice aliases s; callers must not mutate it.
func (s Series) Through(day time.Time) Series {
	n := sort.Search(len(s), func(i int) bool { return s[i].Date.After(day) })
	return s[:n]
}

// Tail returns the last n bars, or all of them when n exceeds the length.
func (s Series) Tail(n int) Series {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// Closes extracts the close column, oldest first. Indicator packages want a
// plain float64 slice.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}
