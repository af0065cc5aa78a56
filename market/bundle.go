package market

import (
	"sort"
	"time"
)

// Bundle maps symbols to their daily bar series. Symbols need not share a
// calendar; a symbol simply has no bar on days it is missing.
type Bundle map[string]Series

// Sort sorts every series in place. Run loops require ascending order.
func (b Bundle) Sort() {
	for _, s := range b {
		s.Sort()
	}
}

// Calendar returns the sorted union of every bar date across all symbols.
// This is the iteration axis of a bar backtest.
func (b Bundle) Calendar() []time.Time {
	seen := make(map[time.Time]struct{})
	for _, s := range b {
		for _, bar := range s {
			seen[bar.Date] = struct{}{}
		}
	}
	out := make([]time.Time, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Through returns the slice bundle for day: each symbol truncated to bars
// dated on or before day. Symbols with no bars yet are dropped, so a
// strategy scanning the result never sees future data and never sees an
// empty series.
func (b Bundle) Through(day time.Time) Bundle {
	out := make(Bundle, len(b))
	for sym, s := range b {
		if sliced := s.Through(day); len(sliced) > 0 {
			out[sym] = sliced
		}
	}
	return out
}

// LastCloses returns each symbol's final close over the whole bundle, used
// to mark positions at the end of a run.
func (b Bundle) LastCloses() map[string]float64 {
	out := make(map[string]float64, len(b))
	for sym, s := range b {
		if px, ok := s.LastClose(); ok {
			out[sym] = px
		}
	}
	return out
}

// Symbols returns the bundle's symbols in sorted order for deterministic
// iteration.
func (b Bundle) Symbols() []string {
	out := make([]string, 0, len(b))
	for sym := range b {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
