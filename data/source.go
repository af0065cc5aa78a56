package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"autoswing/market"
)

// Source fetches daily bar history for a symbol. lookback is a compact span
// like "1y", "6mo", or "30d".
type Source interface {
	Name() string
	FetchDaily(ctx context.Context, symbol, lookback string) (market.Series, error)
}

// lookbackDays converts a span string into a day count.
func lookbackDays(lookback string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(lookback))

	for suffix, mult := range map[string]int{"y": 365, "mo": 30, "w": 7, "d": 1} {
		num, ok := strings.CutSuffix(s, suffix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("bad lookback %q", lookback)
		}
		return n * mult, nil
	}
	return 0, fmt.Errorf("bad lookback %q (want e.g. 1y, 6mo, 30d)", lookback)
}
