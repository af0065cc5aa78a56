package data

import (
	"fmt"

	"autoswing/market"
)

// LoadBundleCached assembles a bundle from the daily cache, keeping the
// most recent days bars per symbol (days <= 0 keeps everything). Symbols
// with no cache file are skipped rather than erroring so a bundle can be
// built from a partially fetched universe.
func LoadBundleCached(root string, symbols []string, days int) (market.Bundle, error) {
	bundle := make(market.Bundle)
	for _, symbol := range symbols {
		series, err := ReadDailyCache(root, symbol)
		if err != nil {
			return nil, fmt.Errorf("read cache for %s: %w", symbol, err)
		}
		if len(series) == 0 {
			continue
		}
		if days > 0 {
			series = series.Tail(days)
		}
		bundle[symbol] = series
	}
	bundle.Sort()
	return bundle, nil
}
