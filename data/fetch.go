package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"autoswing/market"
)

// FetchHistory refreshes the daily cache for each symbol. Sources are tried
// in priority order and the first one returning bars wins; fresh bars are
// merged over the cache (dedupe by date, newest wins). A symbol with no
// data from any source is logged and skipped, never fatal.
func FetchHistory(ctx context.Context, log zerolog.Logger, symbols []string, lookback string, sources []Source, root string) error {
	log = log.With().Str("component", "fetch").Logger()

	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		var fresh market.Series
		for _, src := range sources {
			series, err := src.FetchDaily(ctx, symbol, lookback)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Str("source", src.Name()).Msg("source fetch failed")
				continue
			}
			if len(series) > 0 {
				fresh = series
				log.Debug().Str("symbol", symbol).Str("source", src.Name()).Int("bars", len(series)).Msg("fetched")
				break
			}
		}
		if len(fresh) == 0 {
			log.Warn().Str("symbol", symbol).Msg("no data from any source")
			continue
		}

		merged, err := MergeWithCache(root, symbol, fresh)
		if err != nil {
			return fmt.Errorf("merge cache for %s: %w", symbol, err)
		}
		if err := WriteDailyCache(root, symbol, merged); err != nil {
			return fmt.Errorf("write cache for %s: %w", symbol, err)
		}
	}
	return nil
}

// SourcesByName resolves source priority names ("alpaca,yahoo") into
// clients. Unknown names error so typos do not silently drop a source.
func SourcesByName(names []string, alpacaKey, alpacaSecret string) ([]Source, error) {
	var out []Source
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "alpaca":
			out = append(out, NewAlpacaSource(alpacaKey, alpacaSecret, ""))
		case "yahoo":
			out = append(out, NewYahooSource(""))
		case "":
		default:
			return nil, fmt.Errorf("unknown data source %q (supported: alpaca, yahoo)", name)
		}
	}
	return out, nil
}
