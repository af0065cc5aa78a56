// Package pipeline chains the daily refresh: load config, pull fresh bars,
// run the configured strategy over the cached bundle, and journal the
// result.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"autoswing/config"
	"autoswing/data"
	"autoswing/engine"
	"autoswing/journal"
	"autoswing/market"
	"autoswing/strategies"
)

// Options configures one daily run. Zero values fall back to the settings
// file and its defaults.
type Options struct {
	Root         string
	SettingsPath string
	Symbols      []string
	Days         int
	Sources      []string
	DataSources  []data.Source
	Strategy     string
	Journal      journal.Journal
	Log          zerolog.Logger
}

// RunDaily refreshes history for the universe, loads the recent bundle from
// cache, and runs a bar backtest with the configured strategy. Trades and
// the closing equity snapshot go to the journal when one is set. Returns
// final equity.
func RunDaily(ctx context.Context, opts Options) (float64, error) {
	log := opts.Log.With().Str("component", "pipeline").Logger()

	config.LoadEnv(filepath.Join(opts.Root, ".env"))

	settingsPath := opts.SettingsPath
	if settingsPath == "" {
		settingsPath = filepath.Join(opts.Root, "settings.yaml")
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}

	symbols := opts.Symbols
	if len(symbols) == 0 {
		symbols = settings.Universe
	}
	if len(symbols) == 0 {
		return 0, fmt.Errorf("no symbols: pass some or set universe in %s", settingsPath)
	}
	for i, s := range symbols {
		symbols[i] = strings.ToUpper(s)
	}

	days := opts.Days
	if days <= 0 {
		days = 60
	}

	sources := opts.DataSources
	if len(sources) == 0 {
		sourceNames := opts.Sources
		if len(sourceNames) == 0 {
			sourceNames = []string{"alpaca", "yahoo"}
		}
		key, secret := alpacaCreds()
		sources, err = data.SourcesByName(sourceNames, key, secret)
		if err != nil {
			return 0, err
		}
	}

	log.Info().Strs("symbols", symbols).Int("days", days).Msg("refreshing history")
	lookback := fmt.Sprintf("%dd", days)
	if err := data.FetchHistory(ctx, log, symbols, lookback, sources, opts.Root); err != nil {
		return 0, fmt.Errorf("fetch history: %w", err)
	}

	bundle, err := data.LoadBundleCached(opts.Root, symbols, days)
	if err != nil {
		return 0, fmt.Errorf("load bundle: %w", err)
	}

	strat, err := strategies.ByName(opts.Strategy, strategies.Params{
		Alloc:   settings.AllocPct,
		MaxPos:  settings.MaxPositions,
		MaxHold: settings.MaxHoldDays,
	})
	if err != nil {
		return 0, err
	}

	var sink engine.TradeSink
	if opts.Journal != nil {
		sink = opts.Journal
	}
	result, err := engine.RunBarBacktest(bundle, strat, engine.Options{
		StartingCash:   settings.StartingCash,
		SettlementDays: settings.SettlementDays,
		MaxHoldDays:    strat.MaxHoldDays(),
		FeePerShare:    settings.FeePerShare,
		Sink:           sink,
	})
	if err != nil {
		return 0, fmt.Errorf("backtest: %w", err)
	}

	if opts.Journal != nil {
		if last, ok := lastCalendarDay(bundle); ok {
			snap := journal.EquitySnapshot{
				Time:   last,
				Equity: result.FinalEquity,
				Cash:   result.Account.CashRunning(),
			}
			if err := opts.Journal.RecordEquity(snap); err != nil {
				return 0, fmt.Errorf("record equity: %w", err)
			}
		}
	}

	log.Info().
		Str("strategy", strat.Name()).
		Int("trades", len(result.Trades)).
		Float64("equity", result.FinalEquity).
		Msg("daily run complete")
	return result.FinalEquity, nil
}

func alpacaCreds() (key, secret string) {
	return envOr("APCA_API_KEY_ID", "ALPACA_KEY_ID"), envOr("APCA_API_SECRET_KEY", "ALPACA_SECRET_KEY")
}

func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// lastCalendarDay is the date equity snapshots are stamped with, the most
// recent bar across the bundle.
func lastCalendarDay(bundle market.Bundle) (time.Time, bool) {
	cal := bundle.Calendar()
	if len(cal) == 0 {
		return time.Time{}, false
	}
	return cal[len(cal)-1], true
}
