package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"autoswing/config"
	"autoswing/data"
	"autoswing/engine"
	"autoswing/journal"
	"autoswing/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a bar backtest over the cached universe",
	Long: `Backtest replays cached daily bars through the paper account with
T+1 cash settlement and the chosen strategy.

Supported strategies:
  - noop: never signals (baseline)
  - sma-pullback: buy dips below the fast SMA while fast > slow

Example:
  autoswing backtest --days 365 --strategy sma-pullback --journal sqlite`,
	RunE: runBacktestCmd,
}

var (
	btDays     int
	btSymbols  string
	btStrategy string
	btSettings string
	btJournal  string
	btDBPath   string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().IntVarP(&btDays, "days", "d", 365, "lookback days from cache")
	backtestCmd.Flags().StringVarP(&btSymbols, "symbols", "s", "", "comma-separated symbols (default: settings universe)")
	backtestCmd.Flags().StringVar(&btStrategy, "strategy", "sma-pullback", "strategy name (noop, sma-pullback)")
	backtestCmd.Flags().StringVar(&btSettings, "settings", "", "path to settings.yaml (default <root>/settings.yaml)")
	backtestCmd.Flags().StringVarP(&btJournal, "journal", "j", "none", "journal backend (none, csv, sqlite)")
	backtestCmd.Flags().StringVar(&btDBPath, "db", "", "SQLite journal path (default <root>/runtime/autoswing.sqlite)")
}

func runBacktestCmd(cmd *cobra.Command, args []string) error {
	config.LoadEnv(filepath.Join(rootDir, ".env"))

	settingsPath := btSettings
	if settingsPath == "" {
		settingsPath = filepath.Join(rootDir, "settings.yaml")
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	symbols := splitList(btSymbols)
	if len(symbols) == 0 {
		symbols = settings.Universe
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols: pass --symbols or set universe in %s", settingsPath)
	}

	bundle, err := data.LoadBundleCached(rootDir, symbols, btDays)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}
	if len(bundle) == 0 {
		return fmt.Errorf("no cached data for %s; run fetch first", strings.Join(symbols, ","))
	}

	strat, err := strategies.ByName(btStrategy, strategies.Params{
		Alloc:   settings.AllocPct,
		MaxPos:  settings.MaxPositions,
		MaxHold: settings.MaxHoldDays,
	})
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	jnl, runID, err := openJournal()
	if err != nil {
		return err
	}
	if jnl != nil {
		defer jnl.Close()
	}

	var sink engine.TradeSink
	if jnl != nil {
		sink = jnl
	}
	result, err := engine.RunBarBacktest(bundle, strat, engine.Options{
		StartingCash:   settings.StartingCash,
		SettlementDays: settings.SettlementDays,
		MaxHoldDays:    strat.MaxHoldDays(),
		FeePerShare:    settings.FeePerShare,
		Sink:           sink,
	})
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	if sq, ok := jnl.(*journal.SQLite); ok {
		summary := journal.Summarize(runID, strat.Name(), settings.StartingCash, result.FinalEquity, result.Trades)
		if err := sq.RecordRun(summary); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
	}

	fmt.Printf("Backtest complete (%s over %d symbols, %d days)\n", strat.Name(), len(bundle), btDays)
	fmt.Printf("  Starting cash: $%.2f\n", settings.StartingCash)
	fmt.Printf("  Final equity:  $%.2f\n", result.FinalEquity)
	fmt.Printf("  Trades:        %d\n", len(result.Trades))
	if runID != "" {
		fmt.Printf("  Run ID:        %s\n", runID)
	}
	return nil
}

// openJournal builds the selected journal backend. runID is empty for the
// csv and none backends.
func openJournal() (journal.Journal, string, error) {
	switch strings.ToLower(strings.TrimSpace(btJournal)) {
	case "", "none":
		return nil, "", nil

	case "csv":
		return journal.NewCSV(rootDir), "", nil

	case "sqlite":
		path := btDBPath
		if path == "" {
			path = filepath.Join(rootDir, "runtime", "autoswing.sqlite")
		}
		sq, err := journal.NewSQLite(path)
		if err != nil {
			return nil, "", fmt.Errorf("open db: %w", err)
		}
		return sq, sq.RunID, nil

	default:
		return nil, "", fmt.Errorf("unknown journal %q (supported: none, csv, sqlite)", btJournal)
	}
}
