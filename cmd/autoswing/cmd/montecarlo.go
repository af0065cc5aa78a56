package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"autoswing/analysis"
	"autoswing/engine"
	"autoswing/journal"
)

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Bootstrap Monte Carlo over logged trade PnL",
	Long: `Montecarlo resamples the realized PnL of journaled sells with
replacement and reports the distribution of final equity. Trades come from
the SQLite journal when one exists, falling back to the CSV trade log.`,
	RunE: runMontecarlo,
}

var (
	mcIters int
	mcCash  float64
	mcDB    string
)

func init() {
	rootCmd.AddCommand(montecarloCmd)

	montecarloCmd.Flags().IntVarP(&mcIters, "iters", "n", 5000, "bootstrap iterations")
	montecarloCmd.Flags().Float64Var(&mcCash, "cash", 1000, "starting cash per resample")
	montecarloCmd.Flags().StringVar(&mcDB, "db", "", "SQLite journal path (default <root>/runtime/autoswing.sqlite)")
}

func runMontecarlo(cmd *cobra.Command, args []string) error {
	pnls, source, err := loadPnLs()
	if err != nil {
		return err
	}

	summary := analysis.BootstrapPnL(pnls, mcIters, mcCash, nil)

	fmt.Printf("Monte Carlo over %d trades from %s (%d iterations)\n", len(pnls), source, summary.Iters)
	fmt.Printf("  Start: $%.2f\n", summary.Start)
	fmt.Printf("  Min:   $%.2f\n", summary.Min)
	fmt.Printf("  P05:   $%.2f\n", summary.P05)
	fmt.Printf("  P50:   $%.2f\n", summary.P50)
	fmt.Printf("  P95:   $%.2f\n", summary.P95)
	fmt.Printf("  Max:   $%.2f\n", summary.Max)
	return nil
}

// loadPnLs pulls realized PnL from the SQLite journal if present, else the
// CSV trade log. Sells carry the realized PnL; buys are excluded.
func loadPnLs() ([]float64, string, error) {
	dbPath := mcDB
	if dbPath == "" {
		dbPath = filepath.Join(rootDir, "runtime", "autoswing.sqlite")
	}
	if fileExists(dbPath) {
		sq, err := journal.NewSQLite(dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("open db: %w", err)
		}
		defer sq.Close()

		pnls, err := sq.RealizedPnLs()
		if err != nil {
			return nil, "", err
		}
		return pnls, dbPath, nil
	}

	log := journal.NewCSV(rootDir)
	trades, err := log.ReadTrades()
	if err != nil {
		return nil, "", fmt.Errorf("read trade log: %w", err)
	}
	var pnls []float64
	for _, tr := range trades {
		if tr.Side == engine.Sell {
			pnls = append(pnls, tr.RealizedPnL)
		}
	}
	return pnls, log.TradesPath(), nil
}
