package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"autoswing/journal"
	"autoswing/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the daily pipeline once",
	Long: `Run executes one pass of the daily pipeline: refresh history for
the universe, load the recent bundle from cache, run the configured
strategy, and journal the result.`,
	RunE: runDailyCmd,
}

var (
	runDays     int
	runSymbols  string
	runStrategy string
	runJournal  bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runDays, "days", "d", 60, "lookback days")
	runCmd.Flags().StringVarP(&runSymbols, "symbols", "s", "", "comma-separated symbols (default: settings universe)")
	runCmd.Flags().StringVar(&runStrategy, "strategy", "sma-pullback", "strategy name (noop, sma-pullback)")
	runCmd.Flags().BoolVar(&runJournal, "journal", true, "append trades and equity to the CSV log")
}

func runDailyCmd(cmd *cobra.Command, args []string) error {
	opts := pipeline.Options{
		Root:         rootDir,
		SettingsPath: filepath.Join(rootDir, "settings.yaml"),
		Symbols:      splitList(runSymbols),
		Days:         runDays,
		Strategy:     runStrategy,
		Log:          newLogger(),
	}
	if runJournal {
		opts.Journal = journal.NewCSV(rootDir)
	}

	equity, err := pipeline.RunDaily(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Printf("Equity: %.2f\n", equity)
	return nil
}
