package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"autoswing/analysis"
	"autoswing/config"
	"autoswing/data"
)

var walkforwardCmd = &cobra.Command{
	Use:   "walkforward",
	Short: "Walk-forward study of SMA parameters over cached history",
	Long: `Walkforward rolls a train/test window over each symbol's cached
history, picks the best fast/slow SMA pair on the train slice, and reports
the regime-gated return on the test slice.

Example:
  autoswing walkforward --symbols AAPL,MSFT --train 200 --test 60 --step 60`,
	RunE: runWalkforward,
}

var (
	wfSymbols string
	wfTrain   int
	wfTest    int
	wfStep    int
)

func init() {
	rootCmd.AddCommand(walkforwardCmd)

	walkforwardCmd.Flags().StringVarP(&wfSymbols, "symbols", "s", "", "comma-separated symbols (default: settings universe)")
	walkforwardCmd.Flags().IntVar(&wfTrain, "train", 200, "train window in bars")
	walkforwardCmd.Flags().IntVar(&wfTest, "test", 60, "test window in bars")
	walkforwardCmd.Flags().IntVar(&wfStep, "step", 60, "window step in bars")
}

func runWalkforward(cmd *cobra.Command, args []string) error {
	symbols := splitList(wfSymbols)
	if len(symbols) == 0 {
		settings, err := config.LoadSettings(filepath.Join(rootDir, "settings.yaml"))
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		symbols = settings.Universe
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols: pass --symbols or set universe in settings.yaml")
	}

	bundle, err := data.LoadBundleCached(rootDir, symbols, 0)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}
	if len(bundle) == 0 {
		return fmt.Errorf("no cached data; run fetch first")
	}

	recs := analysis.WalkForward(bundle, wfTrain, wfTest, wfStep)
	if len(recs) == 0 {
		fmt.Println("No windows fit; need more history or smaller windows.")
		return nil
	}
	analysis.SortRecords(recs)

	fmt.Printf("%-8s %-12s %-12s %5s %5s %9s\n", "symbol", "start", "end", "fast", "slow", "return")
	for _, rec := range recs {
		fmt.Printf("%-8s %-12s %-12s %5d %5d %8.2f%%\n",
			rec.Symbol,
			rec.Start.Format("2006-01-02"),
			rec.End.Format("2006-01-02"),
			rec.Fast, rec.Slow, rec.Return*100)
	}
	return nil
}
