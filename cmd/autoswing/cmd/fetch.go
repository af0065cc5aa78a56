package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"autoswing/config"
	"autoswing/data"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch daily bars into the local cache",
	Long: `Fetch pulls daily history for the given symbols and merges it into
the CSV cache under <root>/runtime/data_cache/daily. Sources are tried in
priority order; the first one with data wins per symbol.

Example:
  autoswing fetch --symbols AAPL,MSFT --lookback 1y --sources alpaca,yahoo`,
	RunE: runFetch,
}

var (
	fetchSymbols  string
	fetchLookback string
	fetchSources  string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchSymbols, "symbols", "s", "", "comma-separated symbols: AAPL,MSFT (required)")
	fetchCmd.Flags().StringVarP(&fetchLookback, "lookback", "l", "1y", "history span (1y, 6mo, 30d)")
	fetchCmd.Flags().StringVar(&fetchSources, "sources", "alpaca,yahoo", "data source priority order")

	fetchCmd.MarkFlagRequired("symbols")
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := newLogger()
	config.LoadEnv(filepath.Join(rootDir, ".env"))

	symbols := splitList(fetchSymbols)
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols given")
	}

	sources, err := data.SourcesByName(splitList(fetchSources), alpacaKey(), alpacaSecret())
	if err != nil {
		return err
	}

	bar := initFetchBar(len(symbols))
	for _, symbol := range symbols {
		if err := data.FetchHistory(cmd.Context(), log, []string{symbol}, fetchLookback, sources, rootDir); err != nil {
			return err
		}
		bar.Add(1)
	}
	bar.Finish()

	fmt.Printf("\nFetched %s for %d symbols into %s\n",
		fetchLookback, len(symbols), filepath.Join(rootDir, "runtime", "data_cache", "daily"))
	return nil
}

func initFetchBar(symbols int) *progressbar.ProgressBar {
	return progressbar.NewOptions(symbols,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Fetching history..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
