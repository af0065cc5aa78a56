package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autoswing",
	Short: "A swing-trading simulator for small cash accounts",
	Long: `Autoswing is a swing-trading research tool built around a paper
account with T+1 cash settlement.

It provides tools for:
  - Fetching daily bars from Alpaca or Yahoo into a local cache
  - Backtesting strategies against the cached universe
  - Journaling trades and equity to CSV or SQLite
  - Bootstrap Monte Carlo over realized trade PnL
  - Walk-forward validation of SMA parameters
  - Running the daily pipeline once or on a cron schedule`,
}

var (
	rootDir string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root (cache, logs, settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func alpacaKey() string {
	return firstEnv("APCA_API_KEY_ID", "ALPACA_KEY_ID")
}

func alpacaSecret() string {
	return firstEnv("APCA_API_SECRET_KEY", "ALPACA_SECRET_KEY")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
