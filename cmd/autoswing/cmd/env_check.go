package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"autoswing/config"
)

var envCheckCmd = &cobra.Command{
	Use:   "env-check",
	Short: "Validate .env and accounts.yaml, reporting missing credentials",
	Long: `Env-check loads the project .env file and accounts.yaml, expands
credential placeholders, and reports any alpaca account missing a key or
secret. Accounts without credentials are auto-disabled, so a failing check
still leaves the yahoo data source usable.`,
	RunE: runEnvCheck,
}

var envAccountsPath string

func init() {
	rootCmd.AddCommand(envCheckCmd)

	envCheckCmd.Flags().StringVar(&envAccountsPath, "accounts", "", "path to accounts.yaml (default <root>/accounts.yaml)")
}

func runEnvCheck(cmd *cobra.Command, args []string) error {
	config.LoadEnv(filepath.Join(rootDir, ".env"))

	path := envAccountsPath
	if path == "" {
		path = filepath.Join(rootDir, "accounts.yaml")
	}
	accounts, err := config.LoadAccounts(path)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}

	missing := config.MissingCredentials(accounts)
	if len(missing) == 0 {
		fmt.Println("Environment OK.")
		return nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Missing credentials:")
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, strings.Join(missing[name], ", "))
	}
	return nil
}
