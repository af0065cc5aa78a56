package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the autoswing CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("autoswing version %s\n", version)
		fmt.Println("A swing-trading simulator for small cash accounts")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
