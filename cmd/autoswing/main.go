package main

import (
	"os"

	"autoswing/cmd/autoswing/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
