// Package main is the entry point for the tradecalc CLI.
package main

import (
	"os"

	"tradecalc/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
