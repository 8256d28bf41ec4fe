// Package commands implements the invest CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "invest",
	Short: "Tumkwe Invest - financial data collection service",
	Long: `Tumkwe Invest data collection service

Schedules recurring collection of market data, financial statements,
news, and SEC filings for monitored symbols, validates everything that
comes back, and persists it append-only.

Usage:
  go run ./cmd/invest [command]

Examples:
  go run ./cmd/invest start --symbols AAPL,MSFT
  go run ./cmd/invest collect AAPL --types market_data,news
  go run ./cmd/invest summary`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
