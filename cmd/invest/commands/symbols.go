package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

// symbolsCmd represents the symbols command group
var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Manage monitored symbols",
	Long: `Lists, adds, or removes symbols on a running service instance.

Example:
  go run ./cmd/invest symbols list
  go run ./cmd/invest symbols add AAPL
  go run ./cmd/invest symbols remove AAPL`,
}

// symbolsListCmd lists monitored symbols
var symbolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List monitored symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Symbols []string `json:"symbols"`
		}
		if err := apiGet("/api/collection/symbols", &resp); err != nil {
			return err
		}

		if len(resp.Symbols) == 0 {
			fmt.Println("No symbols monitored")
			return nil
		}
		for _, symbol := range resp.Symbols {
			fmt.Println(symbol)
		}
		return nil
	},
}

// symbolsAddCmd adds a symbol
var symbolsAddCmd = &cobra.Command{
	Use:   "add SYMBOL",
	Short: "Start monitoring a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		payload := map[string]string{"symbol": symbol}
		if err := apiSend("POST", "/api/collection/symbols", payload); err != nil {
			return err
		}
		fmt.Printf("✅ Added %s\n", symbol)
		return nil
	},
}

// symbolsRemoveCmd removes a symbol
var symbolsRemoveCmd = &cobra.Command{
	Use:   "remove SYMBOL",
	Short: "Stop monitoring a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := strings.ToUpper(strings.TrimSpace(args[0]))
		path := "/api/collection/symbols/" + url.PathEscape(symbol)
		if err := apiSend("DELETE", path, nil); err != nil {
			return err
		}
		fmt.Printf("✅ Removed %s\n", symbol)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.AddCommand(symbolsListCmd)
	symbolsCmd.AddCommand(symbolsAddCmd)
	symbolsCmd.AddCommand(symbolsRemoveCmd)
}
