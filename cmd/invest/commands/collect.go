package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tumkwe/invest/internal/contracts"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect SYMBOL",
	Short: "Collect data for one symbol immediately",
	Long: `Runs collection for one symbol right now, regardless of schedule,
and prints the resulting validation summary.

Data types: market_data, financial_statements, news, sec_filings.
With no --types flag, every data type is collected.

Example:
  go run ./cmd/invest collect AAPL
  go run ./cmd/invest collect MSFT --types market_data,news`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

var collectTypes string

func init() {
	rootCmd.AddCommand(collectCmd)

	// Flags
	collectCmd.Flags().StringVar(&collectTypes, "types", "", "comma-separated data types (default: all)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	var dataTypes []contracts.DataType
	if collectTypes != "" {
		for _, dt := range strings.Split(collectTypes, ",") {
			dataType := contracts.DataType(strings.TrimSpace(dt))
			if !dataType.Valid() {
				return fmt.Errorf("unknown data type: %s", dt)
			}
			dataTypes = append(dataTypes, dataType)
		}
	}

	application, err := wire()
	if err != nil {
		return err
	}
	defer application.close()

	fmt.Printf("=== Collecting %s ===\n", symbol)

	collectErr := application.manager.CollectNow(context.Background(), symbol, dataTypes...)

	// Print what came back even when part of the run failed.
	for _, report := range application.manager.Reports() {
		fmt.Printf("\n%s (%s, source: %s)\n", report.DataType, report.Symbol, report.Source)
		fmt.Printf("  records: %d total, %d valid\n", report.TotalRecords, report.ValidRecords)
		if count := report.IssueCount(); count > 0 {
			fmt.Printf("  issues:  %d\n", count)
			for key, messages := range report.Issues {
				for _, msg := range messages {
					fmt.Printf("    [%s] %s\n", key, msg)
				}
			}
		}
	}

	if collectErr != nil {
		return fmt.Errorf("collection finished with errors: %w", collectErr)
	}

	fmt.Println("\n✅ Collection completed")
	return nil
}
