package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tumkwe/invest/internal/contracts"
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the combined validation summary",
	Long: `Fetches the combined validation report from a running service
instance and prints it.

Example:
  go run ./cmd/invest summary`,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	var report contracts.CombinedReport
	if err := apiGet("/api/collection/summary", &report); err != nil {
		return err
	}

	fmt.Println("=== Validation Summary ===")
	fmt.Printf("Timestamp:       %s\n", report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Total records:   %d\n", report.TotalRecords)
	fmt.Printf("Valid records:   %d\n", report.ValidRecords)
	if report.TotalRecords > 0 {
		fmt.Printf("Validation rate: %.1f%%\n", report.ValidationRate*100)
	}

	if len(report.DataTypes) > 0 {
		fmt.Println("\nBy data type:")
		for _, row := range report.DataTypes {
			fmt.Printf("  %-30s %-8s total=%-5d valid=%-5d issues=%d\n",
				row.DataType, row.Symbol, row.Total, row.Valid, row.IssueCount)
		}
	}

	issueCount := 0
	for _, messages := range report.IssuesByType {
		issueCount += len(messages)
	}
	if issueCount > 0 {
		fmt.Printf("\nIssues (%d):\n", issueCount)
		for key, messages := range report.IssuesByType {
			for _, msg := range messages {
				fmt.Printf("  [%s] %s\n", key, msg)
			}
		}
	}

	return nil
}
