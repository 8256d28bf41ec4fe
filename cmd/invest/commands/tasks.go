package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tumkwe/invest/internal/contracts"
)

// tasksCmd represents the tasks command
var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show scheduled collection tasks",
	Long: `Lists every scheduled task on a running service instance, ordered
by next run time.

Example:
  go run ./cmd/invest tasks`,
	RunE: runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, args []string) error {
	var resp struct {
		Tasks []*contracts.Task `json:"tasks"`
	}
	if err := apiGet("/api/collection/tasks", &resp); err != nil {
		return err
	}

	if len(resp.Tasks) == 0 {
		fmt.Println("No tasks scheduled")
		return nil
	}

	fmt.Printf("%-35s %-22s %-10s %s\n", "TASK", "NEXT RUN", "INTERVAL", "FAILURES")
	for _, task := range resp.Tasks {
		fmt.Printf("%-35s %-22s %-10s %d\n",
			task.Name,
			task.NextRun.Format("2006-01-02 15:04:05"),
			task.Interval.String(),
			task.FailureCount,
		)
	}
	return nil
}
