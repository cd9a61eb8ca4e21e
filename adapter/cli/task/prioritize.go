package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/queries"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/services"
	"github.com/spf13/cobra"
)

// weightFlags binds optional factor weights to a command. Unset flags keep
// the engine defaults.
type weightFlags struct {
	dueDate    float64
	priority   float64
	status     float64
	dependency float64
	duration   float64
}

func (w *weightFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&w.dueDate, "due-weight", 0, "weight of the due date factor")
	cmd.Flags().Float64Var(&w.priority, "priority-weight", 0, "weight of the priority factor")
	cmd.Flags().Float64Var(&w.status, "status-weight", 0, "weight of the status factor")
	cmd.Flags().Float64Var(&w.dependency, "dependency-weight", 0, "weight of the dependency factor")
	cmd.Flags().Float64Var(&w.duration, "duration-weight", 0, "weight of the estimated duration factor")
}

func (w *weightFlags) criteria(cmd *cobra.Command) services.PrioritizationCriteria {
	pick := func(name string, v float64) *float64 {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &v
	}
	return services.PrioritizationCriteria{
		DueDateWeight:           pick("due-weight", w.dueDate),
		PriorityWeight:          pick("priority-weight", w.priority),
		StatusWeight:            pick("status-weight", w.status),
		DependencyWeight:        pick("dependency-weight", w.dependency),
		EstimatedDurationWeight: pick("duration-weight", w.duration),
	}
}

var (
	prioritizeWeights weightFlags
	prioritizeAll     bool
)

var prioritizeCmd = &cobra.Command{
	Use:     "prioritize",
	Aliases: []string{"rank"},
	Short:   "Rank tasks by weighted priority score",
	Long: `Rank tasks by a 0-100 score built from due date, priority, status,
dependencies and estimated duration.

Examples:
  execassist task prioritize
  execassist task prioritize --due-weight 0.5 --priority-weight 0.3
  execassist task prioritize --all --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.PrioritizeTasksHandler.Handle(cmd.Context(), queries.PrioritizeTasksQuery{
			UserID:     app.CurrentUserID,
			Criteria:   prioritizeWeights.criteria(cmd),
			ActiveOnly: !prioritizeAll,
		})
		if err != nil {
			return fmt.Errorf("failed to prioritize tasks: %w", err)
		}

		report := queries.NewPrioritizationReportDTO(result.PrioritizationResult)
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, report)
		}
		printReport(cmd, report)
		return nil
	},
}

func printReport(cmd *cobra.Command, report queries.PrioritizationReportDTO) {
	out := cmd.OutOrStdout()
	if len(report.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks to prioritize.")
		return
	}

	fmt.Fprintf(out, "Prioritized tasks (%d):\n", len(report.Tasks))
	fmt.Fprintln(out, strings.Repeat("-", 60))
	for _, t := range report.Tasks {
		overdue := ""
		if t.IsOverdue {
			overdue = " [OVERDUE]"
		}
		fmt.Fprintf(out, "%2d. %3d %-8s %s%s\n", t.Rank, t.Score, t.Band, t.Title, overdue)
		fmt.Fprintf(out, "       %s\n", t.Recommendation)
	}

	s := report.Summary
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "critical %d, high %d, medium %d, low %d, overdue %d\n",
		s.Critical, s.High, s.Medium, s.Low, s.Overdue)
	for _, rec := range report.Recommendations {
		fmt.Fprintf(out, "* %s\n", rec)
	}
}

func init() {
	prioritizeWeights.register(prioritizeCmd)
	prioritizeCmd.Flags().BoolVarP(&prioritizeAll, "all", "a", false, "include completed and cancelled tasks")
}
