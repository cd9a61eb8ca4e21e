package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	showAll        bool
	status         string
	filterPriority string
	overdue        bool
	sortBy         string
	sortOrder      string
	limit          int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering and sorting.

Filter Options:
  --status      Filter by status (pending, in-progress, completed, cancelled)
  --priority    Filter by priority (urgent, high, medium, low)
  --overdue     Show only overdue tasks

Sort Options:
  --sort        Sort by field (priority, due_date, created_at, urgency)
  --order       Sort order (asc, desc)

Examples:
  execassist task list                          # Active tasks, sorted by priority
  execassist task list --all                    # All tasks
  execassist task list --overdue --sort urgency # Most urgent overdue work
  execassist task list --limit 5                # Top 5 tasks`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		query := queries.ListTasksQuery{
			UserID:    app.CurrentUserID,
			Status:    status,
			Priority:  filterPriority,
			Overdue:   overdue,
			SortBy:    sortBy,
			SortOrder: sortOrder,
			Limit:     limit,
		}
		if showAll {
			query.Status = "all"
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, tasks)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d):\n", len(tasks))
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for _, t := range tasks {
			printTask(cmd, t)
		}
		return nil
	},
}

func printTask(cmd *cobra.Command, t queries.TaskDTO) {
	out := cmd.OutOrStdout()

	dueMarker := ""
	if t.IsOverdue {
		dueMarker = " [OVERDUE]"
	}

	fmt.Fprintf(out, "%s %s %s%s\n", getStatusIcon(t.Status), t.Title, getPriorityBadge(t.Priority), dueMarker)
	fmt.Fprintf(out, "   ID: %s\n", t.ID)
	if t.DurationMinutes != nil {
		fmt.Fprintf(out, "   Duration: %d min\n", *t.DurationMinutes)
	}
	if t.DueDate != nil {
		fmt.Fprintf(out, "   Due: %s\n", t.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(out, "   Urgency: %d\n", t.UrgencyScore)
	fmt.Fprintln(out)
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "show all tasks including completed and cancelled")
	listCmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (pending, in-progress, completed, cancelled)")
	listCmd.Flags().StringVarP(&filterPriority, "priority", "p", "", "filter by priority (urgent, high, medium, low)")
	listCmd.Flags().BoolVar(&overdue, "overdue", false, "show only overdue tasks")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort by field (priority, due_date, created_at, urgency)")
	listCmd.Flags().StringVar(&sortOrder, "order", "", "sort order (asc, desc)")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "max number of tasks to show (0 = no limit)")
}
