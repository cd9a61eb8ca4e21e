package task

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	priority    string
	duration    int
	description string
	dueDate     string
	dependsOn   []string
)

var createCmd = &cobra.Command{
	Use:     "add [title]",
	Aliases: []string{"create"},
	Short:   "Create a new task",
	Long: `Create a new task with a title and optional properties.

Examples:
  execassist task add "Complete board report"
  execassist task add "Review budget" -p high -d 30 --due 2024-06-14
  execassist task add "Ship offsite agenda" --depends-on 550e8400-e29b-41d4-a716-446655440000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		title := args[0]

		command := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           title,
			Description:     description,
			Priority:        priority,
			DurationMinutes: duration,
		}

		if command.DueDate, err = app.RequestDefaults.ParseOptionalTime(dueDate); err != nil {
			return fmt.Errorf("invalid due date format (use YYYY-MM-DD): %w", err)
		}
		for _, raw := range dependsOn {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid dependency ID %q: %w", raw, err)
			}
			command.DependencyIDs = append(command.DependencyIDs, id)
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), command)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, map[string]any{"task_id": result.TaskID})
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task created: %s\n", result.TaskID)
		fmt.Fprintf(out, "  title: %s\n", title)
		if priority != "" {
			fmt.Fprintf(out, "  priority: %s\n", priority)
		}
		if duration > 0 {
			fmt.Fprintf(out, "  duration: %d minutes\n", duration)
		}
		if command.DueDate != nil {
			fmt.Fprintf(out, "  due: %s\n", command.DueDate.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "task priority (low, medium, high, urgent)")
	createCmd.Flags().IntVarP(&duration, "duration", "d", 0, "estimated duration in minutes")
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD or YYYY-MM-DD HH:MM)")
	createCmd.Flags().StringSliceVar(&dependsOn, "depends-on", nil, "IDs of tasks this task depends on")
}
