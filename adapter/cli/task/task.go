package task

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage and prioritize tasks",
	Long:  `Create, list, start, complete and prioritize your tasks.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(newStatusCmd(commands.ActionStart, "start [task-id]", "Mark a task as in progress"))
	Cmd.AddCommand(newStatusCmd(commands.ActionComplete, "done [task-id]", "Mark a task as complete", "complete"))
	Cmd.AddCommand(newStatusCmd(commands.ActionCancel, "cancel [task-id]", "Cancel a task"))
	Cmd.AddCommand(prioritizeCmd)
	Cmd.AddCommand(adviseCmd)
	Cmd.AddCommand(recalcCmd)
}

func newStatusCmd(action commands.StatusAction, use, short string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Aliases: aliases,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.RequireApp()
			if err != nil {
				return err
			}

			taskID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid task ID: %w", err)
			}

			result, err := app.UpdateTaskStatusHandler.Handle(cmd.Context(), commands.UpdateTaskStatusCommand{
				TaskID: taskID,
				UserID: app.CurrentUserID,
				Action: action,
			})
			if err != nil {
				return fmt.Errorf("failed to %s task: %w", action, err)
			}

			if cli.JSONOutput() {
				return cli.PrintJSON(cmd, map[string]any{
					"task_id":      result.TaskID,
					"status":       result.Status,
					"completed_at": result.CompletedAt,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s: %s\n", result.Status, result.TaskID)
			return nil
		},
	}
}

func getStatusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "in-progress":
		return "[>]"
	case "cancelled":
		return "[-]"
	default:
		return "[ ]"
	}
}

func getPriorityBadge(priority string) string {
	switch priority {
	case "urgent":
		return "(!!!)"
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}
