package task

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var recalcWeights weightFlags

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate stored priority scores for active tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.RecalculatePrioritiesHandler.Handle(cmd.Context(), commands.RecalculatePrioritiesCommand{
			UserID:   app.CurrentUserID,
			Criteria: recalcWeights.criteria(cmd),
		})
		if err != nil {
			return fmt.Errorf("failed to recalculate priorities: %w", err)
		}

		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, map[string]any{
				"updated_count": result.UpdatedCount,
				"average_score": result.AverageScore,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Recalculated %d tasks (average score %.1f)\n", result.UpdatedCount, result.AverageScore)
		return nil
	},
}

func init() {
	recalcWeights.register(recalcCmd)
}
