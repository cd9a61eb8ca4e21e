package task

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Suggest priority changes based on urgency",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		result, err := app.AdvisePrioritiesHandler.Handle(cmd.Context(), queries.AdvisePrioritiesQuery{
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to advise priorities: %w", err)
		}

		adjustments := queries.NewPriorityAdjustmentDTOs(result.Adjustments)
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, adjustments)
		}

		out := cmd.OutOrStdout()
		if len(adjustments) == 0 {
			fmt.Fprintln(out, "All task priorities match their urgency.")
			return nil
		}
		for _, a := range adjustments {
			fmt.Fprintf(out, "%s: %s -> %s (urgency %d)\n", a.Title, a.CurrentPriority, a.SuggestedPriority, a.UrgencyScore)
			fmt.Fprintf(out, "   %s\n", a.Reason)
		}
		return nil
	},
}
