package meeting

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	meetingQueries "github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var suggestFlags requestFlags

var suggestCmd = &cobra.Command{
	Use:   "suggest [title]",
	Short: "Suggest times for a new meeting",
	Long: `Search the coming days for free slots that fit working hours and avoid
recorded meetings, ranked by score.

Examples:
  execassist meeting suggest "Strategy review" -d 60 -a cfo@example.com
  execassist meeting suggest "1:1" -d 30 --prefer "2024-06-11 09:00/2024-06-11 12:00"
  execassist meeting suggest "Budget" --earliest 2024-06-10 --latest 2024-06-14 --buffer 15`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		req, err := app.RequestDefaults.BuildSchedulingRequest(suggestFlags.input(cmd, args[0]))
		if err != nil {
			return err
		}

		result, err := app.SuggestMeetingTimesHandler.Handle(cmd.Context(), meetingQueries.SuggestMeetingTimesQuery{
			UserID:  app.CurrentUserID,
			Request: req,
		})
		if err != nil {
			return fmt.Errorf("failed to suggest meeting times: %w", err)
		}

		dto := meetingQueries.NewSchedulingResultDTO(result, req.Loc())
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, dto)
		}

		out := cmd.OutOrStdout()
		if len(dto.ValidationErrors) > 0 {
			fmt.Fprintln(out, "Request is invalid:")
			for _, e := range dto.ValidationErrors {
				fmt.Fprintf(out, "  - %s\n", e)
			}
			return errInvalidRequest
		}
		if len(dto.Suggestions) == 0 {
			fmt.Fprintln(out, "No free slots found in the search window.")
			return nil
		}

		fmt.Fprintf(out, "Suggested times for %q (%d min):\n", req.Title, req.DurationMinutes)
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for i, s := range dto.Suggestions {
			marker := ""
			if s.Optimal {
				marker = " *"
			}
			fmt.Fprintf(out, "%2d. %s %s-%s  score %3d%s\n", i+1,
				s.Start.Format("Mon 2006-01-02"), s.Start.Format("15:04"), s.End.Format("15:04"), s.Score, marker)
			if cli.Verbose() && len(s.Reasons) > 0 {
				fmt.Fprintf(out, "      %s\n", strings.Join(s.Reasons, "; "))
			}
		}
		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintf(out, "%d optimal, %d other, %d conflicting meetings\n",
			dto.Summary.OptimalSlots, dto.Summary.SuboptimalSlots, len(dto.Conflicts))
		return nil
	},
}

func init() {
	suggestFlags.register(suggestCmd)
}
