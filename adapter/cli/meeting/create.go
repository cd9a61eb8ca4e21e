package meeting

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	meetingCommands "github.com/felixgeelhaar/execassist/internal/scheduling/application/commands"
	meetingQueries "github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	createStart  string
	createEnd    string
	createStatus string
)

var createCmd = &cobra.Command{
	Use:     "add [title]",
	Aliases: []string{"record"},
	Short:   "Record a meeting on the calendar",
	Long: `Record a meeting so it blocks time for future suggestions.

Times are RFC3339 or "YYYY-MM-DD HH:MM" in the configured timezone.

Examples:
  execassist meeting add "Board sync" --start "2024-06-11 10:00" --end "2024-06-11 11:00"
  execassist meeting add "Offsite" --start 2024-06-12T09:00:00+02:00 --end 2024-06-12T17:00:00+02:00`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		start, err := app.RequestDefaults.ParseTime(createStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		end, err := app.RequestDefaults.ParseTime(createEnd)
		if err != nil {
			return fmt.Errorf("invalid --end: %w", err)
		}

		result, err := app.RecordMeetingHandler.Handle(cmd.Context(), meetingCommands.RecordMeetingCommand{
			UserID: app.CurrentUserID,
			Title:  args[0],
			Start:  start,
			End:    end,
			Status: createStatus,
		})
		if err != nil {
			return fmt.Errorf("failed to record meeting: %w", err)
		}

		dto := meetingQueries.NewMeetingDTO(result.Meeting)
		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, dto)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Meeting recorded: %s\n", dto.ID)
		printMeeting(cmd, dto)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createStart, "start", "", "start time")
	createCmd.Flags().StringVar(&createEnd, "end", "", "end time")
	createCmd.Flags().StringVar(&createStatus, "status", "", "initial status (scheduled, in-progress, completed, cancelled)")
	_ = createCmd.MarkFlagRequired("start")
	_ = createCmd.MarkFlagRequired("end")
}
