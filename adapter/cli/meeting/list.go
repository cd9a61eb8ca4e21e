package meeting

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	meetingQueries "github.com/felixgeelhaar/execassist/internal/scheduling/application/queries"
	"github.com/spf13/cobra"
)

var (
	listFrom             string
	listDays             int
	listIncludeCancelled bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recorded meetings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		start := app.Clock()
		if listFrom != "" {
			if start, err = app.RequestDefaults.ParseTime(listFrom); err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
		}
		days := listDays
		if days <= 0 {
			days = 7
		}

		meetings, err := app.ListMeetingsHandler.Handle(cmd.Context(), meetingQueries.ListMeetingsQuery{
			UserID:           app.CurrentUserID,
			Start:            start,
			End:              start.Add(time.Duration(days) * 24 * time.Hour),
			IncludeCancelled: listIncludeCancelled,
		})
		if err != nil {
			return fmt.Errorf("failed to list meetings: %w", err)
		}

		if cli.JSONOutput() {
			return cli.PrintJSON(cmd, meetings)
		}

		out := cmd.OutOrStdout()
		if len(meetings) == 0 {
			fmt.Fprintln(out, "No meetings found.")
			return nil
		}
		fmt.Fprintf(out, "Meetings (%d):\n", len(meetings))
		for _, m := range meetings {
			printMeeting(cmd, m)
		}
		return nil
	},
}

func printMeeting(cmd *cobra.Command, m meetingQueries.MeetingDTO) {
	app := cli.GetApp()
	loc := time.UTC
	if app != nil && app.RequestDefaults.Location != nil {
		loc = app.RequestDefaults.Location
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s-%s  %s [%s]\n",
		m.Start.In(loc).Format("Mon 2006-01-02"),
		m.Start.In(loc).Format("15:04"),
		m.End.In(loc).Format("15:04"),
		m.Title,
		m.Status,
	)
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "start of the listing window (default now)")
	listCmd.Flags().IntVar(&listDays, "days", 7, "number of days to list")
	listCmd.Flags().BoolVar(&listIncludeCancelled, "include-cancelled", false, "include cancelled and completed meetings")
}
