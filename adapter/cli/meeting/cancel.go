package meeting

import (
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	meetingCommands "github.com/felixgeelhaar/execassist/internal/scheduling/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel [meeting-id]",
	Short: "Cancel a recorded meeting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		meetingID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid meeting ID: %w", err)
		}

		if _, err := app.CancelMeetingHandler.Handle(cmd.Context(), meetingCommands.CancelMeetingCommand{
			MeetingID: meetingID,
			UserID:    app.CurrentUserID,
		}); err != nil {
			return fmt.Errorf("failed to cancel meeting: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Meeting cancelled: %s\n", meetingID)
		return nil
	},
}
