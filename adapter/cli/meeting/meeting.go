package meeting

import "github.com/spf13/cobra"

// Cmd is the meeting command group.
var Cmd = &cobra.Command{
	Use:   "meeting",
	Short: "Record meetings and find times for new ones",
	Long: `Record meetings that block your calendar, then ask for ranked time
slots for a new meeting that avoid them.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(suggestCmd)
	Cmd.AddCommand(validateCmd)
}
