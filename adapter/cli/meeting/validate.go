package meeting

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	schedulingDomain "github.com/felixgeelhaar/execassist/internal/scheduling/domain"
	"github.com/spf13/cobra"
)

var errInvalidRequest = errors.New("meeting request is invalid")

var validateFlags requestFlags

var validateCmd = &cobra.Command{
	Use:   "validate [title]",
	Short: "Check a meeting request without searching for slots",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		title := ""
		if len(args) == 1 {
			title = args[0]
		}
		req, err := app.RequestDefaults.BuildSchedulingRequest(validateFlags.input(cmd, title))
		if err != nil {
			return err
		}

		errs := schedulingDomain.ValidateMeetingRequest(req)
		if cli.JSONOutput() {
			if errs == nil {
				errs = []string{}
			}
			return cli.PrintJSON(cmd, map[string]any{"valid": len(errs) == 0, "errors": errs})
		}

		out := cmd.OutOrStdout()
		if len(errs) == 0 {
			fmt.Fprintln(out, "Request is valid.")
			return nil
		}
		fmt.Fprintln(out, "Request is invalid:")
		for _, e := range errs {
			fmt.Fprintf(out, "  - %s\n", e)
		}
		return errInvalidRequest
	},
}

func init() {
	validateFlags.register(validateCmd)
}
