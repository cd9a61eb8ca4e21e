package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/execassist/pkg/observability"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("one or more components are unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check store, cache, broker and calendar health",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := RequireApp()
		if err != nil {
			return err
		}

		report := app.HealthReport(cmd.Context())
		if JSONOutput() {
			if err := PrintJSON(cmd, report); err != nil {
				return err
			}
		} else {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "status: %s (driver %s)\n", report.Status, report.Driver)
			names := make([]string, 0, len(report.Checks))
			for name := range report.Checks {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				check := report.Checks[name]
				if check.Message != "" {
					fmt.Fprintf(out, "  %-20s %s - %s\n", name, check.Status, check.Message)
				} else {
					fmt.Fprintf(out, "  %-20s %s\n", name, check.Status)
				}
			}
		}

		if report.Status == observability.HealthStatusUnhealthy {
			return errUnhealthy
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
