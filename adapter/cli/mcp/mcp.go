package mcp

import "github.com/spf13/cobra"

// Cmd is the MCP command group. Run without a subcommand it serves.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the execassist tools over MCP",
	RunE:  runServe,
}

func init() {
	Cmd.AddCommand(serveCmd)
}
