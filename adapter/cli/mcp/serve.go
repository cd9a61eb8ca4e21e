package mcp

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	mcpinternal "github.com/felixgeelhaar/execassist/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an HTTP MCP server on MCP_ADDR exposing task and meeting tools.
Set MCP_AUTH_TOKEN to require a bearer token.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := cli.RequireApp()
	if err != nil {
		return err
	}

	err = mcpinternal.Serve(cmd.Context(), app.Container, cli.Version)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
