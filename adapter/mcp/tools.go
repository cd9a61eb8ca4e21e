package mcp

import (
	"errors"

	"github.com/felixgeelhaar/execassist/internal/app"
	"github.com/felixgeelhaar/mcp-go"
)

// ToolDependencies provides the wired application for MCP tools.
type ToolDependencies struct {
	Container *app.Container
	Version   string
}

// toolSet holds the tool handlers. Each handler is a method so it can be
// exercised without a transport.
type toolSet struct {
	c       *app.Container
	version string
}

func newToolSet(deps ToolDependencies) *toolSet {
	return &toolSet{c: deps.Container, version: deps.Version}
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.Container == nil {
		return errors.New("container is required")
	}

	tools := newToolSet(deps)
	registerCoreTools(srv, tools)
	registerTaskTools(srv, tools)
	registerMeetingTools(srv, tools)
	return nil
}
