package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterResources registers MCP resources that expose execassist data.
func RegisterResources(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}
	if deps.Container == nil {
		return fmt.Errorf("container is required")
	}
	t := newToolSet(deps)

	srv.Resource("execassist://tasks/active").
		Name("Active tasks").
		Description("Pending and in-progress tasks sorted by priority").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			return t.taskList(ctx, taskListInput{})
		}))

	srv.Resource("execassist://tasks/overdue").
		Name("Overdue tasks").
		Description("Active tasks past their due date, most urgent first").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			return t.taskList(ctx, taskListInput{Overdue: true, SortBy: "urgency"})
		}))

	srv.Resource("execassist://tasks/priorities").
		Name("Task priorities").
		Description("Current ranking of active tasks with recommendations").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			return t.taskPrioritize(ctx, taskPrioritizeInput{})
		}))

	srv.Resource("execassist://meetings/week").
		Name("This week's meetings").
		Description("Recorded meetings over the next seven days").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			return t.meetingList(ctx, meetingListInput{Days: 7})
		}))

	srv.Resource("execassist://system/health").
		Name("Health").
		Description("Component health and operation counters").
		MimeType("application/json").
		Handler(jsonResource(func(ctx context.Context) (any, error) {
			return t.c.HealthReport(ctx), nil
		}))

	return nil
}

func jsonResource(load func(ctx context.Context) (any, error)) func(context.Context, string, map[string]string) (*mcp.ResourceContent, error) {
	return func(ctx context.Context, uri string, _ map[string]string) (*mcp.ResourceContent, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return &mcp.ResourceContent{
			URI:      uri,
			MimeType: "application/json",
			Text:     string(data),
		}, nil
	}
}
