package mcp

import (
	"context"

	"github.com/felixgeelhaar/execassist/internal/app"
	"github.com/felixgeelhaar/mcp-go"
)

type versionOutput struct {
	Version  string `json:"version"`
	Driver   string `json:"driver"`
	Provider string `json:"calendar_provider"`
	Timezone string `json:"timezone"`
	Hours    string `json:"working_hours"`
}

func registerCoreTools(srv *mcp.Server, t *toolSet) {
	srv.Tool("cli.health").
		Description("Report store, cache, broker and calendar health with operation counters").
		Handler(t.health)

	srv.Tool("cli.version").
		Description("Get version and scheduling defaults").
		Handler(t.versionInfo)
}

func (t *toolSet) health(ctx context.Context, _ struct{}) (app.HealthReport, error) {
	return t.c.HealthReport(ctx), nil
}

func (t *toolSet) versionInfo(_ context.Context, _ struct{}) (versionOutput, error) {
	return versionOutput{
		Version:  t.version,
		Driver:   t.c.DBDriver.String(),
		Provider: t.c.Config.CalendarProvider,
		Timezone: t.c.RequestDefaults.Location.String(),
		Hours:    t.c.RequestDefaults.WorkingHours.String(),
	}, nil
}
