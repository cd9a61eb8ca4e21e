package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/execassist/adapter/cli"
	"github.com/felixgeelhaar/execassist/adapter/cli/mcp"
	"github.com/felixgeelhaar/execassist/adapter/cli/meeting"
	"github.com/felixgeelhaar/execassist/adapter/cli/task"
	"github.com/felixgeelhaar/execassist/internal/app"
	"github.com/felixgeelhaar/execassist/pkg/config"
	"github.com/felixgeelhaar/execassist/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		observability.LoggerFromEnv().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logCfg := observability.LogConfigFor(cfg.AppEnv, cfg.LogLevel)
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
		// version and help still work without a store in development
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		defer container.Close()
		cli.SetApp(cli.NewApp(container))
	}

	cli.AddCommand(task.Cmd)
	cli.AddCommand(meeting.Cmd)
	cli.AddCommand(mcp.Cmd)

	cli.Execute(ctx)
}
