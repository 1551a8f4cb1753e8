// Package main is the entry point for the version-sync application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thirukguru/version-sync/model"
	"github.com/thirukguru/version-sync/service/config"
	"github.com/thirukguru/version-sync/service/flag"
	"github.com/thirukguru/version-sync/service/orchestrator"
	"github.com/thirukguru/version-sync/service/output"
	"github.com/thirukguru/version-sync/shared/banner"
	"github.com/thirukguru/version-sync/shared/console"
	"github.com/thirukguru/version-sync/shared/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "db", "history", "dashboard":
			return runStorageCommand(os.Args[1], os.Args[2:])
		}
	}

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	versionInfo := model.VersionInfo{Version: version, Commit: commit, Date: date}

	if flags.Version {
		outputService := output.NewService(flags.Output)
		orchestratorService := orchestrator.NewService(nil, outputService, nil, versionInfo)
		return orchestratorService.Orchestrate(context.Background(), flags)
	}

	configService := config.NewService()
	flags, err = configService.Resolve(flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Configure(logging.Config{
		Level:   flags.LogLevel,
		Console: console.IsTerminal(os.Stderr),
		Version: version,
	})

	if flags.Output == string(output.FormatTable) {
		banner.DrawBannerTitle()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return runSync(ctx, flags, versionInfo)
}
