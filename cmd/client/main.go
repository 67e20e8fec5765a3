package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/YuvrajShekhar/docmanager-client/internal/client"
	"github.com/YuvrajShekhar/docmanager-client/internal/config"
	"github.com/YuvrajShekhar/docmanager-client/internal/logger"
	"github.com/YuvrajShekhar/docmanager-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("docmanager-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("docmanager-client", cfg.App.LogFile)
	log.Debug().Str("server", cfg.Adapter.HTTPAddress).Str("output_dir", cfg.App.OutputDir).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	runErr := app.Run(ctx)
	if err = app.Close(); err != nil {
		log.Error().Err(err).Msg("close local storage")
	}
	if runErr != nil {
		stop()
		log.Fatal().Err(runErr).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
