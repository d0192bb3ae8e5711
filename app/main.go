package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"agendaveiro/internal/config"
	"agendaveiro/internal/graceful"
	"agendaveiro/internal/orchestrator"
	"agendaveiro/internal/repositories"
	"agendaveiro/internal/scraper"
	"agendaveiro/internal/scraper/sites"
	"agendaveiro/internal/transport/httpServer"
	"agendaveiro/internal/transport/httpServer/handlers"
	"agendaveiro/internal/transport/httpServer/routers"
	"agendaveiro/internal/utils/logger/handlers/slogpretty"
	"agendaveiro/internal/utils/logger/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

var Version = "0.1"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info(
		"starting aveiro events aggregator",
		slog.String("env", cfg.Env),
		slog.String("version", Version),
	)

	repositoryService, err := repositories.New(log, cfg)
	if err != nil {
		log.Error("critical: cannot open event store", sl.Err(err))
		return 1
	}

	fetcherService, err := scraper.New(log, cfg)
	if err != nil {
		log.Error("critical: cannot start browser session", sl.Err(err))
		repositoryService.Shutdown(context.Background())
		return 1
	}

	orchestratorService := orchestrator.New(log, cfg, fetcherService, repositoryService, sites.Registry())

	ctx := context.Background()
	summary, runErr := orchestratorService.Run(ctx)

	for _, result := range summary.Results {
		if result.Err != nil {
			log.Warn("adapter result",
				slog.String("adapter", result.Name),
				sl.Err(result.Err),
			)
			continue
		}
		log.Info("adapter result",
			slog.String("adapter", result.Name),
			slog.Int("events", result.Events),
		)
	}

	// The browser is only needed during the run.
	if err := fetcherService.Shutdown(ctx); err != nil {
		log.Warn("fetcher shutdown failed", sl.Err(err))
	}

	if !cfg.HttpServer.Enabled {
		if err := repositoryService.Shutdown(ctx); err != nil {
			log.Warn("repository shutdown failed", sl.Err(err))
		}
		if runErr != nil {
			return 1
		}
		return 0
	}

	// Serve the aggregated data for the frontend until interrupted.
	eventHandler := handlers.NewEventHandler(log, repositoryService)
	router := routers.NewRouter(log, eventHandler)
	httpSrv := httpServer.NewHttpServer(log, router, cfg)

	maxSecond := 15 * time.Second
	waitShutdown := graceful.GracefulShutdown(
		ctx,
		maxSecond,
		map[string]graceful.Operation{
			"HTTP server": func(ctx context.Context) error {
				return httpSrv.Shutdown(ctx)
			},
			"Repository service": func(ctx context.Context) error {
				return repositoryService.Shutdown(ctx)
			},
		},
		log,
	)

	go httpSrv.Listen()

	<-waitShutdown

	if runErr != nil {
		return 1
	}
	return 0
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog(slog.LevelDebug)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = setupPrettySlog(slog.LevelInfo)
	default: // If env config is invalid, set prod settings by default
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog(level slog.Level) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
