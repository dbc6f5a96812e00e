// Command bridges loads a provincial bridge conditions export and answers
// queries over it, or plans inspector assignments.
//
// Usage:
//
//	bridges [assign] [-inspectors "43.10,-80.15;45.03,-81.34"] [-max 10] [-shapefile plan.shp]
//	bridges show -id 3
//	bridges radius -lat 43.1 -lon -80.15 -km 50
//
// Settings come from the environment (and an optional .env file); see
// internal/config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/bridge-inspection/internal/adapter/csvfile"
	"github.com/couchcryptid/bridge-inspection/internal/config"
	"github.com/couchcryptid/bridge-inspection/internal/observability"
	"github.com/couchcryptid/bridge-inspection/internal/pipeline"
	"github.com/couchcryptid/bridge-inspection/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitFailure)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	st := store.New(nil)
	extractor := csvfile.NewExtractor(cfg.DataFile, cfg.HeaderRows)
	p := pipeline.New(extractor, pipeline.NewTransformer(logger), st, logger, metrics)
	if _, err := p.Run(ctx); err != nil {
		stop()
		logger.Error("failed to load bridge data", "error", err, "file", cfg.DataFile)
		os.Exit(exitFailure)
	}
	stop()

	a := &app{
		cfg:     cfg,
		store:   st,
		logger:  logger,
		metrics: metrics,
		out:     newPrinter(os.Stdout, resolveFormat(cfg.OutputFormat, os.Stdout)),
		stderr:  os.Stderr,
	}
	code := a.dispatch(os.Args[1:])

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics textfile", "error", err, "path", cfg.MetricsTextfile)
		}
	}
	os.Exit(code)
}
