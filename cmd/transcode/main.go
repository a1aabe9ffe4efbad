// Command transcode converts the cleaned CSV into the columnar Parquet file the
// dashboard reads, re-deriving year and month from eventDate on the way.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/parquetfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, logger, metrics)
	stop()

	if cfg.MetricsTextfile != "" {
		if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics", "error", err)
		}
	}
	os.Exit(code)
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) int {
	codec, err := parquetfile.ParseCompression(cfg.ParquetCompression)
	if err != nil {
		logger.Error("invalid compression", "error", err)
		return 1
	}

	p := pipeline.New("transcode",
		csvfile.Source{Path: cfg.CleanedPath, Delimiter: ','},
		pipeline.NewTranscoder(),
		parquetfile.Sink{Path: cfg.ParquetPath, Compression: codec},
		logger, metrics,
	)

	res, err := p.Run(ctx)
	if err != nil {
		logger.Error("failed to transcode data", "path", cfg.CleanedPath, "error", err)
		return 1
	}

	fmt.Printf("Wrote %d rows and %d columns to %s (%s)\n",
		res.Output.NumRows(), res.Output.NumCols(), cfg.ParquetPath, cfg.ParquetCompression)
	return 0
}
