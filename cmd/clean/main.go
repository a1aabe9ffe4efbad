// Command clean applies the cleaning rules to the raw GBIF extract and writes
// the cleaned table as comma-separated text to GBIF_CLEANED_PATH. When Kafka is
// enabled every cleaned row is also published to KAFKA_TOPIC.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	kafkaadapter "github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/kafka"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/pipeline"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewReportLogger(cfg)
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
	loaders := []pipeline.Loader{csvfile.Sink{Path: cfg.CleanedPath, Delimiter: ','}}

	if cfg.KafkaEnabled {
		writer := kafkaadapter.NewWriter(cfg, logger, metrics)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New("clean",
		csvfile.Source{Path: cfg.RawPath, Delimiter: cfg.Delimiter},
		pipeline.NewCleaner(logger, metrics),
		pipeline.NewFanOut(logger, loaders...),
		logger, metrics,
	)

	res, err := p.Run(ctx)
	if err != nil {
		logger.Error("failed to clean data", "path", cfg.RawPath, "error", err)
		return 1
	}

	fmt.Printf("Run %s started at %s, took %s\n", res.RunID, res.StartedAt.UTC().Format(time.RFC3339), res.Duration.Round(time.Millisecond))
	fmt.Printf("Final shape (rows, columns): (%d, %d)\n\n", res.Output.NumRows(), res.Output.NumCols())
	profile.WriteMissing(os.Stdout, profile.SortByPercent(profile.Missing(res.Output)))
	fmt.Printf("\nCleaned data saved to %s\n", cfg.CleanedPath)
	return 0
}
