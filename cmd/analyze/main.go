// Command analyze prints taxonomic and geographic distributions of the cleaned
// GBIF data: kingdom shares, the most frequent phyla, orders, countries and
// provinces, and the coordinate extent.
package main

import (
	"log/slog"
	"os"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/analysis"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	os.Exit(run(cfg, observability.NewReportLogger(cfg)))
}

func run(cfg *config.Config, logger *slog.Logger) int {
	t, err := csvfile.Load(cfg.CleanedPath, ',')
	if err != nil {
		logger.Error("failed to load cleaned data", "path", cfg.CleanedPath, "error", err)
		return 1
	}

	if err := analysis.WriteText(os.Stdout, analysis.Analyze(t)); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}
	return 0
}
