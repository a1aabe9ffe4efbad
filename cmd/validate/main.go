// Command validate profiles the raw GBIF extract without changing it: missing
// values per column, completely empty columns, and range and format checks on
// coordinates, years, counts, and country codes.
//
// Usage:
//
//	GBIF_RAW_PATH=dataset_2.csv GBIF_DELIMITER=tab go run ./cmd/validate
//
// The report is printed to stdout. When PROFILE_REPORT_PATH is set the same
// report is also written there as YAML.
package main

import (
	"log/slog"
	"os"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/profile"
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
	t, err := csvfile.Load(cfg.RawPath, cfg.Delimiter)
	if err != nil {
		logger.Error("failed to load raw data", "path", cfg.RawPath, "error", err)
		return 1
	}
	logger.Info("loaded raw data", "path", cfg.RawPath, "rows", t.NumRows(), "columns", t.NumCols())

	report := profile.Validate(t, profile.Options{TextColumns: cfg.ProfileTextColumns})
	if err := profile.WriteText(os.Stdout, report); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}

	if cfg.ProfileReportPath != "" {
		if err := profile.SaveYAML(cfg.ProfileReportPath, report); err != nil {
			logger.Error("failed to save report", "path", cfg.ProfileReportPath, "error", err)
			return 1
		}
		logger.Info("saved report", "path", cfg.ProfileReportPath)
	}
	return 0
}
