// Command dashboard serves the interactive occurrence dashboard over HTTP.
// The dataset is loaded once at startup from the Parquet file (or the cleaned
// CSV when DASHBOARD_SOURCE=csv). A missing file does not stop the server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/csvfile"
	httpadapter "github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/http"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/adapter/parquetfile"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/dashboard"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ds := loadDataset(cfg, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, ds, cfg.MapPointLimit, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("http server error", "error", err)
		os.Exit(1)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func loadDataset(cfg *config.Config, logger *slog.Logger) *dashboard.Dataset {
	var (
		t    *domain.Table
		err  error
		path string
	)
	switch cfg.DashboardSource {
	case config.SourceCSV:
		path = cfg.CleanedPath
		t, err = csvfile.Load(path, ',')
	default:
		path = cfg.ParquetPath
		t, err = parquetfile.Read(path)
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("dataset not found", "path", path, "source", cfg.DashboardSource)
		return dashboard.Unavailable(dashboard.MissingDatasetMessage)
	case err != nil:
		logger.Error("failed to load dataset", "path", path, "error", err)
		return dashboard.Unavailable(fmt.Sprintf("failed to load dataset: %v", err))
	}

	logger.Info("dataset loaded", "path", path, "rows", t.NumRows(), "columns", t.NumCols())
	return dashboard.Loaded(t)
}
