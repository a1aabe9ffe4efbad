package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "rule", "filter_year_range")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "filter_year_range", rec["rule"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "debug", "TEXT").Debug("hello", "rows", 3)
	assert.Contains(t, buf.String(), "msg=hello rows=3")
}

func TestNewLogger_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "bogus", "json")
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_LevelIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "ERROR", "text").Warn("hidden")
	assert.Empty(t, buf.String())
}

func TestLoggersHonourLevel(t *testing.T) {
	cfg := &config.Config{LogLevel: "warn", LogFormat: "json"}
	for name, logger := range map[string]*slog.Logger{
		"service": NewLogger(cfg),
		"report":  NewReportLogger(cfg),
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
			assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNewMetricsForTesting(t *testing.T) {
	m, reg := NewMetricsForTesting()
	m.RowsDropped.WithLabelValues("filter_uncertainty").Add(3)

	assert.InDelta(t, 3, testutil.ToFloat64(m.RowsDropped.WithLabelValues("filter_uncertainty")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "gbif_pipeline_rows_dropped_total")
}
