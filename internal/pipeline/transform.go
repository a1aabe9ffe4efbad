package pipeline

import (
	"context"
	"log/slog"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
)

// Cleaner implements Transformer by applying the domain cleaning rules in
// order, logging and counting the rows each rule removes.
type Cleaner struct {
	rules   []domain.Rule
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCleaner creates a Cleaner over domain.CleaningRules.
func NewCleaner(logger *slog.Logger, metrics *observability.Metrics) *Cleaner {
	return &Cleaner{
		rules:   domain.CleaningRules(),
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Cleaner) Transform(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	for _, rule := range c.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		before := t.NumRows()
		t = rule.Apply(t)
		dropped := before - t.NumRows()

		c.metrics.RowsDropped.WithLabelValues(rule.Name).Add(float64(dropped))
		c.logger.Info("rule applied",
			"run_id", RunID(ctx),
			"rule", rule.Name,
			"rows_before", before,
			"rows_after", t.NumRows(),
			"columns", t.NumCols(),
		)
	}
	return t, nil
}

// NewTranscoder returns the Transformer run before columnar storage: year and
// month are re-derived from eventDate, replacing any existing columns.
func NewTranscoder() Transformer {
	return TransformFunc(func(ctx context.Context, t *domain.Table) (*domain.Table, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return domain.DeriveYearMonth(t), nil
	})
}
