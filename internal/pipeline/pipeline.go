package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
)

// Extractor loads the input table of a stage.
type Extractor interface {
	Extract(ctx context.Context) (*domain.Table, error)
}

// Transformer converts the input table into the output table.
type Transformer interface {
	Transform(ctx context.Context, t *domain.Table) (*domain.Table, error)
}

// Loader writes the output table to a destination.
type Loader interface {
	Load(ctx context.Context, t *domain.Table) error
}

// TransformFunc adapts a function to the Transformer interface.
type TransformFunc func(ctx context.Context, t *domain.Table) (*domain.Table, error)

// Transform calls f.
func (f TransformFunc) Transform(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	return f(ctx, t)
}

// Result summarizes one completed run.
type Result struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	RowsIn    int
	RowsOut   int
	Output    *domain.Table
}

// Pipeline runs one extract-transform-load pass over a whole table.
type Pipeline struct {
	stage       string
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline for the named stage. The stage name labels logs and
// metrics.
func New(stage string, e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		stage:       stage,
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

type runIDKey struct{}

// RunID returns the run id carried by ctx, or "" outside a run.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Run executes the stage once. Any error aborts the run; nothing is retried.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString(), StartedAt: domain.Now()}
	ctx = context.WithValue(ctx, runIDKey{}, res.RunID)
	logger := p.logger.With("stage", p.stage, "run_id", res.RunID)

	logger.Info("pipeline started", "started_at", res.StartedAt)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.run(ctx, logger, &res)
	res.Duration = domain.Now().Sub(res.StartedAt)
	if err != nil {
		p.metrics.StageErrors.WithLabelValues(p.stage).Inc()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.Info("pipeline stopping", "reason", err)
		}
		return res, err
	}

	p.metrics.StageDuration.WithLabelValues(p.stage).Observe(res.Duration.Seconds())
	logger.Info("pipeline finished",
		"rows_in", res.RowsIn,
		"rows_out", res.RowsOut,
		"columns", res.Output.NumCols(),
		"duration", res.Duration,
	)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, res *Result) error {
	in, err := p.extractor.Extract(ctx)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	res.RowsIn = in.NumRows()
	p.metrics.RowsRead.WithLabelValues(p.stage).Add(float64(in.NumRows()))
	logger.Info("table loaded", "rows", in.NumRows(), "columns", in.NumCols())

	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := p.transformer.Transform(ctx, in)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.loader.Load(ctx, out); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	res.RowsOut = out.NumRows()
	res.Output = out
	p.metrics.RowsWritten.WithLabelValues(p.stage).Add(float64(out.NumRows()))
	return nil
}

type namer interface {
	Name() string
}

// FanOut loads the same table into every loader in order and stops at the
// first failure.
type FanOut struct {
	loaders []Loader
	logger  *slog.Logger
}

// NewFanOut returns a loader writing to all of ls.
func NewFanOut(logger *slog.Logger, ls ...Loader) *FanOut {
	return &FanOut{loaders: ls, logger: logger}
}

// Load writes t to each loader.
func (f *FanOut) Load(ctx context.Context, t *domain.Table) error {
	for i, l := range f.loaders {
		name := fmt.Sprintf("loader %d", i)
		if n, ok := l.(namer); ok {
			name = n.Name()
		}
		if err := l.Load(ctx, t); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		f.logger.Info("table written", "run_id", RunID(ctx), "sink", name, "rows", t.NumRows())
	}
	return nil
}
