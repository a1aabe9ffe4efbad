package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/config"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/observability"
)

// messageWriter is the subset of kafkago.Writer used for publishing.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes cleaned occurrences to a Kafka topic, one JSON message per
// row keyed by gbifID. It implements pipeline.Loader.
type Writer struct {
	writer    messageWriter
	topic     string
	batchSize int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return newWriter(w, cfg.KafkaTopic, cfg.BatchSize, logger, metrics)
}

func newWriter(w messageWriter, topic string, batchSize int, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Writer{writer: w, topic: topic, batchSize: batchSize, logger: logger, metrics: metrics}
}

// Name identifies the sink in logs.
func (w *Writer) Name() string { return "kafka:" + w.topic }

// Load serializes every row of t and publishes them in batches.
func (w *Writer) Load(ctx context.Context, t *domain.Table) error {
	batch := make([]kafkago.Message, 0, min(w.batchSize, t.NumRows()))
	for r := range t.NumRows() {
		msg, err := serializeRow(t, r)
		if err != nil {
			return err
		}
		batch = append(batch, msg)
		if len(batch) == w.batchSize {
			if err := w.flush(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	return w.flush(ctx, batch)
}

func (w *Writer) flush(ctx context.Context, batch []kafkago.Message) error {
	if len(batch) == 0 {
		return nil
	}
	if err := w.writer.WriteMessages(ctx, batch...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish %d records to %s: %w", len(batch), w.topic, err)
	}
	w.metrics.RecordsPublished.Add(float64(len(batch)))
	w.logger.Debug("published batch", "topic", w.topic, "records", len(batch))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRow marshals one row as a JSON object of column to text, with
// absent cells as null.
func serializeRow(t *domain.Table, r int) (kafkago.Message, error) {
	record := make(map[string]*string, t.NumCols())
	for _, name := range t.Columns() {
		if s, ok := t.Cell(r, name).Get(); ok {
			record[name] = &s
		} else {
			record[name] = nil
		}
	}
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize row %d: %w", r, err)
	}
	return kafkago.Message{
		Key:   []byte(t.Cell(r, domain.ColGBIFID).OrElse("")),
		Value: data,
	}, nil
}
