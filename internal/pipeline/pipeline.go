package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/observability"
)

// RowExtractor reads every raw row of the export.
type RowExtractor interface {
	ExtractRows(ctx context.Context) ([]domain.RawRow, error)
}

// Transformer converts a raw row into a bridge record with the given ID.
type Transformer interface {
	Transform(ctx context.Context, id int, raw domain.RawRow) (domain.BridgeRecord, error)
}

// BatchLoader stores a complete batch of records.
type BatchLoader interface {
	LoadBatch(ctx context.Context, records []domain.BridgeRecord) error
}

// Pipeline orchestrates a single extract-transform-load pass.
type Pipeline struct {
	extractor   RowExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(e RowExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run extracts all rows, normalizes them in order and loads the batch.
// The first failing row aborts the run and nothing is loaded.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	start := time.Now()

	rows, err := p.extractor.ExtractRows(ctx)
	if err != nil {
		p.logger.Error("extract rows failed", "error", err)
		return 0, fmt.Errorf("extract: %w", err)
	}
	p.metrics.RowsExtracted.Add(float64(len(rows)))

	records := make([]domain.BridgeRecord, 0, len(rows))
	for i, raw := range rows {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		rec, err := p.transformer.Transform(ctx, domain.IDForPosition(i), raw)
		if err != nil {
			p.logger.Error("transform failed, aborting load", "error", err, "line", raw.Line)
			p.metrics.NormalizeErrors.Inc()
			return 0, fmt.Errorf("transform: %w", err)
		}
		records = append(records, rec)
	}

	if err := p.loader.LoadBatch(ctx, records); err != nil {
		p.logger.Error("load batch failed", "error", err, "batch_size", len(records))
		return 0, fmt.Errorf("load: %w", err)
	}

	p.metrics.RecordsLoaded.Add(float64(len(records)))
	p.metrics.StoreSize.Set(float64(len(records)))
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("bridge data loaded", "records", len(records), "duration", time.Since(start))
	return len(records), nil
}
