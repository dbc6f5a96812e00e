package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
)

// BridgeTransformer implements Transformer using the domain normalization rules.
type BridgeTransformer struct {
	logger *slog.Logger
}

// NewTransformer creates a BridgeTransformer.
func NewTransformer(logger *slog.Logger) *BridgeTransformer {
	return &BridgeTransformer{logger: logger}
}

func (t *BridgeTransformer) Transform(_ context.Context, id int, raw domain.RawRow) (domain.BridgeRecord, error) {
	rec, err := domain.NormalizeRow(id, raw)
	if err != nil {
		return domain.BridgeRecord{}, err
	}

	if rec.Location == nil {
		t.logger.Warn("bridge has no usable coordinates",
			"id", rec.ID,
			"line", raw.Line,
			"name", rec.Name,
		)
	}
	if len(rec.BCIHistory) == 0 {
		t.logger.Debug("bridge has no inspection history", "id", rec.ID, "line", raw.Line)
	}
	return rec, nil
}
