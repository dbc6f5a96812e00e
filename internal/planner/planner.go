package planner

import (
	"log/slog"
	"time"

	"github.com/couchcryptid/bridge-inspection/internal/domain"
	"github.com/couchcryptid/bridge-inspection/internal/observability"
)

// Planner runs assignments against a bridge source and reports them.
type Planner struct {
	source     BridgeSource
	thresholds Thresholds
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Planner.
func New(src BridgeSource, th Thresholds, logger *slog.Logger, metrics *observability.Metrics) *Planner {
	return &Planner{
		source:     src,
		thresholds: th,
		logger:     logger,
		metrics:    metrics,
	}
}

// Report is an assignment stamped with the parameters that produced it.
type Report struct {
	GeneratedAt     time.Time  `json:"generated_at"`
	MaxPerInspector int        `json:"max_per_inspector"`
	Thresholds      Thresholds `json:"thresholds"`
	Assigned        int        `json:"assigned"`
	Result
}

// Plan assigns bridges to inspectors and returns the stamped report.
func (p *Planner) Plan(inspectors []domain.Location, maxPerInspector int) (Report, error) {
	start := time.Now()

	result, err := Assign(p.source, p.thresholds, inspectors, maxPerInspector)
	if err != nil {
		p.logger.Error("assignment failed", "error", err, "inspectors", len(inspectors))
		return Report{}, err
	}

	p.metrics.AssignDuration.Observe(time.Since(start).Seconds())
	p.metrics.InspectorsPlanned.Add(float64(len(inspectors)))
	for i, a := range result.Inspectors {
		for _, b := range a.Bridges {
			p.metrics.BridgesAssigned.WithLabelValues(b.Tier.String()).Inc()
		}
		saturated := len(a.Bridges) == maxPerInspector
		if saturated {
			p.metrics.InspectorsSaturated.Inc()
		}
		p.logger.Debug("inspector planned",
			"inspector", i,
			"lat", a.Inspector.Lat,
			"lon", a.Inspector.Lon,
			"bridges", len(a.Bridges),
			"saturated", saturated,
		)
	}

	report := Report{
		GeneratedAt:     clock.Now().UTC(),
		MaxPerInspector: maxPerInspector,
		Thresholds:      p.thresholds,
		Assigned:        result.Assigned(),
		Result:          result,
	}
	p.logger.Info("assignment complete", "inspectors", len(inspectors), "assigned", report.Assigned)
	return report, nil
}
