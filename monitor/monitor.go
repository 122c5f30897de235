// Package monitor drives both analysis pipelines on a fixed interval and
// publishes the latest snapshot to registered listeners.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/telemetrix/anomaly"
	"github.com/signalsfoundry/telemetrix/core"
	"github.com/signalsfoundry/telemetrix/internal/logging"
	"github.com/signalsfoundry/telemetrix/internal/observability"
	"github.com/signalsfoundry/telemetrix/model"
)

// Source supplies a telemetry series for each run. The monitor does not
// care whether readings come from a generator, a sensor feed, or a file.
type Source interface {
	Series(ctx context.Context) (model.TelemetrySeries, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) (model.TelemetrySeries, error)

func (f SourceFunc) Series(ctx context.Context) (model.TelemetrySeries, error) { return f(ctx) }

// Config holds everything one monitoring cycle needs.
type Config struct {
	// Interval between runs when driven by Run.
	Interval time.Duration

	// Contamination and Seed parameterize the anomaly detector.
	Contamination float64
	Seed          int64
	Detector      anomaly.Options

	// OrbitA and OrbitB are the screened pair; SampleCount positions are
	// taken across one period of OrbitA.
	OrbitA      model.OrbitDescriptor
	OrbitB      model.OrbitDescriptor
	SampleCount int
}

// Snapshot is the latest combined output of both pipelines.
type Snapshot struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Series      model.TelemetrySeries `json:"series"`
	Detection   *anomaly.Result       `json:"detection"`
	Proximity   *core.ProximityResult `json:"proximity"`
}

// Runner re-runs detection and conjunction evaluation and keeps the most
// recent snapshot. Safe for concurrent use.
type Runner struct {
	cfg    Config
	source Source
	eval   *core.Evaluator
	log    logging.Logger
	mtr    *observability.Collector

	mu        sync.RWMutex
	snapshot  *Snapshot
	listeners []func(*Snapshot)
}

// NewRunner wires a runner from its collaborators. The logger and collector
// may be nil.
func NewRunner(cfg Config, source Source, eval *core.Evaluator, log logging.Logger, mtr *observability.Collector) (*Runner, error) {
	if source == nil {
		return nil, fmt.Errorf("monitor: nil telemetry source")
	}
	if eval == nil {
		return nil, fmt.Errorf("monitor: nil evaluator")
	}
	if log == nil {
		log = logging.Noop()
	}
	if cfg.Detector.Seed == 0 {
		cfg.Detector.Seed = cfg.Seed
	}
	return &Runner{cfg: cfg, source: source, eval: eval, log: log, mtr: mtr}, nil
}

// AddListener registers a callback invoked after every successful run with
// the fresh snapshot. Listeners must not block.
func (r *Runner) AddListener(fn func(*Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Latest returns the most recent snapshot, or nil before the first run.
func (r *Runner) Latest() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// RunOnce executes both pipelines once and publishes the snapshot.
func (r *Runner) RunOnce(ctx context.Context) (*Snapshot, error) {
	tracer := otel.Tracer("telemetrix/monitor")
	ctx, span := tracer.Start(ctx, "monitor.run")
	defer span.End()

	series, err := r.source.Series(ctx)
	if err != nil {
		return nil, fmt.Errorf("telemetry source: %w", err)
	}

	detStart := time.Now()
	detection, err := anomaly.DetectWithOptions(series, r.cfg.Contamination, r.cfg.Detector)
	r.mtr.ObserveDetection(len(series), len(detectionIndices(detection)), time.Since(detStart), err)
	if err != nil {
		return nil, fmt.Errorf("anomaly detection: %w", err)
	}
	span.SetAttributes(
		attribute.Int("telemetry.samples", len(series)),
		attribute.Int("telemetry.anomalies", len(detection.AnomalousIndices)),
	)

	evalStart := time.Now()
	proximity, err := r.eval.Evaluate(r.cfg.OrbitA, r.cfg.OrbitB, r.cfg.SampleCount)
	if err != nil {
		r.mtr.ObserveEvaluation(0, model.RiskSafe, time.Since(evalStart), err)
		return nil, fmt.Errorf("conjunction evaluation: %w", err)
	}
	r.mtr.ObserveEvaluation(proximity.MinDistanceKm, proximity.Tier, time.Since(evalStart), nil)
	span.SetAttributes(
		attribute.Float64("conjunction.min_distance_km", proximity.MinDistanceKm),
		attribute.String("conjunction.risk_tier", proximity.Tier.String()),
	)

	snap := &Snapshot{
		GeneratedAt: time.Now().UTC(),
		Series:      series,
		Detection:   detection,
		Proximity:   proximity,
	}

	r.mu.Lock()
	r.snapshot = snap
	listeners := make([]func(*Snapshot), len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}

	r.log.Info(ctx, "monitor run complete",
		logging.Int("samples", len(series)),
		logging.Int("anomalies", len(detection.AnomalousIndices)),
		logging.Float64("min_distance_km", proximity.MinDistanceKm),
		logging.String("risk_tier", proximity.Tier.String()),
	)
	return snap, nil
}

// Run executes RunOnce on the configured interval until ctx is cancelled.
// A failed run is logged and the loop keeps going; the previous snapshot
// stays published.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.cfg.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	if _, err := r.RunOnce(ctx); err != nil {
		r.log.Error(ctx, "initial monitor run failed", logging.Err(err))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.log.Error(ctx, "monitor run failed", logging.Err(err))
			}
		}
	}
}

func detectionIndices(res *anomaly.Result) []int {
	if res == nil {
		return nil
	}
	return res.AnomalousIndices
}
