package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/telemetrix/model"
)

// Collector bundles Prometheus metrics for both monitoring pipelines and
// provides the /metrics HTTP handler.
type Collector struct {
	gatherer prometheus.Gatherer

	DetectionRuns     *prometheus.CounterVec
	DetectionDuration prometheus.Histogram
	SamplesProcessed  prometheus.Counter
	AnomaliesFlagged  prometheus.Gauge

	EvaluationRuns     *prometheus.CounterVec
	EvaluationDuration prometheus.Histogram
	MinDistanceKm      prometheus.Gauge
}

// NewCollector registers the monitor's Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	detectionRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "telemetry_detection_runs_total",
		Help: "Total anomaly detection runs, labeled by outcome (ok or error).",
	}, []string{"outcome"})
	detectionRuns, err := registerCounterVec(reg, detectionRuns, "telemetry_detection_runs_total")
	if err != nil {
		return nil, err
	}

	detectionDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "telemetry_detection_duration_seconds",
		Help:    "Wall time of one full-batch detection run.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}), "telemetry_detection_duration_seconds")
	if err != nil {
		return nil, err
	}

	samplesProcessed, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "telemetry_samples_processed_total",
		Help: "Total telemetry samples scored across all detection runs.",
	}), "telemetry_samples_processed_total")
	if err != nil {
		return nil, err
	}

	anomaliesFlagged, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "telemetry_anomalies_flagged",
		Help: "Samples labeled anomalous in the most recent detection run.",
	}), "telemetry_anomalies_flagged")
	if err != nil {
		return nil, err
	}

	evaluationRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "conjunction_evaluation_runs_total",
		Help: "Total conjunction evaluations, labeled by resulting risk tier or error.",
	}, []string{"tier"})
	evaluationRuns, err = registerCounterVec(reg, evaluationRuns, "conjunction_evaluation_runs_total")
	if err != nil {
		return nil, err
	}

	evaluationDuration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "conjunction_evaluation_duration_seconds",
		Help:    "Wall time of one orbit-pair proximity evaluation.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}), "conjunction_evaluation_duration_seconds")
	if err != nil {
		return nil, err
	}

	minDistance, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "conjunction_min_distance_km",
		Help: "Minimum approach distance from the most recent evaluation.",
	}), "conjunction_min_distance_km")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:           gatherer,
		DetectionRuns:      detectionRuns,
		DetectionDuration:  detectionDuration,
		SamplesProcessed:   samplesProcessed,
		AnomaliesFlagged:   anomaliesFlagged,
		EvaluationRuns:     evaluationRuns,
		EvaluationDuration: evaluationDuration,
		MinDistanceKm:      minDistance,
	}, nil
}

// ObserveDetection records one detection run.
func (c *Collector) ObserveDetection(samples, flagged int, dur time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.DetectionRuns.WithLabelValues(outcome).Inc()
	if err != nil {
		return
	}
	c.DetectionDuration.Observe(dur.Seconds())
	c.SamplesProcessed.Add(float64(samples))
	c.AnomaliesFlagged.Set(float64(flagged))
}

// ObserveEvaluation records one conjunction evaluation.
func (c *Collector) ObserveEvaluation(minDistanceKm float64, tier model.RiskTier, dur time.Duration, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.EvaluationRuns.WithLabelValues("error").Inc()
		return
	}
	c.EvaluationRuns.WithLabelValues(tier.String()).Inc()
	c.EvaluationDuration.Observe(dur.Seconds())
	c.MinDistanceKm.Set(minDistanceKm)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
