// Package api exposes the monitor's latest results over a read-only HTTP
// JSON surface consumed by the presentation layer.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/signalsfoundry/telemetrix/internal/logging"
	"github.com/signalsfoundry/telemetrix/internal/observability"
	"github.com/signalsfoundry/telemetrix/model"
	"github.com/signalsfoundry/telemetrix/monitor"
)

// SnapshotSource hands out the most recent monitoring snapshot.
type SnapshotSource interface {
	Latest() *monitor.Snapshot
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	log        logging.Logger
}

// NewServer creates a configured HTTP server over the snapshot source.
func NewServer(addr string, snaps SnapshotSource, mtr *observability.Collector, log logging.Logger) *Server {
	if log == nil {
		log = logging.Noop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if mtr != nil {
		mux.Handle("GET /metrics", mtr.Handler())
	}
	mux.HandleFunc("GET /api/v1/telemetry", handleTelemetry(snaps))
	mux.HandleFunc("GET /api/v1/anomalies", handleAnomalies(snaps))
	mux.HandleFunc("GET /api/v1/conjunction", handleConjunction(snaps))

	handler := loggingMiddleware(log)(mux)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: log,
	}
}

// HTTPServer returns the underlying *http.Server for external control
// (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func handleTelemetry(snaps SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snaps.Latest()
		if snap == nil {
			writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
			return
		}
		writeJSON(w, struct {
			GeneratedAt time.Time             `json:"generated_at"`
			Series      model.TelemetrySeries `json:"series"`
			Labels      []model.AnomalyLabel  `json:"labels"`
		}{snap.GeneratedAt, snap.Series, snap.Detection.Labels})
	}
}

// anomalyRow is one flagged sample, rendered the way the presentation layer
// shows "detected anomalies" rows.
type anomalyRow struct {
	Index  int                   `json:"index"`
	Sample model.TelemetrySample `json:"sample"`
	Score  float64               `json:"score"`
}

func handleAnomalies(snaps SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snaps.Latest()
		if snap == nil {
			writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
			return
		}
		rows := make([]anomalyRow, 0, len(snap.Detection.AnomalousIndices))
		for _, i := range snap.Detection.AnomalousIndices {
			rows = append(rows, anomalyRow{
				Index:  i,
				Sample: snap.Series[i],
				Score:  snap.Detection.Scores[i],
			})
		}
		writeJSON(w, struct {
			GeneratedAt time.Time    `json:"generated_at"`
			Anomalies   []anomalyRow `json:"anomalies"`
		}{snap.GeneratedAt, rows})
	}
}

func handleConjunction(snaps SnapshotSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snaps.Latest()
		if snap == nil {
			writeError(w, http.StatusServiceUnavailable, "no snapshot yet")
			return
		}
		writeJSON(w, snap.Proximity)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			level := log.Info
			if r.URL.Path == "/healthz" {
				level = log.Debug
			}
			level(r.Context(), "request",
				logging.String("method", r.Method),
				logging.String("path", r.URL.Path),
				logging.String("status", strconv.Itoa(sr.statusCode)),
				logging.Int("duration_ms", int(time.Since(start).Milliseconds())),
				logging.String("remote_ip", r.RemoteAddr),
			)
		})
	}
}
