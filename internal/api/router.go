// Package api exposes the snapshot API over HTTP for the external
// presentation layer, alongside /healthz and Prometheus /metrics.
//
// Routes configured:
//   - GET  /healthz                 - liveness check
//   - GET  /metrics                 - Prometheus metrics
//   - GET  /api/status              - connection state, last update, stream counts
//   - GET  /api/sensors?limit=N     - recent sensor samples, oldest first
//   - GET  /api/sensors/latest      - most recent sensor sample
//   - GET  /api/predictions?limit=N - recent predictions, oldest first
//   - GET  /api/predictions/latest  - most recent prediction
//   - GET  /api/timeline?limit=N    - merged sensor/prediction events
//   - GET  /api/export/sensors.csv  - full sensor history as CSV
//   - GET  /api/image.jpg           - latest camera frame re-encoded as JPEG
//   - POST /api/clear               - empty all history and caches
//
// Every handler reads from the snapshot API only; none touches the
// broker or blocks on network I/O.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motion-backend/internal/snapshot"
)

type server struct {
	snap *snapshot.API
}

// NewRouter configures the HTTP routes over the given snapshot API.
func NewRouter(snap *snapshot.API) *http.ServeMux {
	s := &server{snap: snap}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/sensors", s.handleSensors)
	mux.HandleFunc("/api/sensors/latest", s.handleLastSensor)
	mux.HandleFunc("/api/predictions", s.handlePredictions)
	mux.HandleFunc("/api/predictions/latest", s.handleLastPrediction)
	mux.HandleFunc("/api/timeline", s.handleTimeline)
	mux.HandleFunc("/api/export/sensors.csv", s.handleSensorCSV)
	mux.HandleFunc("/api/image.jpg", s.handleImage)
	mux.HandleFunc("/api/clear", s.handleClear)

	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.snap.Status())
}

func (s *server) handleSensors(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.snap.RecentSensors(limitParam(r)))
}

func (s *server) handleLastSensor(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	sample, ok := s.snap.LastSensor()
	if !ok {
		writeError(w, http.StatusNotFound, "no sensor data yet")
		return
	}
	writeJSON(w, sample)
}

func (s *server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.snap.RecentPredictions(limitParam(r)))
}

func (s *server) handleLastPrediction(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	sample, ok := s.snap.LastPrediction()
	if !ok {
		writeError(w, http.StatusNotFound, "no prediction yet")
		return
	}
	writeJSON(w, sample)
}

func (s *server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.snap.Timeline(limitParam(r)))
}

func (s *server) handleSensorCSV(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sensor_data.csv"`)
	if err := s.snap.WriteSensorCSV(w); err != nil {
		log.Printf("API: csv export failed: %v", err)
	}
}

func (s *server) handleImage(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	data, err := s.snap.ImageJPEG()
	if errors.Is(err, snapshot.ErrNoImage) {
		writeError(w, http.StatusNotFound, "no image frame yet")
		return
	}
	if err != nil {
		log.Printf("API: image encode failed: %v", err)
		writeError(w, http.StatusInternalServerError, "image encode failed")
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(data)
}

func (s *server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.snap.Clear()
	log.Println("API: history cleared")
	w.WriteHeader(http.StatusNoContent)
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// limitParam parses the optional ?limit=N query parameter.
// Missing or invalid values mean "no limit".
func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: response encode failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
