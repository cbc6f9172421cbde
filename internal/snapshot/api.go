// Package snapshot is the read-only surface the presentation layer
// consumes. Every query is a point-in-time copy taken from the store;
// nothing here touches the broker or blocks on network I/O. The only
// mutation exposed is the clear-history command.
package snapshot

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"image/jpeg"
	"io"
	"sort"
	"time"

	"motion-backend/internal/metrics"
	"motion-backend/internal/models"
	"motion-backend/internal/store"
)

// DefaultTimelineLimit bounds the merged event view when the caller
// does not supply a limit.
const DefaultTimelineLimit = 200

// csvTimeLayout is the export format for sensor history timestamps.
const csvTimeLayout = "2006-01-02 15:04:05"

// ErrNoImage is returned when no camera frame has been retained.
var ErrNoImage = errors.New("no image frame retained")

// Status is the connectivity and freshness summary shown by the
// dashboard's top cards.
type Status struct {
	State           string     `json:"state"`
	Broker          string     `json:"broker"`
	LastUpdate      *time.Time `json:"last_update,omitempty"`
	SensorCount     int        `json:"sensor_count"`
	PredictionCount int        `json:"prediction_count"`
}

// API provides snapshots over the store plus the session state query.
type API struct {
	store         *store.Store
	state         func() models.ConnectionState
	broker        string
	timelineLimit int
	metrics       *metrics.Metrics
}

// New creates the snapshot API. state reports the broker session state
// and broker is the configured address, both echoed in Status.
// timelineLimit bounds Timeline when callers pass no limit of their
// own; <= 0 applies DefaultTimelineLimit.
func New(st *store.Store, state func() models.ConnectionState, broker string, timelineLimit int, m *metrics.Metrics) *API {
	if timelineLimit <= 0 {
		timelineLimit = DefaultTimelineLimit
	}
	return &API{store: st, state: state, broker: broker, timelineLimit: timelineLimit, metrics: m}
}

// Status reports connection state, broker address, time of the most
// recent stored sample and the current stream lengths.
func (a *API) Status() Status {
	s := Status{
		State:  a.state().String(),
		Broker: a.broker,
	}
	if last, ok := a.store.LastUpdate(); ok {
		s.LastUpdate = &last
	}
	s.SensorCount, s.PredictionCount = a.store.Counts()
	return s
}

// LastSensor returns the most recent sensor sample.
func (a *API) LastSensor() (models.SensorSample, bool) {
	return a.store.LastSensor()
}

// LastPrediction returns the most recent prediction.
func (a *API) LastPrediction() (models.PredictionSample, bool) {
	return a.store.LastPrediction()
}

// LastImage returns the retained camera frame, if any.
func (a *API) LastImage() (models.ImageFrame, bool) {
	return a.store.LastImage()
}

// RecentSensors returns up to limit of the most recent sensor samples,
// oldest first. limit <= 0 means the full history.
func (a *API) RecentSensors(limit int) []models.SensorSample {
	return a.store.Sensors(limit)
}

// RecentPredictions returns up to limit of the most recent predictions,
// oldest first. limit <= 0 means the full history.
func (a *API) RecentPredictions(limit int) []models.PredictionSample {
	return a.store.Predictions(limit)
}

// Timeline merges both streams into one event list ordered by receipt
// time, most recent last, trimmed to the limit most recent entries.
// limit <= 0 applies the configured default.
func (a *API) Timeline(limit int) []models.Event {
	if limit <= 0 {
		limit = a.timelineLimit
	}

	sensors := a.store.Sensors(0)
	predictions := a.store.Predictions(0)

	events := make([]models.Event, 0, len(sensors)+len(predictions))
	for _, s := range sensors {
		events = append(events, s.Event())
	}
	for _, p := range predictions {
		events = append(events, p.Event())
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time.Before(events[j].Time)
	})

	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events
}

// WriteSensorCSV streams the full sensor history as CSV with the header
// timestamp,pir_value,hour,is_night. Timestamps are formatted in the
// samples' local timezone.
func (a *API) WriteSensorCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "pir_value", "hour", "is_night"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range a.store.Sensors(0) {
		record := []string{
			s.ReceivedAt.Format(csvTimeLayout),
			fmt.Sprintf("%d", s.PIRValue),
			fmt.Sprintf("%d", s.Hour),
			fmt.Sprintf("%d", s.IsNight),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImageJPEG re-encodes the retained camera frame as JPEG for download.
// Returns ErrNoImage when no frame has arrived yet.
func (a *API) ImageJPEG() ([]byte, error) {
	frame, ok := a.store.LastImage()
	if !ok {
		return nil, ErrNoImage
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame.Image, nil); err != nil {
		return nil, fmt.Errorf("encode image frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Clear empties all streams, the image slot and the last-value caches.
func (a *API) Clear() {
	a.store.ClearAll()
	a.metrics.RecordHistoryClear()
}
