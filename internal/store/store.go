// Package store holds the bounded telemetry history shared between the
// MQTT ingestion loop and snapshot readers.
//
// The Store is a pure data structure: no I/O, no clock, no knowledge of
// the broker. The connection manager is its only writer; everything
// handed out to readers is a copy taken under the lock, so later
// appends never mutate a snapshot a caller already holds.
package store

import (
	"sync"
	"time"

	"motion-backend/internal/models"
)

// DefaultCapacity is the per-stream history bound used when the
// configuration does not override it.
const DefaultCapacity = 2000

// Store keeps the bounded sensor and prediction histories, the
// last-value caches, the single retained image frame and the time of
// the most recent write. All methods are safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	sensors     *ring[models.SensorSample]
	predictions *ring[models.PredictionSample]

	lastSensor     *models.SensorSample
	lastPrediction *models.PredictionSample
	lastImage      *models.ImageFrame
	lastUpdate     time.Time
}

// New creates a store with the given per-stream capacity.
// capacity <= 0 falls back to DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		sensors:     newRing[models.SensorSample](capacity),
		predictions: newRing[models.PredictionSample](capacity),
	}
}

// AppendSensor appends to the sensor stream, evicting the oldest entry
// when the stream is at capacity, and refreshes the last-value cache.
func (s *Store) AppendSensor(sample models.SensorSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensors.append(sample)
	s.lastSensor = &sample
	s.lastUpdate = sample.ReceivedAt
}

// AppendPrediction appends to the prediction stream, evicting the
// oldest entry when the stream is at capacity, and refreshes the
// last-value cache.
func (s *Store) AppendPrediction(sample models.PredictionSample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predictions.append(sample)
	s.lastPrediction = &sample
	s.lastUpdate = sample.ReceivedAt
}

// SetImage replaces the retained camera frame. Frames are not part of
// any history stream; at most one is kept.
func (s *Store) SetImage(frame models.ImageFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastImage = &frame
	s.lastUpdate = frame.ReceivedAt
}

// LastSensor returns the most recently appended sensor sample.
func (s *Store) LastSensor() (models.SensorSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastSensor == nil {
		return models.SensorSample{}, false
	}
	return *s.lastSensor, true
}

// LastPrediction returns the most recently appended prediction.
func (s *Store) LastPrediction() (models.PredictionSample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastPrediction == nil {
		return models.PredictionSample{}, false
	}
	return *s.lastPrediction, true
}

// LastImage returns the retained camera frame. The bitmap is shared
// with the store; callers must treat it as read-only.
func (s *Store) LastImage() (models.ImageFrame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastImage == nil {
		return models.ImageFrame{}, false
	}
	return *s.lastImage, true
}

// Sensors returns a copy of up to limit of the most recent sensor
// samples, oldest first. limit <= 0 means the full history.
func (s *Store) Sensors(limit int) []models.SensorSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensors.tail(limit)
}

// Predictions returns a copy of up to limit of the most recent
// predictions, oldest first. limit <= 0 means the full history.
func (s *Store) Predictions(limit int) []models.PredictionSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictions.tail(limit)
}

// Counts returns the current lengths of both streams.
func (s *Store) Counts() (sensors, predictions int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sensors.len(), s.predictions.len()
}

// LastUpdate returns the receipt time of the most recently stored
// sample of any kind, across both streams and the image slot.
func (s *Store) LastUpdate() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastUpdate.IsZero() {
		return time.Time{}, false
	}
	return s.lastUpdate, true
}

// ClearAll empties both streams, drops the retained image and resets
// the last-value caches and last-update marker. Atomic with respect to
// concurrent appends: a racing append lands either entirely before or
// entirely after the clear.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensors.reset()
	s.predictions.reset()
	s.lastSensor = nil
	s.lastPrediction = nil
	s.lastImage = nil
	s.lastUpdate = time.Time{}
}
