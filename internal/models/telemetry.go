package models

import (
	"fmt"
	"image"
	"time"
)

// SensorSample represents one decoded PIR sensor reading.
// ReceivedAt is always the receipt instant in the configured local
// timezone; device-supplied timestamps are not trusted.
type SensorSample struct {
	ReceivedAt time.Time `json:"received_at"`
	PIRValue   int       `json:"pir_value"`
	Hour       int       `json:"hour"`     // 0-23
	IsNight    int       `json:"is_night"` // 0 or 1
}

// PredictionSample represents one decoded motion classification result
type PredictionSample struct {
	ReceivedAt time.Time `json:"received_at"`
	Label      string    `json:"label"`
	Confidence *float64  `json:"confidence,omitempty"` // percentage 0-100, nil when the payload carried none
}

// ImageFrame holds the most recent decoded camera frame.
// Only one frame is retained at a time; it is not part of any history stream.
type ImageFrame struct {
	ReceivedAt time.Time
	Image      *image.RGBA
}

// Event is one row of the merged sensor/prediction timeline view
type Event struct {
	Time        time.Time `json:"time"`
	Description string    `json:"event"`
}

// Event returns the timeline representation of a sensor reading
func (s SensorSample) Event() Event {
	return Event{Time: s.ReceivedAt, Description: fmt.Sprintf("PIR=%d", s.PIRValue)}
}

// Event returns the timeline representation of a prediction
func (p PredictionSample) Event() Event {
	return Event{Time: p.ReceivedAt, Description: fmt.Sprintf("PRED=%s", p.Label)}
}
