// Package decode maps raw MQTT payload bytes to typed samples.
//
// Decoders are pure: the receipt timestamp is supplied by the caller so
// tests can inject a fixed clock. A non-nil error means the message is
// malformed and must be dropped; decoders never panic on bad input.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"motion-backend/internal/models"
)

// Sensor decodes a PIR sensor payload: a UTF-8 JSON object with optional
// pir_value, hour and is_night fields. Absent fields default to 0, the
// receipt hour and 0 respectively. Any timestamp in the payload is
// ignored; device clocks are not trusted to be synchronized.
func Sensor(payload []byte, now time.Time) (models.SensorSample, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return models.SensorSample{}, fmt.Errorf("sensor payload: %w", err)
	}
	if fields == nil {
		return models.SensorSample{}, errors.New("sensor payload: not a JSON object")
	}

	sample := models.SensorSample{
		ReceivedAt: now,
		Hour:       now.Hour(),
	}
	if err := intField(fields, "pir_value", &sample.PIRValue); err != nil {
		return models.SensorSample{}, fmt.Errorf("sensor payload: %w", err)
	}
	if err := intField(fields, "hour", &sample.Hour); err != nil {
		return models.SensorSample{}, fmt.Errorf("sensor payload: %w", err)
	}
	if err := intField(fields, "is_night", &sample.IsNight); err != nil {
		return models.SensorSample{}, fmt.Errorf("sensor payload: %w", err)
	}
	return sample, nil
}

// intField unmarshals fields[key] into dst if the key is present,
// leaving dst untouched otherwise.
func intField(fields map[string]json.RawMessage, key string, dst *int) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}
