package decode

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"motion-backend/internal/models"
)

// textLabels maps the classifier's plain-text phrases to canonical labels.
var textLabels = map[string]string{
	"NO MOTION DETECT":         "no_motion",
	"NORMAL MOTION DETECT":     "normal_motion",
	"SUSPICIOUS MOTION DETECT": "suspicious_motion",
}

// Prediction decodes a classification result. The primary path is a JSON
// object carrying either a nested {"prediction": {"label": ..., "confidence": ...}}
// or a top-level label/confidence pair. If the payload is not valid JSON
// at all, it falls back to the classifier's plain-text vocabulary:
// known phrases map through textLabels, anything else is lowercased with
// spaces replaced by underscores. Confidence is nil on the text path.
//
// Valid JSON that carries no label (or is not an object) is a decode
// error, not a candidate for the text fallback.
func Prediction(payload []byte, now time.Time) (models.PredictionSample, error) {
	var obj struct {
		Prediction *struct {
			Label      *string  `json:"label"`
			Confidence *float64 `json:"confidence"`
		} `json:"prediction"`
		Label      *string  `json:"label"`
		Confidence *float64 `json:"confidence"`
	}

	if err := json.Unmarshal(payload, &obj); err != nil {
		if json.Valid(payload) {
			return models.PredictionSample{}, errors.New("prediction payload: unexpected JSON shape")
		}
		return textPrediction(payload, now), nil
	}

	switch {
	case obj.Prediction != nil && obj.Prediction.Label != nil:
		return models.PredictionSample{
			ReceivedAt: now,
			Label:      *obj.Prediction.Label,
			Confidence: obj.Prediction.Confidence,
		}, nil
	case obj.Label != nil:
		return models.PredictionSample{
			ReceivedAt: now,
			Label:      *obj.Label,
			Confidence: obj.Confidence,
		}, nil
	}
	return models.PredictionSample{}, errors.New("prediction payload: object has no label")
}

func textPrediction(payload []byte, now time.Time) models.PredictionSample {
	text := strings.ToUpper(strings.TrimSpace(string(payload)))
	label, ok := textLabels[text]
	if !ok {
		label = strings.ReplaceAll(strings.ToLower(text), " ", "_")
	}
	return models.PredictionSample{ReceivedAt: now, Label: label}
}
