package decode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"strings"
	"time"

	// Camera frames arrive as JPEG; PNG is accepted for completeness.
	_ "image/jpeg"
	_ "image/png"

	"motion-backend/internal/models"
)

// Image decodes a camera frame payload: base64 ASCII text wrapping a
// compressed image. The decoded image is normalized to an RGBA bitmap
// so consumers never see palette or YCbCr variants. Malformed base64
// and corrupt or unsupported image data are both decode errors.
func Image(payload []byte, now time.Time) (models.ImageFrame, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(payload)))
	if err != nil {
		return models.ImageFrame{}, fmt.Errorf("image payload: %w", err)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return models.ImageFrame{}, fmt.Errorf("image payload: %w", err)
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	return models.ImageFrame{ReceivedAt: now, Image: rgba}, nil
}
