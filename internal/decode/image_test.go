package decode

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodedTestImage returns a small frame encoded with enc and wrapped
// in base64, the way the camera publishes it.
func encodedTestImage(t *testing.T, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(80 * y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := enc(&buf, src); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return []byte(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func TestImageJPEGPayload(t *testing.T) {
	payload := encodedTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})

	frame, err := Image(payload, testNow)
	if err != nil {
		t.Fatalf("Image: unexpected error: %v", err)
	}
	if frame.Image == nil {
		t.Fatal("Image: frame has nil bitmap")
	}
	if got := frame.Image.Bounds(); got.Dx() != 4 || got.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", got)
	}
	if !frame.ReceivedAt.Equal(testNow) {
		t.Errorf("ReceivedAt = %v, want %v", frame.ReceivedAt, testNow)
	}
}

func TestImagePNGPayload(t *testing.T) {
	payload := encodedTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})

	frame, err := Image(payload, testNow)
	if err != nil {
		t.Fatalf("Image: unexpected error: %v", err)
	}
	if got := frame.Image.Bounds(); got.Dx() != 4 || got.Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", got)
	}
}

func TestImagePayloadWithWhitespace(t *testing.T) {
	payload := encodedTestImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})
	padded := append([]byte("  "), payload...)
	padded = append(padded, '\n')

	if _, err := Image(padded, testNow); err != nil {
		t.Errorf("Image with surrounding whitespace: unexpected error: %v", err)
	}
}

func TestImageMalformed(t *testing.T) {
	cases := []struct {
		name    string
		payload []byte
	}{
		{"not base64", []byte("!!! definitely not base64 !!!")},
		{"base64 of garbage", []byte(base64.StdEncoding.EncodeToString([]byte("not an image")))},
		{"empty", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Image(tc.payload, testNow); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
