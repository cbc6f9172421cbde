package decode

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 17, 22, 30, 0, 0, time.UTC)

func TestSensorAllFields(t *testing.T) {
	sample, err := Sensor([]byte(`{"pir_value":1,"hour":22,"is_night":1}`), testNow)
	if err != nil {
		t.Fatalf("Sensor: unexpected error: %v", err)
	}
	if sample.PIRValue != 1 {
		t.Errorf("PIRValue = %d, want 1", sample.PIRValue)
	}
	if sample.Hour != 22 {
		t.Errorf("Hour = %d, want 22", sample.Hour)
	}
	if sample.IsNight != 1 {
		t.Errorf("IsNight = %d, want 1", sample.IsNight)
	}
	if !sample.ReceivedAt.Equal(testNow) {
		t.Errorf("ReceivedAt = %v, want %v", sample.ReceivedAt, testNow)
	}
}

func TestSensorDefaults(t *testing.T) {
	sample, err := Sensor([]byte(`{}`), testNow)
	if err != nil {
		t.Fatalf("Sensor: unexpected error: %v", err)
	}
	if sample.PIRValue != 0 {
		t.Errorf("PIRValue = %d, want default 0", sample.PIRValue)
	}
	if sample.Hour != testNow.Hour() {
		t.Errorf("Hour = %d, want receipt hour %d", sample.Hour, testNow.Hour())
	}
	if sample.IsNight != 0 {
		t.Errorf("IsNight = %d, want default 0", sample.IsNight)
	}
}

func TestSensorPartialFields(t *testing.T) {
	sample, err := Sensor([]byte(`{"pir_value":1}`), testNow)
	if err != nil {
		t.Fatalf("Sensor: unexpected error: %v", err)
	}
	if sample.PIRValue != 1 {
		t.Errorf("PIRValue = %d, want 1", sample.PIRValue)
	}
	if sample.Hour != 22 {
		t.Errorf("Hour = %d, want receipt hour 22", sample.Hour)
	}
}

func TestSensorDeviceTimestampIgnored(t *testing.T) {
	sample, err := Sensor([]byte(`{"pir_value":1,"timestamp":"2001-01-01T00:00:00Z"}`), testNow)
	if err != nil {
		t.Fatalf("Sensor: unexpected error: %v", err)
	}
	if !sample.ReceivedAt.Equal(testNow) {
		t.Errorf("ReceivedAt = %v, want receipt time %v", sample.ReceivedAt, testNow)
	}
}

func TestSensorMalformed(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", "pir:1"},
		{"empty", ""},
		{"json array", `[1,2,3]`},
		{"json number", `42`},
		{"json null", `null`},
		{"wrong field type", `{"pir_value":"high"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Sensor([]byte(tc.payload), testNow); err == nil {
				t.Errorf("Sensor(%q): expected error, got nil", tc.payload)
			}
		})
	}
}
