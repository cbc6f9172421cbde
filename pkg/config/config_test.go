package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MQTTBroker != "tcp://broker.hivemq.com:1883" {
		t.Errorf("MQTTBroker = %q, want default broker", cfg.MQTTBroker)
	}
	if cfg.MQTTTopicSensor != "esp32/motion/datasensor" {
		t.Errorf("MQTTTopicSensor = %q, want esp32/motion/datasensor", cfg.MQTTTopicSensor)
	}
	if cfg.HistoryMax != 2000 {
		t.Errorf("HistoryMax = %d, want 2000", cfg.HistoryMax)
	}
	if cfg.TimelineMax != 200 {
		t.Errorf("TimelineMax = %d, want 200", cfg.TimelineMax)
	}
	if cfg.Timezone != "Asia/Jakarta" {
		t.Errorf("Timezone = %q, want Asia/Jakarta", cfg.Timezone)
	}
	if cfg.MQTTKeepAlive != 60*time.Second {
		t.Errorf("MQTTKeepAlive = %v, want 60s", cfg.MQTTKeepAlive)
	}
	if !cfg.MQTTAutoReconnect {
		t.Error("MQTTAutoReconnect = false, want true by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MQTT_BROKER", "tcp://localhost:1883")
	t.Setenv("HISTORY_MAX", "500")
	t.Setenv("MQTT_AUTO_RECONNECT", "false")
	t.Setenv("MQTT_CONNECT_TIMEOUT", "3s")

	cfg := Load()

	if cfg.MQTTBroker != "tcp://localhost:1883" {
		t.Errorf("MQTTBroker = %q, want tcp://localhost:1883", cfg.MQTTBroker)
	}
	if cfg.HistoryMax != 500 {
		t.Errorf("HistoryMax = %d, want 500", cfg.HistoryMax)
	}
	if cfg.MQTTAutoReconnect {
		t.Error("MQTTAutoReconnect = true, want false")
	}
	if cfg.MQTTConnectTimeout != 3*time.Second {
		t.Errorf("MQTTConnectTimeout = %v, want 3s", cfg.MQTTConnectTimeout)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_MAX", "not-a-number")
	t.Setenv("MQTT_AUTO_RECONNECT", "not-a-bool")

	cfg := Load()

	if cfg.HistoryMax != 2000 {
		t.Errorf("HistoryMax = %d, want default 2000 on parse failure", cfg.HistoryMax)
	}
	if !cfg.MQTTAutoReconnect {
		t.Error("MQTTAutoReconnect = false, want default true on parse failure")
	}
}
