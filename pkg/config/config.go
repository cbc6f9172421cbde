package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// MQTT Configuration
	MQTTBroker         string
	MQTTClientID       string
	MQTTUsername       string
	MQTTPassword       string
	MQTTKeepAlive      time.Duration
	MQTTConnectTimeout time.Duration
	MQTTAutoReconnect  bool

	// Topic Configuration
	MQTTTopicSensor     string
	MQTTTopicPrediction string
	MQTTTopicImage      string

	// History Configuration
	HistoryMax  int
	TimelineMax int

	// Timestamps are normalized to this timezone at the ingestion
	// boundary (device clocks are not trusted)
	Timezone string

	// HTTP Configuration
	HTTPAddr string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		// MQTT Configuration
		MQTTBroker:         getEnv("MQTT_BROKER", "tcp://broker.hivemq.com:1883"),
		MQTTClientID:       getEnv("MQTT_CLIENT_ID", "motion-backend"),
		MQTTUsername:       getEnv("MQTT_USERNAME", ""),
		MQTTPassword:       getEnv("MQTT_PASSWORD", ""),
		MQTTKeepAlive:      getEnvDuration("MQTT_KEEPALIVE", 60*time.Second),
		MQTTConnectTimeout: getEnvDuration("MQTT_CONNECT_TIMEOUT", 10*time.Second),
		MQTTAutoReconnect:  getEnvBool("MQTT_AUTO_RECONNECT", true),

		// Topic Configuration
		MQTTTopicSensor:     getEnv("MQTT_TOPIC_SENSOR", "esp32/motion/datasensor"),
		MQTTTopicPrediction: getEnv("MQTT_TOPIC_PREDICTION", "esp32/motion/prediction"),
		MQTTTopicImage:      getEnv("MQTT_TOPIC_IMAGE", "esp32/motion/gambar"),

		// History Configuration
		HistoryMax:  getEnvInt("HISTORY_MAX", 2000),
		TimelineMax: getEnvInt("TIMELINE_MAX", 200),

		// Timezone Configuration
		Timezone: getEnv("TIMEZONE", "Asia/Jakarta"),

		// HTTP Configuration
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as bool, using default: %v", key, err)
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	durationValue, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as duration, using default: %v", key, err)
		return defaultValue
	}
	return durationValue
}
