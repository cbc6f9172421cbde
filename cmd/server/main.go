package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motion-backend/internal/api"
	"motion-backend/internal/metrics"
	"motion-backend/internal/mqtt"
	"motion-backend/internal/snapshot"
	"motion-backend/internal/store"
	"motion-backend/pkg/config"
)

func main() {
	log.Println("Starting Motion Telemetry Backend...")

	// Load configuration
	cfg := config.Load()

	// Resolve the local timezone used to stamp incoming samples
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}

	// === Initialize Store and Metrics ===
	st := store.New(cfg.HistoryMax)
	m := metrics.New()

	// === Initialize Connection Manager ===
	log.Println("Connecting to MQTT broker...")
	manager := mqtt.NewManager(mqtt.Config{
		Broker:          cfg.MQTTBroker,
		ClientID:        cfg.MQTTClientID,
		Username:        cfg.MQTTUsername,
		Password:        cfg.MQTTPassword,
		SensorTopic:     cfg.MQTTTopicSensor,
		PredictionTopic: cfg.MQTTTopicPrediction,
		ImageTopic:      cfg.MQTTTopicImage,
		KeepAlive:       cfg.MQTTKeepAlive,
		ConnectTimeout:  cfg.MQTTConnectTimeout,
		AutoReconnect:   cfg.MQTTAutoReconnect,
	}, st, m, loc)

	// A connect failure is not fatal: the process keeps serving the
	// snapshot API, which reports the Failed state to consumers.
	if err := manager.Start(); err != nil {
		log.Printf("MQTT connect failed: %v", err)
	}
	defer manager.Stop()

	// === Initialize Snapshot API and HTTP Server ===
	snap := snapshot.New(st, manager.State, cfg.MQTTBroker, cfg.TimelineMax, m)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(snap),
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// === Log startup info ===
	log.Println("=== Motion Telemetry Backend is running ===")
	log.Printf("MQTT Broker:  %s", cfg.MQTTBroker)
	log.Printf("Topics:")
	log.Printf("  - Sensor:     %s", cfg.MQTTTopicSensor)
	log.Printf("  - Prediction: %s", cfg.MQTTTopicPrediction)
	log.Printf("  - Image:      %s", cfg.MQTTTopicImage)
	log.Printf("History capacity: %d per stream, timezone: %s", cfg.HistoryMax, cfg.Timezone)
	log.Println("Press Ctrl+C to exit...")

	// === Wait for interrupt signal ===
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// === Graceful shutdown ===
	log.Println("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	log.Println("Shutdown complete. Goodbye!")
}
