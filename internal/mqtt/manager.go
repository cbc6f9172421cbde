// Package mqtt owns the broker session: connection lifecycle, the fixed
// topic subscriptions and the dispatch of inbound payloads through the
// decoders into the store.
package mqtt

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"motion-backend/internal/decode"
	"motion-backend/internal/metrics"
	"motion-backend/internal/models"
	"motion-backend/internal/store"
)

// Stream names used for metrics labels and the snapshot API.
const (
	StreamSensors     = "sensors"
	StreamPredictions = "predictions"
)

// Config holds MQTT connection configuration
type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string

	SensorTopic     string
	PredictionTopic string
	ImageTopic      string

	KeepAlive      time.Duration
	ConnectTimeout time.Duration

	// AutoReconnect re-establishes a dropped session with paho's
	// built-in backoff. Disabling it leaves a dropped session in the
	// Disconnected state until the process is restarted.
	AutoReconnect bool
}

// Manager maintains one session to the broker and is the only writer
// into the store. Message and connection callbacks run on the paho
// network loop and never block: decoding is CPU-bound on a single small
// payload and store writes are a short critical section.
type Manager struct {
	cfg     Config
	store   *store.Store
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time

	mu     sync.Mutex
	client mqtt.Client

	state atomic.Int32
}

// NewManager creates a manager that stamps samples with receipt time in
// loc. It does not touch the network; call Start for that.
func NewManager(cfg Config, st *store.Store, m *metrics.Metrics, loc *time.Location) *Manager {
	mgr := &Manager{
		cfg:     cfg,
		store:   st,
		metrics: m,
		loc:     loc,
		now:     time.Now,
	}
	mgr.setState(models.StateDisconnected)
	return mgr
}

// Start connects to the broker and hands the session to paho's
// background network loop. It is idempotent while a session exists:
// further calls are no-ops. A connect failure discards the session and
// leaves the manager in the Failed state, observable via State; the
// error is also returned, and a supervisor may call Start again for a
// fresh attempt.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.client != nil {
		m.mu.Unlock()
		return nil
	}
	m.setState(models.StateConnecting)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(m.cfg.Broker)
	opts.SetClientID(m.cfg.ClientID)
	opts.SetUsername(m.cfg.Username)
	opts.SetPassword(m.cfg.Password)
	opts.SetKeepAlive(m.cfg.KeepAlive)
	opts.SetConnectTimeout(m.cfg.ConnectTimeout)
	opts.SetAutoReconnect(m.cfg.AutoReconnect)
	opts.SetOnConnectHandler(m.onConnect)
	opts.SetConnectionLostHandler(m.onConnectionLost)

	client := mqtt.NewClient(opts)
	m.client = client
	m.mu.Unlock()

	if token := client.Connect(); token.Wait() && token.Error() != nil {
		// Drop the dead session so a later Start makes a fresh
		// attempt instead of hitting the init-once no-op.
		m.mu.Lock()
		m.client = nil
		m.mu.Unlock()
		m.setState(models.StateFailed)
		return fmt.Errorf("connect to broker %s: %w", m.cfg.Broker, token.Error())
	}
	return nil
}

// Stop tears down the session. Stored samples survive; the store
// outlives the network task.
func (m *Manager) Stop() {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()

	if client != nil {
		client.Disconnect(250)
		log.Println("Manager: disconnected from broker")
	}
	m.setState(models.StateDisconnected)
}

// State returns the current session state.
func (m *Manager) State() models.ConnectionState {
	return models.ConnectionState(m.state.Load())
}

// Broker returns the configured broker address, for status display.
func (m *Manager) Broker() string {
	return m.cfg.Broker
}

func (m *Manager) setState(state models.ConnectionState) {
	m.state.Store(int32(state))
	m.metrics.SetConnectionState(state)
}

// onConnect runs on every (re)connect. Subscriptions are established
// here rather than in Start so a reconnected session is re-subscribed.
// Telemetry is fire-and-forget from the device, so at-most-once
// delivery (QoS 0) is all we ask of the broker.
func (m *Manager) onConnect(client mqtt.Client) {
	topics := map[string]byte{
		m.cfg.SensorTopic:     0,
		m.cfg.PredictionTopic: 0,
		m.cfg.ImageTopic:      0,
	}
	if token := client.SubscribeMultiple(topics, m.onMessage); token.Wait() && token.Error() != nil {
		log.Printf("Manager: subscribe failed: %v", token.Error())
		m.setState(models.StateFailed)
		return
	}
	m.setState(models.StateConnected)
	log.Printf("Manager: connected to %s, subscribed to %s, %s, %s",
		m.cfg.Broker, m.cfg.SensorTopic, m.cfg.PredictionTopic, m.cfg.ImageTopic)
}

// onConnectionLost marks an unexpected session drop. Paho reconnects on
// its own when AutoReconnect is set, re-entering onConnect.
func (m *Manager) onConnectionLost(_ mqtt.Client, err error) {
	log.Printf("Manager: connection lost: %v", err)
	m.setState(models.StateDisconnected)
}

func (m *Manager) onMessage(_ mqtt.Client, msg mqtt.Message) {
	m.handleMessage(msg.Topic(), msg.Payload())
}

// handleMessage routes one inbound payload to the decoder for its topic
// and stores the result. A malformed payload is logged and dropped; no
// error ever propagates back into the network loop.
func (m *Manager) handleMessage(topic string, payload []byte) {
	m.metrics.RecordMessage(topic)
	now := m.now().In(m.loc)

	switch topic {
	case m.cfg.SensorTopic:
		sample, err := decode.Sensor(payload, now)
		if err != nil {
			log.Printf("Manager: dropping message on %s: %v", topic, err)
			m.metrics.RecordDecodeFailure(topic)
			return
		}
		m.store.AppendSensor(sample)
		m.metrics.RecordSampleStored(StreamSensors)

	case m.cfg.PredictionTopic:
		sample, err := decode.Prediction(payload, now)
		if err != nil {
			log.Printf("Manager: dropping message on %s: %v", topic, err)
			m.metrics.RecordDecodeFailure(topic)
			return
		}
		m.store.AppendPrediction(sample)
		m.metrics.RecordSampleStored(StreamPredictions)

	case m.cfg.ImageTopic:
		frame, err := decode.Image(payload, now)
		if err != nil {
			log.Printf("Manager: dropping message on %s: %v", topic, err)
			m.metrics.RecordDecodeFailure(topic)
			return
		}
		m.store.SetImage(frame)
		log.Printf("Manager: stored camera frame (%dx%d)",
			frame.Image.Bounds().Dx(), frame.Image.Bounds().Dy())

	default:
		log.Printf("Manager: message on unexpected topic %s, ignoring", topic)
	}
}
