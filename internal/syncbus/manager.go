// Package syncbus pushes configuration-change and new-inspiration events to
// connected displays over MQTT. It owns a single process-wide broker
// connection: created lazily on first use, reused while healthy, recreated
// after a failed attempt, and reconnected automatically underneath after a
// drop. Delivery is fire-and-forget (QoS 0, no retained flag) but a publish
// does wait for the broker to accept the message.
package syncbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// ErrConnectTimeout indicates the connect wait elapsed. The underlying
// attempt keeps running and may populate the shared connection for later
// callers; only this caller's wait is cancelled.
var ErrConnectTimeout = errors.New("broker connect timeout")

const (
	defaultConnectTimeout = 5 * time.Second
	publishTimeout        = 2 * time.Second
	disconnectQuiesceMs   = 250
)

// Config holds broker connection parameters.
type Config struct {
	BrokerURL       string
	Username        string
	Password        string
	ClientIDPrefix  string
	ConnectTimeout  time.Duration
	ReconnectPeriod time.Duration
}

// Notifier is the publish surface the settings flow and the nudge trigger
// depend on.
type Notifier interface {
	PublishConfigUpdated(ctx context.Context, deviceLocation string) error
	PublishInspirationNudge(ctx context.Context, roll int) error
}

// Manager owns the broker connection lifecycle and exposes topic publishers.
// Safe for concurrent use: callers racing on a cold connection share one
// in-flight connect attempt instead of opening duplicates.
type Manager struct {
	cfg Config

	// newClient is swapped out in tests.
	newClient func(*mqtt.ClientOptions) mqtt.Client

	mu      sync.Mutex
	client  mqtt.Client
	connect mqtt.Token
}

// NewManager creates a connection manager. No connection is opened until the
// first publish.
func NewManager(cfg Config) *Manager {
	return &Manager{
		cfg:       cfg,
		newClient: mqtt.NewClient,
	}
}

// EnsureConnected returns a live client, creating and connecting one if
// needed. Concurrent callers wait on the same in-flight attempt; the wait is
// bounded by the configured connect timeout and by ctx. A failed attempt
// discards the client handle so the next call starts fresh.
func (m *Manager) EnsureConnected(ctx context.Context) (mqtt.Client, error) {
	m.mu.Lock()
	if m.client == nil {
		m.client = m.newClient(m.clientOptions())
		m.connect = m.client.Connect()
	}
	client, token := m.client, m.connect
	m.mu.Unlock()

	if client.IsConnectionOpen() {
		return client, nil
	}

	timeout := m.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, ErrConnectTimeout
	}

	if err := token.Error(); err != nil {
		m.discard(client)
		return nil, fmt.Errorf("broker connect failed: %w", err)
	}
	return client, nil
}

// Publish marshals the payload and sends it with QoS 0, waiting for the
// broker to accept. It does not retry: callers decide whether the operation
// that triggered the publish should be retried.
func (m *Manager) Publish(ctx context.Context, topic string, payload any) error {
	client, err := m.EnsureConnected(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", topic, err)
	}

	token := client.Publish(topic, 0, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: broker accept timeout", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// PublishConfigUpdated announces a settings change carrying the new device
// location.
func (m *Manager) PublishConfigUpdated(ctx context.Context, deviceLocation string) error {
	return m.Publish(ctx, TopicConfigUpdated, NewConfigUpdatedEvent(deviceLocation))
}

// PublishInspirationNudge sends the re-poll nudge.
func (m *Manager) PublishInspirationNudge(ctx context.Context, roll int) error {
	return m.Publish(ctx, TopicNewInspiration, NewInspirationEvent(roll))
}

// Connected reports whether the broker connection is currently open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	return client != nil && client.IsConnectionOpen()
}

// Disconnect tears the connection down. Called once at process shutdown.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.connect = nil
	m.mu.Unlock()

	if client != nil && client.IsConnectionOpen() {
		client.Disconnect(disconnectQuiesceMs)
		log.Printf("MQTT notifier disconnected")
	}
}

// discard drops a failed client handle so the next call recreates it. Only
// the handle that failed is discarded: a concurrent caller may already have
// installed a fresh one.
func (m *Manager) discard(failed mqtt.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == failed {
		m.client = nil
		m.connect = nil
	}
}

func (m *Manager) clientOptions() *mqtt.ClientOptions {
	prefix := m.cfg.ClientIDPrefix
	if prefix == "" {
		prefix = "musedeck_notifier"
	}
	clientID := fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])

	reconnect := m.cfg.ReconnectPeriod
	if reconnect <= 0 {
		reconnect = time.Second
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(m.cfg.BrokerURL)
	opts.SetClientID(clientID)
	opts.SetUsername(m.cfg.Username)
	opts.SetPassword(m.cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(reconnect)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		log.Printf("MQTT notifier connected (client_id=%s)", clientID)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Printf("MQTT notifier connection lost, will auto-reconnect: %v", err)
	}

	return opts
}
