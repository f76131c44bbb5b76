// Package notify pushes report summaries to subscribers over MQTT.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// Publisher hands report events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event string, payload any) error
	Close()
}

// Message is the JSON document written to the topic.
type Message struct {
	Event string    `json:"event"`
	At    time.Time `json:"at"`
	Data  any       `json:"data"`
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Close()                                     {}

// ErrPublishTimeout is returned when the broker did not acknowledge a
// publish in time.
var ErrPublishTimeout = errors.New("mqtt publish timed out")

// client is the part of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTT publishes events with QoS 0 on a single topic.
type MQTT struct {
	client  client
	topic   string
	timeout time.Duration
	now     func() time.Time
}

// Options configures the MQTT publisher.
type Options struct {
	BrokerURL string
	ClientID  string
	Topic     string
	Timeout   time.Duration
}

// NewMQTT connects to the broker. Connection loss is handled by the client's
// auto reconnect.
func NewMQTT(o Options) (*MQTT, error) {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	opts := mqtt.NewClientOptions().
		AddBroker(o.BrokerURL).
		SetClientID(o.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(o.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("MQTT connection lost")
		})

	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(o.Timeout) {
		return nil, fmt.Errorf("connect to %s: timed out", o.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", o.BrokerURL, err)
	}
	log.WithFields(log.Fields{"broker": o.BrokerURL, "topic": o.Topic}).Info("Connected to MQTT broker")
	return newMQTT(c, o.Topic, o.Timeout), nil
}

func newMQTT(c client, topic string, timeout time.Duration) *MQTT {
	return &MQTT{client: c, topic: topic, timeout: timeout, now: time.Now}
}

// Publish writes the event as JSON and waits for the client to hand it off.
func (m *MQTT) Publish(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(Message{Event: event, At: m.now().UTC(), Data: payload})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}
	token := m.client.Publish(m.topic, 0, false, body)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.timeout):
		return ErrPublishTimeout
	}
}

// Close disconnects, giving in-flight messages 250ms to drain.
func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
