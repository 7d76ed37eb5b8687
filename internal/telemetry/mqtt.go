package telemetry

import (
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/ui"
)

const disconnectQuiesceMs = 250

var ErrTimeout = errors.New("timed out waiting for the broker")

type MQTTSink struct {
	client  paho.Client
	topic   string
	qos     byte
	timeout time.Duration
}

func NewMQTTSink(config configuration.TelemetryConfig) *MQTTSink {
	opts := paho.NewClientOptions().AddBroker(config.Broker)
	opts.SetClientID(config.ClientId)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetCleanSession(true)
	// reconnects happen once per minute from EnsureConnected
	opts.SetAutoReconnect(false)
	opts.SetConnectTimeout(config.Timeout)
	if len(config.Username) > 0 {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		ui.Warning("MQTT connection lost: %v", err)
	})

	return newMQTTSink(paho.NewClient(opts), config)
}

func newMQTTSink(client paho.Client, config configuration.TelemetryConfig) *MQTTSink {
	return &MQTTSink{
		client:  client,
		topic:   config.Topic,
		qos:     byte(config.Qos),
		timeout: config.Timeout,
	}
}

func (s *MQTTSink) EnsureConnected() Status {
	if s.client.IsConnected() {
		ui.Debug("MQTT connection is alive")
		return StatusConnected
	}

	if err := s.wait(s.client.Connect()); err != nil {
		ui.Info("MQTT connection is not alive: %v", err)
		return StatusFailed
	}
	ui.Info("MQTT connection was not alive, connected")
	return StatusReconnected
}

func (s *MQTTSink) Publish(payload Payload) error {
	data := payload.Bytes()
	ui.Debug("Publishing to %s: %s", s.topic, data)
	if err := s.wait(s.client.Publish(s.topic, s.qos, true, data)); err != nil {
		return fmt.Errorf("publish to %s: %w", s.topic, err)
	}
	return nil
}

func (s *MQTTSink) Disconnect() {
	if s.client.IsConnected() {
		s.client.Disconnect(disconnectQuiesceMs)
	}
}

func (s *MQTTSink) wait(token paho.Token) error {
	if !token.WaitTimeout(s.timeout) {
		return ErrTimeout
	}
	return token.Error()
}
