// Package telemetry publishes the per minute state of the clock.
package telemetry

import (
	"fmt"
)

// Status describes the broker connection as reported in the payload.
type Status int

const (
	// StatusFailed means the connection was down and reconnecting failed.
	StatusFailed Status = 0
	// StatusConnected means the connection was already up.
	StatusConnected Status = 1
	// StatusReconnected means the connection was down and has been re-established.
	StatusReconnected Status = 2
	// StatusSensorRestart means the connection is up and the light sensor
	// is being power cycled in this minute.
	StatusSensorRestart Status = 3
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusReconnected:
		return "reconnected"
	case StatusSensorRestart:
		return "connected, sensor restart"
	}
	return "not connected"
}

// CanPublish reports whether a message can be sent with this status.
func (s Status) CanPublish() bool {
	return s >= StatusConnected
}

// Payload is the retained record published once per minute.
type Payload struct {
	Lux          float64 `json:"lux"`
	Dimming      int     `json:"dimming"`
	Mqtt         Status  `json:"mqtt"`
	IR           int     `json:"ir"`
	Broadband    int     `json:"broadband"`
	DisplayError int     `json:"disp_err"`
}

// Bytes renders the payload in the wire format consumed by the existing
// dashboards, lux with exactly five decimals.
func (p Payload) Bytes() []byte {
	return []byte(fmt.Sprintf(
		`{"lux": %.5f, "dimming": %d, "mqtt": %d, "ir": %d, "broadband": %d, "disp_err": %d}`,
		p.Lux, p.Dimming, int(p.Mqtt), p.IR, p.Broadband, p.DisplayError,
	))
}

type Sink interface {
	// EnsureConnected checks the connection and reconnects if needed.
	// The result is one of StatusConnected, StatusReconnected or StatusFailed.
	EnsureConnected() Status
	Publish(payload Payload) error
	Disconnect()
}

type noopSink struct{}

// NewNoopSink returns a Sink that never connects, used when telemetry is
// disabled.
func NewNoopSink() Sink {
	return noopSink{}
}

func (noopSink) EnsureConnected() Status {
	return StatusFailed
}

func (noopSink) Publish(Payload) error {
	return nil
}

func (noopSink) Disconnect() {}
