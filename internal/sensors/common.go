// Package sensors implements the supported ambient light sensors.
package sensors

import (
	"fmt"
	"math"
	"time"

	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/configuration"
)

// LuxFloor is the lowest lux value reported for a valid reading. A sensed
// "pitch black" of 0 would never recover through the smoothing filter.
const LuxFloor = 0.02

// LightReading is one sample of the light sensor.
type LightReading struct {
	// IR and Broadband are raw counts, negative if the read failed.
	IR        int     `json:"ir"`
	Broadband int     `json:"broadband"`
	Lux       float64 `json:"lux"`
}

// InvalidReading is returned when the sensor could not be read.
func InvalidReading() LightReading {
	return LightReading{IR: -1, Broadband: -1, Lux: 0}
}

// Valid reports whether both channels were read successfully.
func (r LightReading) Valid() bool {
	return r.IR >= 0 && r.Broadband >= 0
}

func (r LightReading) String() string {
	return fmt.Sprintf("broadband=%d ir=%d lux=%.4f", r.Broadband, r.IR, r.Lux)
}

type LightSensor interface {
	GetType() string
	// Init powers the sensor on or off.
	Init(on bool) error
	// Read takes one measurement. Failures are reported through
	// negative counts in the returned reading.
	Read() LightReading
}

// NewSensor creates the light sensor described by config on top of b.
// The "none" type is not a sensor and returns an error, callers check
// config.Enabled() first.
func NewSensor(config configuration.SensorConfig, b bus.ByteBus) (LightSensor, error) {
	switch config.Type {
	case configuration.SensorTypeTSL2561:
		return &TSL2561{bus: b, sleep: time.Sleep}, nil
	case configuration.SensorTypeTSL2591:
		return &TSL2591{bus: b, sleep: time.Sleep}, nil
	case configuration.SensorTypeVEML7700:
		return &VEML7700{bus: b, sleep: time.Sleep}, nil
	}
	return nil, fmt.Errorf("no light sensor implementation for type: %s", config.Type)
}

// applyFloor clamps lux to LuxFloor and maps NaN to it.
func applyFloor(lux float64) float64 {
	if math.IsNaN(lux) || lux < LuxFloor {
		return LuxFloor
	}
	return lux
}
