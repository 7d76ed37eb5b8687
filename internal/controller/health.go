package controller

import "github.com/luxclock/luxclock/internal/sensors"

const (
	// SensorDeadLimit is the number of consecutive bad readings after which
	// the light sensor is power cycled.
	SensorDeadLimit = 5

	// smoothed lux values below this are treated as a dead sensor
	minPlausibleLux = 0.01

	smoothingFactor = 4.0
)

// Smooth folds reading into the exponentially smoothed lux value. A reading
// without positive lux resets the smoothed value.
func Smooth(smoothed float64, reading sensors.LightReading) float64 {
	if reading.Lux > 0 {
		return smoothed + (reading.Lux-smoothed)/smoothingFactor
	}
	return 0
}

// SensorHealth counts consecutive bad readings of the light sensor.
type SensorHealth struct {
	failures int
}

// Record updates the counter with the latest reading and the smoothed lux
// value it produced.
func (h *SensorHealth) Record(reading sensors.LightReading, smoothed float64) {
	if smoothed < minPlausibleLux || !reading.Valid() {
		h.failures++
		if h.failures > SensorDeadLimit+1 {
			h.failures = SensorDeadLimit + 1
		}
	} else {
		h.failures = 0
	}
}

// NeedsRestart is true exactly when the limit has been reached. A counter
// beyond the limit means the power cycle already happened.
func (h *SensorHealth) NeedsRestart() bool {
	return h.failures == SensorDeadLimit
}

// RestartFailed gives up on the current failure streak.
func (h *SensorHealth) RestartFailed() {
	h.failures = 0
}

func (h *SensorHealth) Failures() int {
	return h.failures
}
