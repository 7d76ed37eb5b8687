// Package status holds the snapshot of the most recent minute tick, shared
// with the REST API, the metrics collector and the persistence layer.
package status

import (
	"time"

	"github.com/luxclock/luxclock/internal/clock"
	"github.com/luxclock/luxclock/internal/dimming"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/sensors"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/luxclock/luxclock/internal/telemetry"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	ModeClock = "clock"
	ModeLux   = "lux"
)

var (
	// SnapshotMap holds the latest snapshot per clock, keyed by the display
	// address.
	SnapshotMap = cmap.New[Snapshot]()
)

type Snapshot struct {
	Id    string          `json:"id"`
	Time  time.Time       `json:"time"`
	Shown clock.ClockTime `json:"shown"`
	Mode  string          `json:"mode"`

	Dimming dimming.State `json:"dimming"`

	SmoothedLux    float64              `json:"smoothedLux"`
	Reading        sensors.LightReading `json:"reading"`
	SensorFailures int                  `json:"sensorFailures"`
	SensorRestarts int                  `json:"sensorRestarts"`
	LuxWindowMin   float64              `json:"luxWindowMin"`
	LuxWindowMax   float64              `json:"luxWindowMax"`
	LuxWindowAvg   float64              `json:"luxWindowAvg"`

	DisplayStatus int `json:"displayStatus"`
	DisplayErrors int `json:"displayErrors"`

	Telemetry telemetry.Status `json:"telemetry"`

	Schedule sun.Schedule   `json:"schedule"`
	LuxTable luxtable.Table `json:"luxTable"`
}

// Publish stores snapshot as the latest state of its clock.
func Publish(snapshot Snapshot) {
	SnapshotMap.Set(snapshot.Id, snapshot)
}

// Get returns the latest snapshot of the given clock.
func Get(id string) (Snapshot, bool) {
	return SnapshotMap.Get(id)
}
