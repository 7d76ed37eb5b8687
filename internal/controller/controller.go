// Package controller runs the minute tick loop of the clock.
package controller

import (
	"context"
	"time"

	"github.com/luxclock/luxclock/internal/clock"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/dimming"
	"github.com/luxclock/luxclock/internal/display"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/persistence"
	"github.com/luxclock/luxclock/internal/segment"
	"github.com/luxclock/luxclock/internal/sensors"
	"github.com/luxclock/luxclock/internal/status"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/luxclock/luxclock/internal/telemetry"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/luxclock/luxclock/internal/util"
)

const (
	// LuxWindowSize is the number of raw lux readings kept for statistics.
	LuxWindowSize = 15

	// DisplayStatusError is reported in telemetry after a failed display write.
	DisplayStatusError = -1

	noMinute = -1
	noLevel  = -1
)

// Dependencies are the collaborators of the tick loop. Sensor is nil when
// the clock dims by time of day.
type Dependencies struct {
	Clock       clock.Clock
	Display     display.Display
	Sensor      sensors.LightSensor
	Sink        telemetry.Sink
	Persistence persistence.Persistence

	// Schedule computes the sun schedule of the day containing now.
	Schedule func(now time.Time) sun.Schedule
	// LoadTable reads the lux table from path.
	LoadTable func(path string) (luxtable.Table, error)
}

type Controller struct {
	id     string
	deps   Dependencies
	config configuration.Configuration

	tablePath string

	lastMinute  int
	first       bool
	schedule    sun.Schedule
	table       luxtable.Table
	tableLoaded bool
	dimming     dimming.State
	shownLevel  int

	smoothedLux float64
	reading     sensors.LightReading
	health      SensorHealth
	restarts    int
	luxWindow   *util.RollingWindow

	displayStatus   int
	displayErrors   int
	telemetryStatus telemetry.Status
}

func NewController(config configuration.Configuration, deps Dependencies) *Controller {
	if deps.Clock == nil {
		deps.Clock = clock.System()
	}
	if deps.Schedule == nil {
		deps.Schedule = sun.Today
	}
	if deps.LoadTable == nil {
		deps.LoadTable = luxtable.Load
	}

	return &Controller{
		id:         config.Display.Address.String(),
		deps:       deps,
		config:     config,
		tablePath:  luxtable.ResolvePath(config.LuxTable.Path),
		lastMinute: noMinute,
		first:      true,
		schedule:   sun.UnknownSchedule(),
		dimming:    dimming.NewState(),
		shownLevel: noLevel,
		// counts start out as valid zeros until the first measurement
		reading:   sensors.LightReading{},
		luxWindow: util.CreateRollingWindow(LuxWindowSize),
	}
}

// Id identifies this clock in the status registry.
func (c *Controller) Id() string {
	return c.id
}

func (c *Controller) luxMode() bool {
	return c.deps.Sensor != nil
}

// Run powers up the hardware and ticks once per minute until ctx is done.
// The display and the sensor are powered down before Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.deps.Display.Init(true); err != nil {
		ui.Error("Display init failed: %v", err)
		c.displayStatus = DisplayStatusError
	}
	if c.luxMode() {
		if err := c.deps.Sensor.Init(true); err != nil {
			ui.Error("Light sensor init failed: %v", err)
		}
		ui.Info("Dimming by ambient light, lux table: %s", c.tablePath)
	} else {
		ui.Info("Dimming by sunrise and sunset")
	}
	defer c.shutdown()

	pollInterval := c.config.Schedule.PollInterval
	for {
		if ctx.Err() != nil {
			return nil
		}

		now := c.deps.Clock.Now()
		if now.Minute() != c.lastMinute {
			c.lastMinute = now.Minute()
			c.Tick(ctx, now)
		}

		if err := c.deps.Clock.Sleep(ctx, pollInterval); err != nil {
			return nil
		}
	}
}

func (c *Controller) shutdown() {
	ui.Info("Shutting down clock %s", c.id)
	if err := c.deps.Display.Init(false); err != nil {
		ui.Error("Display shutdown failed: %v", err)
	}
	if c.luxMode() {
		if err := c.deps.Sensor.Init(false); err != nil {
			ui.Error("Light sensor shutdown failed: %v", err)
		}
	}
	c.deps.Sink.Disconnect()
}

// Tick runs one minute update for the wall clock time now. Unless this is
// the first tick, it then waits for the sample second and measures the
// ambient light for the next tick.
func (c *Controller) Tick(ctx context.Context, now time.Time) {
	shown := clock.At(now)

	if c.luxMode() {
		c.refreshTable(shown)
		c.dimming = dimming.UpdateByLux(c.dimming, c.smoothedLux, c.table, c.reading.Valid())
	} else {
		c.refreshSchedule(now, shown)
		c.dimming = dimming.UpdateByClock(c.dimming, shown, c.schedule)
	}

	c.updateDisplay(shown)

	if c.luxMode() && c.health.NeedsRestart() {
		c.restartSensor(ctx, now)
	}

	c.publishTelemetry()
	c.publishStatus(now, shown)

	if c.first {
		// the clock starts out of sync with the minute, no sample yet
		c.first = false
		return
	}

	wait := clock.UntilSecond(c.deps.Clock.Now(), c.config.Schedule.SampleSecond, time.Second)
	if err := c.deps.Clock.Sleep(ctx, wait); err != nil {
		return
	}
	if c.luxMode() {
		c.sample()
	}
}

func (c *Controller) isRecomputeTime(shown clock.ClockTime) bool {
	return shown.Hour == c.config.Schedule.RecomputeHour && shown.Minute == 0
}

func (c *Controller) refreshSchedule(now time.Time, shown clock.ClockTime) {
	if !c.isRecomputeTime(shown) && c.schedule.Known() {
		return
	}
	c.schedule = c.deps.Schedule(now)
	ui.Info("Sunset is expected at %s, sunrise at %s", c.schedule.Sunset(), c.schedule.Sunrise())

	if c.first {
		c.dimming = dimming.Seed(c.dimming, shown, c.schedule)
		ui.Debug("Initial dimming level: %d", c.dimming.Level)
	}
}

func (c *Controller) refreshTable(shown clock.ClockTime) {
	if !c.isRecomputeTime(shown) && c.tableLoaded {
		return
	}
	table, err := c.deps.LoadTable(c.tablePath)
	if err != nil {
		// keep the previous table instead of dropping every threshold
		ui.Warning("Unable to load lux table, keeping the previous one: %v", err)
	} else {
		c.table = table
		ui.Info("Lux table read: %s, values: %v", c.tablePath, c.table)
	}
	c.tableLoaded = true
}

func (c *Controller) updateDisplay(shown clock.ClockTime) {
	codes := segment.EncodeClock(shown)
	level := c.dimming.Level
	levelChanged := level != c.shownLevel

	err := c.deps.Display.Show(codes, level, levelChanged)
	if err != nil {
		c.displayStatus = DisplayStatusError
		c.displayErrors++
		ui.Error("Display update failed: %v", err)
		return
	}
	c.displayStatus = 0

	ui.Debug("Showing %s, codes % x", shown, codes)
	if levelChanged {
		ui.Info("Display dimming is set to %d (%s)", level, c.dimming.Direction)
		c.shownLevel = level
	} else {
		ui.Debug("Display dimming is unchanged: %d", level)
	}
}

func (c *Controller) restartSensor(ctx context.Context, now time.Time) {
	ui.Warning("Light sensor delivered %d bad readings in a row, power cycling it", c.health.Failures())

	err := c.deps.Sensor.Init(false)
	if err == nil {
		if sleepErr := c.deps.Clock.Sleep(ctx, c.config.Sensor.RestartDelay); sleepErr != nil {
			err = sleepErr
		} else {
			err = c.deps.Sensor.Init(true)
		}
	}

	success := err == nil
	if success {
		c.smoothedLux = 0
		ui.Info("Light sensor restarted")
	} else {
		c.health.RestartFailed()
		ui.Error("Light sensor restart failed: %v", err)
	}
	c.restarts++

	if err := c.deps.Persistence.RecordRestart(now, success); err != nil {
		ui.Warning("Unable to record sensor restart: %v", err)
	}
}

func (c *Controller) publishTelemetry() {
	connection := c.deps.Sink.EnsureConnected()
	if connection == telemetry.StatusConnected && c.luxMode() && c.health.NeedsRestart() {
		connection = telemetry.StatusSensorRestart
	}
	c.telemetryStatus = connection

	if !connection.CanPublish() {
		return
	}
	payload := telemetry.Payload{
		Lux:          c.smoothedLux,
		Dimming:      c.dimming.Level,
		Mqtt:         connection,
		IR:           c.reading.IR,
		Broadband:    c.reading.Broadband,
		DisplayError: c.displayStatus,
	}
	if err := c.deps.Sink.Publish(payload); err != nil {
		ui.Warning("Unable to publish telemetry: %v", err)
	}
}

func (c *Controller) sample() {
	reading := c.deps.Sensor.Read()
	c.reading = reading
	c.smoothedLux = Smooth(c.smoothedLux, reading)
	c.health.Record(reading, c.smoothedLux)
	if reading.Valid() {
		c.luxWindow.Append(reading.Lux)
	}
	ui.Debug("Measured %s, smoothed lux: %.4f", reading, c.smoothedLux)
}

// Snapshot returns the current state of the clock.
func (c *Controller) Snapshot(now time.Time, shown clock.ClockTime) status.Snapshot {
	mode := status.ModeClock
	if c.luxMode() {
		mode = status.ModeLux
	}
	return status.Snapshot{
		Id:             c.id,
		Time:           now,
		Shown:          shown,
		Mode:           mode,
		Dimming:        c.dimming,
		SmoothedLux:    c.smoothedLux,
		Reading:        c.reading,
		SensorFailures: c.health.Failures(),
		SensorRestarts: c.restarts,
		LuxWindowMin:   util.GetWindowMin(c.luxWindow),
		LuxWindowMax:   util.GetWindowMax(c.luxWindow),
		LuxWindowAvg:   util.GetWindowAvg(c.luxWindow),
		DisplayStatus:  c.displayStatus,
		DisplayErrors:  c.displayErrors,
		Telemetry:      c.telemetryStatus,
		Schedule:       c.schedule,
		LuxTable:       c.table,
	}
}

func (c *Controller) publishStatus(now time.Time, shown clock.ClockTime) {
	snapshot := c.Snapshot(now, shown)
	status.Publish(snapshot)
	if err := c.deps.Persistence.SaveStatus(snapshot); err != nil {
		ui.Warning("Unable to persist status: %v", err)
	}
}
