package controller

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/luxclock/luxclock/internal/clock"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/dimming"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/persistence"
	"github.com/luxclock/luxclock/internal/sensors"
	"github.com/luxclock/luxclock/internal/status"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/luxclock/luxclock/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

var testSchedule = sun.Schedule{
	SunsetHour:    18,
	SunsetMinute:  30,
	SunriseHour:   6,
	SunriseMinute: 45,
}

type fakeClock struct {
	now      time.Time
	cancelAt time.Time
	cancel   context.CancelFunc
	slept    []time.Duration
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	if c.cancel != nil && !c.now.Before(c.cancelAt) {
		c.cancel()
		return ctx.Err()
	}
	return nil
}

type shown struct {
	codes         [4]byte
	brightness    int
	setBrightness bool
}

type fakeDisplay struct {
	inits []bool
	shown []shown
	fail  bool
}

func (d *fakeDisplay) Init(on bool) error {
	d.inits = append(d.inits, on)
	return nil
}

func (d *fakeDisplay) Show(codes [4]byte, brightness int, setBrightness bool) error {
	if d.fail {
		return errors.New("no ack")
	}
	d.shown = append(d.shown, shown{codes, brightness, setBrightness})
	return nil
}

func (d *fakeDisplay) last() shown {
	return d.shown[len(d.shown)-1]
}

type fakeSensor struct {
	reading  sensors.LightReading
	reads    int
	inits    []bool
	failInit bool
}

func (s *fakeSensor) GetType() string {
	return "fake"
}

func (s *fakeSensor) Init(on bool) error {
	s.inits = append(s.inits, on)
	if s.failInit {
		return errors.New("nack")
	}
	return nil
}

func (s *fakeSensor) Read() sensors.LightReading {
	s.reads++
	return s.reading
}

type fakeSink struct {
	status       telemetry.Status
	published    []telemetry.Payload
	disconnected bool
}

func (s *fakeSink) EnsureConnected() telemetry.Status {
	return s.status
}

func (s *fakeSink) Publish(payload telemetry.Payload) error {
	s.published = append(s.published, payload)
	return nil
}

func (s *fakeSink) Disconnect() {
	s.disconnected = true
}

func (s *fakeSink) last() telemetry.Payload {
	return s.published[len(s.published)-1]
}

func testConfig() configuration.Configuration {
	return configuration.Configuration{
		Display: configuration.DisplayConfig{Address: configuration.DefaultDisplayAddress},
		Sensor: configuration.SensorConfig{
			Type:         configuration.SensorTypeTSL2561,
			RestartDelay: 500 * time.Millisecond,
		},
		LuxTable: configuration.LuxTableConfig{Path: "/nonexistent/lux_dimming.txt"},
		Schedule: configuration.ScheduleConfig{
			PollInterval:  200 * time.Millisecond,
			SampleSecond:  58,
			RecomputeHour: 4,
		},
	}
}

type fixture struct {
	clock       *fakeClock
	display     *fakeDisplay
	sensor      *fakeSensor
	sink        *fakeSink
	persistence persistence.Persistence
	tableLoads  int
	table       luxtable.Table
	tableErr    error
}

func newFixture(t *testing.T, start time.Time) *fixture {
	p := persistence.NewPersistence(filepath.Join(t.TempDir(), "luxclock.db"))
	assert.NoError(t, p.Init())
	return &fixture{
		clock:       &fakeClock{now: start},
		display:     &fakeDisplay{},
		sink:        &fakeSink{status: telemetry.StatusConnected},
		persistence: p,
	}
}

func (f *fixture) controller(withSensor bool) *Controller {
	deps := Dependencies{
		Clock:       f.clock,
		Display:     f.display,
		Sink:        f.sink,
		Persistence: f.persistence,
		Schedule: func(now time.Time) sun.Schedule {
			return testSchedule
		},
		LoadTable: func(path string) (luxtable.Table, error) {
			f.tableLoads++
			return f.table, f.tableErr
		},
	}
	if withSensor {
		if f.sensor == nil {
			f.sensor = &fakeSensor{}
		}
		deps.Sensor = f.sensor
	}
	return NewController(testConfig(), deps)
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestController_FirstTickSeedsFromSchedule(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(7, 5))
	c := f.controller(false)

	// WHEN
	c.Tick(context.Background(), at(7, 5))

	// THEN
	assert.Equal(t, []shown{{
		codes:         [4]byte{0x3F, 0x07, 0x3F, 0x6D},
		brightness:    15,
		setBrightness: true,
	}}, f.display.shown)
	// no wait and no sample on the first tick
	assert.Empty(t, f.clock.slept)

	snapshot, ok := status.Get(c.Id())
	assert.True(t, ok)
	assert.Equal(t, status.ModeClock, snapshot.Mode)
	assert.Equal(t, testSchedule, snapshot.Schedule)
	assert.Equal(t, 15, snapshot.Dimming.Level)
}

func TestController_FirstTickBeforeSunrise(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(5, 0))
	c := f.controller(false)

	// WHEN
	c.Tick(context.Background(), at(5, 0))

	// THEN
	assert.Equal(t, 0, f.display.last().brightness)
	assert.True(t, f.display.last().setBrightness)
}

func TestController_BrightnessOnlyWrittenOnChange(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	c := f.controller(false)
	c.Tick(context.Background(), at(12, 0))

	// WHEN
	c.Tick(context.Background(), at(12, 1))

	// THEN
	assert.False(t, f.display.last().setBrightness)
	assert.Equal(t, [4]byte{0x06, 0x5B, 0x3F, 0x06}, f.display.last().codes)
}

func TestController_SunsetRamp(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(18, 29))
	c := f.controller(false)
	c.Tick(context.Background(), at(18, 29))

	// WHEN
	c.Tick(context.Background(), at(18, 30))
	c.Tick(context.Background(), at(18, 31))

	// THEN
	assert.Equal(t, 13, f.display.last().brightness)
	assert.True(t, f.display.last().setBrightness)
	assert.Equal(t, dimming.Decreasing, c.dimming.Direction)
}

func TestController_SleepsUntilSampleSecond(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	c := f.controller(true)
	c.Tick(context.Background(), at(12, 0))
	f.clock.now = at(12, 1).Add(200 * time.Millisecond)

	// WHEN
	c.Tick(context.Background(), at(12, 1))

	// THEN
	assert.Equal(t, []time.Duration{57*time.Second + 800*time.Millisecond}, f.clock.slept)
	assert.Equal(t, 1, f.sensor.reads)
}

func TestController_DisplayFailureIsReported(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.display.fail = true
	c := f.controller(false)

	// WHEN
	c.Tick(context.Background(), at(12, 0))

	// THEN
	assert.Equal(t, DisplayStatusError, f.sink.last().DisplayError)
	snapshot, _ := status.Get(c.Id())
	assert.Equal(t, 1, snapshot.DisplayErrors)
}

func TestController_TelemetryPayload(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.sink.status = telemetry.StatusReconnected
	c := f.controller(false)

	// WHEN
	c.Tick(context.Background(), at(12, 0))

	// THEN
	assert.Equal(t, telemetry.Payload{
		Lux:          0,
		Dimming:      15,
		Mqtt:         telemetry.StatusReconnected,
		IR:           0,
		Broadband:    0,
		DisplayError: 0,
	}, f.sink.last())
}

func TestController_NoPublishWithoutConnection(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.sink.status = telemetry.StatusFailed
	c := f.controller(false)

	// WHEN
	c.Tick(context.Background(), at(12, 0))

	// THEN
	assert.Empty(t, f.sink.published)
}

func TestController_LuxMode(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.table[5] = 200
	f.sensor = &fakeSensor{reading: sensors.LightReading{IR: 10, Broadband: 100, Lux: 1000}}
	c := f.controller(true)

	// WHEN
	c.Tick(context.Background(), at(12, 0))

	// THEN
	assert.Equal(t, 0, f.display.last().brightness)
	assert.Equal(t, 0, f.sensor.reads)

	// WHEN
	c.Tick(context.Background(), at(12, 1))
	c.Tick(context.Background(), at(12, 2))

	// THEN
	assert.Equal(t, 250.0, f.sink.last().Lux)
	assert.Equal(t, 5, f.display.last().brightness)
	assert.Equal(t, 1, f.tableLoads)
}

func TestController_LuxModeReloadsTableAtRecomputeHour(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(3, 59))
	c := f.controller(true)
	c.Tick(context.Background(), at(3, 59))

	// WHEN
	c.Tick(context.Background(), at(4, 0))
	c.Tick(context.Background(), at(4, 1))

	// THEN
	assert.Equal(t, 2, f.tableLoads)
}

func TestController_ClockModeRecomputesScheduleAtRecomputeHour(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(3, 58))
	c := f.controller(false)
	allDay := sun.Schedule{SunsetHour: 23, SunsetMinute: 0, SunriseHour: 3, SunriseMinute: 0}
	computations := 0
	c.deps.Schedule = func(now time.Time) sun.Schedule {
		computations++
		if computations == 1 {
			return testSchedule
		}
		return allDay
	}

	// WHEN
	c.Tick(context.Background(), at(3, 58))
	c.Tick(context.Background(), at(3, 59))
	c.Tick(context.Background(), at(4, 0))
	c.Tick(context.Background(), at(4, 1))

	// THEN
	assert.Equal(t, 2, computations)
	assert.Equal(t, allDay, c.schedule)
	assert.Equal(t, 0, f.display.last().brightness)
	assert.Equal(t, dimming.Steady, c.dimming.Direction)
}

func TestController_LuxWindowIgnoresUnfilledSlots(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.sensor = &fakeSensor{reading: sensors.LightReading{IR: 10, Broadband: 100, Lux: 500}}
	c := f.controller(true)
	c.Tick(context.Background(), at(12, 0))

	// WHEN
	c.Tick(context.Background(), at(12, 1))
	c.Tick(context.Background(), at(12, 2))
	c.Tick(context.Background(), at(12, 3))

	// THEN
	snapshot := c.Snapshot(at(12, 3), clock.At(at(12, 3)))
	assert.Equal(t, 500.0, snapshot.LuxWindowMin)
	assert.Equal(t, 500.0, snapshot.LuxWindowMax)
	assert.Equal(t, 500.0, snapshot.LuxWindowAvg)
}

func TestController_LuxModeKeepsTableWhenReloadFails(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(3, 59))
	f.table[5] = 200
	c := f.controller(true)
	c.Tick(context.Background(), at(3, 59))

	// WHEN
	f.tableErr = errors.New("read lux table: file does not exist")
	c.Tick(context.Background(), at(4, 0))

	// THEN
	assert.Equal(t, 2, f.tableLoads)
	assert.Equal(t, 200, c.table[5])
}

func TestController_LuxModeFallbackOnInvalidReading(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.table[1] = 100
	f.sensor = &fakeSensor{reading: sensors.InvalidReading()}
	c := f.controller(true)
	c.Tick(context.Background(), at(12, 0))
	c.Tick(context.Background(), at(12, 1))

	// WHEN
	c.Tick(context.Background(), at(12, 2))

	// THEN
	assert.Equal(t, dimming.FallbackLevel, f.display.last().brightness)
	assert.Equal(t, -1, f.sink.last().IR)
	assert.Equal(t, -1, f.sink.last().Broadband)
}

func TestController_DeadSensorIsPowerCycledOnce(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.sensor = &fakeSensor{reading: sensors.InvalidReading()}
	c := f.controller(true)
	c.smoothedLux = 42

	// first tick plus five invalid samples
	for minute := 0; minute <= SensorDeadLimit; minute++ {
		c.Tick(context.Background(), at(12, minute))
	}
	assert.Empty(t, f.sensor.inits)
	assert.Equal(t, SensorDeadLimit, c.health.Failures())

	// WHEN
	c.Tick(context.Background(), at(12, 6))

	// THEN
	assert.Equal(t, []bool{false, true}, f.sensor.inits)
	assert.Equal(t, telemetry.StatusSensorRestart, f.sink.last().Mqtt)
	assert.Equal(t, 0.0, f.sink.last().Lux)
	assert.Equal(t, SensorDeadLimit+1, c.health.Failures())

	// WHEN
	c.Tick(context.Background(), at(12, 7))

	// THEN
	assert.Len(t, f.sensor.inits, 2)
	assert.Equal(t, telemetry.StatusConnected, f.sink.last().Mqtt)

	records, err := f.persistence.LoadRestarts()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, records[0].Success)
}

func TestController_FailedPowerCycleResetsCounter(t *testing.T) {
	// GIVEN
	f := newFixture(t, at(12, 0))
	f.sensor = &fakeSensor{reading: sensors.InvalidReading(), failInit: true}
	c := f.controller(true)
	for minute := 0; minute <= SensorDeadLimit; minute++ {
		c.Tick(context.Background(), at(12, minute))
	}

	// WHEN
	c.Tick(context.Background(), at(12, 6))

	// THEN
	assert.Equal(t, []bool{false}, f.sensor.inits)
	assert.Equal(t, telemetry.StatusConnected, f.sink.last().Mqtt)
	// reset to 0, then the sample of this tick counts again
	assert.Equal(t, 1, c.health.Failures())

	records, _ := f.persistence.LoadRestarts()
	assert.Len(t, records, 1)
	assert.False(t, records[0].Success)
}

func TestController_RunTicksOncePerMinuteAndShutsDown(t *testing.T) {
	// GIVEN
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t, at(7, 5).Add(30*time.Second))
	f.clock.cancel = cancel
	f.clock.cancelAt = at(7, 8).Add(10 * time.Second)
	c := f.controller(true)

	// WHEN
	err := c.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, f.display.shown, 4)
	assert.Equal(t, [4]byte{0x3F, 0x07, 0x3F, 0x7F}, f.display.last().codes)
	assert.Equal(t, []bool{true, false}, f.display.inits)
	assert.Equal(t, []bool{true, false}, f.sensor.inits)
	// the sample of the last tick is cut short by the shutdown
	assert.Equal(t, 2, f.sensor.reads)
	assert.True(t, f.sink.disconnected)
}
