package dimming

import (
	"testing"

	"github.com/luxclock/luxclock/internal/clock"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/stretchr/testify/assert"
)

var schedule = sun.Schedule{
	SunsetHour:    18,
	SunsetMinute:  30,
	SunriseHour:   6,
	SunriseMinute: 45,
}

func TestSeed(t *testing.T) {
	tests := []struct {
		now      clock.ClockTime
		expected int
	}{
		{clock.ClockTime{Hour: 7, Minute: 5}, MaxLevel},
		{clock.ClockTime{Hour: 6, Minute: 45}, MinLevel},
		{clock.ClockTime{Hour: 6, Minute: 46}, MaxLevel},
		{clock.ClockTime{Hour: 18, Minute: 30}, MaxLevel},
		{clock.ClockTime{Hour: 18, Minute: 31}, MinLevel},
		{clock.ClockTime{Hour: 0, Minute: 0}, MinLevel},
	}

	for _, test := range tests {
		// WHEN
		state := Seed(NewState(), test.now, schedule)

		// THEN
		assert.Equal(t, test.expected, state.Level, test.now.String())
		assert.Equal(t, Steady, state.Direction)
	}
}

func TestUpdateByClock_SunriseRamp(t *testing.T) {
	// GIVEN
	state := NewState()
	sunrise := schedule.Sunrise()

	for expected := 1; expected <= MaxLevel; expected++ {
		// WHEN
		state = UpdateByClock(state, sunrise, schedule)

		// THEN
		assert.Equal(t, expected, state.Level)
		assert.Equal(t, Increasing, state.Direction)
	}

	// WHEN
	state = UpdateByClock(state, sunrise, schedule)

	// THEN
	assert.Equal(t, MaxLevel, state.Level)
	assert.Equal(t, Steady, state.Direction)

	// WHEN
	state = UpdateByClock(state, sunrise, schedule)

	// THEN
	assert.Equal(t, MaxLevel, state.Level)
	assert.Equal(t, Steady, state.Direction)
}

func TestUpdateByClock_SunsetRampContinuesAfterSunsetMinute(t *testing.T) {
	// GIVEN
	state := State{Direction: Steady, Level: 2, MinLevel: MinLevel, MaxLevel: MaxLevel}

	// WHEN
	state = UpdateByClock(state, schedule.Sunset(), schedule)

	// THEN
	assert.Equal(t, State{Direction: Decreasing, Level: 1, MinLevel: 0, MaxLevel: 15}, state)

	// WHEN
	state = UpdateByClock(state, clock.ClockTime{Hour: 18, Minute: 31}, schedule)

	// THEN
	assert.Equal(t, 0, state.Level)
	assert.Equal(t, Decreasing, state.Direction)

	// WHEN
	state = UpdateByClock(state, clock.ClockTime{Hour: 18, Minute: 32}, schedule)

	// THEN
	assert.Equal(t, 0, state.Level)
	assert.Equal(t, Steady, state.Direction)
}

func TestUpdateByClock_NoChangeDuringDay(t *testing.T) {
	// GIVEN
	state := State{Direction: Steady, Level: 15, MinLevel: MinLevel, MaxLevel: MaxLevel}

	// WHEN
	result := UpdateByClock(state, clock.ClockTime{Hour: 12, Minute: 0}, schedule)

	// THEN
	assert.Equal(t, state, result)
}

func TestUpdateByLux_Hysteresis(t *testing.T) {
	// GIVEN
	table := luxtable.Table{}
	table[1] = 100
	table[2] = 200
	state := NewState()

	// WHEN
	result := UpdateByLux(state, 101, table, true)

	// THEN
	assert.Equal(t, 0, result.Level)
	assert.Equal(t, Steady, result.Direction)

	// WHEN
	result = UpdateByLux(state, 210, table, true)

	// THEN
	assert.Equal(t, 2, result.Level)
	assert.Equal(t, Increasing, result.Direction)
}

func TestUpdateByLux_DecreaseWithoutHysteresis(t *testing.T) {
	// GIVEN
	table := luxtable.Table{}
	table[1] = 100
	table[2] = 200
	state := State{Direction: Steady, Level: 2, MinLevel: MinLevel, MaxLevel: MaxLevel}

	// WHEN
	result := UpdateByLux(state, 199, table, true)

	// THEN
	assert.Equal(t, 1, result.Level)
	assert.Equal(t, Decreasing, result.Direction)
}

func TestUpdateByLux_EmptyTable(t *testing.T) {
	// GIVEN
	state := State{Direction: Steady, Level: 5, MinLevel: MinLevel, MaxLevel: MaxLevel}

	// WHEN
	result := UpdateByLux(state, 1000, luxtable.Table{}, true)

	// THEN
	assert.Equal(t, 0, result.Level)
	assert.Equal(t, Decreasing, result.Direction)
}

func TestUpdateByLux_InvalidReadingFallsBack(t *testing.T) {
	// GIVEN
	table := luxtable.Table{}
	table[10] = 5
	state := State{Direction: Steady, Level: 10, MinLevel: MinLevel, MaxLevel: MaxLevel}

	// WHEN
	result := UpdateByLux(state, 5000, table, false)

	// THEN
	assert.Equal(t, FallbackLevel, result.Level)
	assert.Equal(t, Decreasing, result.Direction)

	// WHEN
	result = UpdateByLux(result, 5000, table, false)

	// THEN
	assert.Equal(t, FallbackLevel, result.Level)
	assert.Equal(t, Steady, result.Direction)
}
