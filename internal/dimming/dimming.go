// Package dimming decides the display brightness level, either from the
// time of day relative to sunrise and sunset or from the ambient light.
//
// All functions are pure: they take the previous State and return the
// next one, the caller carries the state from tick to tick.
package dimming

import (
	"fmt"

	"github.com/luxclock/luxclock/internal/clock"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/luxclock/luxclock/internal/util"
)

type Direction int

const (
	Decreasing Direction = -1
	Steady     Direction = 0
	Increasing Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Decreasing:
		return "decreasing"
	case Increasing:
		return "increasing"
	}
	return "steady"
}

const (
	MinLevel = 0
	MaxLevel = 15

	// FallbackLevel is used in lux mode while the sensor delivers no data.
	FallbackLevel = 3

	// Hysteresis is the factor by which the lux value has to exceed the
	// threshold of a higher level before that level is accepted.
	Hysteresis = 1.05
)

type State struct {
	Direction Direction `json:"direction"`
	Level     int       `json:"level"`
	MinLevel  int       `json:"minLevel"`
	MaxLevel  int       `json:"maxLevel"`
}

// NewState returns the state at process start: level 0, steady.
func NewState() State {
	return State{
		Direction: Steady,
		Level:     MinLevel,
		MinLevel:  MinLevel,
		MaxLevel:  MaxLevel,
	}
}

func (s State) String() string {
	return fmt.Sprintf("level=%d direction=%s", s.Level, s.Direction)
}

// Seed sets the level directly, without ramping: minimum while the sun is
// down, maximum while it is up.
func Seed(state State, now clock.ClockTime, schedule sun.Schedule) State {
	if !now.After(schedule.Sunrise()) || now.After(schedule.Sunset()) {
		state.Level = state.MinLevel
	} else {
		state.Level = state.MaxLevel
	}
	state.Direction = Steady
	return state
}

// UpdateByClock advances the sunrise/sunset ramp by at most one level.
// A ramp starts at the exact sunset or sunrise minute and continues every
// minute until the level reaches its bound.
func UpdateByClock(state State, now clock.ClockTime, schedule sun.Schedule) State {
	switch {
	case now.Equal(schedule.Sunset()) || state.Direction == Decreasing:
		if state.Level > state.MinLevel {
			state.Level--
			state.Direction = Decreasing
		} else {
			state.Direction = Steady
		}
	case now.Equal(schedule.Sunrise()) || state.Direction == Increasing:
		if state.Level < state.MaxLevel {
			state.Level++
			state.Direction = Increasing
		} else {
			state.Direction = Steady
		}
	}
	return state
}

// UpdateByLux selects the level from table for the smoothed lux value.
// Raising the level requires the lux to exceed the new threshold by the
// hysteresis factor. Without a valid most recent reading the fallback
// level is used.
func UpdateByLux(state State, lux float64, table luxtable.Table, readingValid bool) State {
	previous := state.Level

	if !readingValid {
		state.Level = FallbackLevel
	} else {
		level := table.Lookup(lux)
		if level > previous && lux < float64(table[level])*Hysteresis {
			level = previous
		}
		state.Level = util.Clamp(level, state.MinLevel, state.MaxLevel)
	}

	state.Direction = Direction(util.Sign(state.Level - previous))
	return state
}
