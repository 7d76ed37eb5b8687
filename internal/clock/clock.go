// Package clock provides the wall clock used by the minute tick loop.
package clock

import (
	"context"
	"fmt"
	"time"
)

// ClockTime is the hour/minute snapshot shown on the display.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// At returns the ClockTime of t in t's location.
func At(t time.Time) ClockTime {
	h, m, _ := t.Clock()
	return ClockTime{Hour: h, Minute: m}
}

// MinuteOfDay returns the number of minutes since midnight.
func (c ClockTime) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) Equal(o ClockTime) bool {
	return c.Hour == o.Hour && c.Minute == o.Minute
}

func (c ClockTime) Before(o ClockTime) bool {
	return c.MinuteOfDay() < o.MinuteOfDay()
}

func (c ClockTime) After(o ClockTime) bool {
	return c.MinuteOfDay() > o.MinuteOfDay()
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Clock abstracts time so the tick loop can be driven by tests.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever happens first.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

// System returns the real local wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sleeping %s: %w", d, ctx.Err())
	}
}

// UntilSecond returns how long to wait from now until the given second of
// the current minute. If that second has already passed, minWait is returned.
func UntilSecond(now time.Time, second int, minWait time.Duration) time.Duration {
	target := now.Truncate(time.Minute).Add(time.Duration(second) * time.Second)
	d := target.Sub(now)
	if d < minWait {
		return minWait
	}
	return d
}
