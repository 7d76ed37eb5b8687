package util

import "github.com/asecurityteam/rolling"

// RollingWindow keeps the last N values. Reductions only consider the
// values appended so far, not the zero filled buckets of a fresh window.
type RollingWindow struct {
	policy *rolling.PointPolicy
	size   int
	count  int
}

func CreateRollingWindow(size int) *RollingWindow {
	return &RollingWindow{
		policy: rolling.NewPointPolicy(rolling.NewWindow(size)),
		size:   size,
	}
}

// Append adds a value, replacing the oldest one once the window is full.
func (w *RollingWindow) Append(value float64) {
	w.policy.Append(value)
	if w.count < w.size {
		w.count++
	}
}

// Len returns the number of values in the window.
func (w *RollingWindow) Len() int {
	return w.count
}

// buckets are written from offset 0 onwards, so until the window is full
// the values live in the first count buckets
func (w *RollingWindow) reduce(f func(rolling.Window) float64) float64 {
	if w.count == 0 {
		return 0
	}
	return w.policy.Reduce(func(window rolling.Window) float64 {
		return f(window[:w.count])
	})
}

// GetWindowMax returns the largest value in the window
func GetWindowMax(window *RollingWindow) float64 {
	return window.reduce(rolling.Max)
}

// GetWindowMin returns the smallest value in the window
func GetWindowMin(window *RollingWindow) float64 {
	return window.reduce(rolling.Min)
}

// GetWindowAvg returns the average of all values in the window
func GetWindowAvg(window *RollingWindow) float64 {
	return window.reduce(rolling.Avg)
}
