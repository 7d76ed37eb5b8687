package sun

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJulianDay(t *testing.T) {
	assert.Equal(t, 2451545, JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2460483, JulianDay(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)))
	// leap day of 2024 is counted for dates in 2025
	assert.Equal(t, 2460968, JulianDay(time.Date(2025, 10, 19, 23, 59, 0, 0, time.UTC)))
}

func TestCompute_Budapest(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		offset   int
		expected Schedule
	}{
		{
			name:     "summer solstice",
			date:     time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
			offset:   2,
			expected: Schedule{SunsetHour: 20, SunsetMinute: 46, SunriseHour: 4, SunriseMinute: 47},
		},
		{
			name:     "winter solstice",
			date:     time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC),
			offset:   1,
			expected: Schedule{SunsetHour: 15, SunsetMinute: 56, SunriseHour: 7, SunriseMinute: 30},
		},
		{
			name:     "spring equinox",
			date:     time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			offset:   1,
			expected: Schedule{SunsetHour: 17, SunsetMinute: 57, SunriseHour: 5, SunriseMinute: 47},
		},
		{
			name:     "autumn",
			date:     time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC),
			offset:   2,
			expected: Schedule{SunsetHour: 17, SunsetMinute: 50, SunriseHour: 7, SunriseMinute: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			result := Compute(Latitude, LongitudeWest, tt.date, tt.offset)

			// THEN
			assert.Equal(t, tt.expected, result)
			assert.True(t, result.Known())
		})
	}
}

func TestCompute_OffsetShiftsBothTimes(t *testing.T) {
	date := time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC)

	utc := Compute(Latitude, LongitudeWest, date, 0)
	local := Compute(Latitude, LongitudeWest, date, 1)

	assert.Equal(t, utc.SunsetHour+1, local.SunsetHour)
	assert.Equal(t, utc.SunsetMinute, local.SunsetMinute)
	assert.Equal(t, utc.SunriseHour+1, local.SunriseHour)
	assert.Equal(t, utc.SunriseMinute, local.SunriseMinute)
}

func TestUTCOffset(t *testing.T) {
	budapest, err := time.LoadLocation("Europe/Budapest")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// CEST and daylight saving
	assert.Equal(t, 2, UTCOffset(time.Date(2024, 6, 21, 12, 0, 0, 0, budapest)))
	// CET
	assert.Equal(t, 1, UTCOffset(time.Date(2024, 12, 21, 12, 0, 0, 0, budapest)))
	// unknown zone name, no daylight saving
	assert.Equal(t, 0, UTCOffset(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, UTCOffset(time.Date(2024, 12, 21, 12, 0, 0, 0, newYork)))
	// unknown zone name, daylight saving still counts
	assert.Equal(t, 1, UTCOffset(time.Date(2024, 6, 21, 12, 0, 0, 0, newYork)))
}

func TestUnknownSchedule(t *testing.T) {
	s := UnknownSchedule()
	assert.False(t, s.Known())
	assert.Equal(t, Unknown, s.SunsetHour)
	assert.Equal(t, Unknown, s.SunriseMinute)
}

func TestToday(t *testing.T) {
	budapest, err := time.LoadLocation("Europe/Budapest")
	require.NoError(t, err)

	now := time.Date(2024, 6, 21, 7, 5, 0, 0, budapest)

	assert.Equal(t, Compute(Latitude, LongitudeWest, now, 2), Today(now))
}
