// Package sun estimates sunrise and sunset clock times.
//
// The algorithm is the simple solar transit approximation described at
// http://users.electromagnetic.net/bu/astro/sunrise-set.php and is accurate
// to roughly 15 minutes outside of polar regions.
package sun

import (
	"fmt"
	"math"
	"time"

	"github.com/luxclock/luxclock/internal/clock"
)

// Location of the clock. Longitude is measured positive towards the west.
const (
	Latitude      = 47.5
	LongitudeWest = -19.0
)

// Unknown marks a schedule field that has not been computed yet.
const Unknown = -1

const (
	j2000        = 2451545.0
	jdCorrection = 0.0009
	// sun elevation at rise/set, corrected for refraction and disc size
	elevationDeg = -0.83
	obliquityDeg = 23.45
)

// Schedule holds the sunset and sunrise clock times of one day.
type Schedule struct {
	SunsetHour    int `json:"sunsetHour"`
	SunsetMinute  int `json:"sunsetMinute"`
	SunriseHour   int `json:"sunriseHour"`
	SunriseMinute int `json:"sunriseMinute"`
}

// UnknownSchedule returns a schedule with every field set to Unknown.
func UnknownSchedule() Schedule {
	return Schedule{Unknown, Unknown, Unknown, Unknown}
}

// Known reports whether no field holds the Unknown sentinel.
func (s Schedule) Known() bool {
	return s.SunsetHour != Unknown && s.SunsetMinute != Unknown &&
		s.SunriseHour != Unknown && s.SunriseMinute != Unknown
}

func (s Schedule) Sunset() clock.ClockTime {
	return clock.ClockTime{Hour: s.SunsetHour, Minute: s.SunsetMinute}
}

func (s Schedule) Sunrise() clock.ClockTime {
	return clock.ClockTime{Hour: s.SunriseHour, Minute: s.SunriseMinute}
}

func (s Schedule) String() string {
	return fmt.Sprintf("sunrise %s, sunset %s", s.Sunrise(), s.Sunset())
}

// JulianDay returns the Julian day number of the calendar date of t.
func JulianDay(t time.Time) int {
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	epoch := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(date.Sub(epoch).Hours()/24) + int(j2000)
}

// Compute calculates the schedule for the given location and date.
// utcOffset is the local clock offset to UTC in whole hours.
func Compute(latitude, longitudeWest float64, date time.Time, utcOffset int) Schedule {
	jd := float64(JulianDay(date))
	latRad := deg2rad(latitude)

	n := math.Round((jd - j2000 - jdCorrection) - longitudeWest/360)
	noonApprox := j2000 + jdCorrection + longitudeWest/360 + n

	meanAnomaly := math.Mod(357.5291+0.98560028*(noonApprox-j2000), 360)
	mRad := deg2rad(meanAnomaly)
	center := 1.9148*math.Sin(mRad) + 0.0200*math.Sin(2*mRad) + 0.0003*math.Sin(3*mRad)
	eclipticLon := math.Mod(meanAnomaly+102.9372+center+180, 360)
	lambdaRad := deg2rad(eclipticLon)

	transit := noonApprox + 0.0053*math.Sin(mRad) - 0.0069*math.Sin(2*lambdaRad)
	declination := math.Asin(math.Sin(lambdaRad) * math.Sin(deg2rad(obliquityDeg)))
	hourAngle := math.Acos((math.Sin(deg2rad(elevationDeg)) - math.Sin(latRad)*math.Sin(declination)) /
		(math.Cos(latRad) * math.Cos(declination)))

	setNoon := j2000 + jdCorrection + (rad2deg(hourAngle)+longitudeWest)/360 + n
	sunset := setNoon + 0.0053*math.Sin(mRad) - 0.0069*math.Sin(2*lambdaRad)
	sunrise := transit - (sunset - transit)

	// Julian days start at noon
	setHours := 12 + fraction(sunset)*24 + float64(utcOffset)
	riseHours := fraction(sunrise)*24 - 12 + float64(utcOffset)

	setHour, setMinute := splitHours(setHours)
	riseHour, riseMinute := splitHours(riseHours)
	return Schedule{
		SunsetHour:    setHour,
		SunsetMinute:  setMinute,
		SunriseHour:   riseHour,
		SunriseMinute: riseMinute,
	}
}

// UTCOffset returns the hour difference between UTC and the local clock of t.
//
// Only the central european zone names are known, every other zone is
// treated as UTC. Add zones here when deploying elsewhere.
func UTCOffset(t time.Time) int {
	offset := 0
	name, _ := t.Zone()
	switch name {
	case "CET", "CEST":
		offset++
	}
	if t.IsDST() {
		offset++
	}
	return offset
}

// Today computes the schedule of the fixed location for the date of now.
func Today(now time.Time) Schedule {
	return Compute(Latitude, LongitudeWest, now, UTCOffset(now))
}

func splitHours(hours float64) (int, int) {
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return h, m
}

func fraction(x float64) float64 {
	return x - float64(int64(x))
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func rad2deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
