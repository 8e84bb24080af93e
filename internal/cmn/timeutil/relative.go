// Package timeutil formats signed counts of time units as relative phrases.
package timeutil

import (
	"fmt"
	"time"
)

// Unit is a bare singular time unit name. FormatRelative appends the plural
// suffix itself, so units must never be passed pre-pluralized.
type Unit string

const (
	Second Unit = "second"
	Minute Unit = "minute"
	Hour   Unit = "hour"
	Day    Unit = "day"
	Week   Unit = "week"
	Month  Unit = "month"
	Year   Unit = "year"
)

// Approximate lengths used by Relative. Months and years are calendar-free.
const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day
	year  = 365 * day
)

// FormatRelative renders n units relative to now.
// Examples:
//   - 0, "day"   -> "now"
//   - 1, "day"   -> "1 day later"
//   - -1, "day"  -> "1 day ago"
//   - 5, "day"   -> "5 days later"
//   - -3, "hour" -> "3 hours ago"
func FormatRelative(n int64, unit string) string {
	if n == 0 {
		return "now"
	}

	direction := "later"
	mag := uint64(n)
	if n < 0 {
		direction = "ago"
		// Two's complement negation keeps math.MinInt64 exact.
		mag = -mag
	}

	if mag == 1 {
		return fmt.Sprintf("%d %s %s", mag, unit, direction)
	}
	return fmt.Sprintf("%d %ss %s", mag, unit, direction)
}

// Relative describes t relative to ref using the largest whole unit that fits,
// e.g. "2 hours ago" or "3 days later". Differences under a second are "now".
func Relative(t, ref time.Time) string {
	// Sub saturates at the int64 bounds; negate in uint64 so the
	// math.MinInt64 gap keeps its magnitude.
	d := t.Sub(ref)
	abs := uint64(d)
	if d < 0 {
		abs = -abs
	}

	var (
		unit Unit
		size time.Duration
	)
	switch {
	case abs < uint64(time.Second):
		return FormatRelative(0, string(Second))
	case abs < uint64(time.Minute):
		unit, size = Second, time.Second
	case abs < uint64(time.Hour):
		unit, size = Minute, time.Minute
	case abs < uint64(day):
		unit, size = Hour, time.Hour
	case abs < uint64(week):
		unit, size = Day, day
	case abs < uint64(month):
		unit, size = Week, week
	case abs < uint64(year):
		unit, size = Month, month
	default:
		unit, size = Year, year
	}

	// Duration division truncates toward zero, which keeps the sign.
	return FormatRelative(int64(d/size), string(unit))
}
