package timeexpr

import (
	"math"
	"time"
)

// Unit is a calendar unit used by relative expressions.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

func (u Unit) String() string {
	switch u {
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	return "unknown"
}

// FirstDayOfWeek is the weekday weeks start on for every rule.
const FirstDayOfWeek = time.Sunday

// instant is the smallest step between the end of one range and the start
// of the next.
const instant = time.Millisecond

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-instant)
}

// StartOf returns the first instant of the unit containing t.
func StartOf(t time.Time, u Unit) time.Time {
	y, m, _ := t.Date()
	switch u {
	case Week:
		offset := (int(t.Weekday()) - int(FirstDayOfWeek) + 7) % 7
		return startOfDay(t).AddDate(0, 0, -offset)
	case Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	}
	return startOfDay(t)
}

// EndOf returns the last millisecond of the unit containing t.
func EndOf(t time.Time, u Unit) time.Time {
	start := StartOf(t, u)
	switch u {
	case Week:
		return start.AddDate(0, 0, 7).Add(-instant)
	case Month:
		return start.AddDate(0, 1, 0).Add(-instant)
	case Year:
		return start.AddDate(1, 0, 0).Add(-instant)
	}
	return endOfDay(t)
}

// Subtract moves t back n units. Month and year steps clamp the day to the
// length of the target month, so 31 March minus one month is the last day
// of February. Counts reaching further back than Earliest clamp to it.
func Subtract(t time.Time, n int, u Unit) time.Time {
	if n > maxYearsBack*unitsPerYear[u] {
		return Earliest
	}
	var back time.Time
	switch u {
	case Week:
		back = t.AddDate(0, 0, -7*n)
	case Month:
		back = addMonths(t, -n)
	case Year:
		back = addMonths(t, -12*n)
	default:
		back = t.AddDate(0, 0, -n)
	}
	if back.Before(Earliest) {
		return Earliest
	}
	return back
}

// Earliest is the floor for every look-back computation.
var Earliest = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

const maxYearsBack = 10000

var unitsPerYear = map[Unit]int{Day: 366, Week: 53, Month: 12, Year: 1}

// lookBack moves t back n fixed steps of at most a day. Counts too large
// for a time.Duration go through whole days first.
func lookBack(t time.Time, n int, step time.Duration) time.Time {
	if int64(n) <= math.MaxInt64/int64(step) {
		if back := t.Add(-time.Duration(n) * step); !back.Before(Earliest) {
			return back
		}
		return Earliest
	}
	perDay := int(24 * time.Hour / step)
	back := Subtract(t, n/perDay, Day).Add(-time.Duration(n%perDay) * step)
	if back.Before(Earliest) {
		return Earliest
	}
	return back
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
