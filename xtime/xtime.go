// Package xtime extends Go's time with a calendar value type, [Datetime],
// and a parser for loosely formatted times of day like "8", "800", "8pm" or "08:00PM".
//
// Go's time package is the calendar engine: zones, DST rules and month arithmetic
// are always delegated to it. This package only adds parsing, disambiguation and
// arithmetic policy on top.
package xtime

import "time"

// Durations used as range steps.
const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// Unit is a calendar unit used for truncation with [Datetime.StartOf] and [Datetime.EndOf].
type Unit int

// All available truncation units.
const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
	msPerWeek   = 7 * msPerDay
)

// Days are the day names, indexed by [time.Weekday].
var Days = [...]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// Months are the month names, indexed by month number minus one.
var Months = [...]string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// DayOfWeek returns the name of the given weekday.
func DayOfWeek(w time.Weekday) string {
	return Days[w]
}

func (u Unit) String() string {
	switch u {
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	default:
		return "unknown"
	}
}
