package xtime

import (
	"math"
	"time"
)

// AddTime returns d shifted by ms milliseconds, negative values move back in time.
// Every other Add method is defined in terms of it, except [Datetime.AddMonths].
func (d Datetime) AddTime(ms int64) Datetime {
	return d.with(d.std().Add(time.Duration(ms) * time.Millisecond))
}

// AddSeconds returns d shifted by n seconds.
func (d Datetime) AddSeconds(n int) Datetime {
	return d.AddTime(int64(n) * msPerSecond)
}

// AddMinutes returns d shifted by n minutes.
func (d Datetime) AddMinutes(n int) Datetime {
	return d.AddTime(int64(n) * msPerMinute)
}

// AddHours returns d shifted by n hours.
func (d Datetime) AddHours(n int) Datetime {
	return d.AddTime(int64(n) * msPerHour)
}

// AddDays returns d shifted by n periods of exactly 24 hours.
// On local values crossing a DST transition the wall clock changes by one hour.
func (d Datetime) AddDays(n int) Datetime {
	return d.AddTime(int64(n) * msPerDay)
}

// AddMeridian adds 12 hours if meridiem is a PM meridian, nothing otherwise.
// It expects a valid meridian, see [IsValidMeridian].
func (d Datetime) AddMeridian(meridiem string) Datetime {
	if IsPMMeridian(meridiem) {
		return d.AddHours(12)
	}
	return d.AddHours(0)
}

// AddMonths returns d shifted by n calendar months.
// Month arithmetic is delegated to [time.Time.AddDate], so overflowing days
// roll into the following month: Jan 31 plus one month is Mar 2 or 3.
func (d Datetime) AddMonths(n int) Datetime {
	return d.with(d.std().AddDate(0, n, 0))
}

// SetMonth returns d on the given month, keeping every other field.
// Out of range months and days are normalized by [time.Date].
func (d Datetime) SetMonth(m time.Month) Datetime {
	t := d.std()
	return d.with(time.Date(t.Year(), m, t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()))
}

// SetDayOfMonth returns d on the given day of its month, keeping every other field.
// Out of range days are normalized by [time.Date].
func (d Datetime) SetDayOfMonth(day int) Datetime {
	t := d.std()
	return d.with(time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()))
}

// StartOf returns the first instant of the unit containing d.
// Weeks start on Sunday.
func (d Datetime) StartOf(u Unit) Datetime {
	t := d.std()
	y, m, day := t.Date()

	switch u {
	case UnitWeek:
		day -= int(t.Weekday())
	case UnitMonth:
		day = 1
	case UnitYear:
		m, day = time.January, 1
	}
	return d.with(time.Date(y, m, day, 0, 0, 0, 0, t.Location()))
}

// EndOf returns the last millisecond of the unit containing d.
func (d Datetime) EndOf(u Unit) Datetime {
	start := d.StartOf(u)
	t := start.std()
	y, m, day := t.Date()

	switch u {
	case UnitWeek:
		day += 7
	case UnitMonth:
		m++
	case UnitYear:
		y++
	default:
		day++
	}
	next := time.Date(y, m, day, 0, 0, 0, 0, t.Location())
	return d.with(next.Add(-time.Millisecond))
}

// Midnight returns the start of the day of d.
func (d Datetime) Midnight() Datetime {
	return d.StartOf(UnitDay)
}

// BeginningOfWeek returns the start of the Sunday of the week of d.
func (d Datetime) BeginningOfWeek() Datetime {
	return d.StartOf(UnitWeek)
}

// EndOfWeek returns the last millisecond of the Saturday of the week of d.
func (d Datetime) EndOfWeek() Datetime {
	return d.EndOf(UnitWeek)
}

// FirstOfMonth returns d on the first day of its month, time of day is kept.
func (d Datetime) FirstOfMonth() Datetime {
	return d.SetDayOfMonth(1)
}

// LastOfMonth returns d on the last day of its month, time of day is kept.
func (d Datetime) LastOfMonth() Datetime {
	return d.SetDayOfMonth(d.DaysInMonth())
}

// NextDay returns d plus one day.
func (d Datetime) NextDay() Datetime {
	return d.AddDays(1)
}

// PreviousDay returns d minus one day.
func (d Datetime) PreviousDay() Datetime {
	return d.AddDays(-1)
}

// NextMonth returns d plus one month.
func (d Datetime) NextMonth() Datetime {
	return d.AddMonths(1)
}

// PreviousMonth returns d minus one month.
func (d Datetime) PreviousMonth() Datetime {
	return d.AddMonths(-1)
}

// SetTime returns the day of d at the hour and minutes of o.
func (d Datetime) SetTime(o Datetime) Datetime {
	return d.SetTimeValues(o.Hour(), o.Minute())
}

// SetTimeValues returns the day of d at the given hour and minutes.
func (d Datetime) SetTimeValues(hour, minutes int) Datetime {
	return d.Midnight().AddHours(hour).AddMinutes(minutes)
}

// ToUTC returns the same instant in UTC mode, adjusting the wall clock.
// 5pm PST becomes 1am UTC of the next day.
func (d Datetime) ToUTC() Datetime {
	return d.with(d.std().UTC())
}

// AsUTC returns the same wall clock in UTC mode, changing the instant.
// 5pm PST becomes 5pm UTC.
func (d Datetime) AsUTC() Datetime {
	t := d.std()
	return d.with(time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC))
}

// ToLocalDate returns the instant of d as a native time in the local zone.
func (d Datetime) ToLocalDate() time.Time {
	return d.std().In(localLocation())
}

// ToUTCAdjustedDate takes a UTC value and returns a native local time with the same
// wall clock, like a UTC 10:00 becoming 10:00 in the local zone.
//
// The offset must be the one of the target date, not of the current date, otherwise
// dates on the other side of a DST transition are off by one hour. So the local
// offset is discovered first by rendering d on the local zone, and only then applied.
func (d Datetime) ToUTCAdjustedDate() time.Time {
	local := FromTime(d.ToLocalDate())
	adjusted := d.AddMinutes(-local.TimezoneOffsetInMinutes())
	return adjusted.ToLocalDate()
}

// ToDate returns d as a native local time, see [Datetime.ToUTCAdjustedDate] for UTC values.
func (d Datetime) ToDate() time.Time {
	if d.IsUTC() {
		return d.ToUTCAdjustedDate()
	}
	return d.ToLocalDate()
}

// RoundMinutes rounds the minutes of d to the nearest multiple of interval.
func (d Datetime) RoundMinutes(interval int) int {
	return roundValue(d.Minute(), interval)
}

// RoundHours rounds the hour of d to the nearest multiple of interval.
func (d Datetime) RoundHours(interval int) int {
	return roundValue(d.Hour(), interval)
}

// RoundToNearestHour returns the day of d at the hour closest to d, minutes are dropped.
// From half past on it rounds up, possibly to midnight of the next day.
func (d Datetime) RoundToNearestHour() Datetime {
	offset := int(math.Round(float64(d.Minute()) / 60))
	return d.SetTimeValues(d.Hour()+offset, 0)
}

func roundValue(value, interval int) int {
	if interval == 0 {
		return value
	}
	return int(math.Round(float64(value)/float64(interval))) * interval
}
