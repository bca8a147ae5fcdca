package xtime

import (
	"cmp"
	"fmt"
)

// Distances between two instants in every unit used to describe them in words.
// Months and years are approximations of 30 and 365 days.
type Distances struct {
	Minutes int64
	Hours   int64
	Days    int64
	Weeks   int64
	Months  int64
	Years   int64
}

// JustNow is the description of distances shorter than a minute.
const JustNow = "Just Now"

// Compare returns -1 if d is before o, 0 if they are the same instant and +1 if d is after o.
// Unlike the Is methods, empty values are compared as the epoch.
func (d Datetime) Compare(o Datetime) int {
	return cmp.Compare(d.UnixMilli(), o.UnixMilli())
}

// IsEqual returns true if d and o are the same instant. It is false if o is empty.
func (d Datetime) IsEqual(o Datetime) bool {
	return !o.IsEmpty() && d.Compare(o) == 0
}

// IsBefore returns true if d happens before o. It is false if o is empty.
func (d Datetime) IsBefore(o Datetime) bool {
	return !o.IsEmpty() && d.Compare(o) < 0
}

// IsAfter returns true if d happens after o. It is false if o is empty.
func (d Datetime) IsAfter(o Datetime) bool {
	return !o.IsEmpty() && d.Compare(o) > 0
}

// IsOnOrAfter returns true if d is equal to or after o.
func (d Datetime) IsOnOrAfter(o Datetime) bool {
	return d.IsEqual(o) || d.IsAfter(o)
}

// IsOnOrBefore returns true if d is equal to or before o.
func (d Datetime) IsOnOrBefore(o Datetime) bool {
	return d.IsEqual(o) || d.IsBefore(o)
}

// IsBetween returns true if d is in the half open interval [start, end).
// Midnight belongs to the day it starts, not to the one it ends.
func (d Datetime) IsBetween(start, end Datetime) bool {
	return d.IsOnOrAfter(start) && d.IsBefore(end)
}

// IsSameDay returns true if o happens on the day of d.
func (d Datetime) IsSameDay(o Datetime) bool {
	return o.IsBetween(d.Midnight(), d.NextDay().Midnight())
}

// IsAM returns true before noon.
func (d Datetime) IsAM() bool {
	return d.Hour() < 12
}

// IsPM returns true from noon on.
func (d Datetime) IsPM() bool {
	return d.Hour() >= 12
}

// IsNoon returns true at 12:00, ignoring seconds.
func (d Datetime) IsNoon() bool {
	return d.Hour() == 12 && d.Minute() == 0
}

// IsMidnight returns true at 00:00, ignoring seconds.
func (d Datetime) IsMidnight() bool {
	return d.Hour() == 0 && d.Minute() == 0
}

// IsYesterday returns true if d falls on [Yesterday].
func (d Datetime) IsYesterday() bool {
	return d.IsBetween(Yesterday(), Today())
}

// IsToday returns true if d falls on [Today].
func (d Datetime) IsToday() bool {
	return d.IsBetween(Today(), Tomorrow())
}

// IsTomorrow returns true if d falls on [Tomorrow].
func (d Datetime) IsTomorrow() bool {
	return d.IsBetween(Tomorrow(), DayAfterTomorrow())
}

// MillisecondsBetween returns o minus d in milliseconds: positive if o is after d.
func (d Datetime) MillisecondsBetween(o Datetime) int64 {
	return o.UnixMilli() - d.UnixMilli()
}

// SecondsBetween returns the whole seconds from d to o, truncated toward zero.
func (d Datetime) SecondsBetween(o Datetime) int64 {
	return d.MillisecondsBetween(o) / msPerSecond
}

// MinutesBetween returns the whole minutes from d to o, truncated toward zero.
func (d Datetime) MinutesBetween(o Datetime) int64 {
	return d.MillisecondsBetween(o) / msPerMinute
}

// HoursBetween returns the whole hours from d to o, truncated toward zero.
// It counts elapsed time, so across a DST transition it differs from the wall clock.
func (d Datetime) HoursBetween(o Datetime) int64 {
	return d.MillisecondsBetween(o) / msPerHour
}

// DaysBetween returns the whole days of 24 hours from d to o, truncated toward zero.
// Half a day in either direction is 0.
func (d Datetime) DaysBetween(o Datetime) int64 {
	return d.MillisecondsBetween(o) / msPerDay
}

// WeeksBetween returns the whole weeks from d to o, truncated toward zero.
func (d Datetime) WeeksBetween(o Datetime) int64 {
	return d.MillisecondsBetween(o) / msPerWeek
}

// DistancesBetween returns the absolute distance between d and o in every unit.
func (d Datetime) DistancesBetween(o Datetime) Distances {
	minutes := d.MinutesBetween(o)
	if minutes < 0 {
		minutes = -minutes
	}
	hours := minutes / 60
	days := hours / 24
	return Distances{
		Minutes: minutes,
		Hours:   hours,
		Days:    days,
		Weeks:   days / 7,
		Months:  days / 30,
		Years:   days / 365,
	}
}

// DistanceOfTimeInWords describes the distance between d and o using its largest unit,
// like "5 min", "1 hour" or "3 weeks".
func (d Datetime) DistanceOfTimeInWords(o Datetime) string {
	dist := d.DistancesBetween(o)
	switch {
	case dist.Minutes == 0:
		return JustNow
	case dist.Hours < 1:
		// singular and plural are both "min"
		return fmt.Sprintf("%d min", dist.Minutes)
	case dist.Days < 1:
		return pluralize("hour", dist.Hours)
	case dist.Weeks < 1:
		return pluralize("day", dist.Days)
	case dist.Months < 1:
		return pluralize("week", dist.Weeks)
	case dist.Years < 1:
		return pluralize("month", dist.Months)
	default:
		return pluralize("year", dist.Years)
	}
}

// AbbreviatedDistanceOfTimeInWords is like [Datetime.DistanceOfTimeInWords] with
// one letter units: "5m", "1h", "3w", except months which are "mo".
func (d Datetime) AbbreviatedDistanceOfTimeInWords(o Datetime) string {
	dist := d.DistancesBetween(o)
	switch {
	case dist.Minutes == 0:
		return JustNow
	case dist.Hours < 1:
		return fmt.Sprintf("%dm", dist.Minutes)
	case dist.Days < 1:
		return fmt.Sprintf("%dh", dist.Hours)
	case dist.Weeks < 1:
		return fmt.Sprintf("%dd", dist.Days)
	case dist.Months < 1:
		return fmt.Sprintf("%dw", dist.Weeks)
	case dist.Years < 1:
		return fmt.Sprintf("%dmo", dist.Months)
	default:
		return fmt.Sprintf("%dy", dist.Years)
	}
}

// TimeInWords is the distance of time in words from d to [Now].
func (d Datetime) TimeInWords() string {
	return d.DistanceOfTimeInWords(Now())
}

// AbbreviatedTimeInWords is the abbreviated distance of time in words from d to [Now].
func (d Datetime) AbbreviatedTimeInWords() string {
	return d.AbbreviatedDistanceOfTimeInWords(Now())
}

// TimeAgoInWords is [Datetime.TimeInWords] followed by " ago", except for [JustNow].
func (d Datetime) TimeAgoInWords() string {
	words := d.TimeInWords()
	if words == JustNow {
		return words
	}
	return words + " ago"
}

// RelativeTo describes d in days relative to o: "Yesterday", "Today", "Tomorrow",
// "N days ago" or "In N days".
func (d Datetime) RelativeTo(o Datetime) string {
	days := o.DaysBetween(d)
	switch {
	case days < -1:
		return fmt.Sprintf("%d days ago", -days)
	case days == -1:
		return "Yesterday"
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", days)
	}
}

// RelativeToNow describes d in days relative to [Today].
func (d Datetime) RelativeToNow() string {
	return d.RelativeTo(Today())
}

// RelativeToInWeeks describes d in weeks relative to o: "Last Week", "This Week",
// "Next Week", "N weeks ago" or "In N weeks".
func (d Datetime) RelativeToInWeeks(o Datetime) string {
	weeks := o.WeeksBetween(d)
	switch {
	case weeks < -1:
		return fmt.Sprintf("%d weeks ago", -weeks)
	case weeks == -1:
		return "Last Week"
	case weeks == 0:
		return "This Week"
	case weeks == 1:
		return "Next Week"
	default:
		return fmt.Sprintf("In %d weeks", weeks)
	}
}

// DaysFromNow returns the days from [Today] to d: 1 is tomorrow, -1 is yesterday.
func (d Datetime) DaysFromNow() int64 {
	return Today().DaysBetween(d)
}

// WeeksFromNow returns the weeks from [Today] to d: 1 is next week, -1 is last week.
func (d Datetime) WeeksFromNow() int64 {
	return Today().WeeksBetween(d)
}

// HoursSince returns the whole hours elapsed from d to [Now].
func (d Datetime) HoursSince() int64 {
	return d.HoursBetween(Now())
}

// HoursUntil returns the whole hours from [Now] to d.
func (d Datetime) HoursUntil() int64 {
	return Now().HoursBetween(d)
}

func pluralize(unit string, n int64) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
