package xtime

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// Range defines a time range ensuring the invariant that [Range.Start()] <= [Range.End()].
type Range struct {
	start, end Datetime
}

// NewRange creates a new [Range] validating start/end.
// It ensures the invariant that [Range] always has start <= end.
func NewRange(start, end Datetime) (Range, error) {
	if start.IsEmpty() || end.IsEmpty() {
		return Range{}, fmt.Errorf("creating range: start %v and end %v can't be empty", start, end)
	}
	if start.IsAfter(end) {
		return Range{}, fmt.Errorf("creating range: start %v can't be after end %v", start, end)
	}
	return Range{start, end}, nil
}

// Start returns this range's start.
// It is guaranteed to be <= than [Range.End()].
func (r Range) Start() Datetime {
	return r.start
}

// End returns this range's end.
// It is guaranteed to be >= than [Range.Start()].
func (r Range) End() Datetime {
	return r.end
}

// Contains returns true if [d] is within the range, the end is not included.
func (r Range) Contains(d Datetime) bool {
	return d.IsBetween(r.start, r.end)
}

// Duration returns the duration of the time range.
func (r Range) Duration() time.Duration {
	return time.Duration(r.start.MillisecondsBetween(r.end)) * time.Millisecond
}

// Split returns a list of time ranges of at most [maxDuration] length that together make up [r].
func (r Range) Split(maxDuration time.Duration) []Range {
	var result []Range
	for maxDuration >= time.Millisecond && r.Duration() > maxDuration {
		next := r.start.AddTime(maxDuration.Milliseconds())
		result = append(result, Range{
			start: r.start,
			end:   next,
		})
		r.start = next
	}
	result = append(result, r)
	return result
}

// All returns every step of the range, see [Steps].
func (r Range) All(step time.Duration) iter.Seq[Datetime] {
	return Steps(r.start, r.end, step)
}

// Steps returns a lazy sequence that starts on start and moves by step until
// reaching end, which is not included. Every iteration starts over from start.
// Steps shorter than a millisecond, or an empty end, produce an empty sequence.
//
// The sequence has ceil((end - start) / step) values, in ascending order.
// The i-th value is exactly start + i*step, steps are not rounded to milliseconds.
func Steps(start, end Datetime, step time.Duration) iter.Seq[Datetime] {
	return func(yield func(Datetime) bool) {
		if step < time.Millisecond || end.IsEmpty() {
			return
		}
		from, until := start.std(), end.std()
		for i := time.Duration(0); ; i++ {
			t := from.Add(i * step)
			if !t.Before(until) {
				return
			}
			if !yield(start.with(t)) {
				return
			}
		}
	}
}

// DaysForWeek returns the start of each day of the week of d, Sunday to Saturday.
func (d Datetime) DaysForWeek() []Datetime {
	return days(d.BeginningOfWeek(), d.EndOfWeek())
}

// DaysForMonth returns the start of each day of the month of d.
func (d Datetime) DaysForMonth() []Datetime {
	return days(d.StartOf(UnitMonth), d.EndOf(UnitMonth))
}

// DaysForRoundedMonth is like [Datetime.DaysForMonth] but padded with the days of the
// previous and next months so the result is made of whole weeks, like on a calendar view.
func (d Datetime) DaysForRoundedMonth() []Datetime {
	return days(d.FirstOfMonth().BeginningOfWeek(), d.LastOfMonth().EndOfWeek())
}

// days returns the midnight of each calendar date from start until end.
// It moves by calendar days instead of 24 hours so local values keep
// their midnight across DST transitions.
func days(start, end Datetime) []Datetime {
	t := start.Midnight().std()
	var result []Datetime
	for i := 0; ; i++ {
		day := start.with(time.Date(t.Year(), t.Month(), t.Day()+i, 0, 0, 0, 0, t.Location()))
		if !day.IsBefore(end) {
			return result
		}
		result = append(result, day)
	}
}

// TimeRange returns today's times from startHour:startMinute until endHour:endMinute,
// not included, every increment minutes. Useful to build lists of time options.
func TimeRange(startHour, startMinute, endHour, endMinute, increment int) []Datetime {
	if increment <= 0 {
		return nil
	}
	var times []Datetime
	end := endHour*60 + endMinute
	for m := startHour*60 + startMinute; m < end; m += increment {
		times = append(times, ForTime(m/60, m%60))
	}
	return times
}

// TimeRangeWithExtraTimes is like [TimeRange] including the extra times, all sorted.
func TimeRangeWithExtraTimes(startHour, startMinute, endHour, endMinute, increment int, extra []Datetime) []Datetime {
	times := TimeRange(startHour, startMinute, endHour, endMinute, increment)
	return SortAscending(append(times, extra...))
}

// SortAscending returns a sorted copy of datetimes, oldest first.
// Equal instants keep their relative order.
func SortAscending(datetimes []Datetime) []Datetime {
	sorted := slices.Clone(datetimes)
	slices.SortStableFunc(sorted, Datetime.Compare)
	return sorted
}
