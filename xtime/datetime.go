package xtime

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/birdie-ai/handy/xerrors"
)

type (
	// Datetime is an immutable calendar value: a single instant plus a UTC/local mode.
	// All operations that "change" a Datetime return a new one, the receiver is never modified.
	//
	// A Datetime is either empty, created from absent input (see [Empty]), or populated.
	// The empty value holds the Unix epoch in UTC. Emptiness is decided by how the value
	// was created, not by its instant, so a populated Datetime may legitimately hold the epoch.
	// The zero value is the empty Datetime.
	Datetime struct {
		t       time.Time
		present bool
	}

	// Option configures how a [Datetime] is created.
	Option func(*options)

	options struct {
		utc bool
	}
)

// ErrInvalidString tags errors returned by [FromString] when the calendar engine can't parse the input.
// The original engine error message is preserved, use [errors.Is] to check for it.
var ErrInvalidString = errors.New("xtime: invalid datetime string")

// ErrOutOfRange is returned by [New] for unsigned integers above [math.MaxInt64].
var ErrOutOfRange = errors.New("xtime: milliseconds out of range")

// Layouts accepted by [FromString], tried in order.
// Fractional seconds are accepted by all layouts with seconds.
var stringLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05 -0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

var epoch = time.UnixMilli(0).UTC()

// WithUTC creates the [Datetime] in UTC mode instead of the local zone.
func WithUTC() Option {
	return func(o *options) {
		o.utc = true
	}
}

// Empty returns the empty [Datetime].
func Empty() Datetime {
	return Datetime{}
}

// New creates a [Datetime] from v, checking its type in this order:
//
//   - [Datetime] or *[Datetime]: copy of the instant (see [From])
//   - [time.Time] or *[time.Time]: see [FromTime]
//   - string: see [FromString]
//   - any integer: milliseconds since the epoch, see [FromInteger]
//   - anything else, including nil: the empty [Datetime]
//
// Only strings and unsigned integers above [math.MaxInt64] can fail.
func New(v any, opts ...Option) (Datetime, error) {
	switch v := v.(type) {
	case Datetime:
		return From(v, opts...), nil
	case *Datetime:
		if v == nil {
			return Empty(), nil
		}
		return From(*v, opts...), nil
	case time.Time:
		return FromTime(v, opts...), nil
	case *time.Time:
		if v == nil {
			return Empty(), nil
		}
		return FromTime(*v, opts...), nil
	case string:
		return FromString(v, opts...)
	case int:
		return FromInteger(int64(v), opts...), nil
	case int8:
		return FromInteger(int64(v), opts...), nil
	case int16:
		return FromInteger(int64(v), opts...), nil
	case int32:
		return FromInteger(int64(v), opts...), nil
	case int64:
		return FromInteger(v, opts...), nil
	case uint:
		return fromUnsigned(uint64(v), opts)
	case uint8:
		return FromInteger(int64(v), opts...), nil
	case uint16:
		return FromInteger(int64(v), opts...), nil
	case uint32:
		return FromInteger(int64(v), opts...), nil
	case uint64:
		return fromUnsigned(v, opts)
	case uintptr:
		return fromUnsigned(uint64(v), opts)
	default:
		return Empty(), nil
	}
}

func fromUnsigned(ms uint64, opts []Option) (Datetime, error) {
	if ms > math.MaxInt64 {
		return Empty(), fmt.Errorf("%w: %d", ErrOutOfRange, ms)
	}
	return FromInteger(int64(ms), opts...), nil
}

// From copy constructs a [Datetime] from d, reusing its instant and mode
// unless [WithUTC] is given. The result is always populated, even if d is empty.
func From(d Datetime, opts ...Option) Datetime {
	t := d.std()
	if resolve(opts).utc {
		t = t.UTC()
	}
	return d.with(t)
}

// FromTime creates a [Datetime] from a native time, keeping its time of day.
func FromTime(t time.Time, opts ...Option) Datetime {
	return Datetime{t: t.In(zone(opts)), present: true}
}

// FromInteger creates a [Datetime] from milliseconds since the Unix epoch.
func FromInteger(ms int64, opts ...Option) Datetime {
	return Datetime{t: time.UnixMilli(ms).In(zone(opts)), present: true}
}

// FromDate creates a [Datetime] from a native time truncated to the start of its day.
// Callers of this factory always lose the time of day.
func FromDate(t time.Time) Datetime {
	return FromTime(t).Midnight()
}

// ForDate is an alias for [FromDate].
func ForDate(t time.Time) Datetime {
	return FromDate(t)
}

// FromString parses an ISO-8601 string like "2016-12-21T02:30:05.200Z", "2016-12-05T18:00:00.000"
// or "2016-12-04". Strings without a zone are interpreted on the zone selected by the options.
//
// Parsing errors come from the calendar engine unmodified and are tagged with [ErrInvalidString].
func FromString(s string, opts ...Option) (Datetime, error) {
	loc := zone(opts)

	var firstErr error
	for _, layout := range stringLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return Datetime{t: t.In(loc), present: true}, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return Empty(), xerrors.Tag(firstErr, ErrInvalidString)
}

// MustFromString is like [FromString] but panics if s can't be parsed.
// Useful for tests and package level variables.
func MustFromString(s string, opts ...Option) Datetime {
	d, err := FromString(s, opts...)
	if err != nil {
		panic(fmt.Sprintf("xtime: parsing %q: %v", s, err))
	}
	return d
}

// UTC parses s in UTC mode, see [FromString].
func UTC(s string) (Datetime, error) {
	return FromString(s, WithUTC())
}

// Now returns the current instant in the local zone.
func Now() Datetime {
	return FromTime(currentClock().Now())
}

// Today returns midnight of the current local calendar date, in UTC mode.
// All times of day created by [ForHour], [ForTime] and [ParseTime] are relative to it.
func Today() Datetime {
	return Now().AsUTC().Midnight()
}

// Yesterday returns [Today] minus one day.
func Yesterday() Datetime {
	return Today().PreviousDay()
}

// Tomorrow returns [Today] plus one day.
func Tomorrow() Datetime {
	return Today().NextDay()
}

// DayAfterTomorrow returns [Today] plus two days.
func DayAfterTomorrow() Datetime {
	return Tomorrow().NextDay()
}

// BeginningOfWeek returns the start of the current week.
func BeginningOfWeek() Datetime {
	return Today().BeginningOfWeek()
}

// EndOfWeek returns the end of the current week.
func EndOfWeek() Datetime {
	return Today().EndOfWeek()
}

// ThisWeek returns every day of the current week.
func ThisWeek() []Datetime {
	return Today().DaysForWeek()
}

// ThisMonth returns every day of the current month.
func ThisMonth() []Datetime {
	return Today().DaysForMonth()
}

// ForHour returns today at the given hour.
func ForHour(hour int) Datetime {
	return Today().AddHours(hour)
}

// FromHour is like [ForHour] but returns the empty [Datetime] if hour is outside [0, 24).
func FromHour(hour int) Datetime {
	if hour < 0 || hour >= 24 {
		return Empty()
	}
	return ForHour(hour)
}

// ForTime returns today at the given hour and minutes.
func ForTime(hour, minutes int) Datetime {
	return ForHour(hour).AddMinutes(minutes)
}

// IsValidString returns true if s is worth trying to parse with [FromString].
func IsValidString(s string) bool {
	return s != ""
}

// IsValidDatetime returns true if d is populated.
func IsValidDatetime(d Datetime) bool {
	return !d.IsEmpty()
}

// IsEmpty returns true if d was created from absent input or failed time parsing.
func (d Datetime) IsEmpty() bool {
	return !d.present
}

// Clone returns a populated copy of d. Since [Datetime] is immutable this is only
// useful to turn the empty value into a populated epoch.
func (d Datetime) Clone() Datetime {
	return From(d)
}

// Std returns the underlying [time.Time].
func (d Datetime) Std() time.Time {
	return d.std()
}

// Location returns the zone of d.
func (d Datetime) Location() *time.Location {
	return d.std().Location()
}

// IsUTC returns true if d is in UTC mode.
func (d Datetime) IsUTC() bool {
	return d.std().Location() == time.UTC
}

// Year returns the year as a 4 digit number.
func (d Datetime) Year() int {
	return d.std().Year()
}

// Month returns the month of the year.
func (d Datetime) Month() time.Month {
	return d.std().Month()
}

// MonthIndex returns the month zero-indexed (0-11).
func (d Datetime) MonthIndex() int {
	return int(d.Month()) - 1
}

// MonthNumber returns the month one-indexed (1-12).
func (d Datetime) MonthNumber() int {
	return int(d.Month())
}

// DayOfMonth returns the day of the month (1-31).
func (d Datetime) DayOfMonth() int {
	return d.std().Day()
}

// Weekday returns the day of the week, Sunday is 0.
func (d Datetime) Weekday() time.Weekday {
	return d.std().Weekday()
}

// DaysInMonth returns the number of days in the month of d: 28, 29, 30 or 31.
func (d Datetime) DaysInMonth() int {
	t := d.std()
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// Hour returns the hour of the day (0-23).
func (d Datetime) Hour() int {
	return d.std().Hour()
}

// Minute returns the minute of the hour (0-59).
func (d Datetime) Minute() int {
	return d.std().Minute()
}

// Second returns the second of the minute (0-59).
func (d Datetime) Second() int {
	return d.std().Second()
}

// Millisecond returns the millisecond of the second (0-999).
func (d Datetime) Millisecond() int {
	return d.std().Nanosecond() / int(time.Millisecond)
}

// UnixMilli returns the number of milliseconds since the Unix epoch.
func (d Datetime) UnixMilli() int64 {
	return d.std().UnixMilli()
}

// UnixTimestamp is an alias for [Datetime.UnixMilli].
func (d Datetime) UnixTimestamp() int64 {
	return d.UnixMilli()
}

// UnixTimestampInSeconds returns the seconds since the Unix epoch, with millisecond precision.
func (d Datetime) UnixTimestampInSeconds() float64 {
	return float64(d.UnixMilli()) / msPerSecond
}

// UTCOffset returns the offset of d's zone from UTC in minutes, for d's own date.
func (d Datetime) UTCOffset() int {
	_, offset := d.std().Zone()
	return offset / 60
}

// TimezoneOffsetInHours returns [Datetime.UTCOffset] in hours.
func (d Datetime) TimezoneOffsetInHours() float64 {
	return float64(d.UTCOffset()) / 60
}

// TimezoneOffsetInMinutes is an alias for [Datetime.UTCOffset].
func (d Datetime) TimezoneOffsetInMinutes() int {
	return d.UTCOffset()
}

// TimezoneOffsetInSeconds returns [Datetime.UTCOffset] in seconds.
func (d Datetime) TimezoneOffsetInSeconds() int {
	return d.UTCOffset() * 60
}

// TimezoneOffsetInMilliseconds returns [Datetime.UTCOffset] in milliseconds.
func (d Datetime) TimezoneOffsetInMilliseconds() int64 {
	return int64(d.TimezoneOffsetInSeconds()) * msPerSecond
}

func (d Datetime) std() time.Time {
	if !d.present {
		return epoch
	}
	return d.t
}

// with returns a populated Datetime holding t.
func (d Datetime) with(t time.Time) Datetime {
	return Datetime{t: t, present: true}
}

func resolve(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func zone(opts []Option) *time.Location {
	if resolve(opts).utc {
		return time.UTC
	}
	return localLocation()
}
