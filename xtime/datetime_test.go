package xtime_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/birdie-ai/handy/xtime"
	"github.com/google/go-cmp/cmp"
)

// losAngeles loads the Los Angeles zone and makes it the local zone until the test ends.
func losAngeles(t *testing.T) *time.Location {
	t.Helper()
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(xtime.SetClock(xtime.SystemClockIn(la)))
	return la
}

func TestEmpty(t *testing.T) {
	var zero xtime.Datetime
	for _, d := range []xtime.Datetime{zero, xtime.Empty()} {
		if !d.IsEmpty() {
			t.Fatal("want empty")
		}
		if xtime.IsValidDatetime(d) {
			t.Fatal("empty datetime is valid")
		}
		if got := d.UnixMilli(); got != 0 {
			t.Fatalf("got %d; want the epoch", got)
		}
		if !d.IsUTC() {
			t.Fatal("empty datetime is not UTC")
		}
		if got := d.Serialize(); got != "1970-01-01T00:00:00.000Z" {
			t.Fatalf("got %s", got)
		}
	}

	clone := xtime.Empty().Clone()
	if clone.IsEmpty() {
		t.Fatal("clone of empty is empty")
	}
	if clone.UnixMilli() != 0 {
		t.Fatalf("clone of empty is %v; want the epoch", clone)
	}

	populated := xtime.MustFromString("2016-12-21T02:30:05.200Z", xtime.WithUTC())
	if c := populated.Clone(); !c.IsEqual(populated) || c.IsUTC() != populated.IsUTC() || c.Serialize() != populated.Serialize() {
		t.Fatalf("clone of %v is %v", populated, c)
	}
	if c := populated.Clone().Clone(); !c.IsEqual(populated) {
		t.Fatalf("clone of a clone of %v is %v", populated, c)
	}

	epoch := xtime.FromInteger(0)
	if epoch.IsEmpty() {
		t.Fatal("the epoch from an integer is empty")
	}
}

func TestNew(t *testing.T) {
	la := losAngeles(t)
	defer xtime.SetClock(xtime.FixedClock(time.Date(2016, time.December, 7, 10, 0, 0, 0, la)))()

	native := time.Date(2016, time.December, 21, 2, 30, 5, 200*int(time.Millisecond), time.UTC)
	populated := xtime.FromTime(native)
	var nilDatetime *xtime.Datetime
	var nilTime *time.Time

	cases := []struct {
		name      string
		v         any
		wantEmpty bool
		want      string
	}{
		{name: "datetime", v: populated, want: "2016-12-21T02:30:05.200Z"},
		{name: "datetime pointer", v: &populated, want: "2016-12-21T02:30:05.200Z"},
		{name: "empty datetime", v: xtime.Empty(), want: "1970-01-01T00:00:00.000Z"},
		{name: "nil datetime", v: nilDatetime, wantEmpty: true},
		{name: "time", v: native, want: "2016-12-21T02:30:05.200Z"},
		{name: "time pointer", v: &native, want: "2016-12-21T02:30:05.200Z"},
		{name: "nil time", v: nilTime, wantEmpty: true},
		{name: "string", v: "2016-12-21T02:30:05.200Z", want: "2016-12-21T02:30:05.200Z"},
		{name: "int", v: 1482287405200, want: "2016-12-21T02:30:05.200Z"},
		{name: "int64", v: int64(1482287405200), want: "2016-12-21T02:30:05.200Z"},
		{name: "uint", v: uint(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "uint64", v: uint64(1482287405200), want: "2016-12-21T02:30:05.200Z"},
		{name: "int8", v: int8(-100), want: "1969-12-31T23:59:59.900Z"},
		{name: "int16", v: int16(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "int32", v: int32(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "uint8", v: uint8(200), want: "1970-01-01T00:00:00.200Z"},
		{name: "uint16", v: uint16(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "uint32", v: uint32(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "uintptr", v: uintptr(1000), want: "1970-01-01T00:00:01.000Z"},
		{name: "nil", v: nil, wantEmpty: true},
		{name: "float", v: 1.5, wantEmpty: true},
		{name: "bool", v: true, wantEmpty: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := xtime.New(c.v)
			if err != nil {
				t.Fatal(err)
			}
			if d.IsEmpty() != c.wantEmpty {
				t.Fatalf("got empty %v; want %v", d.IsEmpty(), c.wantEmpty)
			}
			if c.wantEmpty {
				return
			}
			if got := d.Serialize(); got != c.want {
				t.Fatalf("got %s; want %s", got, c.want)
			}
			// The copy of an empty value keeps the UTC epoch.
			if c.name != "empty datetime" && d.Location() != la {
				t.Fatalf("got location %v; want local", d.Location())
			}
		})
	}

	if _, err := xtime.New("not a date"); !errors.Is(err, xtime.ErrInvalidString) {
		t.Fatalf("got err %v; want %v", err, xtime.ErrInvalidString)
	}
	d, err := xtime.New(uint64(math.MaxUint64))
	if !errors.Is(err, xtime.ErrOutOfRange) {
		t.Fatalf("got err %v; want %v", err, xtime.ErrOutOfRange)
	}
	if !d.IsEmpty() {
		t.Fatalf("got %v; want empty", d)
	}
}

func TestNewKeepsMode(t *testing.T) {
	utc := xtime.MustFromString("2016-12-05T18:00:00", xtime.WithUTC())

	d, err := xtime.New(utc)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsUTC() || !d.IsEqual(utc) {
		t.Fatalf("got %v; want %v", d, utc)
	}

	local := xtime.FromTime(time.Date(2016, time.December, 5, 10, 0, 0, 0, losAngeles(t)))
	if d := xtime.From(local, xtime.WithUTC()); !d.IsUTC() || d.Hour() != 18 {
		t.Fatalf("got %v; want 18:00 UTC", d)
	}
}

func TestFromString(t *testing.T) {
	la := losAngeles(t)
	defer xtime.SetClock(xtime.FixedClock(time.Date(2016, time.December, 7, 10, 0, 0, 0, la)))()

	cases := []struct {
		input     string
		opts      []xtime.Option
		serialize string
		utc       bool
	}{
		{input: "2016-12-21T02:30:05.200Z", serialize: "2016-12-21T02:30:05.200Z"},
		{input: "2016-12-21T02:30:05Z", serialize: "2016-12-21T02:30:05.000Z"},
		{input: "2016-12-21T02:30:05-08:00", serialize: "2016-12-21T10:30:05.000Z"},
		{input: "2016-12-21T02:30:05 -0800", serialize: "2016-12-21T10:30:05.000Z"},
		{input: "2016-12-21T02:30:05-0800", serialize: "2016-12-21T10:30:05.000Z"},
		{input: "2016-12-05T18:00:00.000", serialize: "2016-12-06T02:00:00.000Z"},
		{input: "2016-12-05T18:00", serialize: "2016-12-06T02:00:00.000Z"},
		{input: "2016-12-04", serialize: "2016-12-04T08:00:00.000Z"},
		{input: "2016-07-04", serialize: "2016-07-04T07:00:00.000Z"},
		{input: "2016-12-05T18:00:00.000", opts: []xtime.Option{xtime.WithUTC()}, serialize: "2016-12-05T18:00:00.000Z", utc: true},
		{input: "2016-12-04", opts: []xtime.Option{xtime.WithUTC()}, serialize: "2016-12-04T00:00:00.000Z", utc: true},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			d, err := xtime.FromString(c.input, c.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.Serialize(); got != c.serialize {
				t.Fatalf("got %s; want %s", got, c.serialize)
			}
			if d.IsUTC() != c.utc {
				t.Fatalf("got utc %v; want %v", d.IsUTC(), c.utc)
			}
		})
	}
}

func TestFromStringErrors(t *testing.T) {
	for _, input := range []string{"", "yesterday", "12/05/2016", "2016-13-01", "2016-02-30", "2016-12-05 18:00"} {
		t.Run(input, func(t *testing.T) {
			d, err := xtime.FromString(input)
			if !errors.Is(err, xtime.ErrInvalidString) {
				t.Fatalf("got err %v; want %v", err, xtime.ErrInvalidString)
			}
			if !d.IsEmpty() {
				t.Fatalf("got %v; want empty", d)
			}
		})
	}

	if xtime.IsValidString("") {
		t.Fatal("empty string is valid")
	}
	if !xtime.IsValidString("2016-12-04") {
		t.Fatal("date string is not valid")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustFromString did not panic")
		}
	}()
	xtime.MustFromString("yesterday")
}

func TestFactoriesRelativeToToday(t *testing.T) {
	la := losAngeles(t)
	// 2016-12-08 03:00 UTC, still the 7th in Los Angeles.
	defer xtime.SetClock(xtime.FixedClock(time.Date(2016, time.December, 7, 19, 0, 0, 0, la)))()

	cases := []struct {
		name string
		d    xtime.Datetime
		want string
	}{
		{name: "today", d: xtime.Today(), want: "2016-12-07T00:00:00.000Z"},
		{name: "yesterday", d: xtime.Yesterday(), want: "2016-12-06T00:00:00.000Z"},
		{name: "tomorrow", d: xtime.Tomorrow(), want: "2016-12-08T00:00:00.000Z"},
		{name: "day after tomorrow", d: xtime.DayAfterTomorrow(), want: "2016-12-09T00:00:00.000Z"},
		{name: "beginning of week", d: xtime.BeginningOfWeek(), want: "2016-12-04T00:00:00.000Z"},
		{name: "end of week", d: xtime.EndOfWeek(), want: "2016-12-10T23:59:59.999Z"},
		{name: "for hour", d: xtime.ForHour(20), want: "2016-12-07T20:00:00.000Z"},
		{name: "for time", d: xtime.ForTime(8, 45), want: "2016-12-07T08:45:00.000Z"},
		{name: "from hour", d: xtime.FromHour(0), want: "2016-12-07T00:00:00.000Z"},
		{name: "now", d: xtime.Now(), want: "2016-12-08T03:00:00.000Z"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.d.Serialize(); got != c.want {
				t.Fatalf("got %s; want %s", got, c.want)
			}
		})
	}

	if !xtime.Today().IsUTC() {
		t.Fatal("today is not in UTC mode")
	}
	if xtime.Now().IsUTC() {
		t.Fatal("now is in UTC mode")
	}
	for _, hour := range []int{-1, 24, 25} {
		if d := xtime.FromHour(hour); !d.IsEmpty() {
			t.Errorf("FromHour(%d) = %v; want empty", hour, d)
		}
	}
}

func TestFromDate(t *testing.T) {
	la := losAngeles(t)
	native := time.Date(2016, time.December, 5, 18, 30, 0, 0, la)
	defer xtime.SetClock(xtime.FixedClock(native))()

	for _, d := range []xtime.Datetime{xtime.FromDate(native), xtime.ForDate(native)} {
		if got := d.Serialize(); got != "2016-12-05T08:00:00.000Z" {
			t.Fatalf("got %s; want local midnight", got)
		}
	}
}

func TestAccessors(t *testing.T) {
	la := losAngeles(t)
	d := xtime.FromTime(time.Date(2016, time.February, 29, 14, 35, 7, 500*int(time.Millisecond), la))

	got := map[string]any{
		"year":         d.Year(),
		"month":        d.Month(),
		"month index":  d.MonthIndex(),
		"month number": d.MonthNumber(),
		"day":          d.DayOfMonth(),
		"weekday":      d.Weekday(),
		"days":         d.DaysInMonth(),
		"hour":         d.Hour(),
		"minute":       d.Minute(),
		"second":       d.Second(),
		"millisecond":  d.Millisecond(),
		"unix":         d.UnixMilli(),
		"unix alias":   d.UnixTimestamp(),
		"unix seconds": d.UnixTimestampInSeconds(),
		"std":          d.Std().Equal(time.Date(2016, time.February, 29, 22, 35, 7, 500*int(time.Millisecond), time.UTC)),
		"utc":          d.IsUTC(),
	}
	want := map[string]any{
		"year":         2016,
		"month":        time.February,
		"month index":  1,
		"month number": 2,
		"day":          29,
		"weekday":      time.Monday,
		"days":         29,
		"hour":         14,
		"minute":       35,
		"second":       7,
		"millisecond":  500,
		"unix":         int64(1456785307500),
		"unix alias":   int64(1456785307500),
		"unix seconds": 1456785307.5,
		"std":          true,
		"utc":          false,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("accessors mismatch (-want +got):\n%s", diff)
	}
}

func TestUTCOffsets(t *testing.T) {
	la := losAngeles(t)

	cases := []struct {
		name    string
		d       xtime.Datetime
		minutes int
	}{
		{name: "standard time", d: xtime.FromTime(time.Date(2016, time.December, 5, 10, 0, 0, 0, la)), minutes: -480},
		{name: "daylight time", d: xtime.FromTime(time.Date(2016, time.July, 5, 10, 0, 0, 0, la)), minutes: -420},
		{name: "utc", d: xtime.MustFromString("2016-07-05", xtime.WithUTC()), minutes: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.d.UTCOffset(); got != c.minutes {
				t.Errorf("UTCOffset() = %d; want %d", got, c.minutes)
			}
			if got := c.d.TimezoneOffsetInMinutes(); got != c.minutes {
				t.Errorf("TimezoneOffsetInMinutes() = %d; want %d", got, c.minutes)
			}
			if got, want := c.d.TimezoneOffsetInHours(), float64(c.minutes)/60; got != want {
				t.Errorf("TimezoneOffsetInHours() = %v; want %v", got, want)
			}
			if got := c.d.TimezoneOffsetInSeconds(); got != c.minutes*60 {
				t.Errorf("TimezoneOffsetInSeconds() = %d; want %d", got, c.minutes*60)
			}
			if got := c.d.TimezoneOffsetInMilliseconds(); got != int64(c.minutes)*60000 {
				t.Errorf("TimezoneOffsetInMilliseconds() = %d; want %d", got, int64(c.minutes)*60000)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	type event struct {
		Name  string          `json:"name"`
		Start xtime.Datetime  `json:"start"`
		End   *xtime.Datetime `json:"end,omitempty"`
	}

	la := losAngeles(t)
	start := xtime.FromTime(time.Date(2016, time.December, 5, 18, 0, 0, 0, la))

	data, err := json.Marshal(event{Name: "dinner", Start: start})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"dinner","start":"2016-12-06T02:00:00.000Z"}`
	if string(data) != want {
		t.Fatalf("got %s; want %s", data, want)
	}

	data, err = json.Marshal(event{Name: "nothing"})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"name":"nothing","start":null}`; string(data) != want {
		t.Fatalf("got %s; want %s", data, want)
	}

	var got event
	if err := json.Unmarshal([]byte(`{"start":"2016-12-06T02:00:00.000Z","end":null}`), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Start.IsEqual(start) || !got.Start.IsUTC() {
		t.Fatalf("got start %v; want %v in UTC mode", got.Start, start)
	}

	var empty event
	if err := json.Unmarshal([]byte(`{"start":null}`), &empty); err != nil {
		t.Fatal(err)
	}
	if !empty.Start.IsEmpty() {
		t.Fatalf("got start %v; want empty", empty.Start)
	}

	for _, invalid := range []string{`{"start":"tomorrow"}`, `{"start":42}`} {
		if err := json.Unmarshal([]byte(invalid), &got); err == nil {
			t.Errorf("Unmarshal(%s) succeeded; want error", invalid)
		}
	}
}
