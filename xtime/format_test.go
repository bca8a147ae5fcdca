package xtime_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/birdie-ai/handy/xtime"
	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	// Monday, September 5th 2016.
	d := xtime.FromTime(time.Date(2016, time.September, 5, 14, 5, 7, 250*int(time.Millisecond), time.UTC), xtime.WithUTC())

	got := map[string]string{
		"String":                      d.String(),
		"Serialize":                   d.Serialize(),
		"DateString":                  d.DateString(),
		"MilitaryTime":                d.MilitaryTime(),
		"TimeString":                  d.TimeString(),
		"Time":                        d.Time(),
		"TimeWithSeconds":             d.TimeWithSeconds(),
		"TimeWithMilliseconds":        d.TimeWithMilliseconds(),
		"DisplayDate":                 d.DisplayDate(),
		"Timestamp":                   d.Timestamp(),
		"FullDate":                    d.FullDate(),
		"FullDateAndTime":             d.FullDateAndTime(),
		"ShortDayDateAndTime":         d.ShortDayDateAndTime(),
		"ShortDayDateWithYearAndTime": d.ShortDayDateWithYearAndTime(),
		"ShortDayDate":                d.ShortDayDate(),
		"MonthDate":                   d.MonthDate(),
		"DateAndTime":                 d.DateAndTime(),
		"MonthWithDayNumber":          d.MonthWithDayNumber(),
		"MonthWithYear":               d.MonthWithYear(),
		"MonthName":                   d.MonthName(),
		"AbbreviatedMonthName":        d.AbbreviatedMonthName(),
		"DayName":                     d.DayName(),
		"ShortDayName":                d.ShortDayName(),
		"AbbreviatedYear":             d.AbbreviatedYear(),
		"MonthNumberPadded":           d.MonthNumberPadded(),
		"DayOfMonthPadded":            d.DayOfMonthPadded(),
		"FullHour":                    d.FullHour(),
		"FullMinutes":                 d.FullMinutes(),
		"FullSeconds":                 d.FullSeconds(),
		"FullTwelveHour":              d.FullTwelveHour(),
		"Meridiem":                    d.Meridiem(),
	}
	want := map[string]string{
		"String":                      "Mon Sep 05 2016 14:05:07 GMT+0000",
		"Serialize":                   "2016-09-05T14:05:07.250Z",
		"DateString":                  "2016-09-05",
		"MilitaryTime":                "1405",
		"TimeString":                  "1405",
		"Time":                        "2:05pm",
		"TimeWithSeconds":             "2:05:07 PM",
		"TimeWithMilliseconds":        "2:05:07.250PM",
		"DisplayDate":                 "9/5/16",
		"Timestamp":                   "2016-09-05 at 1405",
		"FullDate":                    "Monday, September 5",
		"FullDateAndTime":             "Monday, September 5 at 2:05pm",
		"ShortDayDateAndTime":         "Mon, Sept 5 at 2:05pm",
		"ShortDayDateWithYearAndTime": "Mon, Sept 5, 2016 at 2:05pm",
		"ShortDayDate":                "Mon, Sept 5",
		"MonthDate":                   "Sept 5, 2016",
		"DateAndTime":                 "Sept 5 at 2:05pm",
		"MonthWithDayNumber":          "September 5",
		"MonthWithYear":               "September 2016",
		"MonthName":                   "September",
		"AbbreviatedMonthName":        "Sept",
		"DayName":                     "Monday",
		"ShortDayName":                "Mon",
		"AbbreviatedYear":             "16",
		"MonthNumberPadded":           "09",
		"DayOfMonthPadded":            "05",
		"FullHour":                    "14",
		"FullMinutes":                 "05",
		"FullSeconds":                 "07",
		"FullTwelveHour":              "02",
		"Meridiem":                    "PM",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("format mismatch (-want +got):\n%s", diff)
	}
	if got := d.TwelveHour(); got != 2 {
		t.Fatalf("got twelve hour %d; want 2", got)
	}
}

func TestFormatInZone(t *testing.T) {
	la := losAngeles(t)
	d := xtime.FromTime(time.Date(2016, time.December, 7, 9, 30, 0, 0, la))

	if got := d.String(); got != "Wed Dec 07 2016 09:30:00 GMT-0800" {
		t.Errorf("got %s", got)
	}
	if got := d.Serialize(); got != "2016-12-07T17:30:00.000Z" {
		t.Errorf("got %s", got)
	}
	if got := d.Time(); got != "9:30am" {
		t.Errorf("got %s", got)
	}
	if got := d.MilitaryTime(); got != "0930" {
		t.Errorf("got %s", got)
	}
}

func TestTwelveHourClock(t *testing.T) {
	cases := []struct {
		hour     int
		twelve   int
		meridiem string
		time     string
	}{
		{hour: 0, twelve: 12, meridiem: "AM", time: "12:00am"},
		{hour: 1, twelve: 1, meridiem: "AM", time: "1:00am"},
		{hour: 11, twelve: 11, meridiem: "AM", time: "11:00am"},
		{hour: 12, twelve: 12, meridiem: "PM", time: "12:00pm"},
		{hour: 13, twelve: 1, meridiem: "PM", time: "1:00pm"},
		{hour: 23, twelve: 11, meridiem: "PM", time: "11:00pm"},
	}
	for _, c := range cases {
		d := xtime.FromTime(time.Date(2016, time.December, 7, c.hour, 0, 0, 0, time.UTC), xtime.WithUTC())
		if got := d.TwelveHour(); got != c.twelve {
			t.Errorf("hour %d: got twelve hour %d; want %d", c.hour, got, c.twelve)
		}
		if got := d.Meridiem(); got != c.meridiem {
			t.Errorf("hour %d: got meridiem %s; want %s", c.hour, got, c.meridiem)
		}
		if got := d.Time(); got != c.time {
			t.Errorf("hour %d: got time %s; want %s", c.hour, got, c.time)
		}
	}
}

func TestDayOfMonthWithSuffix(t *testing.T) {
	want := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 10: "10th",
		11: "11th", 12: "12th", 13: "13th", 20: "20th",
		21: "21st", 22: "22nd", 23: "23rd", 24: "24th", 30: "30th", 31: "31st",
	}
	for day, suffix := range want {
		d := xtime.FromTime(time.Date(2016, time.January, day, 0, 0, 0, 0, time.UTC), xtime.WithUTC())
		if got := d.DayOfMonthWithSuffix(); got != suffix {
			t.Errorf("day %d: got %s; want %s", day, got, suffix)
		}
	}
}

func TestAbbreviatedNames(t *testing.T) {
	var months []string
	for m := time.January; m <= time.December; m++ {
		months = append(months, xtime.FromTime(time.Date(2016, m, 1, 0, 0, 0, 0, time.UTC), xtime.WithUTC()).AbbreviatedMonthName())
	}
	want := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sept", "Oct", "Nov", "Dec"}
	if diff := cmp.Diff(want, months); diff != "" {
		t.Fatalf("month names mismatch (-want +got):\n%s", diff)
	}

	if got := xtime.DayOfWeek(time.Saturday); got != "Saturday" {
		t.Fatalf("got %s; want Saturday", got)
	}
	if got := xtime.FromTime(time.Date(2005, time.March, 1, 0, 0, 0, 0, time.UTC), xtime.WithUTC()).AbbreviatedYear(); got != "05" {
		t.Fatalf("got %s; want 05", got)
	}
}

func TestUnitString(t *testing.T) {
	got := []string{
		xtime.UnitDay.String(),
		xtime.UnitWeek.String(),
		xtime.UnitMonth.String(),
		xtime.UnitYear.String(),
		xtime.Unit(42).String(),
		fmt.Sprint(xtime.UnitMonth),
	}
	want := []string{"day", "week", "month", "year", "unknown", "month"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unit names mismatch (-want +got):\n%s", diff)
	}
}
