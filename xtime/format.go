package xtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Layouts used by the formatting methods.
const (
	dateLayout      = "2006-01-02"
	militaryLayout  = "1504"
	timeLayout      = "3:04pm"
	secondsLayout   = "3:04:05 PM"
	displayLayout   = "1/2/06"
	serializeLayout = "2006-01-02T15:04:05.000Z07:00"
	stringLayout    = "Mon Jan 02 2006 15:04:05 GMT-0700"
)

// String returns d like "Thu Jan 01 1970 00:00:00 GMT+0000", on the zone of d.
func (d Datetime) String() string {
	return d.std().Format(stringLayout)
}

// Serialize returns d as an ISO-8601 UTC string with milliseconds, like "2016-12-21T02:30:05.200Z".
// It is the format used on JSON.
func (d Datetime) Serialize() string {
	return d.std().UTC().Format(serializeLayout)
}

// DateString returns the date as YYYY-MM-DD.
func (d Datetime) DateString() string {
	return d.std().Format(dateLayout)
}

// MilitaryTime returns the time as 4 digits, 10pm is "2200".
func (d Datetime) MilitaryTime() string {
	return d.std().Format(militaryLayout)
}

// TimeString is an alias for [Datetime.MilitaryTime].
func (d Datetime) TimeString() string {
	return d.MilitaryTime()
}

// Time returns the 12 hour time with no space and a lowercase meridiem, like "2:35pm".
func (d Datetime) Time() string {
	return d.std().Format(timeLayout)
}

// TimeWithSeconds returns the 12 hour time with seconds, like "2:35:07 PM".
func (d Datetime) TimeWithSeconds() string {
	return d.std().Format(secondsLayout)
}

// TimeWithMilliseconds returns the 12 hour time with seconds and milliseconds, like "2:35:07.5PM".
// Milliseconds are not padded.
func (d Datetime) TimeWithMilliseconds() string {
	return fmt.Sprintf("%d:%s:%s.%d%s", d.TwelveHour(), d.FullMinutes(), d.FullSeconds(), d.Millisecond(), d.Meridiem())
}

// DisplayDate returns the short date, like "2/12/16".
func (d Datetime) DisplayDate() string {
	return d.std().Format(displayLayout)
}

// Timestamp returns the date and military time, like "2016-06-17 at 2230".
func (d Datetime) Timestamp() string {
	return d.DateString() + " at " + d.MilitaryTime()
}

// FullDate returns the day and month names with the day number, like "Monday, January 20".
func (d Datetime) FullDate() string {
	return d.DayName() + ", " + d.MonthWithDayNumber()
}

// FullDateAndTime returns [Datetime.FullDate] with the time, like "Monday, January 20 at 2:30pm".
func (d Datetime) FullDateAndTime() string {
	return d.FullDate() + " at " + d.Time()
}

// ShortDayDateAndTime returns like "Mon, Jan 20 at 2:30pm".
func (d Datetime) ShortDayDateAndTime() string {
	return d.ShortDayName() + ", " + d.DateAndTime()
}

// ShortDayDateWithYearAndTime returns like "Mon, Jan 20, 2016 at 2:30pm".
func (d Datetime) ShortDayDateWithYearAndTime() string {
	return fmt.Sprintf("%s, %s, %d at %s", d.ShortDayName(), d.AbbreviatedMonthWithDayNumber(), d.Year(), d.Time())
}

// ShortDayDate returns like "Mon, Jan 20".
func (d Datetime) ShortDayDate() string {
	return d.ShortDayName() + ", " + d.AbbreviatedMonthWithDayNumber()
}

// MonthDate returns like "Jan 20, 2016".
func (d Datetime) MonthDate() string {
	return fmt.Sprintf("%s, %d", d.AbbreviatedMonthWithDayNumber(), d.Year())
}

// DateAndTime returns like "Jan 20 at 2:30pm".
func (d Datetime) DateAndTime() string {
	return d.AbbreviatedMonthWithDayNumber() + " at " + d.Time()
}

// MonthWithDayNumber returns like "January 20".
func (d Datetime) MonthWithDayNumber() string {
	return fmt.Sprintf("%s %d", d.MonthName(), d.DayOfMonth())
}

// AbbreviatedMonthWithDayNumber returns like "Jan 20".
func (d Datetime) AbbreviatedMonthWithDayNumber() string {
	return fmt.Sprintf("%s %d", d.AbbreviatedMonthName(), d.DayOfMonth())
}

// MonthWithYear returns like "October 2016".
func (d Datetime) MonthWithYear() string {
	return fmt.Sprintf("%s %d", d.MonthName(), d.Year())
}

// MonthName returns the english name of the month, like "January".
func (d Datetime) MonthName() string {
	return Months[d.MonthIndex()]
}

// AbbreviatedMonthName returns the first three letters of the month,
// except for September which keeps four: "Jan", "Feb", ..., "Sept", "Oct".
func (d Datetime) AbbreviatedMonthName() string {
	name := d.MonthName()
	if name == "September" {
		return name[:4]
	}
	return name[:3]
}

// DayName returns the english name of the weekday, like "Monday".
func (d Datetime) DayName() string {
	return DayOfWeek(d.Weekday())
}

// ShortDayName returns the first three letters of the weekday, like "Mon".
func (d Datetime) ShortDayName() string {
	return d.DayName()[:3]
}

// DayOfMonthWithSuffix returns the ordinal day of the month, like "1st", "12th" or "23rd".
func (d Datetime) DayOfMonthWithSuffix() string {
	day := d.DayOfMonth()
	if day >= 11 && day <= 20 {
		return fmt.Sprintf("%dth", day)
	}
	switch day % 10 {
	case 1:
		return fmt.Sprintf("%dst", day)
	case 2:
		return fmt.Sprintf("%dnd", day)
	case 3:
		return fmt.Sprintf("%drd", day)
	default:
		return fmt.Sprintf("%dth", day)
	}
}

// AbbreviatedYear returns the last two digits of the year.
func (d Datetime) AbbreviatedYear() string {
	return fmt.Sprintf("%02d", d.Year()%100)
}

// MonthNumberPadded returns the month number with two digits.
func (d Datetime) MonthNumberPadded() string {
	return pad(d.MonthNumber())
}

// DayOfMonthPadded returns the day of the month with two digits.
func (d Datetime) DayOfMonthPadded() string {
	return pad(d.DayOfMonth())
}

// FullHour returns the 24 hour with two digits.
func (d Datetime) FullHour() string {
	return pad(d.Hour())
}

// FullMinutes returns the minutes with two digits.
func (d Datetime) FullMinutes() string {
	return pad(d.Minute())
}

// FullSeconds returns the seconds with two digits.
func (d Datetime) FullSeconds() string {
	return pad(d.Second())
}

// TwelveHour returns the hour on a 12 hour clock (1-12).
func (d Datetime) TwelveHour() int {
	h := d.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

// FullTwelveHour returns [Datetime.TwelveHour] with two digits.
func (d Datetime) FullTwelveHour() string {
	return pad(d.TwelveHour())
}

// Meridiem returns "AM" or "PM".
func (d Datetime) Meridiem() string {
	if d.IsPM() {
		return "PM"
	}
	return "AM"
}

// MarshalJSON encodes d as its [Datetime.Serialize] string, or null if d is empty.
func (d Datetime) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Serialize())
}

// UnmarshalJSON decodes a string in UTC mode, see [FromString]. null decodes to the empty value.
func (d *Datetime) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*d = Empty()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("xtime: decoding datetime: %w", err)
	}
	v, err := FromString(s, WithUTC())
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func pad(n int) string {
	if n < 10 && n >= 0 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
