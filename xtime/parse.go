package xtime

import (
	"strconv"
	"strings"

	"github.com/birdie-ai/handy/slog"
)

// Shapes recognised by [ParseTime], also used as metric labels.
const (
	shapeEmpty    = "empty"
	shapeMilitary = "military"
	shapeNumeric  = "numeric"
	shapeMeridian = "meridian"
	shapeUnknown  = "unknown"
)

// ParseTime converts loosely formatted times of day to a [Datetime] for today at that time.
// Currently includes:
//
//  1. 08:00PM -> 8:00pm
//  2. 2000    -> 8:00pm
//  3. 8       -> 8:00am
//  4. 20      -> 8:00pm
//  5. 8am     -> 8:00am
//
// ParseTime never fails with an error. Malformed or ambiguous input, like "100"
// (1:00 or the start of 10:0x?) or "20pm", returns the empty [Datetime].
func ParseTime(s string) Datetime {
	d, shape := parseTime(s)
	sampleParse(shape, d)
	return d
}

func parseTime(s string) (Datetime, string) {
	sanitized, ok := Sanitize(s)
	switch {
	case !ok || sanitized == "":
		return Empty(), shapeEmpty
	case IsMilitaryTime(sanitized):
		return fromMilitaryTime(sanitized), shapeMilitary
	case IsValidNumber(sanitized):
		return fromNumbers(sanitized), shapeNumeric
	case EndsWithMeridian(sanitized):
		return fromNumbersAndMeridian(sanitized), shapeMeridian
	default:
		slog.Debug("xtime: unrecognized time shape", "input", s)
		return Empty(), shapeUnknown
	}
}

// Sanitize normalizes the separators of s so the result is a colon free
// numeric string with an optional meridian. It returns false if s can't be normalized.
func Sanitize(s string) (string, bool) {
	return SanitizeColons(s)
}

// SanitizeColons removes the colon from times like "8:00am" or "12:34".
//
// Without colons s is returned unchanged. With exactly one colon the hours must have
// 1 or 2 digits, the minutes exactly 2 digits and what follows them, if anything,
// must be a valid meridian. Hours are padded to 2 digits: "8:00am" -> "0800am".
// Anything with more than one colon can't be sanitized.
func SanitizeColons(s string) (string, bool) {
	switch strings.Count(s, ":") {
	case 0:
		return s, true
	case 1:
		hours, rest, _ := strings.Cut(s, ":")
		chunks := chunk(rest, 2)

		var minutes string
		if len(chunks) > 0 {
			minutes = chunks[0]
		}

		switch {
		case !IsValidHours(hours):
			return "", false
		case !IsValidMinutes(minutes):
			return "", false
		case len(chunks) > 1 && !IsValidMeridian(chunks[1]):
			return "", false
		}

		if len(hours) < 2 {
			hours = "0" + hours
		}
		return hours + rest, true
	default:
		return "", false
	}
}

func fromNumbers(s string) Datetime {
	if !isNumeric(s) {
		return Empty()
	}
	switch len(s) {
	case 4:
		// ex. 0800 or 2000
		return fromMilitaryTime(s)
	case 3:
		// ex. 800, 100
		return fromAmbiguousTime(s)
	case 2, 1:
		hour, _ := strconv.Atoi(s)
		return FromHour(hour)
	default:
		return Empty()
	}
}

// fromNumbersAndMeridian parses strings like "8am", "12pm" or "0800PM".
func fromNumbersAndMeridian(s string) Datetime {
	meridiem := ParseMeridian(s)
	d := fromNumbers(strings.TrimSuffix(s, meridiem))
	isPM := IsPMMeridian(meridiem)

	switch {
	case d.IsEmpty():
		return Empty()
	case d.Hour() == 12:
		// 12pm is noon as is, 12am is midnight.
		if isPM {
			return d
		}
		return d.AddHours(-12)
	case isPM && d.IsPM():
		// Already past noon, "20pm" is an error, not 8am of the next day.
		slog.Debug("xtime: conflicting meridian", "input", s)
		return Empty()
	default:
		return d.AddMeridian(meridiem)
	}
}

func fromMilitaryTime(s string) Datetime {
	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[2:4])
	return ForTime(hours, minutes)
}

// fromAmbiguousTime parses 3 digit times, where it is not obvious if the
// hour has 1 or 2 digits.
func fromAmbiguousTime(s string) Datetime {
	if len(s) != 3 || !isNumeric(s) {
		return Empty()
	}
	first := int(s[0] - '0')
	if first == 0 || first == 1 {
		// "100" could be 1:00 or the beginning of 10:0x, no safe way to split it.
		slog.Debug("xtime: ambiguous 3 digit time", "input", s)
		return Empty()
	}
	minutes, _ := strconv.Atoi(s[1:])
	return ForTime(first, minutes)
}

// IsAMMeridian returns true for "am" or "a", case insensitive.
func IsAMMeridian(s string) bool {
	switch strings.ToLower(s) {
	case "am", "a":
		return true
	}
	return false
}

// IsPMMeridian returns true for "pm" or "p", case insensitive.
func IsPMMeridian(s string) bool {
	switch strings.ToLower(s) {
	case "pm", "p":
		return true
	}
	return false
}

// IsValidMeridian returns true if s is an AM or PM meridian.
func IsValidMeridian(s string) bool {
	return IsAMMeridian(s) || IsPMMeridian(s)
}

// EndsWithMeridian returns true if s ends with a valid meridian.
func EndsWithMeridian(s string) bool {
	return IsValidMeridian(ParseMeridian(s))
}

// ParseMeridian returns the trailing run of the characters a, m and p (any case) of s.
// The result is not necessarily a valid meridian, check it with [IsValidMeridian].
func ParseMeridian(s string) string {
	i := len(s)
	for i > 0 && isMeridianChar(s[i-1]) {
		i--
	}
	return s[i:]
}

// IsMilitaryTime returns true if s has exactly 4 digits.
func IsMilitaryTime(s string) bool {
	return isNumeric(s) && len(s) == 4
}

// IsValidNumber returns true if s has between 1 and 4 digits.
func IsValidNumber(s string) bool {
	return isNumeric(s) && len(s) <= 4
}

// IsValidHours returns true if s has 1 or 2 digits.
func IsValidHours(s string) bool {
	return isNumeric(s) && len(s) <= 2
}

// IsValidMinutes returns true if s has exactly 2 digits.
func IsValidMinutes(s string) bool {
	return isNumeric(s) && len(s) == 2
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isMeridianChar(c byte) bool {
	switch c {
	case 'a', 'm', 'p', 'A', 'M', 'P':
		return true
	}
	return false
}

// chunk splits s in pieces of size n, the last one may be shorter.
func chunk(s string, n int) []string {
	var chunks []string
	for len(s) > n {
		chunks = append(chunks, s[:n])
		s = s[n:]
	}
	if s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
