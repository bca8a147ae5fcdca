// Package filesize converts byte counts to and from human readable sizes.
//
// Sizes use powers of 1000 (SI), the same as macOS, not 1024.
package filesize

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Size is an amount of bytes.
type Size float64

// Powers of [Base] for each unit.
const (
	Bytes = iota
	Kilobytes
	Megabytes
	Gigabytes
	Terabytes
	Petabytes
)

// Base is the multiplier between consecutive units.
const Base = 1000

var abbreviations = [...]string{"B", "kB", "MB", "GB", "TB", "PB"}

// Parse parses a human readable size like "10 MB", "1.5GB" or "42" (bytes).
// IEC units like "MiB" are also accepted.
func Parse(s string) (Size, error) {
	bytes, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("filesize: parsing %q: %w", s, err)
	}
	return Size(bytes), nil
}

// Abbreviation returns the unit abbreviation of power, like "MB" for [Megabytes].
func Abbreviation(power int) string {
	if power < Bytes || power > Petabytes {
		return ""
	}
	return abbreviations[power]
}

// ConvertByPower returns s in the unit of the given power, rounded to precision
// decimal places. A precision of 0 returns the raw value.
func (s Size) ConvertByPower(power, precision int) float64 {
	converted := float64(s) / math.Pow(Base, float64(power))
	if precision == 0 {
		return converted
	}
	return round(converted, precision)
}

// ToBytes returns s in bytes, see [Size.ConvertByPower].
func (s Size) ToBytes(precision int) float64 {
	return s.ConvertByPower(Bytes, precision)
}

// ToKilobytes returns s in kilobytes, see [Size.ConvertByPower].
func (s Size) ToKilobytes(precision int) float64 {
	return s.ConvertByPower(Kilobytes, precision)
}

// ToMegabytes returns s in megabytes, see [Size.ConvertByPower].
func (s Size) ToMegabytes(precision int) float64 {
	return s.ConvertByPower(Megabytes, precision)
}

// ToGigabytes returns s in gigabytes, see [Size.ConvertByPower].
func (s Size) ToGigabytes(precision int) float64 {
	return s.ConvertByPower(Gigabytes, precision)
}

// ToTerabytes returns s in terabytes, see [Size.ConvertByPower].
func (s Size) ToTerabytes(precision int) float64 {
	return s.ConvertByPower(Terabytes, precision)
}

// ToPetabytes returns s in petabytes, see [Size.ConvertByPower].
func (s Size) ToPetabytes(precision int) float64 {
	return s.ConvertByPower(Petabytes, precision)
}

// ToText returns s in the unit of power followed by its abbreviation, like "82.9 MB".
// Trailing zeros are dropped.
func (s Size) ToText(power, precision int) string {
	value := s.ConvertByPower(power, precision)
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if precision > 0 {
		text = humanize.FtoaWithDigits(value, precision)
	}
	return text + " " + Abbreviation(power)
}

// ToBytesText returns like "100 B".
func (s Size) ToBytesText() string {
	return s.ToText(Bytes, 1)
}

// ToKilobytesText returns like "100 kB".
func (s Size) ToKilobytesText() string {
	return s.ToText(Kilobytes, 1)
}

// ToMegabytesText returns like "100 MB".
func (s Size) ToMegabytesText() string {
	return s.ToText(Megabytes, 1)
}

// ToGigabytesText returns like "0.1 GB".
func (s Size) ToGigabytesText() string {
	return s.ToText(Gigabytes, 1)
}

// ToTerabytesText returns like "0 TB".
func (s Size) ToTerabytesText() string {
	return s.ToText(Terabytes, 1)
}

// ToPetabytesText returns like "0 PB".
func (s Size) ToPetabytesText() string {
	return s.ToText(Petabytes, 1)
}

// HighestPower returns the smallest power where s is below [Base], [Petabytes] for
// anything bigger. Zero and negative sizes are [Bytes].
func (s Size) HighestPower() int {
	for power := Bytes; power < Petabytes; power++ {
		if math.Abs(s.ConvertByPower(power, 0)) < Base {
			return power
		}
	}
	return Petabytes
}

// ToLargestDenomination returns the text of s on its [Size.HighestPower].
func (s Size) ToLargestDenomination(precision int) string {
	return s.ToText(s.HighestPower(), precision)
}

// String returns the largest denomination of s with one decimal place, like "82.9 MB".
func (s Size) String() string {
	return s.ToLargestDenomination(1)
}

func round(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
