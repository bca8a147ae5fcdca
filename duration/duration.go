// Package duration converts amounts of seconds to other denominations of time.
package duration

import (
	"math"
	"strconv"
	"time"
)

// Duration is an amount of whole seconds. The zero value is a zero duration.
type Duration struct {
	seconds int64
}

// New creates a [Duration] of the given seconds.
func New(seconds int64) Duration {
	return Duration{seconds}
}

// FromStd creates a [Duration] from a [time.Duration], truncated to whole seconds.
func FromStd(d time.Duration) Duration {
	return Duration{int64(d / time.Second)}
}

// Std returns d as a [time.Duration].
func (d Duration) Std() time.Duration {
	return time.Duration(d.seconds) * time.Second
}

// ToSeconds returns the seconds of d.
func (d Duration) ToSeconds() int64 {
	return d.seconds
}

// ToMinutes returns d in minutes, rounded half away from zero.
func (d Duration) ToMinutes() int64 {
	return int64(math.Round(float64(d.seconds) / 60))
}

// ToSecondsText returns like "90 sec".
func (d Duration) ToSecondsText() string {
	return strconv.FormatInt(d.ToSeconds(), 10) + " sec"
}

// ToMinutesText returns like "2 min", singular and plural are the same.
func (d Duration) ToMinutesText() string {
	return strconv.FormatInt(d.ToMinutes(), 10) + " min"
}
