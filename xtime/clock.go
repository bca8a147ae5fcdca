package xtime

import (
	"sync/atomic"
	"time"
)

// Clock is the source of the current instant. Every [Datetime] factory that needs
// "now" reads it from the clock installed with [SetClock], never from [time.Now].
//
// The location of the times returned by Now is the "local" zone used for
// every local mode [Datetime].
type Clock interface {
	Now() time.Time
}

type (
	systemClock struct {
		loc *time.Location
	}
	fixedClock struct {
		t time.Time
	}
)

var current atomic.Pointer[Clock]

// SystemClock returns a [Clock] backed by the system clock in [time.Local].
func SystemClock() Clock {
	return systemClock{}
}

// SystemClockIn returns a [Clock] backed by the system clock in the given location.
// Values created in local mode will use loc as their zone.
func SystemClockIn(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

// FixedClock returns a [Clock] that always returns t.
// The location of t becomes the local zone.
func FixedClock(t time.Time) Clock {
	return fixedClock{t}
}

// SetClock installs c as the process wide clock and returns a function
// that restores the previous one. Usually called on the main of your program
// or on tests, like:
//
//	defer xtime.SetClock(xtime.FixedClock(t))()
func SetClock(c Clock) (restore func()) {
	prev := current.Swap(&c)
	return func() {
		current.Store(prev)
	}
}

func currentClock() Clock {
	if c := current.Load(); c != nil && *c != nil {
		return *c
	}
	return SystemClock()
}

func localLocation() *time.Location {
	return currentClock().Now().Location()
}

func (c systemClock) Now() time.Time {
	if c.loc == nil {
		return time.Now()
	}
	return time.Now().In(c.loc)
}

func (c fixedClock) Now() time.Time {
	return c.t
}
