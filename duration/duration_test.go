package duration_test

import (
	"testing"
	"time"

	"github.com/birdie-ai/handy/duration"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		d                        duration.Duration
		seconds, minutes         int64
		secondsText, minutesText string
	}{
		{duration.Duration{}, 0, 0, "0 sec", "0 min"},
		{duration.New(29), 29, 0, "29 sec", "0 min"},
		{duration.New(30), 30, 1, "30 sec", "1 min"},
		{duration.New(90), 90, 2, "90 sec", "2 min"},
		{duration.New(3600), 3600, 60, "3600 sec", "60 min"},
		{duration.New(-90), -90, -2, "-90 sec", "-2 min"},
		{duration.FromStd(150*time.Second + 900*time.Millisecond), 150, 3, "150 sec", "3 min"},
	}
	for _, c := range cases {
		if got := c.d.ToSeconds(); got != c.seconds {
			t.Errorf("%v.ToSeconds() = %d; want %d", c.d, got, c.seconds)
		}
		if got := c.d.ToMinutes(); got != c.minutes {
			t.Errorf("%v.ToMinutes() = %d; want %d", c.d, got, c.minutes)
		}
		if got := c.d.ToSecondsText(); got != c.secondsText {
			t.Errorf("%v.ToSecondsText() = %q; want %q", c.d, got, c.secondsText)
		}
		if got := c.d.ToMinutesText(); got != c.minutesText {
			t.Errorf("%v.ToMinutesText() = %q; want %q", c.d, got, c.minutesText)
		}
	}
}

func TestStd(t *testing.T) {
	if got, want := duration.New(90).Std(), 90*time.Second; got != want {
		t.Fatalf("got %v; want %v", got, want)
	}
}
