// Package cycle does the sleep-cycle clock math: bedtimes for a fixed wake
// time and wake times for falling asleep now. All functions are pure.
package cycle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	CycleMinutes = 90
	OnsetMinutes = 14 // time it takes to fall asleep
	NumResults   = 6

	minutesPerDay = 24 * 60
)

var recommendedCycles = [...]int{4, 5, 6}

// ErrInvalidTime is returned for hours outside 0-23, minutes outside 0-59 or
// text that is not HH:MM.
var ErrInvalidTime = errors.New("invalid time")

// Clock is a wall-clock time of day in minutes since midnight. It has no date
// and wraps at 24h.
type Clock int

// NewClock validates hour and minute. Out-of-range values are rejected, never
// wrapped.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: hour %d out of range 0-23", ErrInvalidTime, hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTime, minute)
	}
	return Clock(hour*60 + minute), nil
}

// ParseClock parses a 24-hour "HH:MM" (or "H:MM") string.
func ParseClock(s string) (Clock, error) {
	t := strings.TrimSpace(s)
	parts := strings.Split(t, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w %q, expected HH:MM", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w %q, expected HH:MM", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w %q, expected HH:MM", ErrInvalidTime, s)
	}
	return NewClock(h, m)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns c shifted by min minutes, wrapping across midnight in either
// direction.
func (c Clock) Add(min int) Clock {
	return Clock(mod(int(c)+min, minutesPerDay))
}

// String returns the 24-hour "HH:MM" form, the same form ParseClock accepts.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Format12 returns the 12-hour display form, e.g. "7:14 AM" or "12:05 AM".
func (c Clock) Format12() string {
	h := c.Hour()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute(), suffix)
}

// Entry is one candidate bedtime or wake time.
type Entry struct {
	Time        Clock  `json:"-"`
	Clock       string `json:"clock"`
	Display     string `json:"time"`
	Cycles      int    `json:"cycles"`
	Hours       string `json:"hours"`
	Recommended bool   `json:"recommended"`
}

func newEntry(t Clock, cycles int) Entry {
	return Entry{
		Time:        t,
		Clock:       t.String(),
		Display:     t.Format12(),
		Cycles:      cycles,
		Hours:       Hours(cycles),
		Recommended: IsRecommended(cycles),
	}
}

// Hours formats the sleep duration of n cycles with one decimal, e.g. "7.5".
func Hours(cycles int) string {
	return strconv.FormatFloat(float64(cycles*CycleMinutes)/60, 'f', 1, 64)
}

// IsRecommended reports whether n cycles falls in the 6-9 hour range.
func IsRecommended(cycles int) bool {
	for _, c := range recommendedCycles {
		if c == cycles {
			return true
		}
	}
	return false
}

// Bedtimes lists when to go to bed to wake up at wakeHour:wakeMinute after a
// whole number of cycles. The earliest bedtime (most cycles) comes first.
func Bedtimes(wakeHour, wakeMinute int) ([]Entry, error) {
	wake, err := NewClock(wakeHour, wakeMinute)
	if err != nil {
		return nil, err
	}
	return bedtimes(wake), nil
}

// WakeTimes lists when to wake up when going to bed at nowHour:nowMinute.
// The earliest wake time (fewest cycles) comes first.
func WakeTimes(nowHour, nowMinute int) ([]Entry, error) {
	now, err := NewClock(nowHour, nowMinute)
	if err != nil {
		return nil, err
	}
	return wakeTimes(now), nil
}

func bedtimes(wake Clock) []Entry {
	out := make([]Entry, NumResults)
	for i := 1; i <= NumResults; i++ {
		out[NumResults-i] = newEntry(wake.Add(-(i*CycleMinutes + OnsetMinutes)), i)
	}
	return out
}

func wakeTimes(now Clock) []Entry {
	onset := now.Add(OnsetMinutes)
	out := make([]Entry, 0, NumResults)
	for i := 1; i <= NumResults; i++ {
		out = append(out, newEntry(onset.Add(i*CycleMinutes), i))
	}
	return out
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
