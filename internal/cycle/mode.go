package cycle

import (
	"fmt"
	"strings"
)

// Mode selects which list Calculate produces.
type Mode string

const (
	// ModeWake takes a desired wake time and produces bedtimes.
	ModeWake Mode = "wake"
	// ModeSleep takes the current time and produces wake times.
	ModeSleep Mode = "sleep"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWake:
		return ModeWake, nil
	case ModeSleep:
		return ModeSleep, nil
	}
	return "", fmt.Errorf("invalid mode %q, expected %q or %q", s, ModeWake, ModeSleep)
}

// Heading is the title shown above a result list.
func (m Mode) Heading() string {
	if m == ModeSleep {
		return "Recommended wake times"
	}
	return "Recommended bedtimes"
}

// Calculate returns bedtimes for a wake time in ModeWake and wake times for
// the current time in ModeSleep.
func Calculate(mode Mode, at Clock) ([]Entry, error) {
	if at < 0 || at >= minutesPerDay {
		return nil, fmt.Errorf("%w: clock value %d", ErrInvalidTime, int(at))
	}
	switch mode {
	case ModeWake:
		return bedtimes(at), nil
	case ModeSleep:
		return wakeTimes(at), nil
	}
	return nil, fmt.Errorf("invalid mode %q", mode)
}
