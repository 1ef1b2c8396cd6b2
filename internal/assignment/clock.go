package assignment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidClock     = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidWindow    = errors.New("start time must be before end time")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	clockLength    = len("15:04")
)

// ParseClock converts an HH:MM string into minutes since midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(value string) (int, error) {
	if len(value) != clockLength || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
		}
	}

	hours := int(value[0]-'0')*10 + int(value[1]-'0')
	minutes := int(value[3]-'0')*10 + int(value[4]-'0')

	total := hours*minutesPerHour + minutes
	if minutes >= minutesPerHour || total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}

	return total, nil
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share any instant.
func Overlaps(aStart, aEnd, bStart, bEnd string) (bool, error) {
	a0, a1, err := parseRange(aStart, aEnd)
	if err != nil {
		return false, err
	}

	b0, b1, err := parseRange(bStart, bEnd)
	if err != nil {
		return false, err
	}

	return overlaps(a0, a1, b0, b1), nil
}

// Bounds returns the window in minutes since midnight, rejecting empty or
// inverted windows.
func (w Window) Bounds() (start, end int, err error) {
	start, end, err = parseRange(w.Start, w.End)
	if err != nil {
		return 0, 0, err
	}

	if start >= end {
		return 0, 0, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.Start, w.End)
	}

	return start, end, nil
}

func parseRange(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}

	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}

	return s, e, nil
}

func overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
