package transit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeOfDay is returned if a scheduled time is not in HH:MM or HH:MM:SS form.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// TimeOfDay is a wall clock time within a service day.
// Hour may exceed 23 for stops served after midnight of the service day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay parses a HH:MM or HH:MM:SS value.
func ParseTimeOfDay(in string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(in), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, in)
	}

	var vals [3]int
	for idx, part := range parts {
		val, err := strconv.Atoi(part)
		if err != nil || val < 0 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, in)
		}
		vals[idx] = val
	}

	if vals[0] > 47 || vals[1] > 59 || vals[2] > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, in)
	}

	return TimeOfDay{
		Hour:   vals[0],
		Minute: vals[1],
		Second: vals[2],
	}, nil
}

// String renders the time as HH:MM on a 24 hour clock.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour%24, t.Minute)
}

// On anchors the time of day to the calendar day of the supplied time, in its location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, t.Second, 0, day.Location())
}

// Stop is a fixed point on the route with a scheduled arrival time.
type Stop struct {
	Sequence  int
	Name      string
	Scheduled TimeOfDay
}

// String returns a short human readable description of the stop.
func (s Stop) String() string {
	return fmt.Sprintf("%d - %s (scheduled %s)", s.Sequence, s.Name, s.Scheduled)
}
