package transit

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidSchedule is returned if the stops supplied do not form a valid schedule.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrUnknownStop is returned if a stop is not part of the schedule.
	ErrUnknownStop = errors.New("unknown stop")
)

// Schedule is the ordered, immutable list of stops a trip visits.
// Scheduled times are anchored to the service day of the run.
type Schedule struct {
	stops []Stop
	index map[int]int

	day time.Time
}

// NewSchedule validates the supplied stops and anchors them to the service day of start.
// Sequence numbers must be dense and strictly increasing.
//
// The service day is the calendar day of start, unless the trip begins at 24:00 or later and
// start is closer to its first stop on the previous service day (a run started after midnight).
func NewSchedule(stops []Stop, start time.Time) (*Schedule, error) {
	if len(stops) < 1 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidSchedule)
	}

	s := &Schedule{
		stops: make([]Stop, len(stops)),
		index: map[int]int{},
		day:   serviceDay(stops[0].Scheduled, start),
	}
	copy(s.stops, stops)

	for idx, stop := range s.stops {
		if idx > 0 && stop.Sequence != s.stops[idx-1].Sequence+1 {
			return nil, fmt.Errorf("%w: stop %q has sequence %d after %d",
				ErrInvalidSchedule, stop.Name, stop.Sequence, s.stops[idx-1].Sequence)
		}
		if len(stop.Name) < 1 {
			return nil, fmt.Errorf("%w: stop %d has no name", ErrInvalidSchedule, stop.Sequence)
		}
		s.index[stop.Sequence] = idx
	}

	return s, nil
}

func serviceDay(first TimeOfDay, start time.Time) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	if first.Hour < 24 {
		return day
	}

	prev := time.Date(start.Year(), start.Month(), start.Day()-1, 0, 0, 0, 0, start.Location())
	if absDuration(start.Sub(first.On(prev))) < absDuration(start.Sub(first.On(day))) {
		return prev
	}
	return day
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Stops returns a copy of the stops in sequence order.
func (s *Schedule) Stops() []Stop {
	ret := make([]Stop, len(s.stops))
	copy(ret, s.stops)
	return ret
}

// Len returns the number of stops in the schedule.
func (s *Schedule) Len() int {
	return len(s.stops)
}

// Day returns midnight of the service day the schedule is anchored to.
func (s *Schedule) Day() time.Time {
	return s.day
}

// Stop returns the stop with the specified sequence number.
func (s *Schedule) Stop(sequence int) (Stop, error) {
	idx, ok := s.index[sequence]
	if !ok {
		return Stop{}, ErrUnknownStop
	}
	return s.stops[idx], nil
}

// ScheduledAt returns the absolute scheduled arrival time of the stop on the service day.
func (s *Schedule) ScheduledAt(stop Stop) time.Time {
	return stop.Scheduled.On(s.day)
}

func (s *Schedule) position(stop Stop) (int, bool) {
	idx, ok := s.index[stop.Sequence]
	return idx, ok
}
