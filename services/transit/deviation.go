package transit

import (
	"fmt"
	"time"
)

// Category classifies a deviation from the schedule.
type Category int

const (
	// OnTime is an arrival at exactly the scheduled second.
	OnTime Category = iota
	// Late is an arrival after the scheduled time.
	Late
	// Early is an arrival before the scheduled time.
	Early
)

// String presents the caller with a human readable version of this enum.
func (c Category) String() string {
	switch c {
	case Late:
		return "late"
	case Early:
		return "early"
	default:
		return "on-time"
	}
}

// Deviation is the signed difference between an observed arrival and its scheduled time.
type Deviation struct {
	// Seconds is actual minus scheduled, truncated toward zero.
	Seconds int64
}

// Category returns whether the arrival was late, early or on time.
func (d Deviation) Category() Category {
	switch {
	case d.Seconds > 0:
		return Late
	case d.Seconds < 0:
		return Early
	default:
		return OnTime
	}
}

// Minutes returns the whole minutes of the absolute deviation.
func (d Deviation) Minutes() int64 {
	return abs(d.Seconds) / 60
}

// RemainderSeconds returns the seconds left over after Minutes.
func (d Deviation) RemainderSeconds() int64 {
	return abs(d.Seconds) % 60
}

// String renders the deviation as "+1m 30s", "-0m 45s" or "0m 0s".
func (d Deviation) String() string {
	sign := ""
	switch d.Category() {
	case Late:
		sign = "+"
	case Early:
		sign = "-"
	}
	return fmt.Sprintf("%s%dm %ds", sign, d.Minutes(), d.RemainderSeconds())
}

// TravelSegment is the time taken between two consecutive observed arrivals.
type TravelSegment struct {
	Seconds int64
}

// String renders the travel time as "2m 30s".
// A negative segment only occurs if the clock went backwards and is rendered with a leading "-".
func (t TravelSegment) String() string {
	sign := ""
	if t.Seconds < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%dm %ds", sign, abs(t.Seconds)/60, abs(t.Seconds)%60)
}

// ComputeDeviation returns the deviation of the stop's recorded arrival from its scheduled time.
// The second return value is false if the stop has not been visited.
func ComputeDeviation(schedule *Schedule, stop Stop, record *ArrivalRecord) (Deviation, bool) {
	actual, ok := record.At(stop.Sequence)
	if !ok {
		return Deviation{}, false
	}

	return Deviation{
		Seconds: wholeSeconds(actual.Sub(schedule.ScheduledAt(stop))),
	}, true
}

// ComputeTravelSegment returns the time between the stop's recorded arrival and the arrival at the
// nearest earlier stop that was visited, skipping any stops without a recorded arrival.
// The second return value is false if the stop was not visited or no earlier stop was.
func ComputeTravelSegment(schedule *Schedule, stop Stop, record *ArrivalRecord) (TravelSegment, bool) {
	actual, ok := record.At(stop.Sequence)
	if !ok {
		return TravelSegment{}, false
	}

	pos, ok := schedule.position(stop)
	if !ok {
		return TravelSegment{}, false
	}

	for idx := pos - 1; idx >= 0; idx-- {
		prev, ok := record.At(schedule.stops[idx].Sequence)
		if !ok {
			continue
		}
		return TravelSegment{
			Seconds: wholeSeconds(actual.Sub(prev)),
		}, true
	}

	return TravelSegment{}, false
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
