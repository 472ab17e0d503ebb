package transit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 10, 16, hour, minute, second, 0, time.UTC)
}

func testSchedule(t *testing.T, configs ...StopConfig) *Schedule {
	stops, err := StopsFromConfig(configs)
	require.NoError(t, err)

	s, err := NewSchedule(stops, testDay.Add(7*time.Hour))
	require.NoError(t, err)
	return s
}

var threeStops = []StopConfig{
	{Sequence: 1, Time: "09:43", Stop: "A"},
	{Sequence: 2, Time: "09:45", Stop: "B"},
	{Sequence: 3, Time: "09:47", Stop: "C"},
}

// scriptedClock returns the supplied times in order.
type scriptedClock struct {
	times []time.Time
}

func (c *scriptedClock) Now() time.Time {
	now := c.times[0]
	c.times = c.times[1:]
	return now
}

// countingTrigger allows a fixed number of advances and then abandons the run.
type countingTrigger struct {
	remaining int
	waited    []int
}

func (ct *countingTrigger) Wait(ctx context.Context, stop Stop) error {
	ct.waited = append(ct.waited, stop.Sequence)
	if ct.remaining < 1 {
		return ErrAbandoned
	}
	ct.remaining--
	return nil
}
