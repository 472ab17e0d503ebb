package transit

import "time"

const (
	// Placeholder is shown in the status view for values that do not exist yet.
	Placeholder = "-"

	actualTimeFormat = "15:04:05"
	loggedTimeFormat = "2006-01-02 15:04:05"
)

// Row is the status of a single stop, derived from the schedule and the arrival record.
type Row struct {
	Sequence int
	Name     string
	Target   TimeOfDay

	Visited   bool
	Actual    time.Time
	Deviation Deviation

	HasTravel bool
	Travel    TravelSegment
}

// ActualText returns the arrival time as HH:MM:SS, or the placeholder if the stop was not visited.
func (r Row) ActualText() string {
	if !r.Visited {
		return Placeholder
	}
	return r.Actual.Format(actualTimeFormat)
}

// DeviationText returns the formatted deviation, or the placeholder if the stop was not visited.
func (r Row) DeviationText() string {
	if !r.Visited {
		return Placeholder
	}
	return r.Deviation.String()
}

// TravelText returns the formatted travel time from the previous visited stop, or the placeholder.
func (r Row) TravelText() string {
	if !r.HasTravel {
		return Placeholder
	}
	return r.Travel.String()
}

// BuildRows computes the status of every stop in sequence order.
// It holds no state, so calling it twice with the same record yields identical rows.
func BuildRows(schedule *Schedule, record *ArrivalRecord) []Row {
	rows := make([]Row, 0, schedule.Len())

	for _, stop := range schedule.stops {
		row := Row{
			Sequence: stop.Sequence,
			Name:     stop.Name,
			Target:   stop.Scheduled,
		}

		if actual, ok := record.At(stop.Sequence); ok {
			row.Visited = true
			row.Actual = actual
			row.Deviation, _ = ComputeDeviation(schedule, stop, record)
			row.Travel, row.HasTravel = ComputeTravelSegment(schedule, stop, record)
		}

		rows = append(rows, row)
	}

	return rows
}
