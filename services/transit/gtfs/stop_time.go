package gtfs

// StopTime represents the time a specific stop is visited on a specific trip.
type StopTime struct {
	TripID        string  `csv:"trip_id"`
	ArrivalTime   CSVTime `csv:"arrival_time"`
	DepartureTime CSVTime `csv:"departure_time"`
	StopID        string  `csv:"stop_id"`
	Sequence      CSVInt  `csv:"stop_sequence"`
	Headsign      string  `csv:"stop_headsign"`
	Timepoint     string  `csv:"timepoint"`
}

// ScheduledTime returns the arrival time, falling back to the departure time when a feed only
// supplies one of the two.
func (st *StopTime) ScheduledTime() CSVTime {
	if st.ArrivalTime.IsSet() {
		return st.ArrivalTime
	}
	return st.DepartureTime
}
