package gtfs

// Agency is the transit agency operating the service; only the fields the schedule needs are read.
type Agency struct {
	ID   string `csv:"agency_id"`
	Name string `csv:"agency_name"`
	TZ   string `csv:"agency_timezone"`
}
