package gtfs

// Trip is a single run of a vehicle along a route.
type Trip struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
	ShortName string `csv:"trip_short_name"`
}
