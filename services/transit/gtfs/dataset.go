package gtfs

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

var (
	// ErrUnknownFileName is returned if an unknown file is encountered during parsing.
	ErrUnknownFileName = errors.New("unknown file name encountered")
	// ErrTripNotFound is returned if the requested trip has no stop times in the dataset.
	ErrTripNotFound = errors.New("trip not found")
	// ErrStopNotFound is returned if a stop time references a stop missing from stops.txt.
	ErrStopNotFound = errors.New("stop not found")
)

// Dataset represents the subset of a GTFS dataset needed to build a trip schedule.
type Dataset struct {
	Agencies  []*Agency
	Stops     []*Stop
	Trips     []*Trip
	StopTimes []*StopTime

	logger *zap.Logger

	path string
}

// PlannedStop is a stop time joined with the stop it visits.
type PlannedStop struct {
	*StopTime

	Stop *Stop
}

// NewDataset creates a new dataset structure.
func NewDataset(logger *zap.Logger) *Dataset {
	gocsv.SetCSVReader(gtfsCSVReader)
	return &Dataset{
		logger: logger,
	}
}

// LoadFromFSPath loads the contents of the specified directory into this dataset.
func (ds *Dataset) LoadFromFSPath(ctx context.Context, path string) error {
	dirEntries, err := ioutil.ReadDir(path)
	if err != nil {
		return err
	}

	ds.path = path

	for _, dirEntry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if dirEntry.IsDir() {
			continue
		}

		err = ds.parseCSVFile(dirEntry)
		if err != nil {
			ds.logger.Debug("error parsing csv file",
				zap.String("file_name", dirEntry.Name()),
				zap.Error(err),
			)

			if err != ErrUnknownFileName {
				return err
			}
		}
	}

	ds.logger.Debug("loaded dataset",
		zap.String("path", path),
		zap.Int("stop_count", len(ds.Stops)),
		zap.Int("stop_time_count", len(ds.StopTimes)),
	)
	return nil
}

// Timezone returns the timezone of the first agency in the dataset, or an empty string.
func (ds *Dataset) Timezone() string {
	if len(ds.Agencies) < 1 {
		return ""
	}
	return ds.Agencies[0].TZ
}

// Trip returns the trip with the specified ID, or nil if trips.txt does not list it.
func (ds *Dataset) Trip(tripID string) *Trip {
	for _, trip := range ds.Trips {
		if trip.ID == tripID {
			return trip
		}
	}
	return nil
}

// TripPlan returns the stops visited by the specified trip, sorted by sequence.
func (ds *Dataset) TripPlan(tripID string) ([]*PlannedStop, error) {
	stops := map[string]*Stop{}
	for _, stop := range ds.Stops {
		stops[stop.ID] = stop
	}

	var plan []*PlannedStop
	for _, st := range ds.StopTimes {
		if st.TripID != tripID {
			continue
		}

		stop, ok := stops[st.StopID]
		if !ok {
			ds.logger.Info("stop time specified missing stop ID",
				zap.String("trip_id", st.TripID),
				zap.String("stop_id", st.StopID),
			)
			return nil, ErrStopNotFound
		}

		plan = append(plan, &PlannedStop{
			StopTime: st,
			Stop:     stop,
		})
	}

	if len(plan) < 1 {
		return nil, ErrTripNotFound
	}

	sort.Slice(plan, func(i, j int) bool {
		return plan[i].Sequence < plan[j].Sequence
	})
	return plan, nil
}

func (ds *Dataset) parseCSVFile(dirent os.FileInfo) error {
	f, err := os.Open(filepath.Join(ds.path, dirent.Name()))
	if err != nil {
		return err
	}
	defer f.Close()

	return ds.parseFile(dirent.Name(), f)
}

func (ds *Dataset) parseFile(name string, contents io.Reader) error {
	switch name {
	case "agency.txt":
		return gocsv.Unmarshal(contents, &ds.Agencies)
	case "trips.txt":
		return gocsv.Unmarshal(contents, &ds.Trips)
	case "stops.txt":
		return gocsv.Unmarshal(contents, &ds.Stops)
	case "stop_times.txt":
		return gocsv.Unmarshal(contents, &ds.StopTimes)
	default:
		return ErrUnknownFileName
	}
}

// This allows us to handle the fact that GTFS supports optional fields
// We do not error if the CSV row has fewer columns than the header row, for better or worse.
func gtfsCSVReader(in io.Reader) gocsv.CSVReader {
	csvReader := csv.NewReader(in)
	csvReader.FieldsPerRecord = -1
	return csvReader
}
