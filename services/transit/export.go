package transit

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
)

const (
	// DefaultExportPath is the file the trip log is written to if none is configured.
	DefaultExportPath = "bus_trip_log.csv"

	exportTimeFormat = loggedTimeFormat
)

// ExportRow is a single stop in the exported trip log.
// Values that do not exist for unvisited stops are left empty.
type ExportRow struct {
	Sequence       int    `csv:"Sequence"`
	Stop           string `csv:"Stop"`
	TargetTime     string `csv:"Target Time"`
	ActualTime     string `csv:"Actual Time"`
	Deviation      string `csv:"Deviation (+/-)"`
	DeviationSecs  string `csv:"Deviation Secs"`
	TravelFromPrev string `csv:"Travel From Prev"`
}

// ExportRows converts status rows into export rows, one per stop.
func ExportRows(rows []Row) []*ExportRow {
	ret := make([]*ExportRow, 0, len(rows))

	for _, row := range rows {
		er := &ExportRow{
			Sequence:   row.Sequence,
			Stop:       row.Name,
			TargetTime: row.Target.String(),
		}

		if row.Visited {
			er.ActualTime = row.Actual.Format(exportTimeFormat)
			er.Deviation = row.Deviation.String()
			er.DeviationSecs = strconv.FormatInt(row.Deviation.Seconds, 10)
		}
		if row.HasTravel {
			er.TravelFromPrev = row.Travel.String()
		}

		ret = append(ret, er)
	}

	return ret
}

// WriteExport writes the trip log as CSV, with a header and one row per scheduled stop.
func WriteExport(w io.Writer, schedule *Schedule, record *ArrivalRecord) error {
	rows := ExportRows(BuildRows(schedule, record))
	return gocsv.Marshal(&rows, w)
}

// Export writes the trip log to the specified path, replacing any existing file.
func Export(path string, schedule *Schedule, record *ArrivalRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create export file: %w", err)
	}

	if err := WriteExport(f, schedule, record); err != nil {
		f.Close()
		return fmt.Errorf("unable to write export file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close export file: %w", err)
	}
	return nil
}
