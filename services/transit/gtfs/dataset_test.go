package gtfs

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testFiles = map[string]string{
	"agency.txt": `agency_id,agency_name,agency_url,agency_timezone
tpg,Transports Publics Genevois,https://www.tpg.ch,Europe/Zurich
`,
	"stops.txt": `stop_id,stop_name,stop_lat,stop_lon
8587057,"Grand-Lancy, Stade de Genève",46.177,6.128
8592000,"Lancy-Pont-Rouge, gare",46.186,6.126
8593000,Bernex P+R,46.176,6.076
`,
	"trips.txt": `route_id,service_id,trip_id,trip_headsign
40,wk,t40-0943,Bernex
`,
	"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
t40-0943,09:58:00,09:58:00,8593000,12
t40-0943,09:43:00,09:43:00,8587057,3
t40-0943,,09:47:30,8592000,7
t40-1003,10:03:00,10:03:00,8587057,1
`,
	"shapes.txt": `shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence
s1,46.1,6.1,1
`,
}

func writeDataset(t *testing.T, files map[string]string) string {
	dir, err := ioutil.TempDir("", "gtfs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	for name, contents := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}
	return dir
}

func TestLoadFromFSPath(t *testing.T) {
	ds := NewDataset(zaptest.NewLogger(t))
	err := ds.LoadFromFSPath(context.Background(), writeDataset(t, testFiles))
	require.NoError(t, err)

	assert.Len(t, ds.Agencies, 1)
	assert.Len(t, ds.Stops, 3)
	assert.Len(t, ds.Trips, 1)
	assert.Len(t, ds.StopTimes, 4)
	assert.Equal(t, "Europe/Zurich", ds.Timezone())
	assert.Equal(t, "Bernex", ds.Trip("t40-0943").Headsign)
	assert.Nil(t, ds.Trip("missing"))
}

func TestTripPlan(t *testing.T) {
	ds := NewDataset(zaptest.NewLogger(t))
	require.NoError(t, ds.LoadFromFSPath(context.Background(), writeDataset(t, testFiles)))

	plan, err := ds.TripPlan("t40-0943")
	require.NoError(t, err)
	require.Len(t, plan, 3)

	assert.Equal(t, "Grand-Lancy, Stade de Genève", plan[0].Stop.Name)
	assert.Equal(t, "Lancy-Pont-Rouge, gare", plan[1].Stop.Name)
	assert.Equal(t, "Bernex P+R", plan[2].Stop.Name)

	assert.False(t, plan[1].ArrivalTime.IsSet())
	scheduled := plan[1].ScheduledTime()
	assert.Equal(t, 9, scheduled.Hour)
	assert.Equal(t, 47, scheduled.Minute)
	assert.Equal(t, 30, scheduled.Second)
}

func TestTripPlanErrors(t *testing.T) {
	ds := NewDataset(zaptest.NewLogger(t))
	require.NoError(t, ds.LoadFromFSPath(context.Background(), writeDataset(t, testFiles)))

	_, err := ds.TripPlan("unknown")
	assert.Equal(t, ErrTripNotFound, err)

	ds.StopTimes = append(ds.StopTimes, &StopTime{TripID: "t40-0943", StopID: "ghost"})
	_, err = ds.TripPlan("t40-0943")
	assert.Equal(t, ErrStopNotFound, err)
}

type csvTimeTest struct {
	in     string
	hour   int
	minute int
	second int
	set    bool
	valid  bool
}

var csvTimeTests = []csvTimeTest{
	{"09:43:00", 9, 43, 0, true, true},
	{"9:05:07", 9, 5, 7, true, true},
	{"25:10:00", 25, 10, 0, true, true},
	{"", 0, 0, 0, false, true},
	{"09:43", 0, 0, 0, false, false},
	{"09:61:00", 0, 0, 0, false, false},
	{"ab:00:00", 0, 0, 0, false, false},
}

func TestCSVTime(t *testing.T) {
	for _, tt := range csvTimeTests {
		t.Run(tt.in, func(t *testing.T) {
			var ct CSVTime
			err := ct.UnmarshalCSV(tt.in)
			if !tt.valid {
				assert.True(t, errors.Is(err, ErrInvalidTime))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.set, ct.IsSet())
			assert.Equal(t, tt.hour, ct.Hour)
			assert.Equal(t, tt.minute, ct.Minute)
			assert.Equal(t, tt.second, ct.Second)
		})
	}
}
