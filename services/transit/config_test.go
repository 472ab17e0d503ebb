package transit

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rmrobinson/triplog/services/transit/gtfs"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testConfig = `
output: trip.csv
stops:
  - sequence: 1
    time: "07:10"
    stop: Gare Cornavin
  - sequence: 2
    time: "07:14"
    stop: Bel-Air
`

func TestLoadStopsDefault(t *testing.T) {
	stops, err := LoadStops(context.Background(), zaptest.NewLogger(t), viper.New())
	require.NoError(t, err)
	require.Len(t, stops, 10)
	assert.Equal(t, "Grand-Lancy, Stade de Genève", stops[0].Name)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 58}, stops[9].Scheduled)

	_, err = NewSchedule(stops, testDay)
	assert.NoError(t, err)
}

func TestLoadStopsFromConfig(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(testConfig)))

	stops, err := LoadStops(context.Background(), zaptest.NewLogger(t), v)
	require.NoError(t, err)
	assert.Equal(t, []Stop{
		{Sequence: 1, Name: "Gare Cornavin", Scheduled: TimeOfDay{Hour: 7, Minute: 10}},
		{Sequence: 2, Name: "Bel-Air", Scheduled: TimeOfDay{Hour: 7, Minute: 14}},
	}, stops)
}

func TestStopsFromConfigInvalidTime(t *testing.T) {
	_, err := StopsFromConfig([]StopConfig{{Sequence: 1, Time: "7h10", Stop: "A"}})
	assert.True(t, errors.Is(err, ErrInvalidTimeOfDay))
}

func TestLoadStopsFromGTFS(t *testing.T) {
	dir, err := ioutil.TempDir("", "gtfs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	files := map[string]string{
		"stops.txt": "stop_id,stop_name\ns1,Gare Cornavin\ns2,Bel-Air\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,07:14:30,07:15:00,s2,20\n" +
			"t1,07:10:00,07:10:00,s1,10\n",
	}
	for name, contents := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}

	v := viper.New()
	v.Set("gtfs.path", dir)
	v.Set("gtfs.trip_id", "t1")

	stops, err := LoadStops(context.Background(), zaptest.NewLogger(t), v)
	require.NoError(t, err)
	assert.Equal(t, []Stop{
		{Sequence: 1, Name: "Gare Cornavin", Scheduled: TimeOfDay{Hour: 7, Minute: 10}},
		{Sequence: 2, Name: "Bel-Air", Scheduled: TimeOfDay{Hour: 7, Minute: 14, Second: 30}},
	}, stops)

	v.Set("gtfs.trip_id", "t2")
	_, err = LoadStops(context.Background(), zaptest.NewLogger(t), v)
	assert.Error(t, err)
}

func writeGTFS(t *testing.T, files map[string]string) string {
	dir, err := ioutil.TempDir("", "gtfs")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	for name, contents := range files {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
	}
	return dir
}

func TestLoadStopsFromGTFSUsesAgencyTimezone(t *testing.T) {
	dir := writeGTFS(t, map[string]string{
		"agency.txt": "agency_id,agency_name,agency_timezone\ntpg,TPG,Europe/Zurich\n",
		"stops.txt":  "stop_id,stop_name\ns1,Gare Cornavin\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,07:10:00,07:10:00,s1,1\n",
	})

	v := viper.New()
	v.Set("gtfs.path", dir)
	v.Set("gtfs.trip_id", "t1")

	_, err := LoadStops(context.Background(), zaptest.NewLogger(t), v)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Zurich", v.GetString("timezone"))

	v.Set("timezone", "America/Toronto")
	_, err = LoadStops(context.Background(), zaptest.NewLogger(t), v)
	require.NoError(t, err)
	assert.Equal(t, "America/Toronto", v.GetString("timezone"))
}

func TestLoadStopsFromGTFSAfterMidnight(t *testing.T) {
	dir := writeGTFS(t, map[string]string{
		"stops.txt": "stop_id,stop_name\ns1,Gare Cornavin\ns2,Bel-Air\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,25:00:00,25:00:00,s1,1\n" +
			"t1,25:06:00,25:06:00,s2,2\n",
	})

	v := viper.New()
	v.Set("gtfs.path", dir)
	v.Set("gtfs.trip_id", "t1")

	stops, err := LoadStops(context.Background(), zaptest.NewLogger(t), v)
	require.NoError(t, err)

	start := time.Date(2026, 10, 17, 1, 0, 0, 0, time.UTC)
	schedule, err := NewSchedule(stops, start)
	require.NoError(t, err)

	record := NewArrivalRecord()
	require.NoError(t, record.Record(1, start))

	rows := BuildRows(schedule, record)
	assert.Equal(t, "01:00", rows[0].Target.String())

	d, ok := ComputeDeviation(schedule, stops[0], record)
	require.True(t, ok)
	assert.Equal(t, int64(0), d.Seconds)
}

func TestLoadStopsFromGTFSUntimedStops(t *testing.T) {
	tests := []struct {
		name      string
		stopTimes string
		expected  []TimeOfDay
		valid     bool
	}{
		{
			"interpolated",
			"t1,07:10:00,07:10:00,s1,1\n" +
				"t1,,,s2,2\n" +
				"t1,,,s3,3\n" +
				"t1,07:16:00,07:16:00,s4,4\n",
			[]TimeOfDay{{Hour: 7, Minute: 10}, {Hour: 7, Minute: 12}, {Hour: 7, Minute: 14}, {Hour: 7, Minute: 16}},
			true,
		},
		{
			"uneven gap",
			"t1,23:59:00,23:59:00,s1,1\n" +
				"t1,,,s2,2\n" +
				"t1,24:00:01,24:00:01,s3,3\n" +
				"t1,24:02:00,24:02:00,s4,4\n",
			[]TimeOfDay{{Hour: 23, Minute: 59}, {Hour: 23, Minute: 59, Second: 30}, {Hour: 24, Second: 1}, {Hour: 24, Minute: 2}},
			true,
		},
		{
			"untimed first stop",
			"t1,,,s1,1\n" +
				"t1,07:12:00,07:12:00,s2,2\n" +
				"t1,07:14:00,07:14:00,s3,3\n" +
				"t1,07:16:00,07:16:00,s4,4\n",
			nil,
			false,
		},
		{
			"untimed last stop",
			"t1,07:10:00,07:10:00,s1,1\n" +
				"t1,07:12:00,07:12:00,s2,2\n" +
				"t1,07:14:00,07:14:00,s3,3\n" +
				"t1,,,s4,4\n",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeGTFS(t, map[string]string{
				"stops.txt": "stop_id,stop_name\ns1,A\ns2,B\ns3,C\ns4,D\n",
				"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
					tt.stopTimes,
			})

			v := viper.New()
			v.Set("gtfs.path", dir)
			v.Set("gtfs.trip_id", "t1")

			stops, err := LoadStops(context.Background(), zaptest.NewLogger(t), v)
			if !tt.valid {
				assert.True(t, errors.Is(err, gtfs.ErrInvalidTime))
				return
			}

			require.NoError(t, err)
			require.Len(t, stops, len(tt.expected))
			for idx, stop := range stops {
				assert.Equal(t, tt.expected[idx], stop.Scheduled, stop.Name)
			}
		})
	}
}
