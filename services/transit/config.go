package transit

import (
	"context"
	"fmt"

	"github.com/rmrobinson/triplog/services/transit/gtfs"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const timezoneKey = "timezone"

// StopConfig is the configured form of a stop: its sequence, scheduled HH:MM time and name.
type StopConfig struct {
	Sequence int    `mapstructure:"sequence"`
	Time     string `mapstructure:"time"`
	Stop     string `mapstructure:"stop"`
}

// DefaultStops is line 40 from Grand-Lancy, Stade de Genève to Bernex, P+R.
var DefaultStops = []StopConfig{
	{Sequence: 1, Time: "09:43", Stop: "Grand-Lancy, Stade de Genève"},
	{Sequence: 2, Time: "09:45", Stop: "Lancy-Pont-Rouge, gare/Etoile"},
	{Sequence: 3, Time: "09:47", Stop: "Lancy-Pont-Rouge, gare"},
	{Sequence: 4, Time: "09:49", Stop: "Petit-Lancy, place"},
	{Sequence: 5, Time: "09:51", Stop: "Les Esserts"},
	{Sequence: 6, Time: "09:52", Stop: "Onex, Bandol"},
	{Sequence: 7, Time: "09:54", Stop: "Salle communale"},
	{Sequence: 8, Time: "09:55", Stop: "Conégnon, La Dode"},
	{Sequence: 9, Time: "09:56", Stop: "croisée"},
	{Sequence: 10, Time: "09:58", Stop: "Bernex, P+R"},
}

// StopsFromConfig parses the scheduled times of the configured stops.
func StopsFromConfig(configs []StopConfig) ([]Stop, error) {
	stops := make([]Stop, 0, len(configs))

	for _, cfg := range configs {
		scheduled, err := ParseTimeOfDay(cfg.Time)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", cfg.Sequence, err)
		}

		stops = append(stops, Stop{
			Sequence:  cfg.Sequence,
			Name:      cfg.Stop,
			Scheduled: scheduled,
		})
	}

	return stops, nil
}

// StopsFromGTFS converts a GTFS trip plan into stops numbered densely from 1.
// Stops without an arrival or departure time are interpolated evenly between the timed stops
// around them; the first and last stops of the trip must be timed.
func StopsFromGTFS(plan []*gtfs.PlannedStop) ([]Stop, error) {
	secs := make([]int, len(plan))
	timed := make([]bool, len(plan))
	for idx, ps := range plan {
		scheduled := ps.ScheduledTime()
		if !scheduled.IsSet() {
			continue
		}
		secs[idx] = scheduled.Hour*3600 + scheduled.Minute*60 + scheduled.Second
		timed[idx] = true
	}

	if len(plan) > 0 && (!timed[0] || !timed[len(plan)-1]) {
		return nil, fmt.Errorf("%w: first and last stops of the trip need a time", gtfs.ErrInvalidTime)
	}

	prev := 0
	for idx := 1; idx < len(plan); idx++ {
		if !timed[idx] {
			continue
		}
		for gap := prev + 1; gap < idx; gap++ {
			secs[gap] = secs[prev] + (secs[idx]-secs[prev])*(gap-prev)/(idx-prev)
		}
		prev = idx
	}

	stops := make([]Stop, 0, len(plan))
	for idx, ps := range plan {
		stops = append(stops, Stop{
			Sequence: idx + 1,
			Name:     ps.Stop.Name,
			Scheduled: TimeOfDay{
				Hour:   secs[idx] / 3600,
				Minute: secs[idx] / 60 % 60,
				Second: secs[idx] % 60,
			},
		})
	}

	return stops, nil
}

// LoadStops resolves the configured stops.
// A GTFS directory and trip ID take precedence, then an explicit "stops" list, then DefaultStops.
// When the stops come from GTFS the agency timezone becomes the default for the timezone key.
func LoadStops(ctx context.Context, logger *zap.Logger, v *viper.Viper) ([]Stop, error) {
	if path := v.GetString("gtfs.path"); len(path) > 0 {
		tripID := v.GetString("gtfs.trip_id")

		dataset := gtfs.NewDataset(logger)
		if err := dataset.LoadFromFSPath(ctx, path); err != nil {
			return nil, fmt.Errorf("unable to load gtfs dataset: %w", err)
		}

		plan, err := dataset.TripPlan(tripID)
		if err != nil {
			return nil, fmt.Errorf("unable to plan trip %q: %w", tripID, err)
		}

		stops, err := StopsFromGTFS(plan)
		if err != nil {
			return nil, fmt.Errorf("unable to schedule trip %q: %w", tripID, err)
		}
		if tz := dataset.Timezone(); len(tz) > 0 {
			v.SetDefault(timezoneKey, tz)
		}

		logger.Info("loaded schedule from gtfs",
			zap.String("path", path),
			zap.String("trip_id", tripID),
			zap.String("timezone", dataset.Timezone()),
			zap.Int("stop_count", len(stops)),
		)
		return stops, nil
	}

	if v.IsSet("stops") {
		var configs []StopConfig
		if err := v.UnmarshalKey("stops", &configs); err != nil {
			return nil, fmt.Errorf("unable to decode stops: %w", err)
		}
		return StopsFromConfig(configs)
	}

	return StopsFromConfig(DefaultStops)
}
