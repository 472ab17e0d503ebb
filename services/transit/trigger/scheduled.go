package trigger

import (
	"context"
	"fmt"

	"github.com/rmrobinson/triplog/services/transit"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduled advances the trip at each stop's scheduled time, as if every arrival were on time.
// It is useful for dry runs of a schedule without a vehicle.
type Scheduled struct {
	logger *zap.Logger

	schedule *transit.Schedule
	clock    transit.Clock
	cron     *cron.Cron

	due map[int]chan struct{}
}

// NewScheduled creates a trigger firing at the scheduled time of every stop.
// Start must be called before the trigger will fire for stops that are not yet due.
func NewScheduled(logger *zap.Logger, schedule *transit.Schedule, clock transit.Clock) (*Scheduled, error) {
	if clock == nil {
		clock = transit.SystemClock{Location: schedule.Day().Location()}
	}

	s := &Scheduled{
		logger:   logger,
		schedule: schedule,
		clock:    clock,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(schedule.Day().Location())),
		due:      map[int]chan struct{}{},
	}

	for _, stop := range schedule.Stops() {
		stop := stop
		ch := make(chan struct{}, 1)
		s.due[stop.Sequence] = ch

		spec := fmt.Sprintf("%d %d %d * * *", stop.Scheduled.Second, stop.Scheduled.Minute, stop.Scheduled.Hour%24)
		if _, err := s.cron.AddFunc(spec, func() {
			s.fire(stop, ch)
		}); err != nil {
			return nil, fmt.Errorf("unable to schedule stop %d: %w", stop.Sequence, err)
		}
	}

	return s, nil
}

func (s *Scheduled) fire(stop transit.Stop, ch chan struct{}) {
	s.logger.Debug("stop due",
		zap.Int("stop_sequence", stop.Sequence),
		zap.String("stop_name", stop.Name),
	)

	select {
	case ch <- struct{}{}:
	default:
	}
}

// Start begins running the scheduler.
func (s *Scheduled) Start() {
	s.cron.Start()
}

// Stop halts the scheduler; jobs already running are allowed to finish.
func (s *Scheduled) Stop() {
	<-s.cron.Stop().Done()
}

// Wait blocks until the stop's scheduled time. Stops already due return immediately.
func (s *Scheduled) Wait(ctx context.Context, stop transit.Stop) error {
	if !s.clock.Now().Before(s.schedule.ScheduledAt(stop)) {
		return nil
	}

	ch, ok := s.due[stop.Sequence]
	if !ok {
		return transit.ErrUnknownStop
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-ch:
		return nil
	}
}
