package transit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/rmrobinson/triplog/lib/stream"
	"go.uber.org/zap"
)

var (
	// ErrRunFinished is returned if an arrival is logged after the run has ended.
	ErrRunFinished = errors.New("run already finished")
	// ErrOutOfSequence is returned if an arrival is logged for a stop other than the next one.
	ErrOutOfSequence = errors.New("stop logged out of sequence")
)

// RunState is the lifecycle state of a trip run.
type RunState int

const (
	// RunPending is a run where no stop has been waited on yet.
	RunPending RunState = iota
	// RunInProgress is a run with at least one stop pending or logged.
	RunInProgress
	// RunComplete is a run where every stop has been logged.
	RunComplete
	// RunAbandoned is a run that ended before the last stop was logged.
	RunAbandoned
	// RunFailed is a run that ended because an arrival could not be logged.
	RunFailed
)

// String presents the caller with a human readable version of this enum.
func (rs RunState) String() string {
	switch rs {
	case RunPending:
		return "pending"
	case RunInProgress:
		return "in-progress"
	case RunComplete:
		return "complete"
	case RunAbandoned:
		return "abandoned"
	case RunFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ArrivalEvent is broadcast each time an arrival is logged.
type ArrivalEvent struct {
	RunID     string
	Stop      Stop
	At        time.Time
	Deviation Deviation
}

// String describes the event.
func (e *ArrivalEvent) String() string {
	return fmt.Sprintf("stop %d (%s) reached at %s, %s %s",
		e.Stop.Sequence, e.Stop.Name, e.At.Format(actualTimeFormat), e.Deviation, e.Deviation.Category())
}

// Recorder logs the arrival at each stop of a trip in order, shows the tail view after each one,
// and exports the trip log when the run ends.
type Recorder struct {
	logger *zap.Logger
	runID  string

	schedule *Schedule
	record   *ArrivalRecord

	trigger    Trigger
	display    Display
	clock      Clock
	exportPath string

	events *stream.Source

	state RunState
	next  int
}

// NewRecorder creates a recorder for a single run over the schedule.
// If clock is nil the system clock is used.
func NewRecorder(logger *zap.Logger, schedule *Schedule, trigger Trigger, display Display, clock Clock, exportPath string) *Recorder {
	if clock == nil {
		clock = SystemClock{Location: schedule.Day().Location()}
	}

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	return &Recorder{
		logger:     logger,
		runID:      runID,
		schedule:   schedule,
		record:     NewArrivalRecord(),
		trigger:    trigger,
		display:    display,
		clock:      clock,
		exportPath: exportPath,
		events:     stream.NewSource(logger),
	}
}

// RunID returns the unique ID assigned to this run.
func (r *Recorder) RunID() string {
	return r.runID
}

// State returns the current lifecycle state of the run.
func (r *Recorder) State() RunState {
	return r.state
}

// Record returns the arrival record populated so far.
func (r *Recorder) Record() *ArrivalRecord {
	return r.record
}

// Schedule returns the schedule this run is following.
func (r *Recorder) Schedule() *Schedule {
	return r.schedule
}

// Subscribe returns a sink receiving an ArrivalEvent each time an arrival is logged.
// The caller should Close the sink when finished with it.
func (r *Recorder) Subscribe() *stream.Sink {
	return r.events.NewSink()
}

// NextStop returns the stop that will be logged next, or false if the run has finished.
func (r *Recorder) NextStop() (Stop, bool) {
	if r.finished() {
		return Stop{}, false
	}
	return r.schedule.stops[r.next], true
}

func (r *Recorder) finished() bool {
	return r.state == RunComplete || r.state == RunAbandoned || r.state == RunFailed
}

// LogArrival waits for the trigger to signal that the vehicle reached the stop, then records the
// current time as its arrival. Stops must be logged in schedule order.
// If the trigger gives up the run is marked abandoned and ErrAbandoned is returned.
func (r *Recorder) LogArrival(ctx context.Context, stop Stop) error {
	if r.finished() {
		return ErrRunFinished
	}
	if expected := r.schedule.stops[r.next]; expected.Sequence != stop.Sequence {
		return fmt.Errorf("%w: expected stop %d, got %d", ErrOutOfSequence, expected.Sequence, stop.Sequence)
	}

	if r.state == RunPending {
		r.state = RunInProgress
	}

	if err := r.trigger.Wait(ctx, stop); err != nil {
		if errors.Is(err, ErrAbandoned) || errors.Is(err, io.EOF) || ctx.Err() != nil {
			r.state = RunAbandoned
			r.logger.Info("run abandoned",
				zap.Int("stop_sequence", stop.Sequence),
				zap.Int("stops_logged", r.record.Len()),
				zap.Error(err),
			)
			return ErrAbandoned
		}
		r.state = RunFailed
		return err
	}

	at := r.clock.Now()
	if err := r.record.Record(stop.Sequence, at); err != nil {
		r.state = RunFailed
		return err
	}

	r.next++
	if r.next >= r.schedule.Len() {
		r.state = RunComplete
	}

	deviation, _ := ComputeDeviation(r.schedule, stop, r.record)
	r.logger.Debug("arrival logged",
		zap.Int("stop_sequence", stop.Sequence),
		zap.String("stop_name", stop.Name),
		zap.Time("arrived_at", at),
		zap.Int64("deviation_secs", deviation.Seconds),
		zap.Stringer("category", deviation.Category()),
	)

	r.show(stop, at)
	r.events.SendMessage(&ArrivalEvent{
		RunID:     r.runID,
		Stop:      stop,
		At:        at,
		Deviation: deviation,
	})
	return nil
}

func (r *Recorder) show(stop Stop, at time.Time) {
	if r.display == nil {
		return
	}

	if err := r.display.Logged(stop, at); err != nil {
		r.logger.Warn("unable to display logged arrival",
			zap.Error(err),
		)
	}
	if err := r.display.Show(BuildRows(r.schedule, r.record)); err != nil {
		r.logger.Warn("unable to display trip status",
			zap.Error(err),
		)
	}
}

// Run logs each remaining stop in order until the trip completes or is abandoned, then exports
// the trip log. The export is performed even for abandoned runs; an export failure is returned.
func (r *Recorder) Run(ctx context.Context) error {
	r.logger.Info("starting run",
		zap.Int("stop_count", r.schedule.Len()),
		zap.String("export_path", r.exportPath),
	)

	var runErr error
	for !r.finished() {
		err := r.LogArrival(ctx, r.schedule.stops[r.next])
		if errors.Is(err, ErrAbandoned) {
			break
		} else if err != nil {
			r.logger.Warn("error logging arrival",
				zap.Error(err),
			)
			runErr = err
			break
		}
	}

	r.logger.Debug("final arrival record",
		zap.String("record", spew.Sdump(r.record.times)),
	)

	if err := r.Export(); err != nil {
		return err
	}

	r.logger.Info("run finished",
		zap.Stringer("state", r.state),
		zap.Int("stops_logged", r.record.Len()),
	)
	return runErr
}

// Export writes the trip log for whatever has been recorded so far.
func (r *Recorder) Export() error {
	if err := Export(r.exportPath, r.schedule, r.record); err != nil {
		r.logger.Error("unable to export trip log",
			zap.String("export_path", r.exportPath),
			zap.Error(err),
		)
		return err
	}
	return nil
}
