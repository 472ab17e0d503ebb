package transit

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAbandoned is returned by a trigger once no further advance signals will arrive.
	ErrAbandoned = errors.New("run abandoned")
)

// Trigger blocks until the vehicle reaches the supplied stop.
// Implementations return ErrAbandoned, or the context error, if the run should stop early.
type Trigger interface {
	Wait(ctx context.Context, stop Stop) error
}

// Display shows trip progress as arrivals are logged.
type Display interface {
	Logged(stop Stop, at time.Time) error
	Show(rows []Row) error
}
