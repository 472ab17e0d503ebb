package trigger

import (
	"context"

	"github.com/rmrobinson/triplog/services/transit"
)

// Channel advances the trip each time a value is received on a channel.
// Closing the channel abandons the run.
type Channel struct {
	signals <-chan struct{}
}

// NewChannel creates a trigger fed by the supplied channel.
func NewChannel(signals <-chan struct{}) *Channel {
	return &Channel{
		signals: signals,
	}
}

// Wait blocks until a signal is received.
func (c *Channel) Wait(ctx context.Context, stop transit.Stop) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-c.signals:
		if !ok {
			return transit.ErrAbandoned
		}
		return nil
	}
}
