package trigger

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/rmrobinson/triplog/services/transit"
)

// lineReader turns each line read from an input into one advance signal.
// Reading happens on a helper goroutine so a blocked read does not prevent cancellation.
type lineReader struct {
	in    *bufio.Reader
	lines chan struct{}
	once  sync.Once
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{
		in:    bufio.NewReader(in),
		lines: make(chan struct{}),
	}
}

func (lr *lineReader) run() {
	defer close(lr.lines)

	for {
		line, err := lr.in.ReadString('\n')
		if len(line) > 0 {
			lr.lines <- struct{}{}
		}
		if err != nil {
			return
		}
	}
}

func (lr *lineReader) wait(ctx context.Context) error {
	lr.once.Do(func() {
		go lr.run()
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case _, ok := <-lr.lines:
		if !ok {
			return transit.ErrAbandoned
		}
		return nil
	}
}
