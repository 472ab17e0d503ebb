package trigger

import (
	"context"
	"fmt"
	"io"

	"github.com/rmrobinson/triplog/services/transit"
)

// Console prompts for each stop and waits for the rider to press ENTER.
type Console struct {
	out    io.Writer
	reader *lineReader
}

// NewConsole creates a console trigger reading lines from in and writing prompts to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		out:    out,
		reader: newLineReader(in),
	}
}

// Wait prompts for the stop and blocks until a line is entered.
// Closing the input abandons the run.
func (c *Console) Wait(ctx context.Context, stop transit.Stop) error {
	fmt.Fprintf(c.out, "Press ENTER at stop %d - %s (scheduled %s) -> ", stop.Sequence, stop.Name, stop.Scheduled)
	return c.reader.wait(ctx)
}
