package transit

import (
	"fmt"
	"io"
	"time"
)

const (
	ansiRed    = "\033[91m"
	ansiGreen  = "\033[92m"
	ansiYellow = "\033[93m"
	ansiReset  = "\033[0m"

	deviationWidth = 12
)

// Renderer writes the tail view of a trip to a writer.
type Renderer interface {
	Render(w io.Writer, rows []Row) error
}

// PlainRenderer renders the tail view as plain text.
type PlainRenderer struct{}

// Render writes the rows as a text table.
func (PlainRenderer) Render(w io.Writer, rows []Row) error {
	return renderTable(w, rows, func(_ Row, text string) string {
		return text
	})
}

// ColorRenderer renders the tail view with ANSI colors marking late, early and on-time arrivals.
type ColorRenderer struct{}

// Render writes the rows as a text table with colored deviations.
func (ColorRenderer) Render(w io.Writer, rows []Row) error {
	return renderTable(w, rows, func(row Row, text string) string {
		if !row.Visited {
			return text
		}
		return categoryColor(row.Deviation.Category()) + text + ansiReset
	})
}

func categoryColor(c Category) string {
	switch c {
	case Late:
		return ansiRed
	case Early:
		return ansiGreen
	default:
		return ansiYellow
	}
}

func renderTable(w io.Writer, rows []Row, decorate func(Row, string) string) error {
	if _, err := fmt.Fprintf(w, "\n--- Trip Status ---\n%-3s %-25s %-6s %-8s %-12s %s\n",
		"Seq", "Stop", "Target", "Actual", "Deviation", "From prev"); err != nil {
		return err
	}

	for _, row := range rows {
		deviation := fmt.Sprintf("%-*s", deviationWidth, row.DeviationText())
		_, err := fmt.Fprintf(w, "%-3d %-25s %-6s %-8s %s %s\n",
			row.Sequence,
			row.Name,
			row.Target,
			row.ActualText(),
			decorate(row, deviation),
			row.TravelText(),
		)
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "-------------------\n\n")
	return err
}

// ConsoleDisplay shows trip progress on a text console.
type ConsoleDisplay struct {
	out      io.Writer
	renderer Renderer
}

// NewConsoleDisplay creates a display writing to out with the supplied renderer.
func NewConsoleDisplay(out io.Writer, renderer Renderer) *ConsoleDisplay {
	return &ConsoleDisplay{
		out:      out,
		renderer: renderer,
	}
}

// Logged prints a confirmation that the arrival at a stop was recorded.
func (d *ConsoleDisplay) Logged(stop Stop, at time.Time) error {
	_, err := fmt.Fprintf(d.out, "Logged: %s at %s\n", stop.Name, at.Format(loggedTimeFormat))
	return err
}

// Show renders the tail view.
func (d *ConsoleDisplay) Show(rows []Row) error {
	return d.renderer.Render(d.out, rows)
}
