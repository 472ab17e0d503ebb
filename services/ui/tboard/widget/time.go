package widget

import (
	"context"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/rmrobinson/triplog/services/transit"
)

// Time is a widget to display the time arrivals are being logged against.
type Time struct {
	*tview.TextView

	app *tview.Application

	clock transit.Clock
}

// NewTime creates a new time widget reading the supplied clock.
func NewTime(app *tview.Application, clock transit.Clock, title string) *Time {
	t := &Time{
		TextView: tview.NewTextView(),
		app:      app,
		clock:    clock,
	}

	t.SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorLime).
		SetBorder(true).
		SetTitle(title)

	return t
}

func formatTime(now time.Time) string {
	return now.Format("Mon, 02 Jan 2006") + "\n" + now.Format("15:04:05 MST")
}

// Run updates the widget until the context is cancelled.
func (t *Time) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Millisecond * 200)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		text := formatTime(t.clock.Now())
		t.app.QueueUpdateDraw(func() {
			t.SetText(text)
		})
	}
}
