package widget

import (
	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
)

// Debug is a widget to display log and event output, newest at the bottom.
type Debug struct {
	*tview.TextView

	app *tview.Application
}

// NewDebug creates a new debug widget.
func NewDebug(app *tview.Application) *Debug {
	d := &Debug{
		TextView: tview.NewTextView(),
		app:      app,
	}

	d.SetTextAlign(tview.AlignLeft).
		SetTextColor(tcell.ColorBlue).
		SetScrollable(true).
		SetBorder(true).
		SetTitle("Log")

	return d
}

// Append adds the contents to the end of the widget and scrolls to it.
func (d *Debug) Append(contents string) {
	d.app.QueueUpdateDraw(func() {
		d.Write([]byte(contents))
		d.ScrollToEnd()
	})
}
