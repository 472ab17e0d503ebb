package widget

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/rmrobinson/triplog/services/transit"
)

var statusHeaders = []string{"Seq", "Stop", "Target", "Actual", "Deviation", "From prev"}

// categoryColor returns the color a deviation of the specified category is drawn in.
func categoryColor(c transit.Category) tcell.Color {
	switch c {
	case transit.Late:
		return tcell.ColorRed
	case transit.Early:
		return tcell.ColorGreen
	default:
		return tcell.ColorYellow
	}
}

// statusCells lays out the rows as table cells, header first.
func statusCells(rows []transit.Row) [][]*tview.TableCell {
	cells := make([][]*tview.TableCell, 0, len(rows)+1)

	var header []*tview.TableCell
	for _, text := range statusHeaders {
		header = append(header, tview.NewTableCell(text).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}
	cells = append(cells, header)

	for _, row := range rows {
		deviation := tview.NewTableCell(row.DeviationText())
		if row.Visited {
			deviation.SetTextColor(categoryColor(row.Deviation.Category()))
		}

		cells = append(cells, []*tview.TableCell{
			tview.NewTableCell(fmt.Sprintf("%d", row.Sequence)).SetAlign(tview.AlignRight),
			tview.NewTableCell(row.Name).SetExpansion(1),
			tview.NewTableCell(row.Target.String()),
			tview.NewTableCell(row.ActualText()),
			deviation,
			tview.NewTableCell(row.TravelText()),
		})
	}

	return cells
}

// TripStatus is a widget that displays the tail view of a trip.
// It satisfies transit.Display so a recorder can drive it directly.
type TripStatus struct {
	*tview.Table

	app *tview.Application

	schedule *transit.Schedule
}

// NewTripStatus creates a new trip status widget showing every stop of the schedule as unvisited.
func NewTripStatus(app *tview.Application, schedule *transit.Schedule) *TripStatus {
	ts := &TripStatus{
		Table:    tview.NewTable(),
		app:      app,
		schedule: schedule,
	}

	ts.SetFixed(1, 0).
		SetBorder(true).
		SetTitle("Trip status").
		SetTitleAlign(tview.AlignLeft)

	ts.fill(transit.BuildRows(schedule, transit.NewArrivalRecord()))
	ts.SetTitle(ts.nextTitle(0))
	return ts
}

func (ts *TripStatus) fill(rows []transit.Row) {
	ts.Clear()
	for r, line := range statusCells(rows) {
		for c, cell := range line {
			ts.SetCell(r, c, cell)
		}
	}
}

// nextTitle describes the stop after the one with the supplied sequence number.
func (ts *TripStatus) nextTitle(sequence int) string {
	for _, stop := range ts.schedule.Stops() {
		if stop.Sequence > sequence {
			return fmt.Sprintf("Trip status - press ENTER at stop %s", stop)
		}
	}
	return "Trip status - complete, press q to exit"
}

// Logged updates the title to point at the next stop.
func (ts *TripStatus) Logged(stop transit.Stop, at time.Time) error {
	title := ts.nextTitle(stop.Sequence)
	ts.app.QueueUpdateDraw(func() {
		ts.SetTitle(title)
	})
	return nil
}

// Show redraws the table with the supplied rows.
func (ts *TripStatus) Show(rows []transit.Row) error {
	ts.app.QueueUpdateDraw(func() {
		ts.fill(rows)
	})
	return nil
}
