package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/rmrobinson/triplog/lib/cli"
	"github.com/rmrobinson/triplog/services/transit"
	"github.com/rmrobinson/triplog/services/transit/trigger"
	"github.com/rmrobinson/triplog/services/ui/tboard/widget"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const outputKey = "output"

func main() {
	flags := pflag.NewFlagSet("tripboard", pflag.ExitOnError)
	cli.AddCommonFlags(flags)
	flags.String(outputKey, transit.DefaultExportPath, "CSV file the trip log is written to")
	flags.String("gtfs.path", "", "Directory of a GTFS feed to read the schedule from")
	flags.String("gtfs.trip_id", "", "Trip in the GTFS feed to follow")

	v, err := cli.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %s\n", err)
		os.Exit(1)
	}

	// Used until the dashboard is up, and for the final result once it has been torn down.
	stderrLogger, err := cli.NewLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stops, err := transit.LoadStops(ctx, stderrLogger, v)
	if err != nil {
		stderrLogger.Fatal("error loading stops",
			zap.Error(err),
		)
	}
	loc, err := cli.Location(v)
	if err != nil {
		stderrLogger.Fatal("invalid timezone",
			zap.Error(err),
		)
	}
	schedule, err := transit.NewSchedule(stops, time.Now().In(loc))
	if err != nil {
		stderrLogger.Fatal("error building schedule",
			zap.Error(err),
		)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(v.GetString("log.level"))); err != nil {
		level = zapcore.InfoLevel
	}

	app := tview.NewApplication()
	clock := transit.SystemClock{Location: loc}

	statusView := widget.NewTripStatus(app, schedule)
	logView := widget.NewDebug(app)
	timeView := widget.NewTime(app, clock, loc.String())
	go timeView.Run(ctx)

	logger := newWidgetLogger(NewWidgetSink(logView), level)

	// One press may queue while the recorder is between stops; further presses are dropped.
	advance := make(chan struct{}, 1)
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEnter:
			select {
			case advance <- struct{}{}:
			default:
			}
			return nil
		case event.Key() == tcell.KeyEscape || event.Rune() == 'q':
			app.Stop()
			return nil
		}
		return event
	})

	recorder := transit.NewRecorder(logger, schedule, trigger.NewChannel(advance), statusView, clock, v.GetString(outputKey))

	events := recorder.Subscribe()
	go func() {
		for msg := range events.Messages() {
			logView.Append(msg.String() + "\n")
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- recorder.Run(ctx)
	}()

	layout := tview.NewFlex().
		AddItem(statusView, 0, 3, true).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(timeView, 4, 1, false).
			AddItem(logView, 0, 1, false), 48, 1, false)
	if err := app.SetRoot(layout, true).SetFocus(layout).Run(); err != nil {
		stderrLogger.Error("dashboard failed",
			zap.Error(err),
		)
	}

	// The dashboard is gone; abandon the run if it is still waiting and let it export.
	cancel()
	runErr := <-done
	events.Close()

	if runErr != nil {
		stderrLogger.Error("trip run failed",
			zap.Stringer("state", recorder.State()),
			zap.Error(runErr),
		)
		stderrLogger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Trip %s, %d of %d stops logged. All logged data saved to '%s'.\n",
		recorder.State(), recorder.Record().Len(), recorder.Schedule().Len(), v.GetString(outputKey))
}
