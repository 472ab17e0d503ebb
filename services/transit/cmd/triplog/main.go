package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmrobinson/triplog/lib/cli"
	"github.com/rmrobinson/triplog/services/transit"
	"github.com/rmrobinson/triplog/services/transit/trigger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	outputKey     = "output"
	triggerKey    = "trigger"
	colorKey      = "color"
	serialPortKey = "serial.port"
	serialBaudKey = "serial.baud"
)

func newRenderer(mode string) transit.Renderer {
	switch mode {
	case "always":
		return transit.ColorRenderer{}
	case "never":
		return transit.PlainRenderer{}
	default:
		if terminal.IsTerminal(int(os.Stdout.Fd())) {
			return transit.ColorRenderer{}
		}
		return transit.PlainRenderer{}
	}
}

// newTrigger builds the configured trigger. The returned func releases any resources it holds.
func newTrigger(logger *zap.Logger, v *viper.Viper, schedule *transit.Schedule) (transit.Trigger, func(), error) {
	switch mode := v.GetString(triggerKey); mode {
	case "console":
		return trigger.NewConsole(os.Stdin, os.Stdout), func() {}, nil
	case "serial":
		s, err := trigger.NewSerial(logger, v.GetString(serialPortKey), v.GetInt(serialBaudKey))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "schedule":
		s, err := trigger.NewScheduled(logger, schedule, nil)
		if err != nil {
			return nil, nil, err
		}
		s.Start()
		return s, s.Stop, nil
	default:
		return nil, nil, fmt.Errorf("unknown trigger %q", mode)
	}
}

func main() {
	flags := pflag.NewFlagSet("triplog", pflag.ExitOnError)
	cli.AddCommonFlags(flags)
	flags.String(outputKey, transit.DefaultExportPath, "CSV file the trip log is written to")
	flags.String(triggerKey, "console", "What signals an arrival: console, serial or schedule")
	flags.String(colorKey, "auto", "Color the deviations: auto, always or never")
	flags.String(serialPortKey, "", "Serial device of the arrival sensor")
	flags.Int(serialBaudKey, trigger.DefaultBaudRate, "Baud rate of the arrival sensor")
	flags.String("gtfs.path", "", "Directory of a GTFS feed to read the schedule from")
	flags.String("gtfs.trip_id", "", "Trip in the GTFS feed to follow")

	v, err := cli.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %s\n", err)
		os.Exit(1)
	}

	logger, err := cli.NewLogger(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating logger: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("received signal, ending run",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	stops, err := transit.LoadStops(ctx, logger, v)
	if err != nil {
		logger.Fatal("error loading stops",
			zap.Error(err),
		)
	}

	loc, err := cli.Location(v)
	if err != nil {
		logger.Fatal("invalid timezone",
			zap.Error(err),
		)
	}

	schedule, err := transit.NewSchedule(stops, time.Now().In(loc))
	if err != nil {
		logger.Fatal("error building schedule",
			zap.Error(err),
		)
	}

	trig, release, err := newTrigger(logger, v, schedule)
	if err != nil {
		logger.Fatal("error initializing trigger",
			zap.String("trigger", v.GetString(triggerKey)),
			zap.Error(err),
		)
	}

	display := transit.NewConsoleDisplay(os.Stdout, newRenderer(v.GetString(colorKey)))
	recorder := transit.NewRecorder(logger, schedule, trig, display, transit.SystemClock{Location: loc}, v.GetString(outputKey))

	fmt.Println("Manual bus stop logger (with scheduled times)")
	fmt.Println("Press ENTER when the bus reaches each stop to log actual time.")
	fmt.Println("Deviations vs scheduled times and travel time from the previous stop are shown after each stop.")
	fmt.Println()

	runErr := recorder.Run(ctx)
	release()

	if runErr != nil {
		logger.Error("trip run failed",
			zap.Stringer("state", recorder.State()),
			zap.Error(runErr),
		)
		logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("\nAll logged data saved to '%s'.\n", v.GetString(outputKey))
}
