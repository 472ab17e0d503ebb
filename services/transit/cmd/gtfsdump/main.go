package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rmrobinson/triplog/lib/cli"
	"github.com/rmrobinson/triplog/services/transit"
	"github.com/rmrobinson/triplog/services/transit/gtfs"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func printTrips(ds *gtfs.Dataset) {
	for _, trip := range ds.Trips {
		fmt.Printf("Trip %s (route %s, %s)\n", trip.ID, trip.RouteID, trip.Headsign)
	}
}

func printPlan(logger *zap.Logger, ds *gtfs.Dataset, tripID string) {
	plan, err := ds.TripPlan(tripID)
	if err != nil {
		logger.Fatal("cannot plan trip",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}

	stops, err := transit.StopsFromGTFS(plan)
	if err != nil {
		logger.Fatal("cannot schedule trip",
			zap.String("trip_id", tripID),
			zap.Error(err),
		)
	}

	fmt.Printf("Trip %s:\n", tripID)
	for _, stop := range stops {
		fmt.Printf(" %3d %s %s\n", stop.Sequence, stop.Scheduled, stop.Name)
	}
}

func main() {
	flags := pflag.NewFlagSet("gtfsdump", pflag.ExitOnError)
	cli.AddCommonFlags(flags)
	flags.String("gtfs.path", "", "Directory of the GTFS feed")
	flags.String("gtfs.trip_id", "", "Trip to print the stops of; all trips are listed if empty")

	v, err := cli.Load(flags, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %s\n", err)
		os.Exit(1)
	}

	logger, err := cli.NewLogger(v)
	if err != nil {
		panic(err)
	}

	ds := gtfs.NewDataset(logger)
	if err := ds.LoadFromFSPath(context.Background(), v.GetString("gtfs.path")); err != nil {
		logger.Fatal("error loading dataset",
			zap.String("path", v.GetString("gtfs.path")),
			zap.Error(err),
		)
	}

	if tripID := v.GetString("gtfs.trip_id"); len(tripID) > 0 {
		printPlan(logger, ds, tripID)
		return
	}
	printTrips(ds)
}
