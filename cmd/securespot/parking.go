package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/state"
)

func (a *app) cmdParking(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: securespot parking issue|status|watch|remove")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "issue":
		return a.parkingIssue(ctx, rest)
	case "status":
		return a.parkingStatus()
	case "watch":
		return a.parkingWatch()
	case "remove":
		return a.parkingRemove(ctx)
	default:
		return fmt.Errorf("unknown parking subcommand %q", sub)
	}
}

func (a *app) parkingIssue(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("parking issue", flag.ExitOnError)
	location := fs.String("location", "", "current location (address)")
	fs.Parse(args)

	token, err := a.requireSession()
	if err != nil {
		return err
	}
	if *location == "" {
		return fmt.Errorf("please provide your location (-location)")
	}

	parkingToken, err := a.bot.ParkingToken(ctx, token, *location)
	if err != nil {
		return err
	}
	if err := a.parking.Issue(ctx, parkingToken); err != nil {
		return fmt.Errorf("token issued but could not be stored: %w", err)
	}
	fmt.Println("Parking token generated:", parkingToken)
	return nil
}

func (a *app) parkingStatus() error {
	snapshot, ok := a.parking.Snapshot(time.Now())
	if !ok {
		fmt.Println("No parking token.")
		return nil
	}
	printSnapshot(snapshot)
	return nil
}

// parkingWatch recomputes elapsed time and status once per second until
// interrupted, alongside a wall clock, like the parking screen did.
func (a *app) parkingWatch() error {
	if _, ok := a.parking.Record(); !ok {
		fmt.Println("No parking token.")
		return nil
	}

	poller := a.parking.Watch(func(snapshot state.ParkingSnapshot) {
		fmt.Printf("\r%s  %s  elapsed %s  status %s   ",
			time.Now().Format("15:04:05"),
			snapshot.Token,
			model.FormatElapsed(snapshot.ElapsedSeconds),
			snapshot.Status,
		)
	})
	defer poller.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	fmt.Println()
	return nil
}

func (a *app) parkingRemove(ctx context.Context) error {
	if err := a.parking.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Parking token removed.")
	return nil
}

func printSnapshot(snapshot state.ParkingSnapshot) {
	fmt.Println("Token:  ", snapshot.Token)
	fmt.Println("Elapsed:", model.FormatElapsed(snapshot.ElapsedSeconds))
	fmt.Println("Status: ", snapshot.Status)
}
