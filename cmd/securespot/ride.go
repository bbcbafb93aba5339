package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/securespot/securespot-go/internal/model"
)

func (a *app) cmdRide(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: securespot ride request|status|offers|stop|watch")
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "request":
		return a.rideCreate(ctx, rest)
	case "status":
		return a.rideStatus(ctx)
	case "offers":
		return a.rideOffers(ctx)
	case "stop":
		return a.rideStop(ctx)
	case "watch":
		return a.rideWatch(ctx)
	default:
		return fmt.Errorf("unknown ride subcommand %q", sub)
	}
}

func (a *app) rideCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ride request", flag.ExitOnError)
	from := fs.String("from", "", "current location")
	to := fs.String("to", "", "destination")
	fs.Parse(args)

	if *from == "" || *to == "" {
		return fmt.Errorf("please enter both current and destination locations (-from, -to)")
	}

	message, err := a.ride.Create(ctx, *from, *to)
	if err != nil {
		return err
	}
	fmt.Println(message)
	printOffers(a.ride.Offers())
	return nil
}

func (a *app) rideStatus(ctx context.Context) error {
	if err := a.ride.Refresh(ctx); err != nil {
		return err
	}
	if a.ride.Requested() {
		fmt.Println("You have an active ride request.")
		printOffers(a.ride.Offers())
	} else {
		fmt.Println("No active ride request.")
	}
	return nil
}

// rideOffers is the user-triggered refresh: it reports progress and errors,
// unlike the silent 30-second poll.
func (a *app) rideOffers(ctx context.Context) error {
	fmt.Println("Refreshing offers...")
	if err := a.ride.RefreshOffers(ctx); err != nil {
		return err
	}
	printOffers(a.ride.Offers())
	return nil
}

func (a *app) rideStop(ctx context.Context) error {
	message, err := a.ride.Stop(ctx)
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}

// rideWatch keeps the offer list fresh on the poll cadence until
// interrupted.
func (a *app) rideWatch(ctx context.Context) error {
	if err := a.ride.Refresh(ctx); err != nil {
		return err
	}
	if !a.ride.Requested() {
		fmt.Println("No active ride request.")
		return nil
	}
	printOffers(a.ride.Offers())

	a.ride.StartPolling()
	defer a.ride.StopPolling()
	fmt.Println("Watching for matching offers (Ctrl-C to stop)...")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	return nil
}

func (a *app) cmdShare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: securespot share start|status|stop")
	}
	token, err := a.requireSession()
	if err != nil {
		return err
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "start":
		fs := flag.NewFlagSet("share start", flag.ExitOnError)
		from := fs.String("from", "", "current location")
		to := fs.String("to", "", "destination")
		seats := fs.Int("seats", 1, "available seats")
		fs.Parse(rest)

		if *from == "" || *to == "" {
			return fmt.Errorf("please enter both current and destination locations (-from, -to)")
		}
		message, err := a.api.CreateRideShare(ctx, token, *from, *to, *seats)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil

	case "status":
		active, err := a.api.RideShareStatus(ctx, token)
		if err != nil {
			return err
		}
		if active {
			fmt.Println("You are sharing a ride.")
		} else {
			fmt.Println("No active ride share.")
		}
		return nil

	case "stop":
		message, err := a.api.StopRideShare(ctx, token)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil

	default:
		return fmt.Errorf("unknown share subcommand %q", sub)
	}
}

func printOffers(offers []model.MatchingOffer) {
	if len(offers) == 0 {
		fmt.Println("No matching offers yet.")
		return
	}
	fmt.Printf("%d matching offer(s):\n", len(offers))
	for _, offer := range offers {
		fmt.Printf("  %s's ride  %s (%s)\n", offer.Name, offer.VehicleModel, offer.Color)
		fmt.Printf("    from %s to %s, %d seat(s)\n",
			offer.CurrentLocation, offer.DestinationLocation, offer.AvailableSeats)
	}
}
