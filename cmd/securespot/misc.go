package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/securespot/securespot-go/internal/chat"
	"github.com/securespot/securespot-go/internal/config"
	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/sched"
)

func (a *app) cmdDetect(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: securespot detect parking|security -image <path>")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("detect "+sub, flag.ExitOnError)
	image := fs.String("image", "", "path to the photo")
	fs.Parse(rest)
	if *image == "" {
		return fmt.Errorf("please upload an image first (-image)")
	}

	switch sub {
	case "parking":
		result, err := a.vision.CheckParking(ctx, *image)
		if err != nil {
			return err
		}
		valid := "No"
		if result.ParkingValid {
			valid = "Yes"
		}
		fmt.Println("Parking valid:     ", valid)
		fmt.Println("Total slots:       ", model.IntLabel(result.TotalSlots))
		fmt.Println("Occupied slots:    ", model.IntLabel(result.OccupiedSlots))
		fmt.Println("Free slots:        ", model.IntLabel(result.FreeSlots))
		fmt.Println("Detected car count:", model.IntLabel(result.DetectedCarCount))
		fmt.Println("Details:           ", result.Details())
		return nil

	case "security":
		result, err := a.vision.CheckSecurity(ctx, *image)
		if err != nil {
			return err
		}
		fmt.Println("Activity:        ", result.ActivityLabel())
		fmt.Println("Alert level:     ", result.AlertLabel())
		fmt.Println("Confidence:      ", model.FloatLabel(result.Confidence))
		fmt.Println("Detected objects:", result.ObjectsLabel())
		fmt.Println("Detail:          ", result.Message)
		return nil

	default:
		return fmt.Errorf("unknown detect subcommand %q", sub)
	}
}

func (a *app) cmdChat(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: securespot chat history|ask -q <question>")
	}
	token, err := a.requireSession()
	if err != nil {
		return err
	}
	chatLog := chat.NewLog(a.chat, token)
	sub, rest := args[0], args[1:]

	switch sub {
	case "history":
		if err := chatLog.Reload(ctx); err != nil {
			return err
		}
		turns := chatLog.Turns()
		if len(turns) == 0 {
			fmt.Println("No chat history.")
			return nil
		}
		for _, turn := range turns {
			fmt.Println("You:      ", turn.Question)
			fmt.Println("Assistant:", turn.Response)
		}
		return nil

	case "ask":
		fs := flag.NewFlagSet("chat ask", flag.ExitOnError)
		question := fs.String("q", "", "question for the assistant")
		fs.Parse(rest)
		if *question == "" {
			return fmt.Errorf("please provide a question (-q)")
		}

		turn, err := chatLog.Ask(ctx, *question)
		fmt.Println("You:      ", turn.Question)
		fmt.Println("Assistant:", turn.Response)
		return err

	default:
		return fmt.Errorf("unknown chat subcommand %q", sub)
	}
}

func (a *app) cmdRoute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	from := fs.String("from", "", "origin address")
	to := fs.String("to", "", "destination address")
	fs.Parse(args)

	if *from == "" || *to == "" {
		return fmt.Errorf("please enter both origin and destination (-from, -to)")
	}

	route, err := a.places.Directions(ctx, *from, *to)
	if err != nil {
		return err
	}
	fmt.Println("Distance:", route.Distance)
	fmt.Println("Duration:", route.Duration)
	if route.DurationInTraffic != "" {
		fmt.Println("In traffic:", route.DurationInTraffic)
	}
	fmt.Printf("Destination: %.5f, %.5f\n", route.End.Latitude, route.End.Longitude)
	fmt.Printf("Route points: %d\n", len(route.Points))
	return nil
}

// cmdSuggest autocompletes a location. With -input it fires once; without,
// it reads lines from stdin and debounces them the way the screens debounced
// keystrokes.
func (a *app) cmdSuggest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	input := fs.String("input", "", "partial location text")
	fs.Parse(args)

	if *input != "" {
		return a.printSuggestions(ctx, *input)
	}

	fmt.Println("Type a location (Ctrl-D to quit):")
	debouncer := sched.NewDebouncer(config.SuggestDebounce, func(value string) {
		if err := a.printSuggestions(ctx, value); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	})
	defer debouncer.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		debouncer.Call(scanner.Text())
	}
	return scanner.Err()
}

func (a *app) printSuggestions(ctx context.Context, input string) error {
	predictions, err := a.places.Autocomplete(ctx, input)
	if err != nil {
		return err
	}
	if len(predictions) == 0 {
		fmt.Println("No suggestions.")
		return nil
	}
	for _, p := range predictions {
		fmt.Println(" -", p.Description)
	}
	return nil
}
