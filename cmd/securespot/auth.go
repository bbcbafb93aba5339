package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/otp"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("please fill out all fields (-email, -password)")
	}

	token, err := a.api.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.session.Set(ctx, token); err != nil {
		return fmt.Errorf("login succeeded but the session could not be stored: %w", err)
	}
	fmt.Println("Logged in.")
	return nil
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" || *confirm == "" || *password != *confirm {
		return fmt.Errorf("please fill all fields correctly and ensure passwords match")
	}

	message, err := a.api.Signup(ctx, *name, *email, *password, *confirm)
	if err != nil {
		return err
	}
	fmt.Println(message)
	fmt.Println("Next: verify your email with `securespot otp -email", *email+"`")
	return nil
}

// cmdOTP runs the whole verification flow in one sitting: request the code,
// show the 60-second window counting down, read the code from stdin, verify.
func (a *app) cmdOTP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("otp", flag.ExitOnError)
	email := fs.String("email", "", "email to verify")
	fs.Parse(args)

	flow := otp.NewFlow(a.api)
	flow.OnTick = func(remaining int) {
		fmt.Printf("\rTime remaining: %2d sec  ", remaining)
	}

	expired := make(chan struct{})
	flow.OnExpire = func() {
		fmt.Println("\nOTP expired, please request a new one.")
		close(expired)
	}

	if err := flow.Send(ctx, *email); err != nil {
		return err
	}
	fmt.Println("An OTP has been sent to your email. Enter the 6-digit code:")

	codes := make(chan string, 1)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		codes <- strings.TrimSpace(line)
	}()

	select {
	case code := <-codes:
		if err := flow.Verify(ctx, code); err != nil {
			return err
		}
		fmt.Println("\nEmail verified. You can now log in.")
		return nil
	case <-expired:
		return otp.ErrExpired
	}
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.session.Set(ctx, ""); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// cmdProfile fetches user and vehicle details concurrently and joins both
// before rendering, like the profile screen did.
func (a *app) cmdProfile(ctx context.Context) error {
	token, err := a.requireSession()
	if err != nil {
		return err
	}

	var (
		wg         sync.WaitGroup
		profile    *model.UserProfile
		vehicle    *model.Vehicle
		profileErr error
		vehicleErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, profileErr = a.api.UserDetails(ctx, token)
	}()
	go func() {
		defer wg.Done()
		vehicle, vehicleErr = a.api.VehicleDetails(ctx, token)
	}()
	wg.Wait()

	if profileErr != nil {
		fmt.Println("Profile:", profileErr)
	} else {
		fmt.Printf("%s  (%s)\n", profile.Name, profile.Initials())
		fmt.Println("Email: ", profile.Email)
		fmt.Println("Joined:", profile.JoiningDate)
	}

	fmt.Println()
	if vehicleErr != nil {
		fmt.Println("Vehicle:", vehicleErr)
	} else {
		fmt.Println("Vehicle:      ", vehicle.Model)
		fmt.Println("Year:         ", vehicle.Year)
		fmt.Println("Color:        ", vehicle.Color)
		fmt.Println("License plate:", vehicle.LicensePlate)
	}
	return nil
}

func (a *app) cmdVehicle(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "register" {
		args = args[1:]
	}
	fs := flag.NewFlagSet("vehicle", flag.ExitOnError)
	vmodel := fs.String("model", "", "vehicle model")
	year := fs.Int("year", 0, "vehicle year")
	color := fs.String("color", "", "vehicle color")
	plate := fs.String("plate", "", "license plate")
	fs.Parse(args)

	token, err := a.requireSession()
	if err != nil {
		return err
	}
	if *vmodel == "" || *year == 0 || *color == "" || *plate == "" {
		return fmt.Errorf("please fill out all fields (-model, -year, -color, -plate)")
	}

	message, err := a.api.RegisterVehicle(ctx, token, model.Vehicle{
		Model:        *vmodel,
		Year:         *year,
		Color:        *color,
		LicensePlate: *plate,
	})
	if err != nil {
		return err
	}
	fmt.Println(message)
	return nil
}
