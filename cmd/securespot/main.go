package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/api"
	"github.com/securespot/securespot-go/internal/chat"
	"github.com/securespot/securespot-go/internal/config"
	"github.com/securespot/securespot-go/internal/places"
	"github.com/securespot/securespot-go/internal/state"
	"github.com/securespot/securespot-go/internal/store"
	"github.com/securespot/securespot-go/internal/vision"
)

const usage = `usage: securespot <command> [flags]

  login             authenticate with email and password
  signup            create an account
  otp               verify your email with a one-time code
  logout            clear the stored session
  profile           show profile and vehicle details
  vehicle           register a vehicle
  parking           issue | status | watch | remove
  ride              request | status | offers | stop | watch
  share             start | status | stop
  detect            parking | security  (photo analysis)
  chat              history | ask
  route             directions between two addresses
  suggest           location autocomplete
`

// app carries the wired clients and state holders every command works on.
type app struct {
	cfg     *config.Config
	store   store.Store
	session *state.Session
	parking *state.ParkingToken
	ride    *state.RideRequest

	api     *api.Client
	bot     *api.Client // parking tokens are issued by the bot host
	chat    *chat.Client
	vision  *vision.Client
	places  *places.Client
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	config.SetLogLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer st.Close()

	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	a := &app{
		cfg:    cfg,
		store:  st,
		api:    api.NewClient(cfg.APIBaseURL, timeout),
		bot:    api.NewClient(cfg.BotBaseURL, timeout),
		chat:   chat.NewClient(cfg.BotBaseURL, timeout),
		vision: vision.NewClient(cfg.VisionBaseURL, timeout),
		places: places.NewClient(cfg.MapsBaseURL, cfg.MapsAPIKey, timeout),
	}

	a.session = state.NewSession(st)
	a.parking = state.NewParkingToken(st)
	a.ride = state.NewRideRequest(st, a.api, a.session)

	a.session.Load(ctx)
	a.parking.Load(ctx)
	a.ride.Load(ctx)

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "signup":
		return a.cmdSignup(ctx, args)
	case "otp":
		return a.cmdOTP(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "profile":
		return a.cmdProfile(ctx)
	case "vehicle":
		return a.cmdVehicle(ctx, args)
	case "parking":
		return a.cmdParking(ctx, args)
	case "ride":
		return a.cmdRide(ctx, args)
	case "share":
		return a.cmdShare(ctx, args)
	case "detect":
		return a.cmdDetect(ctx, args)
	case "chat":
		return a.cmdChat(ctx, args)
	case "route":
		return a.cmdRoute(ctx, args)
	case "suggest":
		return a.cmdSuggest(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSession guards the authenticated commands.
func (a *app) requireSession() (string, error) {
	token := a.session.Token()
	if token == "" {
		return "", fmt.Errorf("not logged in; run: securespot login")
	}
	return token, nil
}
