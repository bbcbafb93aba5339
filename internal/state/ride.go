package state

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/config"
	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/sched"
	"github.com/securespot/securespot-go/internal/store"
)

// RideAPI is the slice of the business API the ride-flag holder drives.
type RideAPI interface {
	RideRequestStatus(ctx context.Context, token string) (bool, error)
	MatchingOffers(ctx context.Context, token string) ([]model.MatchingOffer, error)
	CreateRideRequest(ctx context.Context, token, currentLocation, destinationLocation string) (string, error)
	StopRideRequest(ctx context.Context, token string) (string, error)
}

// RideRequest mirrors the server-reported "I have an open ride request"
// boolean. The server is authoritative; the persisted flag is only a cache
// warming the UI between refreshes.
type RideRequest struct {
	store   store.Store
	api     RideAPI
	session *Session

	mu        sync.RWMutex
	requested bool
	offers    []model.MatchingOffer

	poller *sched.Poller
}

func NewRideRequest(st store.Store, api RideAPI, session *Session) *RideRequest {
	return &RideRequest{store: st, api: api, session: session}
}

// Load reads the cached flag. Absent or unreadable values default to false.
func (r *RideRequest) Load(ctx context.Context) {
	raw, err := r.store.Get(ctx, store.KeyRideRequestStatus)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("error loading ride request status")
		return
	}
	requested, err := strconv.ParseBool(raw)
	if err != nil {
		return
	}
	r.mu.Lock()
	r.requested = requested
	r.mu.Unlock()
}

// Refresh asks the server whether a request is open and mirrors the answer.
// A transport failure fails open to requested=false and returns nil: the
// screen degrades to "no active request" instead of blocking.
func (r *RideRequest) Refresh(ctx context.Context) error {
	token := r.session.Token()
	requested, err := r.api.RideRequestStatus(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("ride status check failed, assuming no active request")
		r.setRequested(ctx, false)
		r.setOffers(nil)
		return nil
	}

	r.setRequested(ctx, requested)
	if !requested {
		r.setOffers(nil)
		return nil
	}
	return r.RefreshOffers(ctx)
}

// Create posts a new ride request. The flag flips only when the server
// confirms; otherwise the server's message comes back as the error.
func (r *RideRequest) Create(ctx context.Context, currentLocation, destinationLocation string) (string, error) {
	message, err := r.api.CreateRideRequest(ctx, r.session.Token(), currentLocation, destinationLocation)
	if err != nil {
		return "", err
	}
	r.setRequested(ctx, true)
	if err := r.RefreshOffers(ctx); err != nil {
		log.Warn().Err(err).Msg("offer fetch after ride request failed")
	}
	return message, nil
}

// Stop withdraws the open request on server confirmation.
func (r *RideRequest) Stop(ctx context.Context) (string, error) {
	message, err := r.api.StopRideRequest(ctx, r.session.Token())
	if err != nil {
		return "", err
	}
	r.setRequested(ctx, false)
	r.setOffers(nil)
	return message, nil
}

// RefreshOffers fetches the current matching offers. Used both by the
// user-triggered refresh (which surfaces the error) and by the silent poll.
func (r *RideRequest) RefreshOffers(ctx context.Context) error {
	offers, err := r.api.MatchingOffers(ctx, r.session.Token())
	if err != nil {
		r.setOffers(nil)
		return err
	}
	r.setOffers(offers)
	return nil
}

func (r *RideRequest) Requested() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.requested
}

func (r *RideRequest) Offers() []model.MatchingOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	offers := make([]model.MatchingOffer, len(r.offers))
	copy(offers, r.offers)
	return offers
}

// StartPolling refreshes matching offers every 30 seconds while the flag is
// set. The poll is silent: failures are logged, never surfaced.
func (r *RideRequest) StartPolling() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.poller != nil {
		return
	}
	r.poller = sched.NewPoller(config.OfferPollInterval, func(ctx context.Context) {
		if !r.Requested() {
			return
		}
		if err := r.RefreshOffers(ctx); err != nil {
			log.Debug().Err(err).Msg("silent offer refresh failed")
		}
	})
	r.poller.Start(false)
}

// StopPolling cancels the poll and discards any in-flight refresh result.
func (r *RideRequest) StopPolling() {
	r.mu.Lock()
	poller := r.poller
	r.poller = nil
	r.mu.Unlock()
	if poller != nil {
		poller.Stop()
	}
}

func (r *RideRequest) setRequested(ctx context.Context, requested bool) {
	r.mu.Lock()
	r.requested = requested
	r.mu.Unlock()
	if err := r.store.Set(ctx, store.KeyRideRequestStatus, strconv.FormatBool(requested)); err != nil {
		log.Error().Err(err).Msg("error storing ride request status")
	}
}

func (r *RideRequest) setOffers(offers []model.MatchingOffer) {
	r.mu.Lock()
	r.offers = offers
	r.mu.Unlock()
}
