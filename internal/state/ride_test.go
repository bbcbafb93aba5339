package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securespot/securespot-go/internal/model"
	"github.com/securespot/securespot-go/internal/store"
)

type mockRideAPI struct {
	statusResult bool
	statusErr    error
	offers       []model.MatchingOffer
	offersErr    error
	createErr    error
	stopErr      error

	statusCalls int
	offerCalls  int
}

func (m *mockRideAPI) RideRequestStatus(ctx context.Context, token string) (bool, error) {
	m.statusCalls++
	return m.statusResult, m.statusErr
}

func (m *mockRideAPI) MatchingOffers(ctx context.Context, token string) ([]model.MatchingOffer, error) {
	m.offerCalls++
	return m.offers, m.offersErr
}

func (m *mockRideAPI) CreateRideRequest(ctx context.Context, token, currentLocation, destinationLocation string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	return "Ride requested.", nil
}

func (m *mockRideAPI) StopRideRequest(ctx context.Context, token string) (string, error) {
	if m.stopErr != nil {
		return "", m.stopErr
	}
	return "Ride request stopped.", nil
}

func newRideFixture(api RideAPI) (*RideRequest, *store.MemoryStore) {
	st := store.NewMemory()
	session := NewSession(st)
	session.Set(context.Background(), "T1")
	return NewRideRequest(st, api, session), st
}

func TestRideRefreshFailsOpenOnTransportError(t *testing.T) {
	ctx := context.Background()
	api := &mockRideAPI{statusErr: errors.New("connection refused")}
	ride, _ := newRideFixture(api)

	// A dead network must not surface an error or leave the flag set.
	err := ride.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, ride.Requested())
	assert.Empty(t, ride.Offers())
}

func TestRideRefreshMirrorsServerAnswer(t *testing.T) {
	ctx := context.Background()
	api := &mockRideAPI{
		statusResult: true,
		offers:       []model.MatchingOffer{{Name: "Sam", AvailableSeats: 2}},
	}
	ride, st := newRideFixture(api)

	require.NoError(t, ride.Refresh(ctx))
	assert.True(t, ride.Requested())
	assert.Len(t, ride.Offers(), 1)
	assert.Equal(t, 1, api.offerCalls, "an active request triggers an offer fetch")

	cached, err := st.Get(ctx, store.KeyRideRequestStatus)
	require.NoError(t, err)
	assert.Equal(t, "true", cached)

	// Server now reports no request; the cache follows.
	api.statusResult = false
	require.NoError(t, ride.Refresh(ctx))
	assert.False(t, ride.Requested())
	assert.Empty(t, ride.Offers())
}

func TestRideCreateFlipsFlagOnConfirmationOnly(t *testing.T) {
	ctx := context.Background()
	api := &mockRideAPI{createErr: errors.New("Request failed.")}
	ride, _ := newRideFixture(api)

	_, err := ride.Create(ctx, "A", "B")
	require.Error(t, err)
	assert.False(t, ride.Requested())

	api.createErr = nil
	message, err := ride.Create(ctx, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "Ride requested.", message)
	assert.True(t, ride.Requested())
}

func TestRideStopClearsFlagAndOffers(t *testing.T) {
	ctx := context.Background()
	api := &mockRideAPI{statusResult: true, offers: []model.MatchingOffer{{Name: "Sam"}}}
	ride, st := newRideFixture(api)
	require.NoError(t, ride.Refresh(ctx))
	require.True(t, ride.Requested())

	_, err := ride.Stop(ctx)
	require.NoError(t, err)
	assert.False(t, ride.Requested())
	assert.Empty(t, ride.Offers())

	cached, err := st.Get(ctx, store.KeyRideRequestStatus)
	require.NoError(t, err)
	assert.Equal(t, "false", cached)
}

func TestRideLoadReadsCachedFlag(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, store.KeyRideRequestStatus, "true"))

	session := NewSession(st)
	ride := NewRideRequest(st, &mockRideAPI{}, session)
	ride.Load(ctx)
	assert.True(t, ride.Requested())
}
