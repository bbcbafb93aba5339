package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securespot/securespot-go/internal/store"
)

func TestSessionPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	session := NewSession(st)
	session.Load(ctx)
	assert.False(t, session.Authenticated())

	require.NoError(t, session.Set(ctx, "T1"))
	assert.Equal(t, "T1", session.Token())

	// A fresh holder over the same store sees the token.
	restarted := NewSession(st)
	restarted.Load(ctx)
	assert.Equal(t, "T1", restarted.Token())
	assert.True(t, restarted.Authenticated())
}

func TestSessionClearIsIdempotentWithNeverSet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	session := NewSession(st)
	require.NoError(t, session.Set(ctx, "T1"))
	require.NoError(t, session.Set(ctx, ""))

	// The persisted key is gone, not an empty string.
	_, err := st.Get(ctx, store.KeySessionToken)
	assert.ErrorIs(t, err, store.ErrNotFound)

	restarted := NewSession(st)
	restarted.Load(ctx)
	assert.Equal(t, "", restarted.Token())
}

func TestSessionNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	session := NewSession(store.NewMemory())

	ch := session.Subscribe()
	defer session.Unsubscribe(ch)

	require.NoError(t, session.Set(ctx, "T1"))
	assert.Equal(t, "T1", <-ch)

	require.NoError(t, session.Set(ctx, ""))
	assert.Equal(t, "", <-ch)
}

func TestSessionLoadSwallowsStorageErrors(t *testing.T) {
	session := NewSession(failingStore{})
	session.Load(context.Background())
	assert.False(t, session.Authenticated())
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) (string, error) {
	return "", assert.AnError
}

func (failingStore) Set(ctx context.Context, key, value string) error {
	return assert.AnError
}

func (failingStore) Delete(ctx context.Context, key string) error {
	return assert.AnError
}

func (failingStore) Close() error { return nil }
