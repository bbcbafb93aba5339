// Package state holds the client's three long-lived state holders: session
// token, parking-token record and ride-request flag. Each holder exclusively
// owns its entity and is the single writer to its persisted key.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/store"
)

// Session owns the opaque server-issued token. An empty token means
// unauthenticated. Changes fan out to subscribers so dependent views can
// re-render without polling.
type Session struct {
	store store.Store

	mu    sync.RWMutex
	token string
	subs  map[chan string]struct{}
}

func NewSession(st store.Store) *Session {
	return &Session{
		store: st,
		subs:  make(map[chan string]struct{}),
	}
}

// Load reads the persisted token at process start. A missing key leaves the
// session unauthenticated; a storage error does the same and is only logged.
func (s *Session) Load(ctx context.Context) {
	value, err := s.store.Get(ctx, store.KeySessionToken)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("error loading session token")
		return
	}
	s.mu.Lock()
	s.token = value
	s.mu.Unlock()
	s.notify(value)
}

// Set updates the in-memory token and persists it. An empty value removes
// the persisted key instead of writing an empty string, so a later Load
// behaves as if Set had never been called.
func (s *Session) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.notify(token)

	if token == "" {
		if err := s.store.Delete(ctx, store.KeySessionToken); err != nil {
			return err
		}
		return nil
	}
	return s.store.Set(ctx, store.KeySessionToken, token)
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Subscribe returns a channel that receives every subsequent token value.
// Slow subscribers miss intermediate values rather than blocking the writer.
func (s *Session) Subscribe() chan string {
	ch := make(chan string, 8)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Session) Unsubscribe(ch chan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
}

func (s *Session) notify(token string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- token:
		default:
		}
	}
}
