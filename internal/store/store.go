// Package store is the string-keyed persistence layer behind the state
// holders. Every holder is the single writer to its own key; the store
// treats each key operation as atomic and keeps no cross-key state.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/securespot/securespot-go/internal/config"
)

// ErrNotFound is returned by Get when the key has never been set or has
// been deleted.
var ErrNotFound = errors.New("store: key not found")

// Persisted keys. Each belongs to exactly one state holder.
const (
	KeySessionToken      = "token"
	KeyParkingToken      = "parking_token"
	KeyRideRequestStatus = "ride_request_status"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the backend selected by config. Callers own Close.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		return OpenSQL(ctx, "sqlite3", cfg.StorePath)
	case config.StorePostgres:
		return OpenSQL(ctx, "postgres", cfg.DatabaseURL)
	case config.StoreRedis:
		return OpenRedis(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
