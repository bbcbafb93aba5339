package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/securespot/securespot-go/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLStore persists keys in a single kv_entries table. The same schema and
// queries serve both the embedded sqlite file and a shared postgres.
type SQLStore struct {
	db *sqlx.DB
}

func OpenSQL(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}

	db.SetMaxOpenConns(config.StoreMaxOpenConns)
	db.SetMaxIdleConns(config.StoreMaxIdleConns)
	db.SetConnMaxLifetime(config.StoreConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, config.StorePingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", driver, err)
	}

	if err := migrate(db.DB, driver); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLStore{db: db}, nil
}

func migrate(db *sql.DB, driver string) error {
	goose.SetBaseFS(migrations)

	// goose dialect names match the driver names used here.
	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := s.db.Rebind(`SELECT v FROM kv_entries WHERE k = ?`)
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	query := s.db.Rebind(`
		INSERT INTO kv_entries (k, v, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := s.db.Rebind(`DELETE FROM kv_entries WHERE k = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
