// Package repositories implements the persistent event store: a
// deduplicating, idempotently-updatable table of cultural events keyed by
// a hash of the canonical event URL.
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"agendaveiro/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	start_date TEXT,
	end_date   TEXT,
	location   TEXT,
	url        TEXT UNIQUE NOT NULL,
	image_url  TEXT,
	source     TEXT NOT NULL,
	tags       TEXT,
	scraped_at TIMESTAMP NOT NULL,
	created_at TIMESTAMP NOT NULL
);
`

// Repository owns the store connection. All operations go through it;
// there is no ambient database handle.
type Repository struct {
	logger *slog.Logger
	cfg    *config.Config
	DB     *sqlx.DB
}

func New(logger *slog.Logger, cfg *config.Config) (*Repository, error) {
	op := "repositories.New()"
	log := logger.With(
		slog.String("op", op),
	)

	if err := os.MkdirAll(filepath.Dir(cfg.Store.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("%s: create data dir: %w", op, err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_loc=UTC", cfg.Store.DBPath)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: open database: %w", op, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: create tables: %w", op, err)
	}

	log.Info("database connected", slog.String("path", cfg.Store.DBPath))

	return &Repository{
		logger: logger,
		cfg:    cfg,
		DB:     db,
	}, nil
}

// Shutdown closes the store connection.
func (r *Repository) Shutdown(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("force exit repository: %w", ctx.Err())
	default:
		if err := r.DB.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		r.logger.Info("database connection closed")
		return nil
	}
}
