// Package store persists candidate stores and caches computed analytics
// with a TTL. The engine treats cached analytics as interchangeable with
// freshly computed ones.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// Store is the persistence interface for the planning session.
type Store interface {
	// Stores
	AddStore(ctx context.Context, name, address string, coord geo.Coordinate) (*model.Store, error)
	ListStores(ctx context.Context) ([]model.Store, error)
	RemoveStore(ctx context.Context, id string) error

	// Analytics cache. Get returns nil for a missing or expired entry.
	GetAnalytics(ctx context.Context, key string) ([]byte, error)
	SetAnalytics(ctx context.Context, key string, value []byte, ttl time.Duration) error
	ClearAnalytics(ctx context.Context) error
	DeleteExpired(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver      string // "sqlite" or "postgres"
	Path        string // sqlite file path
	DatabaseURL string // postgres connection string
}

// New opens the backend selected by cfg.Driver.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.Path)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
