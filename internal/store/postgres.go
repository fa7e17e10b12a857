package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// PostgresStore implements Store using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the given database URL.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, eris.New("postgres: database URL is required")
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS stores (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	address    TEXT NOT NULL DEFAULT '',
	lat        DOUBLE PRECISION NOT NULL,
	lng        DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS analytics_cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analytics_cache_expires_at ON analytics_cache(expires_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) AddStore(ctx context.Context, name, address string, coord geo.Coordinate) (*model.Store, error) {
	st := &model.Store{
		ID:          uuid.New().String(),
		Name:        name,
		Address:     address,
		Coordinates: coord,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO stores (id, name, address, lat, lng, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		st.ID, st.Name, st.Address, st.Coordinates.Lat, st.Coordinates.Lng, st.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert store")
	}
	return st, nil
}

func (s *PostgresStore) ListStores(ctx context.Context) ([]model.Store, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, address, lat, lng, created_at FROM stores ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stores")
	}
	defer rows.Close()

	var stores []model.Store
	for rows.Next() {
		var st model.Store
		if err := rows.Scan(&st.ID, &st.Name, &st.Address,
			&st.Coordinates.Lat, &st.Coordinates.Lng, &st.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan store")
		}
		stores = append(stores, st)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate stores")
	}
	return stores, nil
}

func (s *PostgresStore) RemoveStore(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete store %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: store %s not found", id)
	}
	return nil
}

func (s *PostgresStore) GetAnalytics(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM analytics_cache WHERE key = $1 AND expires_at > now()`,
		key,
	).Scan(&value)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get analytics")
	}
	return []byte(value), nil
}

func (s *PostgresStore) SetAnalytics(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analytics_cache (key, value, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, string(value), time.Now().UTC().Add(ttl),
	)
	return eris.Wrap(err, "postgres: set analytics")
}

func (s *PostgresStore) ClearAnalytics(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM analytics_cache`)
	return eris.Wrap(err, "postgres: clear analytics")
}

func (s *PostgresStore) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analytics_cache WHERE expires_at <= now()`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired")
	}
	return int(tag.RowsAffected()), nil
}
