package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cafe-scout/internal/geo"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestStoreCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.AddStore(ctx, "Times Square", "1500 Broadway", geo.Coordinate{Lat: 40.7589, Lng: -73.9851})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, "Times Square", st.Name)

	second, err := s.AddStore(ctx, "Union Square", "4 Union Sq", geo.Coordinate{Lat: 40.7356, Lng: -73.9906})
	require.NoError(t, err)
	assert.NotEqual(t, st.ID, second.ID)

	stores, err := s.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, st.ID, stores[0].ID, "insertion order preserved")
	assert.InDelta(t, 40.7589, stores[0].Coordinates.Lat, 1e-9)

	require.NoError(t, s.RemoveStore(ctx, st.ID))
	stores, err = s.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, second.ID, stores[0].ID)
}

func TestRemoveStoreNotFound(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.RemoveStore(context.Background(), "no-such-id"))
}

func TestAnalyticsCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"traffic_score": 82}`)
	require.NoError(t, s.SetAnalytics(ctx, "analysis:804:s1", payload, time.Hour))

	got, err := s.GetAnalytics(ctx, "analysis:804:s1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestAnalyticsCacheMiss(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetAnalytics(context.Background(), "missing")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, got)
}

func TestAnalyticsCacheExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAnalytics(ctx, "stale", []byte("x"), -time.Minute))

	got, err := s.GetAnalytics(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got, "expired entries read as misses")

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAnalyticsCacheUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAnalytics(ctx, "k", []byte("old"), time.Hour))
	require.NoError(t, s.SetAnalytics(ctx, "k", []byte("new"), time.Hour))

	got, err := s.GetAnalytics(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestClearAnalytics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetAnalytics(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, s.SetAnalytics(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, s.ClearAnalytics(ctx))

	got, err := s.GetAnalytics(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "oracle"})
	assert.Error(t, err)
}

func TestNewDefaultsToSQLite(t *testing.T) {
	s, err := New(context.Background(), Config{Path: filepath.Join(t.TempDir(), "d.db")})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &SQLiteStore{}, s)
}
