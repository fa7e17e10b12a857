package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtmp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "cafe-scout.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.Geocode.BaseURL)
	assert.InDelta(t, 1.0, cfg.Geocode.RateRPS, 0.001)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.BaseURL)
	assert.InDelta(t, 500.0, cfg.Analysis.POIRadiusMeters, 0.001)
	assert.InDelta(t, 804.0, cfg.Analysis.CompetitorRadiusMeters, 0.001)
	assert.Equal(t, 500*time.Millisecond, cfg.Analysis.InterTaskDelay)
	assert.Equal(t, 15*time.Minute, cfg.Analysis.CacheTTL)
	assert.Empty(t, cfg.Transit.StationsFile)
}

func TestLoadFromYAML(t *testing.T) {
	chtmp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/cafescout
log:
  level: debug
  format: console
server:
  port: 9090
analysis:
  poi_radius_meters: 1200
  cache_ttl: 1h
transit:
  stations_file: stations.yaml
`
	require.NoError(t, os.WriteFile(filepath.Join(".", "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/cafescout", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 1200.0, cfg.Analysis.POIRadiusMeters, 0.001)
	assert.InDelta(t, 804.0, cfg.Analysis.CompetitorRadiusMeters, 0.001)
	assert.Equal(t, time.Hour, cfg.Analysis.CacheTTL)
	assert.Equal(t, "stations.yaml", cfg.Transit.StationsFile)

	// Unset keys keep their defaults.
	assert.Equal(t, 500*time.Millisecond, cfg.Analysis.InterTaskDelay)
}

func TestLoadFromEnv(t *testing.T) {
	chtmp(t)
	t.Setenv("CAFESCOUT_SERVER_PORT", "7070")
	t.Setenv("CAFESCOUT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
