package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cafe-scout/internal/analysis"
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
	"github.com/sells-group/cafe-scout/internal/overpass"
	"github.com/sells-group/cafe-scout/internal/store"
	"github.com/sells-group/cafe-scout/internal/transit"
	"github.com/sells-group/cafe-scout/pkg/geocode"
)

// env bundles the collaborators a command needs.
type env struct {
	Store     store.Store
	Geocoder  geocode.Client
	Catalog   *transit.Catalog
	Estimator *transit.Estimator
	Runner    *analysis.Runner
}

func (e *env) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv builds the full collaborator set from config.
func initEnv(ctx context.Context) (*env, error) {
	st, err := store.New(ctx, store.Config{
		Driver:      cfg.Store.Driver,
		Path:        cfg.Store.Path,
		DatabaseURL: cfg.Store.DatabaseURL,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	catalog, err := loadCatalog()
	if err != nil {
		st.Close()
		return nil, err
	}

	op := overpass.NewClient(
		overpass.WithBaseURL(cfg.Overpass.BaseURL),
		overpass.WithRateLimit(cfg.Overpass.RateRPS),
	)

	return &env{
		Store: st,
		Geocoder: geocode.NewClient(
			geocode.WithBaseURL(cfg.Geocode.BaseURL),
			geocode.WithUserAgent(cfg.Geocode.UserAgent),
			geocode.WithRateLimit(cfg.Geocode.RateRPS),
		),
		Catalog:   catalog,
		Estimator: transit.NewEstimator(catalog),
		Runner:    analysis.NewRunner(op, op, cfg.Analysis.InterTaskDelay),
	}, nil
}

// loadCatalog loads the configured station catalog, falling back to the
// built-in one when no file is configured.
func loadCatalog() (*transit.Catalog, error) {
	if cfg.Transit.StationsFile == "" {
		return transit.DefaultCatalog(), nil
	}
	catalog, err := transit.LoadCatalog(cfg.Transit.StationsFile)
	if err != nil {
		return nil, eris.Wrap(err, "load station catalog")
	}
	return catalog, nil
}

// resolveOrigin turns a --from value into a planning origin. It accepts
// either a "lat,lng" pair or a free-form address to geocode.
func resolveOrigin(ctx context.Context, gc geocode.Client, from string) (model.CurrentLocation, error) {
	if coord, ok := parseLatLng(from); ok {
		if err := geo.Validate(coord); err != nil {
			return model.CurrentLocation{}, err
		}
		return model.CurrentLocation{Address: from, Coordinates: coord}, nil
	}

	res, err := gc.Geocode(ctx, from)
	if err != nil {
		return model.CurrentLocation{}, eris.Wrapf(err, "geocode %q", from)
	}
	if !res.Matched {
		return model.CurrentLocation{}, eris.Errorf("address %q did not geocode", from)
	}
	return model.CurrentLocation{
		Address:     from,
		DisplayName: res.DisplayName,
		Coordinates: geo.Coordinate{Lat: res.Latitude, Lng: res.Longitude},
	}, nil
}

func parseLatLng(s string) (geo.Coordinate, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, false
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: lat, Lng: lng}, true
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal output")
	}
	fmt.Println(string(out))
	return nil
}
