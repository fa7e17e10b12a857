// Package analysis drives multi-store data collection against the spatial
// collaborator: one query per store, a fixed inter-task delay for rate
// limiting, and an all-or-nothing result contract under cancellation.
package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/cafe-scout/internal/competitor"
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// DefaultInterTaskDelay is the pause between per-store collaborator calls,
// matching the public Overpass API courtesy interval.
const DefaultInterTaskDelay = 500 * time.Millisecond

// POISource supplies points of interest around a coordinate.
type POISource interface {
	QueryPOIs(ctx context.Context, center geo.Coordinate, radiusMeters float64) ([]model.POIRecord, error)
}

// CompetitorSource supplies competitor sightings around a coordinate.
type CompetitorSource interface {
	QueryCompetitors(ctx context.Context, center geo.Coordinate, radiusMeters float64) ([]model.CompetitorRecord, error)
}

// Runner schedules per-store collaborator queries.
type Runner struct {
	pois  POISource
	comps CompetitorSource
	delay time.Duration
}

// NewRunner creates a Runner. A negative delay is treated as zero; a zero
// delay value selects DefaultInterTaskDelay.
func NewRunner(pois POISource, comps CompetitorSource, delay time.Duration) *Runner {
	if delay == 0 {
		delay = DefaultInterTaskDelay
	}
	if delay < 0 {
		delay = 0
	}
	return &Runner{pois: pois, comps: comps, delay: delay}
}

// CollectCompetitors queries competitors around every store and merges the
// sightings by external ID. A per-store fetch failure counts as an empty
// result for that store; cancellation aborts the whole run and no partial
// result is returned.
func (r *Runner) CollectCompetitors(ctx context.Context, stores []model.Store, radiusMeters float64) ([]model.CompetitorRecord, error) {
	merger := competitor.NewMerger()

	err := r.forEachStore(ctx, stores, func(st model.Store) {
		sightings, err := r.comps.QueryCompetitors(ctx, st.Coordinates, radiusMeters)
		if err != nil {
			zap.L().Warn("analysis: competitor fetch failed, treating as empty",
				zap.String("store_id", st.ID),
				zap.Error(err),
			)
			return
		}
		merger.Add(st.ID, sightings)
	})
	if err != nil {
		return nil, err
	}

	return merger.Records(), nil
}

// CollectPOIs queries points of interest around every store. Same failure
// and cancellation contract as CollectCompetitors.
func (r *Runner) CollectPOIs(ctx context.Context, stores []model.Store, radiusMeters float64) (map[string][]model.POIRecord, error) {
	results := make(map[string][]model.POIRecord, len(stores))

	err := r.forEachStore(ctx, stores, func(st model.Store) {
		pois, err := r.pois.QueryPOIs(ctx, st.Coordinates, radiusMeters)
		if err != nil {
			zap.L().Warn("analysis: poi fetch failed, treating as empty",
				zap.String("store_id", st.ID),
				zap.Error(err),
			)
			pois = nil
		}
		results[st.ID] = pois
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// forEachStore runs fn for each store sequentially with the configured
// inter-task delay between calls. The first context error aborts the run.
func (r *Runner) forEachStore(ctx context.Context, stores []model.Store, fn func(model.Store)) error {
	for i, st := range stores {
		if i > 0 && r.delay > 0 {
			timer := time.NewTimer(r.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(st)
	}
	return nil
}
