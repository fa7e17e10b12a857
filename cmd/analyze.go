package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/cafe-scout/internal/competitor"
	"github.com/sells-group/cafe-scout/internal/export"
	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
	"github.com/sells-group/cafe-scout/internal/poi"
	"github.com/sells-group/cafe-scout/internal/traffic"
)

// analysisReport is the full analysis output, cached as JSON in the store.
type analysisReport struct {
	GeneratedAt       time.Time                 `json:"generated_at"`
	Center            geo.Coordinate            `json:"center"`
	POIRadiusMeters   float64                   `json:"poi_radius_meters"`
	CompRadiusMeters  float64                   `json:"competitor_radius_meters"`
	StoreCount        int                       `json:"store_count"`
	Distribution      model.POIDistribution     `json:"distribution"`
	Insights          []model.Insight           `json:"insights"`
	TrafficScore      int                       `json:"traffic_score"`
	TrafficLevel      traffic.Level             `json:"traffic_level"`
	DailyCustomers    int                       `json:"daily_customers"`
	Competitors       []model.CompetitorRecord  `json:"competitors"`
	CompetitorDensity float64                   `json:"competitor_density"`
	DensityByStore    []competitor.StoreDensity `json:"density_by_store"`
	Heatmap           []model.HeatmapPoint      `json:"heatmap"`
	PerStorePOICounts map[string]int            `json:"per_store_poi_counts"`
}

var analyzePOIRadius float64
var analyzeCompRadius float64
var analyzeNoCache bool
var analyzeHeatmapOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze foot traffic, land use, and competition around all stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		stores, err := e.Store.ListStores(ctx)
		if err != nil {
			return err
		}
		if len(stores) == 0 {
			return eris.New("no stores to analyze; add some with 'stores add'")
		}

		poiRadius := analyzePOIRadius
		if poiRadius <= 0 {
			poiRadius = cfg.Analysis.POIRadiusMeters
		}
		compRadius := analyzeCompRadius
		if compRadius <= 0 {
			compRadius = cfg.Analysis.CompetitorRadiusMeters
		}

		key := cacheKey(stores, poiRadius, compRadius)
		if !analyzeNoCache {
			cached, err := e.Store.GetAnalytics(ctx, key)
			if err != nil {
				return err
			}
			if cached != nil {
				var report analysisReport
				if err := json.Unmarshal(cached, &report); err == nil {
					zap.L().Info("using cached analysis", zap.String("key", key))
					return renderReport(&report, analyzeHeatmapOut)
				}
				zap.L().Warn("discarding unreadable cache entry", zap.String("key", key))
			}
		}

		// POI and competitor collection hit different Overpass query shapes;
		// run them concurrently, each internally rate limited.
		var poisByStore map[string][]model.POIRecord
		var competitors []model.CompetitorRecord

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			poisByStore, err = e.Runner.CollectPOIs(gctx, stores, poiRadius)
			return err
		})
		g.Go(func() error {
			var err error
			competitors, err = e.Runner.CollectCompetitors(gctx, stores, compRadius)
			return err
		})
		if err := g.Wait(); err != nil {
			return eris.Wrap(err, "collect area data")
		}

		report := buildReport(stores, poisByStore, competitors, poiRadius, compRadius)

		if payload, err := json.Marshal(report); err == nil {
			if err := e.Store.SetAnalytics(ctx, key, payload, cfg.Analysis.CacheTTL); err != nil {
				zap.L().Warn("cache write failed", zap.Error(err))
			}
		}

		return renderReport(report, analyzeHeatmapOut)
	},
}

// buildReport runs the scoring pipeline over collected area data.
func buildReport(stores []model.Store, poisByStore map[string][]model.POIRecord, competitors []model.CompetitorRecord, poiRadiusMeters, compRadiusMeters float64) *analysisReport {
	var allPOIs []model.POIRecord
	perStoreCounts := make(map[string]int, len(stores))
	for _, st := range stores {
		perStoreCounts[st.ID] = len(poisByStore[st.ID])
		allPOIs = append(allPOIs, poisByStore[st.ID]...)
	}

	coords := make([]geo.Coordinate, 0, len(stores))
	for _, st := range stores {
		coords = append(coords, st.Coordinates)
	}
	center := geo.Center(coords)

	scorer := traffic.NewScorer(nil)
	score := scorer.Score(allPOIs)
	dist := poi.AnalyzeDistribution(allPOIs)
	compRadiusMiles := geo.KMToMiles(compRadiusMeters / 1000)

	return &analysisReport{
		GeneratedAt:       time.Now().UTC(),
		Center:            center,
		POIRadiusMeters:   poiRadiusMeters,
		CompRadiusMeters:  compRadiusMeters,
		StoreCount:        len(stores),
		Distribution:      dist,
		Insights:          poi.Insights(dist),
		TrafficScore:      score,
		TrafficLevel:      traffic.LevelFor(score),
		DailyCustomers:    traffic.EstimateDailyCustomers(score, len(competitors), nil),
		Competitors:       competitors,
		CompetitorDensity: competitor.Density(len(competitors), compRadiusMiles),
		DensityByStore:    competitor.DensityByStore(stores, competitors, compRadiusMiles),
		Heatmap:           scorer.Heatmap(center, allPOIs, poiRadiusMeters),
		PerStorePOICounts: perStoreCounts,
	}
}

func renderReport(report *analysisReport, heatmapOut string) error {
	if heatmapOut != "" {
		out, err := export.HeatmapGeoJSON(report.Heatmap)
		if err != nil {
			return err
		}
		if err := os.WriteFile(heatmapOut, out, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", heatmapOut)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", heatmapOut)
	}
	return printJSON(report)
}

// cacheKey identifies an analysis run by its inputs: the store set and the
// query radii.
func cacheKey(stores []model.Store, poiRadius, compRadius float64) string {
	ids := make([]string, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	return fmt.Sprintf("analysis:%.0f:%.0f:%s", poiRadius, compRadius, strings.Join(ids, ","))
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzePOIRadius, "poi-radius", 0, "POI query radius in meters (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeCompRadius, "competitor-radius", 0, "competitor query radius in meters (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "skip the analytics cache")
	analyzeCmd.Flags().StringVar(&analyzeHeatmapOut, "heatmap-geojson", "", "write the heatmap as GeoJSON to this file")
	rootCmd.AddCommand(analyzeCmd)
}
