// Package export renders planning results as GeoJSON feature collections
// suitable for map tooling.
package export

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	geopkg "github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// RouteGeoJSON encodes an ordered route as a FeatureCollection: one Point
// per stop (plus the origin) and one LineString tracing the visit order.
func RouteGeoJSON(origin geopkg.Coordinate, stores []model.Store) ([]byte, error) {
	fc := &geojson.FeatureCollection{}

	fc.Features = append(fc.Features, &geojson.Feature{
		Geometry: geom.NewPointFlat(geom.XY, []float64{origin.Lng, origin.Lat}),
		Properties: map[string]interface{}{
			"role": "origin",
		},
	})

	line := []float64{origin.Lng, origin.Lat}
	for i, st := range stores {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       st.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{st.Coordinates.Lng, st.Coordinates.Lat}),
			Properties: map[string]interface{}{
				"role":    "stop",
				"order":   i + 1,
				"name":    st.Name,
				"address": st.Address,
			},
		})
		line = append(line, st.Coordinates.Lng, st.Coordinates.Lat)
	}

	if len(stores) > 0 {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewLineStringFlat(geom.XY, line),
			Properties: map[string]interface{}{
				"role": "route",
			},
		})
	}

	out, err := json.Marshal(fc)
	return out, eris.Wrap(err, "export: marshal route")
}

// HeatmapGeoJSON encodes heatmap cells as Point features with an intensity
// property.
func HeatmapGeoJSON(points []model.HeatmapPoint) ([]byte, error) {
	fc := &geojson.FeatureCollection{}
	for _, p := range points {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Coordinates.Lng, p.Coordinates.Lat}),
			Properties: map[string]interface{}{
				"intensity": p.Intensity,
			},
		})
	}
	out, err := json.Marshal(fc)
	return out, eris.Wrap(err, "export: marshal heatmap")
}

// CompetitorGeoJSON encodes deduplicated competitor sightings as Point
// features carrying brand and nearby-store attribution.
func CompetitorGeoJSON(records []model.CompetitorRecord) ([]byte, error) {
	fc := &geojson.FeatureCollection{}
	for _, rec := range records {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       rec.ID,
			Geometry: geom.NewPointFlat(geom.XY, []float64{rec.Coordinates.Lng, rec.Coordinates.Lat}),
			Properties: map[string]interface{}{
				"name":        rec.Name,
				"brand":       string(rec.Brand),
				"near_stores": rec.NearStores,
			},
		})
	}
	out, err := json.Marshal(fc)
	return out, eris.Wrap(err, "export: marshal competitors")
}
