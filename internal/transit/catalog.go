// Package transit approximates subway legs between points using a static
// station catalog.
package transit

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cafe-scout/internal/geo"
	"github.com/sells-group/cafe-scout/internal/model"
)

// Catalog is a read-only set of subway stations. Lookup is a linear scan;
// the catalog is small enough that an index would not pay for itself.
type Catalog struct {
	stations []model.SubwayStation
}

// NewCatalog wraps a station list. The slice is not copied; callers must
// treat it as read-only after construction.
func NewCatalog(stations []model.SubwayStation) *Catalog {
	return &Catalog{stations: stations}
}

// LoadCatalog reads a YAML station catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "transit: read catalog %s", path)
	}

	var file struct {
		Stations []model.SubwayStation `yaml:"stations"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrapf(err, "transit: parse catalog %s", path)
	}
	if len(file.Stations) == 0 {
		return nil, eris.Errorf("transit: catalog %s has no stations", path)
	}

	return &Catalog{stations: file.Stations}, nil
}

// Stations returns the catalog contents.
func (c *Catalog) Stations() []model.SubwayStation {
	return c.stations
}

// Nearest returns the station closest to p and its distance in miles.
// Ties are broken by catalog order. ok is false for an empty catalog.
func (c *Catalog) Nearest(p geo.Coordinate) (station model.SubwayStation, miles float64, ok bool) {
	if len(c.stations) == 0 {
		return model.SubwayStation{}, 0, false
	}

	station = c.stations[0]
	miles = geo.Distance(p, station.Coordinates)
	for _, s := range c.stations[1:] {
		if d := geo.Distance(p, s.Coordinates); d < miles {
			station = s
			miles = d
		}
	}
	return station, miles, true
}

// StationDistance pairs a station with its distance from a query point.
type StationDistance struct {
	Station model.SubwayStation `json:"station"`
	Miles   float64             `json:"miles"`
}

// Nearby returns stations within radiusMiles of p, sorted by distance and
// capped at limit. A non-positive limit means no cap.
func (c *Catalog) Nearby(p geo.Coordinate, radiusMiles float64, limit int) []StationDistance {
	var nearby []StationDistance
	for _, s := range c.stations {
		if d := geo.Distance(p, s.Coordinates); d <= radiusMiles {
			nearby = append(nearby, StationDistance{Station: s, Miles: d})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Miles < nearby[j].Miles
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}

// sharedLine returns the first line code present in both station line sets,
// scanning a's lines in order. ok is false when the sets are disjoint.
func sharedLine(a, b model.SubwayStation) (string, bool) {
	for _, la := range a.Lines {
		for _, lb := range b.Lines {
			if la == lb {
				return la, true
			}
		}
	}
	return "", false
}
