// Package competitor deduplicates competitor sightings across query centers
// and computes brand and density statistics.
package competitor

import (
	"math"
	"strings"

	"github.com/sells-group/cafe-scout/internal/model"
)

// brandKeywords is the ordered brand detection table. For each keyword the
// brand tag is checked before the name tag; the first keyword that matches
// wins.
var brandKeywords = []struct {
	keyword string
	brand   model.Brand
}{
	{"starbucks", model.BrandStarbucks},
	{"luckin", model.BrandLuckin},
	{"blank street", model.BrandBlankStreet},
	{"dunkin", model.BrandDunkin},
}

// BrandOf detects a competitor brand from OSM-style tags using
// case-insensitive substring matching. Unmatched tags yield BrandOther.
func BrandOf(tags map[string]string) model.Brand {
	name := strings.ToLower(tags["name"])
	brand := strings.ToLower(tags["brand"])

	for _, bk := range brandKeywords {
		if strings.Contains(brand, bk.keyword) || strings.Contains(name, bk.keyword) {
			return bk.brand
		}
	}
	return model.BrandOther
}

// Density returns competitors per square mile for a circular query area,
// rounded to two decimals. A non-positive radius yields 0.
func Density(count int, radiusMiles float64) float64 {
	if radiusMiles <= 0 {
		return 0
	}
	area := math.Pi * radiusMiles * radiusMiles
	return math.Round(float64(count)/area*100) / 100
}

// Merger accumulates per-store sightings into a deduplicated record set.
// Identity is the external ID: a sighting already present gains the current
// store's ID in its associated-store set instead of being duplicated.
type Merger struct {
	records map[string]*model.CompetitorRecord
	order   []string
}

// NewMerger creates an empty Merger.
func NewMerger() *Merger {
	return &Merger{records: make(map[string]*model.CompetitorRecord)}
}

// Add merges the sightings found when querying around one store.
func (m *Merger) Add(storeID string, sightings []model.CompetitorRecord) {
	for _, s := range sightings {
		existing, ok := m.records[s.ID]
		if !ok {
			rec := s
			rec.NearStores = []string{storeID}
			m.records[s.ID] = &rec
			m.order = append(m.order, s.ID)
			continue
		}
		if !containsString(existing.NearStores, storeID) {
			existing.NearStores = append(existing.NearStores, storeID)
		}
	}
}

// Records returns the merged records in first-seen order.
func (m *Merger) Records() []model.CompetitorRecord {
	out := make([]model.CompetitorRecord, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}

// StoreDensity summarizes the competitive pressure around one store.
type StoreDensity struct {
	StoreID       string              `json:"store_id"`
	StoreName     string              `json:"store_name"`
	Total         int                 `json:"total"`
	ByBrand       map[model.Brand]int `json:"by_brand"`
	PerSquareMile float64             `json:"per_square_mile"`
}

// DensityByStore reports, for each store, the competitors associated with it,
// broken down by brand, plus the density over the query radius.
func DensityByStore(stores []model.Store, competitors []model.CompetitorRecord, radiusMiles float64) []StoreDensity {
	out := make([]StoreDensity, 0, len(stores))
	for _, st := range stores {
		sd := StoreDensity{
			StoreID:   st.ID,
			StoreName: st.Name,
			ByBrand:   make(map[model.Brand]int),
		}
		for _, c := range competitors {
			if containsString(c.NearStores, st.ID) {
				sd.Total++
				sd.ByBrand[c.Brand]++
			}
		}
		sd.PerSquareMile = Density(sd.Total, radiusMiles)
		out = append(out, sd)
	}
	return out
}

func containsString(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
