package poi

import (
	"math"

	"github.com/sells-group/cafe-scout/internal/model"
)

// AnalyzeDistribution counts categorized POIs per category and computes
// percentage shares rounded to one decimal. Uncategorized records are
// excluded entirely. The dominant category is the one with the highest
// count; ties resolve to the category seen first in the input. An empty or
// fully uncategorized input yields Total == 0 and no dominant category.
func AnalyzeDistribution(pois []model.POIRecord) model.POIDistribution {
	counts := make(map[model.Category]int)
	var firstSeen []model.Category

	for _, p := range pois {
		if p.Category == model.CategoryUncategorized || p.Category == "" {
			continue
		}
		if _, ok := counts[p.Category]; !ok {
			firstSeen = append(firstSeen, p.Category)
		}
		counts[p.Category]++
	}

	dist := model.POIDistribution{
		Categories: make(map[model.Category]model.CategoryStat, len(counts)),
	}
	for _, n := range counts {
		dist.Total += n
	}
	if dist.Total == 0 {
		return dist
	}

	for cat, n := range counts {
		pct := float64(n) / float64(dist.Total) * 100
		dist.Categories[cat] = model.CategoryStat{
			Count:      n,
			Percentage: math.Round(pct*10) / 10,
		}
	}

	// First-seen order makes the argmax tie-break deterministic.
	best := -1
	for _, cat := range firstSeen {
		if counts[cat] > best {
			best = counts[cat]
			dist.Dominant = cat
		}
	}

	return dist
}
