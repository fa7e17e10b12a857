package traffic

import (
	"math"
	"math/rand"

	"github.com/sells-group/cafe-scout/internal/model"
)

// Sub-score caps of the foot-traffic score.
const (
	maxCountScore     = 40.0
	maxDiversityScore = 20.0
	maxHighValueScore = 25.0
	timeScoreWeight   = 15.0
)

// highValueCategories are the categories that drive cafe foot traffic most.
var highValueCategories = map[model.Category]bool{
	model.CategoryShopping:  true,
	model.CategoryTransport: true,
	model.CategoryOffice:    true,
}

// Scorer computes foot-traffic suitability scores. The time-of-day component
// is read from the injected clock at call time, so repeated calls can differ;
// that is the intended behavior, not a defect.
type Scorer struct {
	clock Clock
}

// NewScorer creates a Scorer. A nil clock defaults to SystemClock.
func NewScorer(clock Clock) *Scorer {
	if clock == nil {
		clock = SystemClock
	}
	return &Scorer{clock: clock}
}

// Score converts a POI set into a 0-100 suitability score: capped sub-scores
// for POI count, category diversity, and high-value categories, plus a
// time-of-day component. An empty POI set scores 0.
func (s *Scorer) Score(pois []model.POIRecord) int {
	if len(pois) == 0 {
		return 0
	}

	score := math.Min(maxCountScore, float64(len(pois))*2)

	distinct := make(map[model.Category]bool)
	highValue := 0
	for _, p := range pois {
		if p.Category != model.CategoryUncategorized && p.Category != "" {
			distinct[p.Category] = true
		}
		if highValueCategories[p.Category] {
			highValue++
		}
	}
	score += math.Min(maxDiversityScore, float64(len(distinct))*3)
	score += math.Min(maxHighValueScore, float64(highValue)*3)
	score += Multiplier(s.clock.Now()) * timeScoreWeight

	return int(math.Round(math.Min(100, score)))
}

// Level bands a foot-traffic score into a coarse label.
type Level string

// Traffic levels.
const (
	LevelVeryLow    Level = "very-low"
	LevelLow        Level = "low"
	LevelMedium     Level = "medium"
	LevelMediumHigh Level = "medium-high"
	LevelHigh       Level = "high"
)

// LevelFor returns the traffic level band for a score.
func LevelFor(score int) Level {
	switch {
	case score >= 80:
		return LevelHigh
	case score >= 60:
		return LevelMediumHigh
	case score >= 40:
		return LevelMedium
	case score >= 20:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

// EstimateDailyCustomers projects daily customer volume from a foot-traffic
// score and nearby competitor count: 5 customers per score point, minus 20
// per competitor, floored at zero, with ±20% variance drawn from rnd. A nil
// rnd uses the package random source.
func EstimateDailyCustomers(score, competitorCount int, rnd func() float64) int {
	if rnd == nil {
		rnd = rand.Float64
	}

	base := float64(score) * 5
	base -= float64(competitorCount) * 20
	if base < 0 {
		base = 0
	}

	factor := 1 + (rnd()-0.5)*0.4
	return int(math.Round(base * factor))
}
