// Package model holds the domain types shared across the planning engine.
package model

import (
	"time"

	"github.com/sells-group/cafe-scout/internal/geo"
)

// Store is a candidate cafe location owned by the caller. The engine never
// mutates a Store; it only reads and reorders them.
type Store struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Coordinates geo.Coordinate `json:"coordinates"`
	CreatedAt   time.Time      `json:"created_at"`
}

// CurrentLocation is the planning origin. Exactly one is active per session.
type CurrentLocation struct {
	Address     string         `json:"address"`
	DisplayName string         `json:"display_name,omitempty"`
	Coordinates geo.Coordinate `json:"coordinates"`
}

// RouteStats aggregates an ordered route. Recomputed from scratch on every
// route change; a nil *RouteStats means "no route", distinct from a
// zero-length route.
type RouteStats struct {
	TotalDistanceMiles float64 `json:"total_distance_miles"`
	TotalTimeMinutes   float64 `json:"total_time_minutes"`
	TotalCost          float64 `json:"total_cost"`
	StopCount          int     `json:"stop_count"`
}

// Category classifies a point of interest. The set is closed: the eight
// business categories plus CategoryUncategorized for tags that match nothing.
type Category string

// POI categories in classification precedence order.
const (
	CategoryShopping      Category = "shopping"
	CategoryEducation     Category = "education"
	CategoryTransport     Category = "transport"
	CategoryPark          Category = "park"
	CategoryOffice        Category = "office"
	CategoryResidential   Category = "residential"
	CategoryFood          Category = "food"
	CategoryEntertainment Category = "entertainment"
	CategoryUncategorized Category = "uncategorized"
)

// Categories lists the eight business categories in precedence order.
var Categories = []Category{
	CategoryShopping,
	CategoryEducation,
	CategoryTransport,
	CategoryPark,
	CategoryOffice,
	CategoryResidential,
	CategoryFood,
	CategoryEntertainment,
}

// POIRecord is a categorized point of interest from the spatial collaborator.
type POIRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	Coordinates geo.Coordinate    `json:"coordinates"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// CategoryStat holds the count and rounded percentage for one category.
type CategoryStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// POIDistribution summarizes categorized POIs around a location. Percentages
// sum to 100 within rounding tolerance when Total > 0. Dominant is the
// highest-count category, first-seen on ties, or empty when Total == 0.
type POIDistribution struct {
	Categories map[Category]CategoryStat `json:"categories"`
	Total      int                       `json:"total"`
	Dominant   Category                  `json:"dominant,omitempty"`
}

// Share returns the percentage for a category, or 0 if absent.
func (d POIDistribution) Share(c Category) float64 {
	return d.Categories[c].Percentage
}

// Brand identifies a competitor chain.
type Brand string

// Known competitor brands.
const (
	BrandStarbucks   Brand = "starbucks"
	BrandLuckin      Brand = "luckin"
	BrandBlankStreet Brand = "blank_street"
	BrandDunkin      Brand = "dunkin"
	BrandOther       Brand = "other"
)

// CompetitorRecord is a deduplicated competitor sighting. Identity is the
// external ID; a record discovered near multiple stores accumulates their
// IDs in NearStores instead of being duplicated.
type CompetitorRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Brand       Brand             `json:"brand"`
	Address     string            `json:"address,omitempty"`
	Coordinates geo.Coordinate    `json:"coordinates"`
	NearStores  []string          `json:"near_stores"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// SubwayStation is read-only reference data from the static catalog.
type SubwayStation struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Coordinates geo.Coordinate `json:"coordinates" yaml:"coordinates"`
	Lines       []string       `json:"lines" yaml:"lines"`
}

// HeatmapPoint is one cell of the spatial intensity grid. Ephemeral,
// regenerated per request.
type HeatmapPoint struct {
	Coordinates geo.Coordinate `json:"coordinates"`
	Intensity   float64        `json:"intensity"`
}

// InsightType classifies a business insight.
type InsightType string

// Insight types.
const (
	InsightDominant    InsightType = "dominant"
	InsightOpportunity InsightType = "opportunity"
	InsightWarning     InsightType = "warning"
)

// Insight is a rule-derived narrative observation about an area.
type Insight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
}
