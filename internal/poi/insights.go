package poi

import (
	"fmt"

	"github.com/sells-group/cafe-scout/internal/model"
)

// categoryLabels are the display names used in insight text.
var categoryLabels = map[model.Category]string{
	model.CategoryShopping:      "shopping district",
	model.CategoryEducation:     "schools and education",
	model.CategoryTransport:     "transit hub",
	model.CategoryPark:          "parks and green space",
	model.CategoryOffice:        "office district",
	model.CategoryResidential:   "residential area",
	model.CategoryFood:          "dining district",
	model.CategoryEntertainment: "entertainment venues",
}

// Insights evaluates the fixed threshold rules against a distribution and
// returns the insights that fire, in rule-evaluation order (not ranked by
// severity). Pure function of the distribution.
func Insights(d model.POIDistribution) []model.Insight {
	var insights []model.Insight

	if d.Dominant != "" {
		insights = append(insights, model.Insight{
			Type:  model.InsightDominant,
			Title: fmt.Sprintf("Dominant land use: %s", categoryLabels[d.Dominant]),
			Description: fmt.Sprintf("The area is primarily a %s at %.1f%% of nearby POIs.",
				categoryLabels[d.Dominant], d.Share(d.Dominant)),
		})
	}

	if d.Share(model.CategoryOffice) > 30 {
		insights = append(insights, model.Insight{
			Type:        model.InsightOpportunity,
			Title:       "High office density",
			Description: "Strong breakfast and lunch trade expected, with steady weekday foot traffic.",
		})
	}

	if d.Share(model.CategoryShopping) > 25 {
		insights = append(insights, model.Insight{
			Type:        model.InsightOpportunity,
			Title:       "Shopping district location",
			Description: "Heavy weekend and holiday traffic; suits all-day operating hours.",
		})
	}

	if d.Share(model.CategoryTransport) > 15 {
		insights = append(insights, model.Insight{
			Type:        model.InsightOpportunity,
			Title:       "Transit hub",
			Description: "High pass-through volume; well suited to a fast takeaway format.",
		})
	}

	if d.Share(model.CategoryResidential) > 40 {
		insights = append(insights, model.Insight{
			Type:        model.InsightWarning,
			Title:       "Primarily residential",
			Description: "Foot traffic may be limited; check the surrounding amenity mix before committing.",
		})
	}

	if _, ok := d.Categories[model.CategoryEducation]; ok {
		insights = append(insights, model.Insight{
			Type:        model.InsightOpportunity,
			Title:       "Near schools",
			Description: "A stable student customer base; student discounts tend to perform well here.",
		})
	}

	return insights
}
