// Package poi classifies points of interest and analyzes their distribution
// around candidate locations.
package poi

import "github.com/sells-group/cafe-scout/internal/model"

// tagRule maps one tag key/value pair to a category. An empty value matches
// any value for the key.
type tagRule struct {
	key, value string
	category   model.Category
}

// categoryRules is the classification precedence table. Rules are evaluated
// in order and the first match wins, so a record tagged both as an office
// building and a residential landuse classifies as office.
var categoryRules = []tagRule{
	{"shop", "mall", model.CategoryShopping},
	{"shop", "department_store", model.CategoryShopping},
	{"shop", "supermarket", model.CategoryShopping},
	{"amenity", "marketplace", model.CategoryShopping},

	{"amenity", "school", model.CategoryEducation},
	{"amenity", "university", model.CategoryEducation},
	{"amenity", "college", model.CategoryEducation},
	{"amenity", "library", model.CategoryEducation},

	{"railway", "station", model.CategoryTransport},
	{"railway", "subway_entrance", model.CategoryTransport},
	{"amenity", "bus_station", model.CategoryTransport},
	{"amenity", "ferry_terminal", model.CategoryTransport},

	{"leisure", "park", model.CategoryPark},
	{"leisure", "garden", model.CategoryPark},
	{"leisure", "playground", model.CategoryPark},
	{"landuse", "recreation_ground", model.CategoryPark},

	{"office", "", model.CategoryOffice},
	{"building", "office", model.CategoryOffice},
	{"building", "commercial", model.CategoryOffice},

	{"building", "residential", model.CategoryResidential},
	{"building", "apartments", model.CategoryResidential},
	{"landuse", "residential", model.CategoryResidential},

	{"amenity", "restaurant", model.CategoryFood},
	{"amenity", "fast_food", model.CategoryFood},
	{"amenity", "food_court", model.CategoryFood},

	{"amenity", "cinema", model.CategoryEntertainment},
	{"amenity", "theatre", model.CategoryEntertainment},
	{"leisure", "fitness_centre", model.CategoryEntertainment},
	{"leisure", "sports_centre", model.CategoryEntertainment},
}

// Categorize maps raw OSM-style tags to exactly one category using the fixed
// precedence table. Tags matching no rule return CategoryUncategorized, which
// distribution analysis excludes.
func Categorize(tags map[string]string) model.Category {
	if len(tags) == 0 {
		return model.CategoryUncategorized
	}
	for _, r := range categoryRules {
		v, ok := tags[r.key]
		if !ok {
			continue
		}
		if r.value == "" || v == r.value {
			return r.category
		}
	}
	return model.CategoryUncategorized
}
