// Package catalog declares the marketplace entity models and the filter schema of each listing page.
package catalog

import (
	"sort"

	"github.com/samber/lo"

	"github.com/theplant/facet"
)

const (
	EntityVehicles = "vehicles"
	EntityParts    = "parts"
	EntityServices = "services"
	EntityRentals  = "rentals"
)

var schemas = map[string]*facet.Schema{
	EntityVehicles: VehicleSchema,
	EntityParts:    PartSchema,
	EntityServices: ServiceSchema,
	EntityRentals:  RentalSchema,
}

// Schema returns the filter schema of entity, or nil.
func Schema(entity string) *facet.Schema {
	return schemas[entity]
}

// Entities returns the entity names with a schema, sorted.
func Entities() []string {
	entities := lo.Keys(schemas)
	sort.Strings(entities)
	return entities
}

// Models returns the gorm models to migrate.
func Models() []any {
	return []any{&Vehicle{}, &Part{}, &Service{}, &Rental{}}
}

// Shared sort options of the listing pages.
var (
	sortNewest = facet.SortOption{
		Key:    "newest",
		Label:  "Newest first",
		Orders: []facet.Order{{Field: "createdAt", Direction: facet.OrderDirectionDesc}},
	}
	sortRating = facet.SortOption{
		Key:    "rating",
		Label:  "Top rated",
		Orders: []facet.Order{{Field: "rating", Direction: facet.OrderDirectionDesc}},
	}
)

func priceSorts(field string) []facet.SortOption {
	return []facet.SortOption{
		sortNewest,
		{
			Key:    "price_asc",
			Label:  "Price: low to high",
			Orders: []facet.Order{{Field: field, Direction: facet.OrderDirectionAsc}},
		},
		{
			Key:    "price_desc",
			Label:  "Price: high to low",
			Orders: []facet.Order{{Field: field, Direction: facet.OrderDirectionDesc}},
		},
		sortRating,
	}
}

var locationChoices = []facet.Choice{
	{Value: "nairobi", Label: "Nairobi"},
	{Value: "mombasa", Label: "Mombasa"},
	{Value: "kisumu", Label: "Kisumu"},
	{Value: "nakuru", Label: "Nakuru"},
	{Value: "eldoret", Label: "Eldoret"},
	{Value: "thika", Label: "Thika"},
}

var conditionChoices = []facet.Choice{
	{Value: "new", Label: "Brand new"},
	{Value: "foreign_used", Label: "Foreign used"},
	{Value: "locally_used", Label: "Locally used"},
}

func searchSection(fields ...string) *facet.FilterSection {
	return &facet.FilterSection{
		ID:          "search",
		Title:       "Search",
		DefaultOpen: true,
		Priority:    0,
		Options: []*facet.FilterOption{{
			ID:           "q",
			Label:        "Keyword",
			Type:         facet.TypeSearch,
			Placeholder:  "Search listings",
			SearchFields: fields,
		}},
	}
}

func locationSection(priority int) *facet.FilterSection {
	return &facet.FilterSection{
		ID:          "location",
		Title:       "Location",
		Collapsible: true,
		Priority:    priority,
		Options: []*facet.FilterOption{{
			ID:      "location",
			Label:   "Location",
			Type:    facet.TypeSelect,
			Choices: locationChoices,
		}},
	}
}
