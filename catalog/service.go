package catalog

import (
	"time"

	"github.com/samber/lo"

	"github.com/theplant/facet"
)

type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"index;not null" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Provider    string    `gorm:"not null" json:"provider"`
	Category    string    `gorm:"index;not null" json:"category"`
	PriceFrom   float64   `gorm:"index" json:"priceFrom"`
	Location    string    `gorm:"index" json:"location"`
	Rating      float64   `json:"rating"`
}

var ServiceSchema = facet.MustValidate(&facet.Schema{
	Entity:      EntityServices,
	DefaultSort: "rating",
	Sorts:       priceSorts("priceFrom"),
	Sections: []*facet.FilterSection{
		searchSection("title", "provider", "description"),
		{
			ID:          "service",
			Title:       "Service",
			DefaultOpen: true,
			Priority:    10,
			Options: []*facet.FilterOption{
				{
					ID:    "category",
					Label: "Service type",
					Type:  facet.TypeCheckbox,
					Choices: []facet.Choice{
						{Value: "repair", Label: "Repair & maintenance"},
						{Value: "detailing", Label: "Detailing"},
						{Value: "towing", Label: "Towing"},
						{Value: "inspection", Label: "Inspection"},
						{Value: "insurance", Label: "Insurance"},
						{Value: "tyres", Label: "Tyre services"},
					},
				},
				{
					ID:    "rating",
					Label: "Rating",
					Type:  facet.TypeNumber,
					Min:   lo.ToPtr(0.0),
					Max:   lo.ToPtr(5.0),
					Step:  lo.ToPtr(0.5),
				},
			},
		},
		{
			ID:          "price",
			Title:       "Starting price",
			Collapsible: true,
			Priority:    20,
			Options: []*facet.FilterOption{{
				ID:     "priceRange",
				Label:  "Starting price",
				Type:   facet.TypeRange,
				Field:  "priceFrom",
				Param:  "price",
				Min:    lo.ToPtr(0.0),
				Max:    lo.ToPtr(500_000.0),
				Prefix: "KSh ",
			}},
		},
		locationSection(30),
	},
})
