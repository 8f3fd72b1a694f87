package catalog

import (
	"time"

	"github.com/samber/lo"

	"github.com/theplant/facet"
)

type Part struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `gorm:"index;not null" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Title          string    `gorm:"not null" json:"title"`
	Description    string    `json:"description"`
	Category       string    `gorm:"index;not null" json:"category"`
	Brand          string    `json:"brand"`
	CompatibleMake string    `gorm:"index" json:"compatibleMake"`
	Condition      string    `json:"condition"`
	Price          float64   `gorm:"index;not null" json:"price"`
	Location       string    `gorm:"index" json:"location"`
	Rating         float64   `json:"rating"`
}

var PartSchema = facet.MustValidate(&facet.Schema{
	Entity:      EntityParts,
	DefaultSort: "newest",
	Sorts:       priceSorts("price"),
	Sections: []*facet.FilterSection{
		searchSection("title", "brand", "description"),
		{
			ID:          "part",
			Title:       "Part",
			DefaultOpen: true,
			Priority:    10,
			Options: []*facet.FilterOption{
				{
					ID:    "category",
					Label: "Category",
					Type:  facet.TypeMultiselect,
					Choices: []facet.Choice{
						{Value: "engine", Label: "Engine"},
						{Value: "brakes", Label: "Brakes"},
						{Value: "suspension", Label: "Suspension"},
						{Value: "electrical", Label: "Electrical"},
						{Value: "body", Label: "Body & exterior"},
						{Value: "interior", Label: "Interior"},
						{Value: "tyres", Label: "Tyres & wheels"},
					},
				},
				{
					ID:    "compatibleMake",
					Label: "Fits make",
					Type:  facet.TypeSelect,
					Param: "make",
					Choices: []facet.Choice{
						{Value: "toyota", Label: "Toyota"},
						{Value: "nissan", Label: "Nissan"},
						{Value: "subaru", Label: "Subaru"},
						{Value: "mazda", Label: "Mazda"},
						{Value: "honda", Label: "Honda"},
					},
				},
				{
					ID:      "condition",
					Label:   "Condition",
					Type:    facet.TypeRadio,
					Choices: conditionChoices,
				},
			},
		},
		{
			ID:          "price",
			Title:       "Price",
			DefaultOpen: true,
			Priority:    20,
			Options: []*facet.FilterOption{{
				ID:     "priceRange",
				Label:  "Price",
				Type:   facet.TypeRange,
				Field:  "price",
				Min:    lo.ToPtr(0.0),
				Max:    lo.ToPtr(1_000_000.0),
				Step:   lo.ToPtr(500.0),
				Prefix: "KSh ",
			}},
		},
		locationSection(30),
	},
})
