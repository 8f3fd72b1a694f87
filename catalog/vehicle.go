package catalog

import (
	"time"

	"github.com/samber/lo"

	"github.com/theplant/facet"
)

type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"index;not null" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Make         string    `gorm:"index;not null" json:"make"`
	Model        string    `gorm:"not null" json:"model"`
	Year         int       `gorm:"index" json:"year"`
	Price        float64   `gorm:"index;not null" json:"price"`
	Mileage      int       `json:"mileage"`
	BodyType     string    `gorm:"index" json:"bodyType"`
	FuelType     string    `json:"fuelType"`
	Transmission string    `json:"transmission"`
	Condition    string    `json:"condition"`
	Location     string    `gorm:"index" json:"location"`
	Rating       float64   `json:"rating"`
}

var VehicleSchema = facet.MustValidate(&facet.Schema{
	Entity:      EntityVehicles,
	DefaultSort: "newest",
	Sorts: append(priceSorts("price"), facet.SortOption{
		Key:    "year_desc",
		Label:  "Year: newest model",
		Orders: []facet.Order{{Field: "year", Direction: facet.OrderDirectionDesc}},
	}),
	Sections: []*facet.FilterSection{
		searchSection("title", "make", "model", "description"),
		{
			ID:          "vehicle",
			Title:       "Vehicle",
			DefaultOpen: true,
			Priority:    10,
			Options: []*facet.FilterOption{
				{
					ID:    "make",
					Label: "Make",
					Type:  facet.TypeSelect,
					Choices: []facet.Choice{
						{Value: "toyota", Label: "Toyota"},
						{Value: "honda", Label: "Honda"},
						{Value: "nissan", Label: "Nissan"},
						{Value: "mazda", Label: "Mazda"},
						{Value: "subaru", Label: "Subaru"},
						{Value: "mitsubishi", Label: "Mitsubishi"},
						{Value: "isuzu", Label: "Isuzu"},
						{Value: "volkswagen", Label: "Volkswagen"},
						{Value: "mercedes-benz", Label: "Mercedes-Benz"},
						{Value: "bmw", Label: "BMW"},
					},
				},
				{
					ID:    "bodyType",
					Label: "Body type",
					Type:  facet.TypeMultiselect,
					Choices: []facet.Choice{
						{Value: "suv", Label: "SUV"},
						{Value: "sedan", Label: "Sedan"},
						{Value: "hatchback", Label: "Hatchback"},
						{Value: "pickup", Label: "Pickup"},
						{Value: "wagon", Label: "Station wagon"},
						{Value: "van", Label: "Van"},
						{Value: "coupe", Label: "Coupe"},
					},
				},
				{
					ID:    "year",
					Label: "Year",
					Type:  facet.TypeRange,
					Min:   lo.ToPtr(1990.0),
					Max:   lo.ToPtr(2026.0),
					Step:  lo.ToPtr(1.0),
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
				Max:    lo.ToPtr(50_000_000.0),
				Step:   lo.ToPtr(50_000.0),
				Prefix: "KSh ",
			}},
		},
		{
			ID:          "specs",
			Title:       "Specifications",
			Collapsible: true,
			Priority:    30,
			Options: []*facet.FilterOption{
				{
					ID:    "fuelType",
					Label: "Fuel",
					Type:  facet.TypeCheckbox,
					Choices: []facet.Choice{
						{Value: "petrol", Label: "Petrol"},
						{Value: "diesel", Label: "Diesel"},
						{Value: "hybrid", Label: "Hybrid"},
						{Value: "electric", Label: "Electric"},
					},
				},
				{
					ID:    "transmission",
					Label: "Transmission",
					Type:  facet.TypeRadio,
					Choices: []facet.Choice{
						{Value: "automatic", Label: "Automatic"},
						{Value: "manual", Label: "Manual"},
					},
				},
				{
					ID:     "mileage",
					Label:  "Mileage",
					Type:   facet.TypeRange,
					Min:    lo.ToPtr(0.0),
					Max:    lo.ToPtr(500_000.0),
					Step:   lo.ToPtr(5_000.0),
					Suffix: " km",
				},
			},
		},
		locationSection(40),
		{
			ID:          "listing",
			Title:       "Listing",
			Collapsible: true,
			Priority:    50,
			Options: []*facet.FilterOption{{
				ID:    "listedOn",
				Label: "Listed on",
				Type:  facet.TypeDate,
				Field: "createdAt",
			}},
		},
	},
})
