package catalog

import (
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"

	"github.com/theplant/facet"
)

type Rental struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `gorm:"index;not null" json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `json:"description"`
	Make          string         `gorm:"index" json:"make"`
	VehicleType   string         `gorm:"index;not null" json:"vehicleType"`
	DailyRate     float64        `gorm:"index;not null" json:"dailyRate"`
	Seats         int            `json:"seats"`
	Transmission  string         `json:"transmission"`
	WithDriver    string         `json:"withDriver"`
	AvailableFrom datatypes.Date `json:"availableFrom"`
	Location      string         `gorm:"index" json:"location"`
	Rating        float64        `json:"rating"`
}

var RentalSchema = facet.MustValidate(&facet.Schema{
	Entity:      EntityRentals,
	DefaultSort: "newest",
	Sorts:       priceSorts("dailyRate"),
	Sections: []*facet.FilterSection{
		searchSection("title", "make", "description"),
		{
			ID:          "rental",
			Title:       "Rental",
			DefaultOpen: true,
			Priority:    10,
			Options: []*facet.FilterOption{
				{
					ID:    "vehicleType",
					Label: "Vehicle type",
					Type:  facet.TypeMultiselect,
					Choices: []facet.Choice{
						{Value: "saloon", Label: "Saloon"},
						{Value: "suv", Label: "SUV"},
						{Value: "van", Label: "Van"},
						{Value: "pickup", Label: "Pickup"},
						{Value: "luxury", Label: "Luxury"},
					},
				},
				{
					ID:    "seats",
					Label: "Seats",
					Type:  facet.TypeRange,
					Min:   lo.ToPtr(2.0),
					Max:   lo.ToPtr(14.0),
					Step:  lo.ToPtr(1.0),
				},
				{
					ID:    "withDriver",
					Label: "Driver",
					Type:  facet.TypeRadio,
					Choices: []facet.Choice{
						{Value: "yes", Label: "With driver"},
						{Value: "no", Label: "Self drive"},
					},
				},
				{
					ID:    "availableFrom",
					Label: "Available",
					Type:  facet.TypeDate,
				},
			},
		},
		{
			ID:          "price",
			Title:       "Daily rate",
			DefaultOpen: true,
			Priority:    20,
			Options: []*facet.FilterOption{{
				ID:     "dailyRate",
				Label:  "Daily rate",
				Type:   facet.TypeRange,
				Min:    lo.ToPtr(0.0),
				Max:    lo.ToPtr(100_000.0),
				Step:   lo.ToPtr(500.0),
				Prefix: "KSh ",
				Param:  "rate",
			}},
		},
		locationSection(30),
	},
})
