package facet_test

import (
	"time"

	"github.com/samber/lo"

	"github.com/theplant/facet"
)

var testSchema = facet.MustValidate(&facet.Schema{
	Entity:      "vehicles",
	DefaultSort: "newest",
	Sorts: []facet.SortOption{
		{Key: "newest", Label: "Newest", Orders: []facet.Order{{Field: "listedAt", Direction: facet.OrderDirectionDesc}}},
		{Key: "price_asc", Label: "Price: low to high", Orders: []facet.Order{{Field: "price", Direction: facet.OrderDirectionAsc}}},
		{Key: "price_desc", Label: "Price: high to low", Orders: []facet.Order{{Field: "price", Direction: facet.OrderDirectionDesc}}},
		{Key: "make", Label: "Make", Orders: []facet.Order{{Field: "make", Direction: facet.OrderDirectionAsc}}},
	},
	Sections: []*facet.FilterSection{
		{
			ID:       "details",
			Title:    "Details",
			Priority: 10,
			Options: []*facet.FilterOption{
				{
					ID:    "make",
					Label: "Make",
					Type:  facet.TypeSelect,
					Choices: []facet.Choice{
						{Value: "toyota", Label: "Toyota"},
						{Value: "honda", Label: "Honda"},
						{Value: "nissan", Label: "Nissan"},
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
					},
				},
				{
					ID:     "priceRange",
					Label:  "Price",
					Type:   facet.TypeRange,
					Field:  "price",
					Min:    lo.ToPtr(0.0),
					Max:    lo.ToPtr(50_000_000.0),
					Prefix: "KSh ",
				},
				{
					ID:    "condition",
					Label: "Condition",
					Type:  facet.TypeRadio,
					Choices: []facet.Choice{
						{Value: "new", Label: "Brand new"},
						{Value: "used", Label: "Used"},
					},
				},
				{
					ID:    "fuelType",
					Label: "Fuel",
					Type:  facet.TypeCheckbox,
					Choices: []facet.Choice{
						{Value: "petrol", Label: "Petrol"},
						{Value: "diesel", Label: "Diesel"},
					},
				},
				{
					ID:     "seats",
					Label:  "Seats",
					Type:   facet.TypeNumber,
					Suffix: " seats",
				},
				{
					ID:    "listedOn",
					Label: "Listed on",
					Type:  facet.TypeDate,
					Field: "listedAt",
				},
				{
					ID:    "color",
					Label: "Color",
					Type:  facet.FilterType("swatch"),
				},
			},
		},
		{
			ID:       "search",
			Title:    "Search",
			Priority: 0,
			Options: []*facet.FilterOption{{
				ID:           "q",
				Label:        "Keyword",
				Type:         facet.TypeSearch,
				SearchFields: []string{"title", "make"},
			}},
		},
	},
})

type car struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Make     string    `json:"make"`
	BodyType string    `json:"bodyType"`
	Price    float64   `json:"price"`
	Seats    int       `json:"seats"`
	Fuel     []string  `json:"fuelType"`
	Cond     string    `json:"condition"`
	Color    string    `json:"color"`
	ListedAt time.Time `json:"listedAt"`
}

func ids(cars []*car) []int {
	return lo.Map(cars, func(c *car, _ int) int { return c.ID })
}

func day(s string) time.Time {
	t, err := time.Parse(facet.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
