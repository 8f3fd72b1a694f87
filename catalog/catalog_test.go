package catalog_test

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/theplant/facet"
	"github.com/theplant/facet/catalog"
)

func TestSchemas(t *testing.T) {
	require.Equal(t, []string{"parts", "rentals", "services", "vehicles"}, catalog.Entities())

	for _, entity := range catalog.Entities() {
		t.Run(entity, func(t *testing.T) {
			schema := catalog.Schema(entity)
			require.NotNil(t, schema)
			require.NoError(t, schema.Validate())
			assert.Equal(t, entity, schema.Entity)
			assert.NotNil(t, schema.Option("q"))
			assert.NotNil(t, schema.Option("location"))
		})
	}

	assert.Nil(t, catalog.Schema("boats"))
	assert.Len(t, catalog.Models(), 4)
}

func TestVehicleListing(t *testing.T) {
	vehicles := []*catalog.Vehicle{
		{ID: 1, Title: "Toyota Land Cruiser Prado", Make: "Toyota", BodyType: "SUV", Price: 6_500_000, Year: 2019, CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Title: "Honda Fit", Make: "Honda", BodyType: "Hatchback", Price: 950_000, Year: 2014, CreatedAt: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Title: "Toyota Premio", Make: "Toyota", BodyType: "Sedan", Price: 1_900_000, Year: 2016, CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 4, Title: "Toyota Harrier", Make: "Toyota", BodyType: "SUV", Price: 3_200_000, Year: 2017, CreatedAt: time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC)},
	}
	vehicleIDs := func(vs []*catalog.Vehicle) []uint {
		return lo.Map(vs, func(v *catalog.Vehicle, _ int) uint { return v.ID })
	}

	q := facet.DecodeQuery("make=toyota&bodyType=suv,sedan&priceRange=0,4000000&sort=price_asc", catalog.VehicleSchema)
	require.Equal(t, 3, q.Values.Count())
	assert.Equal(t, []uint{3, 4}, vehicleIDs(facet.Apply(vehicles, q.Values, catalog.VehicleSchema, q.Sort)))

	// the default sort lists the newest first
	all := facet.Apply(vehicles, facet.NewValues(catalog.VehicleSchema), catalog.VehicleSchema, "")
	assert.Equal(t, []uint{4, 2, 1, 3}, vehicleIDs(all))

	listed := facet.NewValues(catalog.VehicleSchema).Update("listedOn", "2024-05-02,2024-05-03")
	assert.Equal(t, []uint{2, 1}, vehicleIDs(facet.Apply(vehicles, listed, catalog.VehicleSchema, "")))

	assert.Equal(t, []facet.Chip{
		{ID: "make", Title: "Make", Text: "Toyota"},
		{ID: "bodyType", Title: "Body type", Text: "Sedan, SUV"},
		{ID: "priceRange", Title: "Price", Text: "KSh 0 - KSh 4,000,000"},
	}, facet.Chips(q.Values, catalog.VehicleSchema))
}

func TestRentalAvailability(t *testing.T) {
	rentals := []*catalog.Rental{
		{ID: 1, VehicleType: "suv", DailyRate: 8_000, AvailableFrom: datatypes.Date(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		{ID: 2, VehicleType: "van", DailyRate: 12_000, AvailableFrom: datatypes.Date(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))},
	}
	values := facet.NewValues(catalog.RentalSchema).
		Update("availableFrom", "2024-06-01,2024-06-10").
		Update("dailyRate", ",10000")

	got := facet.Filter(rentals, values, catalog.RentalSchema)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)

	assert.Equal(t, map[string]any{
		"availableFromFrom": "2024-06-01",
		"availableFromTo":   "2024-06-10",
		"minRate":           0.0,
		"maxRate":           10_000.0,
	}, facet.Flatten(values, catalog.RentalSchema))
}
