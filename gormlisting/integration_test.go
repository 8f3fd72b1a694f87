//go:build integration

package gormlisting_test

import (
	"context"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/theplant/testenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theplant/facet"
	"github.com/theplant/facet/catalog"
	"github.com/theplant/facet/gormlisting"
)

var db *gorm.DB

func TestMain(m *testing.M) {
	env, err := testenv.New().DBEnable(true).SetUp()
	if err != nil {
		panic(err)
	}
	defer env.TearDown()

	db = env.DB
	db.Logger = db.Logger.LogMode(logger.Info)

	m.Run()
}

func seedVehicles(t *testing.T) []*catalog.Vehicle {
	t.Helper()
	require.NoError(t, db.Migrator().DropTable(&catalog.Vehicle{}))
	require.NoError(t, db.AutoMigrate(&catalog.Vehicle{}))

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	vehicles := []*catalog.Vehicle{
		{Title: "Toyota Land Cruiser Prado TX", Make: "Toyota", Model: "Prado", BodyType: "suv", Year: 2019, Price: 6_500_000, FuelType: "diesel", Transmission: "automatic", Condition: "foreign_used", Location: "nairobi", Mileage: 64_000},
		{Title: "Honda Fit Hybrid", Make: "Honda", Model: "Fit", BodyType: "hatchback", Year: 2014, Price: 950_000, FuelType: "hybrid", Transmission: "automatic", Condition: "locally_used", Location: "mombasa", Mileage: 120_000},
		{Title: "Toyota Premio", Make: "Toyota", Model: "Premio", BodyType: "sedan", Year: 2016, Price: 1_900_000, FuelType: "petrol", Transmission: "automatic", Condition: "foreign_used", Location: "nairobi", Mileage: 88_000},
		{Title: "Toyota Harrier", Make: "TOYOTA", Model: "Harrier", BodyType: "SUV", Year: 2017, Price: 3_000_000, FuelType: "petrol", Transmission: "automatic", Condition: "foreign_used", Location: "kisumu", Mileage: 71_000},
		{Title: "Nissan Navara 4x4", Make: "Nissan", Model: "Navara", BodyType: "pickup", Year: 2018, Price: 3_000_000, FuelType: "diesel", Transmission: "manual", Condition: "new", Location: "nakuru", Mileage: 0},
		{Title: "Mazda CX-5", Make: "Mazda", Model: "CX-5", BodyType: "suv", Year: 2017, Price: 2_800_000, FuelType: "petrol", Transmission: "automatic", Condition: "foreign_used", Location: "nairobi", Mileage: 59_000},
		{Title: "Subaru Forester XT", Make: "Subaru", Model: "Forester", BodyType: "suv", Year: 2015, Price: 2_100_000, FuelType: "petrol", Transmission: "automatic", Condition: "locally_used", Location: "eldoret", Mileage: 99_000},
	}
	for i, v := range vehicles {
		v.CreatedAt = base.Add(time.Duration(i) * 13 * time.Hour)
		v.Rating = float64(i%5) + 0.5
	}
	require.NoError(t, db.Create(&vehicles).Error)
	return vehicles
}

func TestFetchMatchesLocalPipeline(t *testing.T) {
	vehicles := seedVehicles(t)

	limits := facet.EnsureLimits(3, 10)
	remote := gormlisting.NewFetcher[*catalog.Vehicle](db, catalog.VehicleSchema, gormlisting.WithLimits(limits))
	local := facet.LocalFetcher(vehicles, limits)

	queries := []string{
		"",
		"make=toyota",
		"make=toyota&bodyType=suv,sedan",
		"bodyType=suv&priceRange=0,3000000&sort=price_asc",
		"priceRange=3000000,3000000&sort=price_desc",
		"q=toyota&sort=year_desc",
		"q=4X4",
		"fuelType=petrol,hybrid&transmission=automatic&sort=rating",
		"year=2016,2018&mileage=,90000&sort=price_asc",
		"listedOn=2024-05-02",
		"location=nairobi&page=2",
		"sort=price_asc&page=3",
		"make=bmw",
	}

	vehicleIDs := func(vs []*catalog.Vehicle) []uint {
		return lo.Map(vs, func(v *catalog.Vehicle, _ int) uint { return v.ID })
	}

	for _, query := range queries {
		t.Run(query, func(t *testing.T) {
			req := &facet.FetchRequest{
				Entity: catalog.EntityVehicles,
				Query:  facet.DecodeQuery(query, catalog.VehicleSchema),
			}

			want, err := local.Fetch(context.Background(), req)
			require.NoError(t, err)
			got, err := remote.Fetch(context.Background(), req)
			require.NoError(t, err)

			require.Equal(t, vehicleIDs(want.Data), vehicleIDs(got.Data))
			require.Equal(t, want.Pagination, got.Pagination)
		})
	}
}
