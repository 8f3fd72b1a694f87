package listinghttp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theplant/facet"
	"github.com/theplant/facet/catalog"
	"github.com/theplant/facet/listinghttp"
)

var vehicles = []*catalog.Vehicle{
	{ID: 1, Title: "Toyota Prado", Make: "Toyota", BodyType: "suv", Price: 6_500_000, CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	{ID: 2, Title: "Honda Fit", Make: "Honda", BodyType: "hatchback", Price: 950_000, CreatedAt: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
	{ID: 3, Title: "Toyota Premio", Make: "Toyota", BodyType: "sedan", Price: 1_900_000, CreatedAt: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
	{ID: 4, Title: "Toyota Harrier", Make: "toyota", BodyType: "suv", Price: 3_000_000, CreatedAt: time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC)},
}

type listBody struct {
	Success    bool               `json:"success"`
	Data       []*catalog.Vehicle `json:"data"`
	Pagination *facet.Pagination  `json:"pagination"`
	Error      string             `json:"error"`
}

func newTestHandler(t *testing.T, opts ...listinghttp.HandlerOption) *listinghttp.Handler {
	t.Helper()
	h := listinghttp.NewHandler(append([]listinghttp.HandlerOption{
		listinghttp.WithLimits(facet.EnsureLimits(2, 3)),
	}, opts...)...)
	listinghttp.Register(h, catalog.VehicleSchema, facet.LocalFetcher(vehicles, facet.EnsureLimits(2, 3)))
	listinghttp.Register[*catalog.Part](h, catalog.PartSchema, nil)
	return h
}

func serve(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, listBody) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var body listBody
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func vehicleIDs(vs []*catalog.Vehicle) []uint {
	return lo.Map(vs, func(v *catalog.Vehicle, _ int) uint { return v.ID })
}

func TestHandlerList(t *testing.T) {
	h := newTestHandler(t)

	testCases := []struct {
		name           string
		target         string
		wantIDs        []uint
		wantPagination *facet.Pagination
	}{
		{
			name:           "default sort and limit",
			target:         "/listings/vehicles",
			wantIDs:        []uint{4, 3},
			wantPagination: &facet.Pagination{Page: 1, Limit: 2, Total: 4, TotalPages: 2},
		},
		{
			name:           "filter and sort",
			target:         "/listings/vehicles?make=toyota&sort=price_asc&limit=3",
			wantIDs:        []uint{3, 4, 1},
			wantPagination: &facet.Pagination{Page: 1, Limit: 3, Total: 3, TotalPages: 1},
		},
		{
			name:           "limit above max is clamped",
			target:         "/listings/vehicles?limit=50",
			wantIDs:        []uint{4, 3, 2},
			wantPagination: &facet.Pagination{Page: 1, Limit: 3, Total: 4, TotalPages: 2},
		},
		{
			name:           "second page",
			target:         "/listings/vehicles?sort=price_asc&page=2",
			wantIDs:        []uint{4, 1},
			wantPagination: &facet.Pagination{Page: 2, Limit: 2, Total: 4, TotalPages: 2},
		},
		{
			name:           "unknown parameters are ignored",
			target:         "/listings/vehicles?bodyType=suv&color=red&sort=cheapest",
			wantIDs:        []uint{4, 1},
			wantPagination: &facet.Pagination{Page: 1, Limit: 2, Total: 2, TotalPages: 1},
		},
		{
			name:           "overflowing page is empty",
			target:         "/listings/vehicles?page=768614336404564652",
			wantIDs:        []uint{},
			wantPagination: &facet.Pagination{Page: 768614336404564652, Limit: 2, Total: 4, TotalPages: 2},
		},
		{
			name:           "no match",
			target:         "/listings/vehicles?make=bmw",
			wantIDs:        []uint{},
			wantPagination: &facet.Pagination{Page: 1, Limit: 2, Total: 0, TotalPages: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := serve(t, h, tc.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.True(t, body.Success)
			assert.Equal(t, tc.wantIDs, vehicleIDs(body.Data))
			assert.Equal(t, tc.wantPagination, body.Pagination)
		})
	}
}

func TestHandlerErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := newTestHandler(t, listinghttp.WithLogger(zap.New(core)))
	listinghttp.Register(h, catalog.ServiceSchema, facet.FetcherFunc[*catalog.Service](
		func(ctx context.Context, req *facet.FetchRequest) (*facet.FetchResponse[*catalog.Service], error) {
			return nil, errors.New("connection refused")
		},
	))
	listinghttp.Register(h, catalog.RentalSchema, facet.FetcherFunc[*catalog.Rental](
		func(ctx context.Context, req *facet.FetchRequest) (*facet.FetchResponse[*catalog.Rental], error) {
			return nil, errors.Wrap(facet.ErrNotImplemented, "rentals")
		},
	))

	testCases := []struct {
		name      string
		target    string
		wantCode  int
		wantError string
	}{
		{
			name:      "unknown entity",
			target:    "/listings/boats",
			wantCode:  http.StatusNotFound,
			wantError: "unknown entity boats",
		},
		{
			name:      "unknown route",
			target:    "/vehicles",
			wantCode:  http.StatusNotFound,
			wantError: "not found",
		},
		{
			name:      "schema only entity",
			target:    "/listings/parts",
			wantCode:  http.StatusNotImplemented,
			wantError: facet.ErrNotImplemented.Error(),
		},
		{
			name:      "fetcher not implemented",
			target:    "/listings/rentals",
			wantCode:  http.StatusNotImplemented,
			wantError: "rentals: " + facet.ErrNotImplemented.Error(),
		},
		{
			name:      "fetcher failure is not leaked",
			target:    "/listings/services",
			wantCode:  http.StatusInternalServerError,
			wantError: "failed to load listings",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, body := serve(t, h, tc.target)
			assert.Equal(t, tc.wantCode, w.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantError, body.Error)
		})
	}

	entries := logs.FilterMessage("listing fetch failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "services", entries[0].ContextMap()["entity"])
	assert.Equal(t, "connection refused", entries[0].ContextMap()["error"])
}

func TestHandlerFilters(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/parts/filters?priceRange=0,3000000&make=toyota&sort=price_desc&page=3", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Schema struct {
				Entity string `json:"entity"`
			} `json:"schema"`
			Chips []facet.Chip `json:"chips"`
			Sort  string       `json:"sort"`
			Page  int          `json:"page"`
		} `json:"data"`
	}
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, catalog.EntityParts, body.Data.Schema.Entity)
	assert.Equal(t, "price_desc", body.Data.Sort)
	assert.Equal(t, 3, body.Data.Page)

	want := facet.Chips(facet.Decode("priceRange=0,3000000&make=toyota", catalog.PartSchema), catalog.PartSchema)
	assert.Equal(t, want, body.Data.Chips)
}
