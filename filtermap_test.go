package facet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/facet"
)

func TestToFilterMap(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		assert.Nil(t, facet.ToFilterMap(facet.NewValues(testSchema), testSchema))
	})

	t.Run("every filter type", func(t *testing.T) {
		values := facet.NewValues(testSchema).
			Update("q", "corolla").
			Update("make", "toyota").
			Update("bodyType", []string{"suv", "sedan"}).
			Update("priceRange", []float64{0, 3_000_000}).
			Update("seats", "4,").
			Update("listedOn", "2024-05-01").
			Update("color", "red")

		from := day("2024-05-01")
		want := map[string]any{"And": []any{
			map[string]any{"Or": []any{
				map[string]any{"Title": map[string]any{"Contains": "corolla", "Fold": true}},
				map[string]any{"Make": map[string]any{"Contains": "corolla", "Fold": true}},
			}},
			map[string]any{"Make": map[string]any{"Eq": "toyota", "Fold": true}},
			map[string]any{"BodyType": map[string]any{"In": []any{"sedan", "suv"}, "Fold": true}},
			map[string]any{"Price": map[string]any{"Gte": 0.0, "Lte": 3_000_000.0}},
			map[string]any{"Seats": map[string]any{"Gte": 4.0}},
			map[string]any{"ListedAt": map[string]any{"Gte": from, "Lt": from.Add(24 * time.Hour)}},
			map[string]any{"Color": map[string]any{"Contains": "red", "Fold": true}},
		}}
		require.Equal(t, want, facet.ToFilterMap(values, nil))
	})
}

func TestPruneMap(t *testing.T) {
	m := map[string]any{
		"A": nil,
		"B": map[string]any{"C": nil},
		"D": []any{},
		"E": []any{map[string]any{}, nil, map[string]any{"F": 1}},
		"G": "keep",
	}
	facet.PruneMap(m)
	assert.Equal(t, map[string]any{
		"E": []any{map[string]any{"F": 1}},
		"G": "keep",
	}, m)
}

func TestFlatten(t *testing.T) {
	values := facet.NewValues(testSchema).
		Update("make", "toyota").
		Update("bodyType", []string{"suv", "sedan"}).
		Update("priceRange", []float64{100, 200}).
		Update("seats", ",6").
		Update("listedOn", "2024-05-01,2024-05-31").
		Update("condition", "new")

	assert.Equal(t, map[string]any{
		"make":         "toyota",
		"bodyType":     []string{"sedan", "suv"},
		"minPrice":     100.0,
		"maxPrice":     200.0,
		"maxSeats":     6.0,
		"listedAtFrom": "2024-05-01",
		"listedAtTo":   "2024-05-31",
		"condition":    "new",
	}, facet.Flatten(values, testSchema))

	single := facet.NewValues(testSchema).Update("listedOn", "2024-05-01")
	assert.Equal(t, map[string]any{"listedAt": "2024-05-01"}, facet.Flatten(single, nil))
}

func TestFetchRequestParams(t *testing.T) {
	req := &facet.FetchRequest{
		Entity: "vehicles",
		Query: facet.Query{
			Values: facet.NewValues(testSchema).Update("make", "toyota"),
			Sort:   "price_asc",
		},
		Limit: 12,
	}
	assert.Equal(t, map[string]any{
		"make":  "toyota",
		"sort":  "price_asc",
		"page":  1,
		"limit": 12,
	}, req.Params())
}
