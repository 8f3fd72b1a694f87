package facet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/facet"
)

func TestLocalFetcher(t *testing.T) {
	fetcher := facet.LocalFetcher(inventory, facet.EnsureLimits(2, 2))

	rsp, err := fetcher.Fetch(context.Background(), &facet.FetchRequest{
		Entity: "vehicles",
		Query:  facet.Query{Values: facet.NewValues(testSchema), Sort: "price_desc", Page: 2},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.True(t, rsp.Success)
	assert.Equal(t, []int{2}, ids(rsp.Data))
	assert.Equal(t, facet.Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, *rsp.Pagination)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetcher.Fetch(ctx, &facet.FetchRequest{Query: facet.Query{Values: facet.NewValues(testSchema)}})
	require.ErrorIs(t, err, context.Canceled)
}
