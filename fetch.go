package facet

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrNotImplemented is returned by fetchers for entity types without server side filtering.
	ErrNotImplemented = errors.New("listing fetch not implemented for entity")
	// ErrStale is returned by Loader.Load when a newer load superseded it.
	ErrStale = errors.New("listing response superseded by a newer request")
	// ErrUnavailable is returned when the remote listing failed and no fallback data exists.
	ErrUnavailable = errors.New("listing unavailable")
)

// FetchRequest asks a remote listing service for one page of filtered records.
type FetchRequest struct {
	Entity string
	Query  Query
	Limit  int
}

// Params returns the flattened remote parameters including sort and pagination.
func (r *FetchRequest) Params() map[string]any {
	params := Flatten(r.Query.Values, r.Query.Values.schema)
	if r.Query.Sort != "" {
		params[ParamSort] = r.Query.Sort
	}
	params[ParamPage] = max(r.Query.Page, 1)
	params["limit"] = r.Limit
	return params
}

// FetchResponse is the remote listing result.
type FetchResponse[T any] struct {
	Success    bool        `json:"success"`
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Fetcher loads filtered records from a remote collaborator.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse[T], error)
}

type FetcherFunc[T any] func(ctx context.Context, req *FetchRequest) (*FetchResponse[T], error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse[T], error) {
	return f(ctx, req)
}

// LocalFetcher serves requests from an in-memory collection with the local pipeline.
// It is the behavior every remote fetcher must be indistinguishable from.
func LocalFetcher[T any](records []T, limits Limits) Fetcher[T] {
	return FetcherFunc[T](func(ctx context.Context, req *FetchRequest) (*FetchResponse[T], error) {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}
		return localResponse(records, req, limits), nil
	})
}

func localResponse[T any](records []T, req *FetchRequest, limits Limits) *FetchResponse[T] {
	schema := req.Query.Values.schema
	matched := Apply(records, req.Query.Values, schema, req.Query.Sort)
	page, pagination := Paginate(matched, max(req.Query.Page, 1), limits.Clamp(req.Limit))
	return &FetchResponse[T]{Success: true, Data: page, Pagination: pagination}
}
