package listinghttp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/theplant/facet"
)

// maxResponseBytes bounds the listing body read by Client.
const maxResponseBytes = 32 << 20

type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	flatParams bool
	path       func(entity string) string
}

func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithFlatParams sends facet.FetchRequest.Params instead of the codec query,
// for listing services that expect min<Param>/max<Param> style parameters.
func WithFlatParams() ClientOption {
	return func(o *clientOptions) { o.flatParams = true }
}

// WithPath overrides the path of an entity listing relative to the base URL.
func WithPath(path func(entity string) string) ClientOption {
	return func(o *clientOptions) { o.path = path }
}

// Client fetches listings from a remote listing service.
type Client[T any] struct {
	baseURL string
	opts    *clientOptions
}

var _ facet.Fetcher[any] = (*Client[any])(nil)

func NewClient[T any](baseURL string, opts ...ClientOption) *Client[T] {
	o := &clientOptions{
		httpClient: http.DefaultClient,
		path: func(entity string) string {
			return "/listings/" + url.PathEscape(entity)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Client[T]{baseURL: strings.TrimRight(baseURL, "/"), opts: o}
}

func (c *Client[T]) Fetch(ctx context.Context, req *facet.FetchRequest) (*facet.FetchResponse[T], error) {
	endpoint := c.baseURL + c.opts.path(req.Entity) + "?" + c.encode(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "new listing request")
	}
	httpReq.Header.Set("Accept", "application/json")

	httpRsp, err := c.opts.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "request listing")
	}
	defer httpRsp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpRsp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read listing response")
	}
	if httpRsp.StatusCode == http.StatusNotImplemented {
		return nil, errors.WithStack(facet.ErrNotImplemented)
	}

	rsp := &facet.FetchResponse[T]{}
	if err := jsoniterForListing.Unmarshal(body, rsp); err != nil {
		if httpRsp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("listing service responded %d", httpRsp.StatusCode)
		}
		return nil, errors.Wrap(err, "decode listing response")
	}
	if httpRsp.StatusCode != http.StatusOK && rsp.Success {
		return nil, errors.Errorf("listing service responded %d", httpRsp.StatusCode)
	}
	return rsp, nil
}

func (c *Client[T]) encode(req *facet.FetchRequest) string {
	if !c.opts.flatParams {
		query := facet.EncodeQuery(req.Query)
		limit := ParamLimit + "=" + strconv.Itoa(req.Limit)
		if query == "" {
			return limit
		}
		return query + "&" + limit
	}

	params := url.Values{}
	for key, value := range req.Params() {
		switch v := value.(type) {
		case []string:
			params[key] = v
		case float64:
			params.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			params.Set(key, fmt.Sprint(v))
		}
	}
	return params.Encode()
}
