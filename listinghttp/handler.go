// Package listinghttp exposes listing fetchers over HTTP and consumes them as facet.Fetcher.
package listinghttp

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/theplant/facet"
)

// ParamLimit is the query parameter carrying the requested page size.
const ParamLimit = "limit"

var jsoniterForListing = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Envelope is the body of every listing response.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Pagination *facet.Pagination `json:"pagination,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// Filters is the data of the filters endpoint: the schema and the chips of the requested query.
type Filters struct {
	Schema *facet.Schema `json:"schema"`
	Chips  []facet.Chip  `json:"chips"`
	Sort   string        `json:"sort,omitempty"`
	Page   int           `json:"page,omitempty"`
}

type entity struct {
	schema *facet.Schema
	fetch  func(ctx context.Context, req *facet.FetchRequest) (any, *facet.Pagination, error)
}

type HandlerOption func(*Handler)

func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func WithLimits(limits facet.Limits) HandlerOption {
	return func(h *Handler) { h.limits = limits }
}

// Handler routes listing requests to the fetcher registered for the entity.
//
//	GET /listings/{entity}          filtered, sorted, paginated records
//	GET /listings/{entity}/filters  schema and active filter chips
type Handler struct {
	router *mux.Router
	logger *zap.Logger
	limits facet.Limits

	mu       sync.RWMutex
	entities map[string]*entity
}

func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		router:   mux.NewRouter(),
		logger:   zap.NewNop(),
		limits:   facet.DefaultLimits,
		entities: map[string]*entity{},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.router.HandleFunc("/listings/{entity}", h.list).Methods(http.MethodGet)
	h.router.HandleFunc("/listings/{entity}/filters", h.filters).Methods(http.MethodGet)
	h.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Envelope{Error: "not found"})
	})
	return h
}

// Register serves the entity described by schema with fetcher.
// A nil fetcher serves the schema only; listing requests answer 501.
func Register[T any](h *Handler, schema *facet.Schema, fetcher facet.Fetcher[T]) {
	if schema == nil {
		panic("schema must be set")
	}
	e := &entity{schema: schema}
	if fetcher != nil {
		e.fetch = func(ctx context.Context, req *facet.FetchRequest) (any, *facet.Pagination, error) {
			rsp, err := fetcher.Fetch(ctx, req)
			if err != nil {
				return nil, nil, err
			}
			if !rsp.Success {
				return nil, nil, errors.New(rsp.Error)
			}
			return rsp.Data, rsp.Pagination, nil
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entities[schema.Entity] = e
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) lookup(r *http.Request) (string, *entity) {
	name := mux.Vars(r)["entity"]
	h.mu.RLock()
	defer h.mu.RUnlock()
	return name, h.entities[name]
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	name, e := h.lookup(r)
	if e == nil {
		writeJSON(w, http.StatusNotFound, Envelope{Error: "unknown entity " + name})
		return
	}
	if e.fetch == nil {
		writeJSON(w, http.StatusNotImplemented, Envelope{Error: facet.ErrNotImplemented.Error()})
		return
	}

	params := r.URL.Query()
	limit, _ := strconv.Atoi(params.Get(ParamLimit))
	req := &facet.FetchRequest{
		Entity: name,
		Query:  facet.DecodeQueryValues(params, e.schema),
		Limit:  h.limits.Clamp(limit),
	}

	data, pagination, err := e.fetch(r.Context(), req)
	switch {
	case errors.Is(err, facet.ErrNotImplemented):
		writeJSON(w, http.StatusNotImplemented, Envelope{Error: err.Error()})
		return
	case err != nil:
		h.logger.Error("listing fetch failed", zap.String("entity", name), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Envelope{Error: "failed to load listings"})
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination})
}

func (h *Handler) filters(w http.ResponseWriter, r *http.Request) {
	name, e := h.lookup(r)
	if e == nil {
		writeJSON(w, http.StatusNotFound, Envelope{Error: "unknown entity " + name})
		return
	}
	q := facet.DecodeQueryValues(r.URL.Query(), e.schema)
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: Filters{
		Schema: e.schema,
		Chips:  facet.Chips(q.Values, e.schema),
		Sort:   q.Sort,
		Page:   q.Page,
	}})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	data, err := jsoniterForListing.Marshal(body)
	if err != nil {
		http.Error(w, `{"success":false,"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
