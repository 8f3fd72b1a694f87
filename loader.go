package facet

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultFetchTimeout bounds every remote fetch issued by a Loader.
const DefaultFetchTimeout = 10 * time.Second

// Source tells where a Result came from.
type Source string

const (
	SourceRemote Source = "REMOTE"
	SourceLocal  Source = "LOCAL"
)

// Result is the outcome of one Loader.Load.
type Result[T any] struct {
	Records    []T         `json:"records"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Generation uint64      `json:"generation"`
	Source     Source      `json:"source"`
	// RemoteErr is the remote failure recovered by falling back to local data.
	RemoteErr error `json:"-"`
}

// Loader runs listing loads for one entity type.
//
// Every Load takes a new generation number and cancels the load it supersedes;
// only the latest generation may return a result, older ones return ErrStale.
// Remote failures fall back to the local pipeline over the fallback collection.
// Loader is safe for concurrent use.
type Loader[T any] struct {
	schema  *Schema
	fetcher Fetcher[T]
	logger  *zap.Logger
	timeout time.Duration
	limits  Limits

	generation atomic.Uint64

	mu         sync.Mutex
	cancelPrev context.CancelFunc
	fallback   []T
}

type LoaderOption[T any] func(*Loader[T])

func WithLogger[T any](logger *zap.Logger) LoaderOption[T] {
	return func(l *Loader[T]) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTimeout overrides DefaultFetchTimeout. Non-positive durations are ignored.
func WithTimeout[T any](timeout time.Duration) LoaderOption[T] {
	return func(l *Loader[T]) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

// WithFallback seeds the collection used when the remote listing fails.
func WithFallback[T any](records []T) LoaderOption[T] {
	return func(l *Loader[T]) {
		l.fallback = slices.Clone(records)
	}
}

func WithLimits[T any](limits Limits) LoaderOption[T] {
	return func(l *Loader[T]) {
		l.limits = limits
	}
}

// NewLoader creates a Loader. A nil fetcher filters the fallback collection locally.
func NewLoader[T any](schema *Schema, fetcher Fetcher[T], opts ...LoaderOption[T]) *Loader[T] {
	if schema == nil {
		panic("schema must be set")
	}
	l := &Loader[T]{
		schema:  schema,
		fetcher: fetcher,
		logger:  zap.NewNop(),
		timeout: DefaultFetchTimeout,
		limits:  DefaultLimits,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Generation returns the latest issued generation.
func (l *Loader[T]) Generation() uint64 {
	return l.generation.Load()
}

// Fallback returns a copy of the current fallback collection.
func (l *Loader[T]) Fallback() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.fallback)
}

// Load fetches the listing for q. It returns ErrStale when a later Load was
// issued before this one completed, and an error wrapping ErrUnavailable when
// the remote failed and there is no fallback data.
func (l *Loader[T]) Load(ctx context.Context, q Query, limit int) (*Result[T], error) {
	ctx, gen, done := l.begin(ctx)
	defer done()

	if q.Values.schema == nil {
		q.Values = NewValues(l.schema)
	}
	req := &FetchRequest{Entity: l.schema.Entity, Query: q, Limit: l.limits.Clamp(limit)}
	logger := l.logger.With(zap.String("entity", req.Entity), zap.Uint64("generation", gen))

	var remoteErr error
	if l.fetcher != nil {
		rsp, err := l.fetch(ctx, req)
		if !l.isLatest(gen) {
			logger.Debug("dropping stale listing response")
			return nil, ErrStale
		}
		if err == nil {
			if q.Values.Count() == 0 && coversCollection(rsp) {
				l.remember(rsp.Data)
			}
			return &Result[T]{
				Records:    rsp.Data,
				Pagination: rsp.Pagination,
				Generation: gen,
				Source:     SourceRemote,
			}, nil
		}
		if ctx.Err() != nil {
			// the caller gave up, there is nobody to fall back for
			return nil, errors.Wrap(err, "load listing")
		}
		remoteErr = err
		if errors.Is(err, ErrNotImplemented) {
			logger.Debug("remote filtering not implemented, filtering locally")
		} else {
			logger.Warn("remote listing failed, falling back to local data", zap.Error(err))
		}
	}

	fallback := l.Fallback()
	if len(fallback) == 0 {
		if remoteErr == nil {
			remoteErr = errors.New("no fetcher configured")
		}
		return nil, errors.Wrapf(ErrUnavailable, "entity %s: %v", req.Entity, remoteErr)
	}

	rsp := localResponse(fallback, req, l.limits)
	if !l.isLatest(gen) {
		logger.Debug("dropping stale local listing")
		return nil, ErrStale
	}
	return &Result[T]{
		Records:    rsp.Data,
		Pagination: rsp.Pagination,
		Generation: gen,
		Source:     SourceLocal,
		RemoteErr:  remoteErr,
	}, nil
}

// begin issues a new generation and cancels the load it supersedes.
func (l *Loader[T]) begin(ctx context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	gen := l.generation.Add(1)
	if l.cancelPrev != nil {
		l.cancelPrev()
	}
	l.cancelPrev = cancel
	l.mu.Unlock()

	return ctx, gen, cancel
}

func (l *Loader[T]) isLatest(gen uint64) bool {
	return l.generation.Load() == gen
}

func (l *Loader[T]) fetch(ctx context.Context, req *FetchRequest) (*FetchResponse[T], error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	rsp, err := l.fetcher.Fetch(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch listing")
	}
	if rsp == nil {
		return nil, errors.New("fetch listing: empty response")
	}
	if !rsp.Success {
		msg := rsp.Error
		if msg == "" {
			msg = "unsuccessful response"
		}
		return nil, errors.Errorf("fetch listing: %s", msg)
	}
	return rsp, nil
}

func (l *Loader[T]) remember(records []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fallback = slices.Clone(records)
}

// coversCollection reports whether rsp holds the entire unfiltered collection.
func coversCollection[T any](rsp *FetchResponse[T]) bool {
	if rsp.Pagination == nil {
		return true
	}
	return rsp.Pagination.Total <= len(rsp.Data)
}
