// Package gormlisting serves filtered, sorted and paginated listings from a gorm database.
package gormlisting

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/theplant/facet"
	"github.com/theplant/facet/gormfilter"
)

type Option func(*options)

type options struct {
	limits         facet.Limits
	complexity     *gormfilter.ComplexityLimits
	primaryOrderBy []facet.Order
	logger         *zap.Logger
}

func WithLimits(limits facet.Limits) Option {
	return func(o *options) { o.limits = limits }
}

func WithComplexityLimits(limits *gormfilter.ComplexityLimits) Option {
	return func(o *options) { o.complexity = limits }
}

// WithPrimaryOrderBy sets the tie-break orders appended to every sort.
// Defaults to the primary key ascending.
func WithPrimaryOrderBy(orders ...facet.Order) Option {
	return func(o *options) { o.primaryOrderBy = orders }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Fetcher implements facet.Fetcher over a gorm model T.
type Fetcher[T any] struct {
	db     *gorm.DB
	schema *facet.Schema
	opts   *options
}

var _ facet.Fetcher[any] = (*Fetcher[any])(nil)

func NewFetcher[T any](db *gorm.DB, schema *facet.Schema, opts ...Option) *Fetcher[T] {
	if db == nil {
		panic("db must be set")
	}
	if schema == nil {
		panic("schema must be set")
	}
	if err := checkModelType[T](); err != nil {
		panic(err)
	}
	o := &options{
		limits:     facet.DefaultLimits,
		complexity: gormfilter.DefaultLimits,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return &Fetcher[T]{db: db, schema: schema, opts: o}
}

func (f *Fetcher[T]) Fetch(ctx context.Context, req *facet.FetchRequest) (*facet.FetchResponse[T], error) {
	values := req.Query.Values
	if values.Schema() == nil {
		values = facet.NewValues(f.schema)
	}

	db := applyModel[T](f.db.WithContext(ctx))
	db = db.Scopes(gormfilter.Scope(facet.ToFilterMap(values, f.schema), gormfilter.WithComplexityLimits(f.opts.complexity)))

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count")
	}

	limit := f.opts.limits.Clamp(req.Limit)
	page := max(req.Query.Page, 1)
	pagination := facet.NewPagination(page, limit, int(total))

	nodes := []T{}
	offset := facet.Offset(page, limit)
	if offset < int(total) {
		orderBy, err := f.orderBy(db, req.Query.Sort)
		if err != nil {
			return nil, err
		}
		find := db.Session(&gorm.Session{}).Order(orderBy).Limit(limit)
		if offset > 0 {
			find = find.Offset(offset)
		}
		if err := find.Find(&nodes).Error; err != nil {
			return nil, errors.Wrap(err, "find")
		}
	}

	f.opts.logger.Debug("listing fetched",
		zap.String("entity", f.schema.Entity),
		zap.Int("filters", values.Count()),
		zap.Int64("total", total),
		zap.Int("page", page),
	)
	return &facet.FetchResponse[T]{Success: true, Data: nodes, Pagination: pagination}, nil
}

// orderBy maps the schema sort option to columns and appends the tie-break orders.
func (f *Fetcher[T]) orderBy(db *gorm.DB, sortKey string) (clause.OrderBy, error) {
	s, err := parseSchema(db, db.Statement.Model)
	if err != nil {
		return clause.OrderBy{}, err
	}

	var orders []facet.Order
	if opt, ok := f.schema.Sort(sortKey); ok {
		orders = append(orders, opt.Orders...)
	}
	primary := f.opts.primaryOrderBy
	if len(primary) == 0 && s.PrioritizedPrimaryField != nil {
		primary = []facet.Order{{Field: s.PrioritizedPrimaryField.Name, Direction: facet.OrderDirectionAsc}}
	}
	orders = facet.AppendPrimaryOrderBy(orders, primary...)

	columns := make([]clause.OrderByColumn, 0, len(orders))
	for _, order := range orders {
		field, ok := s.FieldsByName[facet.SmartPascalCase(order.Field)]
		if !ok {
			field, ok = s.FieldsByName[order.Field]
		}
		if !ok {
			return clause.OrderBy{}, errors.Errorf("missing field %q in schema", order.Field)
		}
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: field.DBName},
			Desc:   order.Direction == facet.OrderDirectionDesc,
		})
	}
	return clause.OrderBy{Columns: columns}, nil
}
