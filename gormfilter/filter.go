// Package gormfilter applies facet operator filter maps (see facet.ToFilterMap) to gorm queries,
// giving listings the same semantics server side as the in-memory pipeline.
package gormfilter

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Option func(*options)

type options struct {
	limits *ComplexityLimits
}

// WithComplexityLimits rejects filter maps exceeding limits.
func WithComplexityLimits(limits *ComplexityLimits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

// Scope returns a gorm scope narrowing the query to rows matching filterMap.
// Errors are added to the db so that the query fails on execution.
func Scope(filterMap map[string]any, opts ...Option) func(db *gorm.DB) *gorm.DB {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return func(db *gorm.DB) *gorm.DB {
		if db == nil {
			return nil
		}
		fdb, err := addFilter(db, filterMap, o)
		if err != nil {
			db.AddError(err)
			return db
		}
		return fdb
	}
}

func addFilter(db *gorm.DB, filterMap map[string]any, o *options) (*gorm.DB, error) {
	if len(filterMap) == 0 {
		return db, nil
	}
	if err := CheckComplexity(filterMap, o.limits); err != nil {
		return nil, err
	}

	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema with db")
	}

	expr, err := buildFilterExpr(stmt, filterMap)
	if err != nil {
		return nil, err
	}
	if expr != nil {
		db = db.Where(expr)
	}
	return db, nil
}

func buildFilterExpr(stmt *gorm.Statement, filterMap map[string]any) (clause.Expression, error) {
	var exprs []clause.Expression

	keys := lo.Keys(filterMap)
	sort.Strings(keys)

	for _, key := range keys {
		value := filterMap[key]
		if value == nil {
			continue
		}

		switch key {
		case "And", "Or":
			filters, ok := value.([]any)
			if !ok {
				return nil, errors.Errorf("invalid %s filter format", strings.ToUpper(key))
			}
			var subExprs []clause.Expression
			for _, f := range filters {
				filterData, ok := f.(map[string]any)
				if !ok {
					return nil, errors.Errorf("invalid filter in %s array", strings.ToUpper(key))
				}
				expr, err := buildFilterExpr(stmt, filterData)
				if err != nil {
					return nil, err
				}
				if expr != nil {
					subExprs = append(subExprs, expr)
				}
			}
			if len(subExprs) == 0 {
				continue
			}
			if key == "And" {
				exprs = append(exprs, clause.And(subExprs...))
			} else {
				exprs = append(exprs, clause.Or(subExprs...))
			}

		default:
			filterData, ok := value.(map[string]any)
			if !ok {
				return nil, errors.Errorf("invalid filter format for field %s", key)
			}
			expr, err := buildFieldExpr(stmt, key, filterData)
			if err != nil {
				return nil, err
			}
			if expr != nil {
				exprs = append(exprs, expr)
			}
		}
	}

	return combineExprs(exprs...), nil
}

func buildFieldExpr(stmt *gorm.Statement, fieldName string, filter map[string]any) (clause.Expression, error) {
	field, ok := stmt.Schema.FieldsByName[fieldName]
	if !ok {
		return nil, errors.Errorf("missing field %q in schema", fieldName)
	}

	fold, _ := filter["Fold"].(bool)

	var column any = clause.Column{Table: stmt.Table, Name: field.DBName}
	if fold {
		column = clause.Expr{SQL: fmt.Sprintf("LOWER(%s)", stmt.Quote(column))}
	}

	ops := lo.Keys(filter)
	sort.Strings(ops)

	var exprs []clause.Expression
	for _, op := range ops {
		value := filter[op]
		if value == nil || op == "Fold" {
			continue
		}

		switch op {
		case "Eq":
			exprs = append(exprs, clause.Eq{Column: column, Value: foldValue(value, fold)})

		case "In":
			arr, ok := value.([]any)
			if !ok {
				return nil, errors.Errorf("invalid IN values for field %q", fieldName)
			}
			exprs = append(exprs, clause.IN{Column: column, Values: lo.Map(arr, func(v any, _ int) any {
				return foldValue(v, fold)
			})})

		case "Gt":
			exprs = append(exprs, clause.Gt{Column: column, Value: value})
		case "Gte":
			exprs = append(exprs, clause.Gte{Column: column, Value: value})
		case "Lt":
			exprs = append(exprs, clause.Lt{Column: column, Value: value})
		case "Lte":
			exprs = append(exprs, clause.Lte{Column: column, Value: value})

		case "Contains":
			str, ok := value.(string)
			if !ok {
				return nil, errors.Errorf("invalid CONTAINS value for field %q", fieldName)
			}
			if fold {
				str = strings.ToLower(str)
			}
			exprs = append(exprs, clause.Like{Column: column, Value: "%" + escapeLike(str) + "%"})

		default:
			return nil, errors.Errorf("unknown operator %s for field %q", op, fieldName)
		}
	}

	return combineExprs(exprs...), nil
}

// foldValue lower-cases strings compared case-insensitively.
func foldValue(value any, fold bool) any {
	if str, ok := value.(string); ok && fold {
		return strings.ToLower(strings.TrimSpace(str))
	}
	return value
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}

func combineExprs(exprs ...clause.Expression) clause.Expression {
	switch len(exprs) {
	case 0:
		return nil
	case 1:
		return exprs[0]
	default:
		return clause.And(exprs...)
	}
}
