package facet

import (
	"cmp"
	"strings"

	"github.com/samber/lo"
)

type OrderDirection string

const (
	OrderDirectionAsc  OrderDirection = "ASC"
	OrderDirectionDesc OrderDirection = "DESC"
)

// Order sorts by one record field.
type Order struct {
	Field     string         `json:"field"`
	Direction OrderDirection `json:"direction"`
}

// SortOption is a named sort the listing page offers, e.g. "price_asc".
type SortOption struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Orders []Order `json:"orders"`
}

// AppendPrimaryOrderBy appends the orders in primaryOrderBy whose fields are not already ordered by.
func AppendPrimaryOrderBy(orderBy []Order, primaryOrderBy ...Order) []Order {
	if len(primaryOrderBy) == 0 {
		return orderBy
	}
	fields := lo.SliceToMap(orderBy, func(order Order) (string, bool) {
		return order.Field, true
	})
	for _, primary := range primaryOrderBy {
		if !fields[primary.Field] {
			orderBy = append(orderBy, primary)
		}
	}
	return orderBy
}

// compareRecords orders a and b by orders. Missing values sort last in either direction.
func compareRecords(a, b Record, orders []Order) int {
	for _, order := range orders {
		av, aok := a.Field(order.Field)
		bv, bok := b.Field(order.Field)
		switch {
		case !aok && !bok:
			continue
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(av, bv)
		if c == 0 {
			continue
		}
		if order.Direction == OrderDirectionDesc {
			return -c
		}
		return c
	}
	return 0
}

// compareValues compares numbers numerically, times chronologically and
// anything else as case-insensitive text.
func compareValues(a, b any) int {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
	}
	if at, ok := toTime(a); ok {
		if bt, ok := toTime(b); ok {
			return at.Compare(bt)
		}
	}
	as, _ := scalarString(a)
	bs, _ := scalarString(b)
	return cmp.Compare(strings.ToLower(as), strings.ToLower(bs))
}
