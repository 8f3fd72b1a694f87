package facet

import (
	"math"

	"github.com/samber/lo"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Limits bounds the page size requested by clients.
type Limits struct {
	Default int
	Max     int
}

// DefaultLimits matches the page size of the listing pages.
var DefaultLimits = Limits{Default: 12, Max: 100}

// EnsureLimits returns Limits with defaultLimit used when limit is unset or
// negative and maxLimit as the upper bound.
func EnsureLimits(defaultLimit, maxLimit int) Limits {
	if defaultLimit <= 0 {
		panic("defaultLimit must be greater than 0")
	}
	if maxLimit < defaultLimit {
		panic("maxLimit must be greater than or equal to defaultLimit")
	}
	return Limits{Default: defaultLimit, Max: maxLimit}
}

// Clamp applies the limits to limit.
func (l Limits) Clamp(limit int) int {
	if limit <= 0 {
		return l.Default
	}
	if limit > l.Max {
		return l.Max
	}
	return limit
}

// Offset returns the number of records skipped before page. Pages start at 1.
// Offsets beyond math.MaxInt saturate.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// NewPagination computes page metadata for total records.
func NewPagination(page, limit, total int) *Pagination {
	if page < 1 {
		page = 1
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// Paginate slices records to page. Pages past the end are empty.
func Paginate[T any](records []T, page, limit int) ([]T, *Pagination) {
	pagination := NewPagination(page, limit, len(records))
	if limit <= 0 || pagination.Page > pagination.TotalPages {
		return []T{}, pagination
	}
	offset := Offset(pagination.Page, limit)
	return lo.Subset(records, offset, uint(limit)), pagination
}
