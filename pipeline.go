package facet

import (
	"slices"
)

// Apply narrows records to those matching every active filter in values and
// sorts the result by the schema sort option named by sortKey.
//
// Filters compose with AND; a checkbox or multiselect filter matches when any of
// its chosen values does. Sorting is stable, so records with equal sort keys keep
// their input order and applying the same inputs twice yields the same slice.
// Apply never mutates records.
func Apply[T any](records []T, values Values, schema *Schema, sortKey string) []T {
	if schema == nil {
		schema = values.schema
	}
	filtered := Filter(records, values, schema)
	return Sort(filtered, schema, sortKey)
}

// Filter keeps the records matching every active filter, preserving order.
func Filter[T any](records []T, values Values, schema *Schema) []T {
	if schema == nil {
		schema = values.schema
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if MatchAll(values, schema, RecordOf(record)) {
			out = append(out, record)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records. Unknown keys fall back to the
// schema default sort; without one the input order is kept.
func Sort[T any](records []T, schema *Schema, sortKey string) []T {
	out := slices.Clone(records)
	if out == nil {
		out = []T{}
	}
	opt, ok := schema.Sort(sortKey)
	if !ok || len(opt.Orders) == 0 {
		return out
	}

	type keyed struct {
		record T
		view   Record
	}
	items := make([]keyed, len(out))
	for i, record := range out {
		items[i] = keyed{record: record, view: RecordOf(record)}
	}
	slices.SortStableFunc(items, func(a, b keyed) int {
		return compareRecords(a.view, b.view, opt.Orders)
	})
	for i, item := range items {
		out[i] = item.record
	}
	return out
}
