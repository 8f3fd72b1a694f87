package facet

import (
	"maps"
	"slices"
)

// Values holds the active filter selections for one schema.
//
// A key is present if and only if its filter is active: every mutation goes
// through Normalize, and a sentinel deletes the key instead of storing it.
// Values is immutable; mutations return a new Values and leave the receiver intact.
type Values struct {
	schema  *Schema
	entries map[string]Value
}

// NewValues returns an empty store for schema.
func NewValues(schema *Schema) Values {
	return Values{schema: schema}
}

func (v Values) Schema() *Schema { return v.schema }

// Update normalizes raw for the option id and stores it, or removes id when raw is a sentinel.
// Ids unknown to the schema leave the store unchanged.
func (v Values) Update(id string, raw any) Values {
	opt := v.schema.Option(id)
	if opt == nil {
		return v
	}
	value, ok := Normalize(opt, raw)
	if !ok {
		return v.Clear(id)
	}
	if current, exists := v.entries[id]; exists && EqualValue(current, value) {
		return v
	}
	entries := v.clone()
	entries[id] = value
	return Values{schema: v.schema, entries: entries}
}

// Clear removes id.
func (v Values) Clear(id string) Values {
	if _, ok := v.entries[id]; !ok {
		return v
	}
	entries := v.clone()
	delete(entries, id)
	return Values{schema: v.schema, entries: entries}
}

// ClearAll returns an empty store bound to the same schema.
func (v Values) ClearAll() Values {
	return NewValues(v.schema)
}

// Count is the number of active filters.
func (v Values) Count() int {
	return len(v.entries)
}

func (v Values) Get(id string) (Value, bool) {
	value, ok := v.entries[id]
	return value, ok
}

// IDs returns the active filter ids in schema display order; ids the schema
// does not declare come last, sorted.
func (v Values) IDs() []string {
	ids := make([]string, 0, len(v.entries))
	seen := make(map[string]bool, len(v.entries))
	for _, opt := range v.schema.Options() {
		if _, ok := v.entries[opt.ID]; ok {
			ids = append(ids, opt.ID)
			seen[opt.ID] = true
		}
	}
	rest := make([]string, 0)
	for id := range v.entries {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

// Map returns a copy of the active entries.
func (v Values) Map() map[string]Value {
	return v.clone()
}

// Equal reports whether both stores hold the same active filters.
func (v Values) Equal(other Values) bool {
	return maps.EqualFunc(v.entries, other.entries, EqualValue)
}

func (v Values) clone() map[string]Value {
	entries := make(map[string]Value, len(v.entries)+1)
	maps.Copy(entries, v.entries)
	return entries
}
