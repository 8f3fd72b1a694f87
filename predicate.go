package facet

import (
	"github.com/samber/lo"
)

// Match reports whether record satisfies the active filter opt with value.
//
// A record that lacks the backing field never matches. Unknown filter types and
// values whose shape does not fit the option fall back to a case-insensitive
// substring match so that schema additions degrade instead of failing.
func Match(opt *FilterOption, value Value, record Record) bool {
	if opt == nil || value == nil {
		return true
	}
	if record == nil {
		return false
	}

	switch opt.Type {
	case TypeSearch:
		if text, ok := value.(Text); ok {
			return matchSearch(opt.TextFields(), string(text), record)
		}
	case TypeSelect, TypeRadio:
		if text, ok := value.(Text); ok {
			return matchEqual(opt.FieldName(), string(text), record)
		}
	case TypeCheckbox, TypeMultiselect:
		if set, ok := value.(Set); ok {
			return matchSet(opt.FieldName(), set, record)
		}
	case TypeRange, TypeNumber:
		if r, ok := value.(Range); ok {
			return matchRange(opt.FieldName(), r, record)
		}
	case TypeDate:
		if d, ok := value.(Date); ok {
			return matchDate(opt.FieldName(), d, record)
		}
	}
	return matchSearch(opt.TextFields(), value.String(), record)
}

// MatchAll reports whether record satisfies every active filter in values.
func MatchAll(values Values, schema *Schema, record Record) bool {
	for id, value := range values.entries {
		opt := schema.Option(id)
		if opt == nil {
			continue
		}
		if !Match(opt, value, record) {
			return false
		}
	}
	return true
}

func matchSearch(fields []string, query string, record Record) bool {
	return lo.SomeBy(fields, func(field string) bool {
		v, ok := record.Field(field)
		if !ok {
			return false
		}
		return lo.SomeBy(toStrings(v), func(s string) bool {
			return containsFold(s, query)
		})
	})
}

func matchEqual(field, want string, record Record) bool {
	v, ok := record.Field(field)
	if !ok {
		return false
	}
	return lo.SomeBy(toStrings(v), func(s string) bool {
		return equalFold(s, want)
	})
}

// matchSet is membership for scalar fields and non-empty intersection for list fields.
func matchSet(field string, set Set, record Record) bool {
	v, ok := record.Field(field)
	if !ok {
		return false
	}
	return lo.SomeBy(toStrings(v), set.Has)
}

func matchRange(field string, r Range, record Record) bool {
	v, ok := record.Field(field)
	if !ok {
		return false
	}
	n, ok := toFloat(v)
	if !ok {
		return false
	}
	return r.Contains(n)
}

func matchDate(field string, d Date, record Record) bool {
	v, ok := record.Field(field)
	if !ok {
		return false
	}
	t, ok := toTime(v)
	if !ok {
		return false
	}
	return d.Contains(t)
}
