package facet

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Normalize converts a raw control value into the Value stored for opt.
// It returns false when raw is a sentinel ("", nil, "all", an empty list)
// or cannot be interpreted, in which case the filter must be inactive.
func Normalize(opt *FilterOption, raw any) (Value, bool) {
	if opt == nil || isSentinel(raw) {
		return nil, false
	}

	switch opt.Type {
	case TypeRange, TypeNumber:
		return normalizeRange(opt, raw)
	case TypeCheckbox, TypeMultiselect:
		return normalizeSet(raw)
	case TypeDate:
		return normalizeDate(raw)
	default:
		return normalizeText(raw)
	}
}

func normalizeText(raw any) (Value, bool) {
	if isList(raw) {
		parts := lo.Filter(toStrings(raw), func(s string, _ int) bool { return !isSentinel(s) })
		if len(parts) == 0 {
			return nil, false
		}
		raw = parts[0]
	}
	s, ok := scalarString(raw)
	if !ok || isSentinel(s) {
		return nil, false
	}
	return Text(strings.TrimSpace(s)), true
}

func normalizeSet(raw any) (Value, bool) {
	items := toStrings(raw)
	if !isList(raw) && len(items) == 1 && strings.Contains(items[0], ",") {
		items = strings.Split(items[0], ",")
	}
	items = lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, !isSentinel(s)
	})
	items = lo.UniqBy(items, strings.ToLower)
	if len(items) == 0 {
		return nil, false
	}
	slices.Sort(items)
	return Set(items), true
}

// normalizeRange accepts Range, two-element lists of numbers or numeric strings,
// and "min,max" strings. Malformed or missing bounds fall back to the declared
// Min and Max; without a declaration the bound stays open.
func normalizeRange(opt *FilterOption, raw any) (Value, bool) {
	lower, upper := math.Inf(-1), math.Inf(1)
	if opt.Min != nil {
		lower = *opt.Min
	}
	if opt.Max != nil {
		upper = *opt.Max
	}

	var bounds [2]any
	switch v := raw.(type) {
	case Range:
		bounds = [2]any{v.Min, v.Max}
	case *Range:
		bounds = [2]any{v.Min, v.Max}
	default:
		var items []any
		if isList(raw) {
			items = listItems(raw)
		} else if s, ok := asString(raw); ok && strings.Contains(s, ",") {
			items = lo.ToAnySlice(strings.SplitN(s, ",", 2))
		} else {
			// a single number selects exactly that value
			items = []any{raw, raw}
		}
		if len(items) > 0 {
			bounds[0] = items[0]
		}
		if len(items) > 1 {
			bounds[1] = items[1]
		}
	}

	minV, maxV := boundOr(bounds[0], lower), boundOr(bounds[1], upper)
	if minV > maxV {
		minV, maxV = maxV, minV
	}

	r := Range{Min: minV, Max: maxV}
	if !r.HasMin() && !r.HasMax() {
		return nil, false
	}
	return r, true
}

func boundOr(v any, fallback float64) float64 {
	if f, ok := toFloat(v); ok && !math.IsInf(f, 0) {
		return f
	}
	return fallback
}

func listItems(raw any) []any {
	v, _ := deref(raw)
	switch items := v.(type) {
	case []any:
		return items
	case []float64:
		return lo.ToAnySlice(items)
	case []int:
		return lo.ToAnySlice(items)
	case []string:
		return lo.ToAnySlice(items)
	case [2]float64:
		return []any{items[0], items[1]}
	case [2]int:
		return []any{items[0], items[1]}
	case [2]string:
		return []any{items[0], items[1]}
	}
	return lo.ToAnySlice(toStrings(v))
}

// normalizeDate accepts a time, a Date, a date string, or a two-element list / "from,to" string for a span.
func normalizeDate(raw any) (Value, bool) {
	switch v := raw.(type) {
	case Date:
		if v.From.IsZero() || v.To.IsZero() {
			return nil, false
		}
		return DateSpan(v.From, v.To), true
	case *Date:
		if v == nil {
			return nil, false
		}
		return normalizeDate(*v)
	}

	var items []any
	if isList(raw) {
		items = listItems(raw)
	} else if s, ok := asString(raw); ok {
		items = lo.ToAnySlice(strings.SplitN(s, ",", 2))
	} else {
		items = []any{raw}
	}

	times := make([]time.Time, 0, 2)
	for _, item := range lo.Slice(items, 0, 2) {
		if isSentinel(item) {
			continue
		}
		t, ok := toTime(item)
		if !ok {
			return nil, false
		}
		times = append(times, t)
	}

	switch len(times) {
	case 1:
		return Day(times[0]), true
	case 2:
		return DateSpan(times[0], times[1]), true
	}
	return nil, false
}
