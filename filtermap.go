package facet

import (
	"time"

	"github.com/samber/lo"
)

// ToFilterMap renders the active values as an operator filter map that server
// side filters (see package gormfilter) evaluate with the same semantics as Match:
//
//	{"And": [
//	  {"Make": {"Eq": "toyota", "Fold": true}},
//	  {"BodyType": {"In": ["sedan", "suv"], "Fold": true}},
//	  {"Price": {"Gte": 0, "Lte": 3000000}},
//	  {"Or": [{"Title": {"Contains": "v8", "Fold": true}}, {"Description": {...}}]},
//	]}
//
// Field keys are the SmartPascalCase of the option field. Active ids unknown to
// the schema are skipped. An empty store renders nil.
func ToFilterMap(values Values, schema *Schema) map[string]any {
	if schema == nil {
		schema = values.schema
	}
	var clauses []any
	for _, id := range values.IDs() {
		opt := schema.Option(id)
		if opt == nil {
			continue
		}
		value, _ := values.Get(id)
		if clause := optionFilterMap(opt, value); len(clause) > 0 {
			clauses = append(clauses, clause)
		}
	}
	filterMap := map[string]any{"And": clauses}
	PruneMap(filterMap)
	if len(filterMap) == 0 {
		return nil
	}
	return filterMap
}

func optionFilterMap(opt *FilterOption, value Value) map[string]any {
	field := SmartPascalCase(opt.FieldName())
	switch v := value.(type) {
	case Range:
		ops := map[string]any{}
		if v.HasMin() {
			ops["Gte"] = v.Min
		}
		if v.HasMax() {
			ops["Lte"] = v.Max
		}
		return map[string]any{field: ops}

	case Set:
		return map[string]any{field: map[string]any{
			"In":   lo.ToAnySlice([]string(v)),
			"Fold": true,
		}}

	case Date:
		return map[string]any{field: map[string]any{
			"Gte": v.From,
			"Lt":  v.To.Add(24 * time.Hour),
		}}

	case Text:
		if opt.Type == TypeSelect || opt.Type == TypeRadio {
			return map[string]any{field: map[string]any{"Eq": string(v), "Fold": true}}
		}
		return containsFilterMap(opt.TextFields(), string(v))
	}
	return containsFilterMap(opt.TextFields(), value.String())
}

func containsFilterMap(fields []string, text string) map[string]any {
	branches := lo.Map(fields, func(field string, _ int) any {
		return map[string]any{SmartPascalCase(field): map[string]any{"Contains": text, "Fold": true}}
	})
	if len(branches) == 1 {
		return branches[0].(map[string]any)
	}
	return map[string]any{"Or": branches}
}

// PruneMap recursively removes nil values, empty slices and empty nested maps.
func PruneMap(m map[string]any) {
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			delete(m, k)
		case map[string]any:
			PruneMap(t)
			if len(t) == 0 {
				delete(m, k)
			}
		case []any:
			kept := lo.Filter(t, func(item any, _ int) bool {
				if nested, ok := item.(map[string]any); ok {
					PruneMap(nested)
					return len(nested) > 0
				}
				return item != nil
			})
			if len(kept) == 0 {
				delete(m, k)
				continue
			}
			m[k] = kept
		}
	}
}

// Flatten renders the active values as the flat parameter object that remote
// listing services accept: option Param names map to scalars or lists, ranges
// become "min<Param>"/"max<Param>" pairs and date spans "<param>From"/"<param>To".
// Open range bounds are omitted.
func Flatten(values Values, schema *Schema) map[string]any {
	if schema == nil {
		schema = values.schema
	}
	params := map[string]any{}
	for _, id := range values.IDs() {
		opt := schema.Option(id)
		if opt == nil {
			continue
		}
		param := opt.ParamName()
		value, _ := values.Get(id)
		switch v := value.(type) {
		case Range:
			if v.HasMin() {
				params["min"+Capitalize(param)] = v.Min
			}
			if v.HasMax() {
				params["max"+Capitalize(param)] = v.Max
			}
		case Set:
			params[param] = []string(v)
		case Date:
			if v.IsSpan() {
				params[param+"From"] = v.From.Format(DateLayout)
				params[param+"To"] = v.To.Format(DateLayout)
			} else {
				params[param] = v.From.Format(DateLayout)
			}
		default:
			params[param] = value.String()
		}
	}
	return params
}
