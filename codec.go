package facet

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Reserved query parameters. Option ids may not use them.
const (
	ParamSort = "sort"
	ParamPage = "page"
)

// Delimiter joins set members and tuple bounds on the wire.
const Delimiter = ","

func isReservedParam(key string) bool {
	return key == ParamSort || key == ParamPage
}

// Encode serializes values to a URL query string with one parameter per active filter:
//
//	text   make=toyota
//	set    bodyType=sedan,suv      members are query-escaped before joining
//	range  price=0,3000000         an open bound is left empty: price=,500
//	date   listedOn=2024-05-01     spans: listedOn=2024-05-01,2024-05-31
//
// Parameters are sorted by key.
func Encode(values Values) string {
	return encodeValues(values).Encode()
}

func encodeValues(values Values) url.Values {
	q := url.Values{}
	for id, value := range values.entries {
		q.Set(id, encodeValue(value))
	}
	return q
}

func encodeValue(value Value) string {
	switch v := value.(type) {
	case Set:
		return strings.Join(lo.Map(v, func(item string, _ int) string {
			return url.QueryEscape(item)
		}), Delimiter)
	default:
		return value.String()
	}
}

// Decode parses a query string produced by Encode. Parameters the schema does
// not declare, reserved parameters and values that do not fit the declared type
// are dropped; Decode never fails.
func Decode(query string, schema *Schema) Values {
	q, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return DecodeValues(q, schema)
}

// DecodeValues is Decode for already parsed parameters.
func DecodeValues(q url.Values, schema *Schema) Values {
	values := NewValues(schema)
	for key, raws := range q {
		if isReservedParam(key) {
			continue
		}
		opt := schema.Option(key)
		if opt == nil {
			continue
		}
		raws = lo.Filter(raws, func(s string, _ int) bool { return s != "" })
		if len(raws) == 0 {
			continue
		}
		raw, ok := decodeRaw(opt, raws)
		if !ok {
			continue
		}
		values = values.Update(key, raw)
	}
	return values
}

// decodeRaw parses the wire form strictly; Normalize then applies the store rules.
func decodeRaw(opt *FilterOption, raws []string) (any, bool) {
	switch opt.Type {
	case TypeCheckbox, TypeMultiselect:
		var items []string
		for _, raw := range raws {
			for _, part := range strings.Split(raw, Delimiter) {
				item, err := url.QueryUnescape(part)
				if err != nil {
					continue
				}
				items = append(items, item)
			}
		}
		return items, true

	case TypeRange, TypeNumber:
		return decodeRange(raws[0])

	case TypeDate:
		return decodeDate(raws[0])

	default:
		return raws[0], true
	}
}

func decodeRange(raw string) (any, bool) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) == 1 {
		f, ok := parseFloat(parts[0])
		return f, ok
	}
	if len(parts) != 2 {
		return nil, false
	}
	bounds := [2]float64{math.Inf(-1), math.Inf(1)}
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, ok := parseFloat(part)
		if !ok {
			return nil, false
		}
		bounds[i] = f
	}
	return Range{Min: bounds[0], Max: bounds[1]}, true
}

func decodeDate(raw string) (any, bool) {
	parts := strings.Split(raw, Delimiter)
	if len(parts) > 2 {
		return nil, false
	}
	days := make([]time.Time, 0, len(parts))
	for _, part := range parts {
		t, err := time.Parse(DateLayout, strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		days = append(days, t)
	}
	if len(days) == 1 {
		return Day(days[0]), true
	}
	return DateSpan(days[0], days[1]), true
}

// Query is the full URL state of a listing page.
type Query struct {
	Values Values
	Sort   string
	Page   int
}

// EncodeQuery serializes q. The default sort and the first page are omitted.
func EncodeQuery(q Query) string {
	params := encodeValues(q.Values)
	if q.Sort != "" && q.Sort != q.Values.schema.defaultSort() {
		params.Set(ParamSort, q.Sort)
	}
	if q.Page > 1 {
		params.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return params.Encode()
}

// DecodeQuery parses the URL state of a listing page. Unknown sort keys and
// invalid pages are dropped.
func DecodeQuery(query string, schema *Schema) Query {
	params, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return DecodeQueryValues(params, schema)
}

func DecodeQueryValues(params url.Values, schema *Schema) Query {
	q := Query{Values: DecodeValues(params, schema)}
	if sort := params.Get(ParamSort); schema.HasSort(sort) {
		q.Sort = sort
	}
	if page, err := strconv.Atoi(params.Get(ParamPage)); err == nil && page > 1 {
		q.Page = page
	}
	return q
}

func (s *Schema) defaultSort() string {
	if s == nil {
		return ""
	}
	return s.DefaultSort
}
