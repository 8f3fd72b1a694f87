package facet

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// dateLayouts are tried in order when a string is parsed as a date.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// isSentinel reports whether raw means "no selection".
func isSentinel(raw any) bool {
	if raw == nil {
		return true
	}
	if s, ok := asString(raw); ok {
		s = strings.TrimSpace(s)
		return s == "" || strings.EqualFold(s, "all")
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isSentinel(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// deref follows pointers and interfaces until it reaches a concrete value.
func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	return rv.Interface(), true
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case Text:
		return string(s), true
	case fmt.Stringer:
		if _, isTime := v.(time.Time); isTime {
			return "", false
		}
		return s.String(), true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// toFloat converts numeric values and numeric strings to float64.
func toFloat(v any) (float64, bool) {
	v, ok := deref(v)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case bool, time.Time:
		return 0, false
	}
	if s, ok := asString(v); ok {
		return parseFloat(s)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), !math.IsNaN(rv.Float())
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toTime converts time values and date strings to time.Time.
func toTime(v any) (time.Time, bool) {
	v, ok := deref(v)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case datatypes.Date:
		tt := time.Time(t)
		return tt, !tt.IsZero()
	case Date:
		return t.From, !t.From.IsZero()
	}
	if s, ok := asString(v); ok {
		return parseTime(s)
	}
	return time.Time{}, false
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toStrings flattens a scalar or a slice into its string form.
func toStrings(v any) []string {
	v, ok := deref(v)
	if !ok {
		return nil
	}
	switch s := v.(type) {
	case []string:
		return s
	case Set:
		return s
	case []byte:
		return []string{string(s)}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, toStrings(rv.Index(i).Interface())...)
		}
		return out
	}
	if s, ok := scalarString(v); ok {
		return []string{s}
	}
	return nil
}

// isList reports whether v is a slice or array other than a byte slice.
func isList(v any) bool {
	v, ok := deref(v)
	if !ok {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	kind := reflect.ValueOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

// scalarString renders a scalar value as text.
func scalarString(v any) (string, bool) {
	v, ok := deref(v)
	if !ok {
		return "", false
	}
	if s, ok := asString(v); ok {
		return s, true
	}
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339), true
	case datatypes.Date:
		return time.Time(t).Format(DateLayout), true
	case bool:
		return strconv.FormatBool(t), true
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}
	return fmt.Sprint(v), true
}
