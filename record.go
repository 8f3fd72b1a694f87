package facet

import (
	"reflect"
	"strings"
	"sync"

	"github.com/sunfmin/reflectutils"
)

// Record is a flat entity record whose fields are read by name.
type Record interface {
	Field(name string) (any, bool)
}

// RecordFunc adapts a function to Record.
type RecordFunc func(name string) (any, bool)

func (f RecordFunc) Field(name string) (any, bool) { return f(name) }

// MapRecord is a record decoded from JSON or built by hand.
type MapRecord map[string]any

func (m MapRecord) Field(name string) (any, bool) {
	v, ok := m[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// RecordOf adapts v to Record. Maps are read by key, Records are returned as is,
// and structs are read by json tag name or by the SmartPascalCase of the field name.
func RecordOf(v any) Record {
	switch r := v.(type) {
	case Record:
		return r
	case map[string]any:
		return MapRecord(r)
	case nil:
		return MapRecord(nil)
	}
	return structRecord{v: v}
}

type structRecord struct {
	v any
}

func (r structRecord) Field(name string) (any, bool) {
	path := structFieldPath(reflect.TypeOf(r.v), name)
	if path == "" {
		return nil, false
	}
	value, err := reflectutils.Get(r.v, path)
	if err != nil {
		return nil, false
	}
	value, ok := deref(value)
	if !ok {
		return nil, false
	}
	return value, true
}

var fieldPathCache sync.Map // map[fieldPathKey]string

type fieldPathKey struct {
	typ  reflect.Type
	name string
}

// structFieldPath resolves a record field name to the dotted Go field path of typ.
func structFieldPath(typ reflect.Type, name string) string {
	if typ == nil {
		return ""
	}
	key := fieldPathKey{typ: typ, name: name}
	if cached, ok := fieldPathCache.Load(key); ok {
		return cached.(string)
	}

	var segments []string
	current := typ
	for _, segment := range strings.Split(name, ".") {
		for current != nil && current.Kind() == reflect.Pointer {
			current = current.Elem()
		}
		if current == nil || current.Kind() != reflect.Struct {
			segments = nil
			break
		}
		field, ok := lookupStructField(current, segment)
		if !ok {
			segments = nil
			break
		}
		segments = append(segments, field.Name)
		current = field.Type
	}

	path := strings.Join(segments, ".")
	fieldPathCache.Store(key, path)
	return path
}

func lookupStructField(typ reflect.Type, name string) (reflect.StructField, bool) {
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == name {
			return field, true
		}
	}
	if field, ok := typ.FieldByName(SmartPascalCase(name)); ok && field.IsExported() {
		return field, true
	}
	return reflect.StructField{}, false
}
