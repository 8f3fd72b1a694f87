package facet

import (
	"strings"
	"unicode"
)

// acronyms are rendered upper case by SmartPascalCase so that field names
// such as "vehicleId" resolve to Go struct fields named "VehicleID".
var acronyms = map[string]bool{
	"id":   true,
	"url":  true,
	"uri":  true,
	"api":  true,
	"vin":  true,
	"sku":  true,
	"uuid": true,
	"ip":   true,
	"json": true,
	"html": true,
	"gps":  true,
	"abs":  true,
	"suv":  true,
	"cc":   true,
	"kw":   true,
	"hp":   true,
}

// Capitalize upper-cases the first letter without acronym handling.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SmartPascalCase converts a camelCase, snake_case or kebab-case field name to
// the PascalCase name of the matching Go struct field, upper-casing known acronyms.
func SmartPascalCase(s string) string {
	if s == "" {
		return s
	}

	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
			continue
		case i > 0 && unicode.IsUpper(r):
			flush()
		}
		current.WriteRune(r)
	}
	flush()

	var result strings.Builder
	for _, word := range words {
		if acronyms[word] {
			result.WriteString(strings.ToUpper(word))
			continue
		}
		result.WriteString(Capitalize(word))
	}
	return result.String()
}
