package facet

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// FilterType is the kind of control a FilterOption renders and the shape of its value.
type FilterType string

const (
	TypeSearch      FilterType = "search"
	TypeSelect      FilterType = "select"
	TypeRange       FilterType = "range"
	TypeCheckbox    FilterType = "checkbox"
	TypeMultiselect FilterType = "multiselect"
	TypeRadio       FilterType = "radio"
	TypeDate        FilterType = "date"
	TypeNumber      FilterType = "number"
)

// Known reports whether t is one of the declared filter types.
func (t FilterType) Known() bool {
	switch t {
	case TypeSearch, TypeSelect, TypeRange, TypeCheckbox, TypeMultiselect, TypeRadio, TypeDate, TypeNumber:
		return true
	}
	return false
}

// Choice is one selectable value of a select, radio, checkbox or multiselect option.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count,omitempty"`
}

// FilterOption describes one filter control.
type FilterOption struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Type        FilterType `json:"type"`
	Choices     []Choice   `json:"options,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Step        *float64   `json:"step,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
	Required    bool       `json:"required,omitempty"`

	// Field is the record field the option reads. Defaults to ID.
	Field string `json:"field,omitempty"`
	// SearchFields are the text fields a search option scans. Defaults to [Field].
	SearchFields []string `json:"searchFields,omitempty"`
	// Param is the name used by remote listing services. Defaults to Field.
	Param string `json:"param,omitempty"`

	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// FieldName returns the record field backing the option.
func (o *FilterOption) FieldName() string {
	if o.Field != "" {
		return o.Field
	}
	return o.ID
}

// TextFields returns the fields scanned by text matching.
func (o *FilterOption) TextFields() []string {
	if len(o.SearchFields) > 0 {
		return o.SearchFields
	}
	return []string{o.FieldName()}
}

func (o *FilterOption) ParamName() string {
	if o.Param != "" {
		return o.Param
	}
	return o.FieldName()
}

// Choice looks up a choice by value, ignoring case.
func (o *FilterOption) Choice(value string) (Choice, bool) {
	for _, c := range o.Choices {
		if equalFold(c.Value, value) {
			return c, true
		}
	}
	return Choice{}, false
}

// FilterSection groups options for display.
type FilterSection struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Collapsible bool            `json:"collapsible"`
	DefaultOpen bool            `json:"defaultOpen"`
	Priority    int             `json:"priority"`
	Options     []*FilterOption `json:"filters"`
}

// Schema is the static description of the filters available for one entity type.
// A schema must not be modified once it is in use.
type Schema struct {
	Entity      string           `json:"entity"`
	Sections    []*FilterSection `json:"sections"`
	Sorts       []SortOption     `json:"sorts,omitempty"`
	DefaultSort string           `json:"defaultSort,omitempty"`
}

// Option returns the option with the given id, or nil.
func (s *Schema) Option(id string) *FilterOption {
	if s == nil {
		return nil
	}
	for _, section := range s.Sections {
		for _, opt := range section.Options {
			if opt.ID == id {
				return opt
			}
		}
	}
	return nil
}

func (s *Schema) Section(id string) *FilterSection {
	if s == nil {
		return nil
	}
	section, _ := lo.Find(s.Sections, func(section *FilterSection) bool {
		return section.ID == id
	})
	return section
}

// OrderedSections returns the sections sorted by Priority; equal priorities keep declaration order.
func (s *Schema) OrderedSections() []*FilterSection {
	if s == nil {
		return nil
	}
	sections := slices.Clone(s.Sections)
	slices.SortStableFunc(sections, func(a, b *FilterSection) int {
		return a.Priority - b.Priority
	})
	return sections
}

// Options returns every option in display order.
func (s *Schema) Options() []*FilterOption {
	return lo.FlatMap(s.OrderedSections(), func(section *FilterSection, _ int) []*FilterOption {
		return section.Options
	})
}

// Sort returns the sort option for key, falling back to DefaultSort.
func (s *Schema) Sort(key string) (SortOption, bool) {
	if s == nil {
		return SortOption{}, false
	}
	for _, candidate := range []string{key, s.DefaultSort} {
		if candidate == "" {
			continue
		}
		if opt, ok := lo.Find(s.Sorts, func(opt SortOption) bool { return opt.Key == candidate }); ok {
			return opt, true
		}
	}
	return SortOption{}, false
}

// HasSort reports whether key names one of the schema's sort options.
func (s *Schema) HasSort(key string) bool {
	if s == nil {
		return false
	}
	return lo.ContainsBy(s.Sorts, func(opt SortOption) bool { return opt.Key == key })
}

// Validate checks the schema for authoring mistakes.
func (s *Schema) Validate() error {
	if s == nil {
		return errors.New("schema is nil")
	}
	if s.Entity == "" {
		return errors.New("schema entity is required")
	}

	ids := map[string]bool{}
	for _, section := range s.Sections {
		for _, opt := range section.Options {
			if opt.ID == "" {
				return errors.Errorf("section %q has an option without id", section.ID)
			}
			if isReservedParam(opt.ID) {
				return errors.Errorf("option id %q is reserved", opt.ID)
			}
			if ids[opt.ID] {
				return errors.Errorf("duplicated option id %q", opt.ID)
			}
			ids[opt.ID] = true

			switch opt.Type {
			case TypeSelect, TypeRadio, TypeCheckbox, TypeMultiselect:
				if len(opt.Choices) == 0 {
					return errors.Errorf("option %q of type %s has no choices", opt.ID, opt.Type)
				}
			case TypeRange, TypeNumber:
				if opt.Min != nil && opt.Max != nil && *opt.Min > *opt.Max {
					return errors.Errorf("option %q has min %v greater than max %v", opt.ID, *opt.Min, *opt.Max)
				}
			}
		}
	}

	keys := map[string]bool{}
	for _, sort := range s.Sorts {
		if keys[sort.Key] {
			return errors.Errorf("duplicated sort key %q", sort.Key)
		}
		keys[sort.Key] = true
		if len(sort.Orders) == 0 {
			return errors.Errorf("sort %q has no orders", sort.Key)
		}
	}
	if s.DefaultSort != "" && !keys[s.DefaultSort] {
		return errors.Errorf("default sort %q is not declared", s.DefaultSort)
	}
	return nil
}

// MustValidate panics when Validate fails. Intended for package level schema declarations.
func MustValidate(s *Schema) *Schema {
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}
