package facet

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// LabelDateLayout is the display format of dates in filter chips.
const LabelDateLayout = "Jan 2, 2006"

var labelPrinter = message.NewPrinter(language.English)

// Label renders value of the filter id for display in a chip.
// It never fails: values that cannot be resolved against the schema are shown raw.
func Label(id string, value Value, schema *Schema) string {
	if value == nil {
		return ""
	}
	opt := schema.Option(id)
	if opt == nil {
		return value.String()
	}

	switch v := value.(type) {
	case Text:
		switch opt.Type {
		case TypeSelect, TypeRadio:
			return choiceLabel(opt, string(v))
		case TypeSearch:
			return `"` + string(v) + `"`
		}
		return string(v)

	case Set:
		return strings.Join(lo.Map(v, func(item string, _ int) string {
			return choiceLabel(opt, item)
		}), ", ")

	case Range:
		return rangeLabel(opt, v)

	case Date:
		if v.IsSpan() {
			return v.From.Format(LabelDateLayout) + " - " + v.To.Format(LabelDateLayout)
		}
		return v.From.Format(LabelDateLayout)
	}
	return value.String()
}

func choiceLabel(opt *FilterOption, value string) string {
	if c, ok := opt.Choice(value); ok && c.Label != "" {
		return c.Label
	}
	return value
}

func rangeLabel(opt *FilterOption, r Range) string {
	switch {
	case r.HasMin() && r.HasMax() && r.Min == r.Max:
		return formatAmount(opt, r.Min)
	case r.HasMin() && r.HasMax():
		return formatAmount(opt, r.Min) + " - " + formatAmount(opt, r.Max)
	case r.HasMin():
		return "From " + formatAmount(opt, r.Min)
	default:
		return "Up to " + formatAmount(opt, r.Max)
	}
}

// formatAmount groups thousands and applies the option prefix and suffix, e.g. "KSh 3,000,000".
func formatAmount(opt *FilterOption, f float64) string {
	return opt.Prefix + labelPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2))) + opt.Suffix
}

// Chip is one removable summary of an active filter.
type Chip struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Chips labels every active filter in schema display order.
func Chips(values Values, schema *Schema) []Chip {
	if schema == nil {
		schema = values.schema
	}
	return lo.Map(values.IDs(), func(id string, _ int) Chip {
		value, _ := values.Get(id)
		title := id
		if opt := schema.Option(id); opt != nil && opt.Label != "" {
			title = opt.Label
		}
		return Chip{ID: id, Title: title, Text: Label(id, value, schema)}
	})
}
