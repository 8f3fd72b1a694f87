package gormfilter

import (
	"github.com/pkg/errors"
)

// ComplexityLimits bounds what a filter map may ask of the database.
// A zero value means no limit for that metric.
type ComplexityLimits struct {
	MaxTotalFields int // field conditions across the whole map
	MaxOrBranches  int // branches of a single Or
}

// ComplexityResult is the measured complexity of a filter map.
type ComplexityResult struct {
	TotalFields int
	OrBranches  int
}

// DefaultLimits allows one condition per filter of the largest listing schema with headroom
// for multi-field search.
var DefaultLimits = &ComplexityLimits{
	MaxTotalFields: 24,
	MaxOrBranches:  8,
}

// CheckComplexity returns an error describing the first exceeded limit.
// A nil limits disables the check.
func CheckComplexity(filterMap map[string]any, limits *ComplexityLimits) error {
	if limits == nil {
		return nil
	}
	result := CalculateComplexity(filterMap)
	if limits.MaxTotalFields > 0 && result.TotalFields > limits.MaxTotalFields {
		return errors.Errorf("filter field count %d exceeds limit %d", result.TotalFields, limits.MaxTotalFields)
	}
	if limits.MaxOrBranches > 0 && result.OrBranches > limits.MaxOrBranches {
		return errors.Errorf("filter Or branches %d exceeds limit %d", result.OrBranches, limits.MaxOrBranches)
	}
	return nil
}

func CalculateComplexity(filterMap map[string]any) *ComplexityResult {
	result := &ComplexityResult{}
	measure(filterMap, result)
	return result
}

func measure(m map[string]any, result *ComplexityResult) {
	for key, value := range m {
		switch key {
		case "And", "Or":
			list, ok := value.([]any)
			if !ok {
				continue
			}
			if key == "Or" && len(list) > result.OrBranches {
				result.OrBranches = len(list)
			}
			for _, item := range list {
				if sub, ok := item.(map[string]any); ok {
					measure(sub, result)
				}
			}
		default:
			if _, ok := value.(map[string]any); ok {
				result.TotalFields++
			}
		}
	}
}
