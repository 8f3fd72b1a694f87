package gormfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateComplexity(t *testing.T) {
	tests := []struct {
		name     string
		filter   map[string]any
		expected *ComplexityResult
	}{
		{
			name:     "empty filter",
			filter:   map[string]any{},
			expected: &ComplexityResult{},
		},
		{
			name: "simple field filter",
			filter: map[string]any{
				"Make": map[string]any{"Eq": "toyota"},
			},
			expected: &ComplexityResult{TotalFields: 1},
		},
		{
			name: "fields inside And",
			filter: map[string]any{"And": []any{
				map[string]any{"Make": map[string]any{"Eq": "toyota", "Fold": true}},
				map[string]any{"Price": map[string]any{"Gte": 0, "Lte": 100}},
			}},
			expected: &ComplexityResult{TotalFields: 2},
		},
		{
			name: "search across fields",
			filter: map[string]any{"And": []any{
				map[string]any{"Or": []any{
					map[string]any{"Title": map[string]any{"Contains": "v8"}},
					map[string]any{"Make": map[string]any{"Contains": "v8"}},
					map[string]any{"Description": map[string]any{"Contains": "v8"}},
				}},
				map[string]any{"Price": map[string]any{"Gte": 0}},
			}},
			expected: &ComplexityResult{TotalFields: 4, OrBranches: 3},
		},
		{
			name: "malformed list is ignored",
			filter: map[string]any{
				"Or": "not a list",
			},
			expected: &ComplexityResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateComplexity(tt.filter))
		})
	}
}

func TestCheckComplexity(t *testing.T) {
	filter := map[string]any{"Or": []any{
		map[string]any{"Title": map[string]any{"Contains": "v8"}},
		map[string]any{"Make": map[string]any{"Contains": "v8"}},
		map[string]any{"Model": map[string]any{"Contains": "v8"}},
	}}

	require.NoError(t, CheckComplexity(filter, nil))
	require.NoError(t, CheckComplexity(filter, DefaultLimits))
	require.NoError(t, CheckComplexity(filter, &ComplexityLimits{}))
	require.ErrorContains(t, CheckComplexity(filter, &ComplexityLimits{MaxTotalFields: 2}), "filter field count 3 exceeds limit 2")
	require.ErrorContains(t, CheckComplexity(filter, &ComplexityLimits{MaxOrBranches: 2}), "filter Or branches 3 exceeds limit 2")
}
