package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

var defaultParser = NewPriceParser(DefaultAroundFactor)

func TestPriceRange(t *testing.T) {
	tests := []struct {
		name    string
		message string
		min     *float64
		max     *float64
		rule    string
	}{
		{"under", "laptops under $500", nil, ptr(500), "upper_bound"},
		{"below", "Headphones below 99.99", nil, ptr(99.99), "upper_bound"},
		{"less than", "anything less than   $1,250.50?", nil, ptr(1250.50), "upper_bound"},
		{"dash", "$100-$200", ptr(100), ptr(200), "dash_range"},
		{"dash with spaces", "a tv 300 - 450 dollars", ptr(300), ptr(450), "dash_range"},
		{"dash reversed", "$900-$400", ptr(400), ptr(900), "dash_range"},
		{"between", "between $50 and $75", ptr(50), ptr(75), "between"},
		{"between reversed", "between 75 and 50", ptr(50), ptr(75), "between"},
		{"around", "around $300", ptr(240), ptr(360), "around"},
		{"about", "something about 1,000", ptr(800), ptr(1200), "around"},
		{"under beats dash", "under $100-$200", nil, ptr(100), "upper_bound"},
		{"dash beats between", "between 10 and 20 or 30-40", ptr(30), ptr(40), "dash_range"},
		{"case insensitive", "UNDER $80", nil, ptr(80), "upper_bound"},
	}

	p := NewPriceParser(DefaultAroundFactor)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rule := p.ParseRule(tt.message)
			require.NotNil(t, r)
			assert.Equal(t, tt.rule, rule)

			if tt.min == nil {
				assert.Nil(t, r.Min)
			} else {
				require.NotNil(t, r.Min)
				assert.InDelta(t, *tt.min, *r.Min, 1e-9)
			}
			require.NotNil(t, r.Max)
			assert.InDelta(t, *tt.max, *r.Max, 1e-9)
		})
	}
}

func TestPriceRange_NoMatch(t *testing.T) {
	for _, msg := range []string{
		"",
		"show me laptops",
		"under the sea",
		"around here",
		"4k monitor",
	} {
		assert.Nil(t, defaultParser.Parse(msg), msg)
	}
}

func TestPriceRange_MinNeverExceedsMax(t *testing.T) {
	for _, msg := range []string{"$5-$1", "between 9 and 2", "around 10", "about $0.50"} {
		r := defaultParser.Parse(msg)
		require.NotNil(t, r, msg)
		if r.Min != nil && r.Max != nil {
			assert.LessOrEqual(t, *r.Min, *r.Max, msg)
		}
	}
}

func TestNewPriceParser_Factor(t *testing.T) {
	r := NewPriceParser(0.1).Parse("around $200")
	require.NotNil(t, r)
	assert.InDelta(t, 180, *r.Min, 1e-9)
	assert.InDelta(t, 220, *r.Max, 1e-9)

	// out-of-range factors fall back to the default
	r = NewPriceParser(1.5).Parse("around $100")
	require.NotNil(t, r)
	assert.InDelta(t, 80, *r.Min, 1e-9)
	assert.InDelta(t, 120, *r.Max, 1e-9)
}

func BenchmarkPriceRange(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = defaultParser.Parse("looking for a camera between $1,000 and $1,500")
	}
}
