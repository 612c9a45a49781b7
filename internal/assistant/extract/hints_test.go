package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"need a new smartphone", "Electronics"},
		{"iPad or a TABLET", "Electronics"},
		{"gaming laptop", "Computers"},
		{"laptop and camera bundle", "Computers"},
		{"camera with a laptop bag", "Computers"},
		{"bluetooth speaker", "Audio"},
		{"wireless earbuds", "Audio"},
		{"a new console", "Gaming"},
		{"mirrorless camera", "Cameras"},
		{"fitness watch", "Wearables"},
		{"smart home hub", "Smart Home"},
		{"headphone", "Electronics"}, // "phone" is declared first
		{"running shoes", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.expected, Category(tt.message))
		})
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t,
		[]string{"Electronics", "Computers", "Audio", "Gaming", "Cameras", "Wearables", "Smart Home"},
		Categories(),
	)
}

func TestBrand(t *testing.T) {
	tests := []struct {
		message  string
		expected string
	}{
		{"Apple MacBook", "apple"},
		{"samsung or apple phone", "apple"},
		{"Sony WH-1000XM5", "sony"},
		{"a TP-Link router", "tp-link"},
		{"Levi's jeans", "levi's"},
		{"generic charger", ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewBrandMatcher(nil).Match(tt.message))
		})
	}
}

func TestBrandMatcher_CustomRoster(t *testing.T) {
	m := NewBrandMatcher([]string{" Framework ", "", "Apple"})
	assert.Equal(t, []string{"framework", "apple"}, m.Brands())
	assert.Equal(t, "framework", m.Match("framework laptop vs apple"))
	assert.Equal(t, "", m.Match("samsung tv"))
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(DefaultAroundFactor, nil)

	got := e.Extract("Find me a Dell laptop under $1,200")
	assert.Equal(t, []string{"dell", "laptop", "200"}, got.Terms)
	assert.Equal(t, "Computers", got.Category)
	assert.Equal(t, "dell", got.Brand)
	if assert.NotNil(t, got.PriceRange) {
		assert.Nil(t, got.PriceRange.Min)
		assert.InDelta(t, 1200, *got.PriceRange.Max, 1e-9)
	}

	empty := e.Extract("")
	assert.Empty(t, empty.Terms)
	assert.Nil(t, empty.PriceRange)
	assert.Equal(t, "", empty.Category)
	assert.Equal(t, "", empty.Brand)
}
