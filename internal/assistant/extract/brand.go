package extract

import "strings"

// DefaultBrands is the ordered brand roster; the first brand found in a
// message wins.
var DefaultBrands = []string{
	"apple", "samsung", "sony", "dell", "hp", "lenovo", "asus", "acer",
	"microsoft", "google", "oneplus", "xiaomi", "oppo", "vivo", "bose", "jbl",
	"sennheiser", "canon", "nikon", "fujifilm", "panasonic", "fitbit", "garmin",
	"fossil", "amazon", "philips", "tp-link", "lg", "whirlpool", "bosch",
	"nintendo", "logitech", "razer", "nike", "adidas", "puma", "levi's", "zara",
}

// BrandMatcher finds the first known brand mentioned in a message.
type BrandMatcher struct {
	brands []string
}

// NewBrandMatcher copies and lowercases brands. An empty list selects
// DefaultBrands.
func NewBrandMatcher(brands []string) *BrandMatcher {
	if len(brands) == 0 {
		brands = DefaultBrands
	}
	list := make([]string, 0, len(brands))
	for _, b := range brands {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" {
			list = append(list, b)
		}
	}
	return &BrandMatcher{brands: list}
}

// Match returns the first brand that is a substring of the lowercased
// message, or "".
func (m *BrandMatcher) Match(message string) string {
	lower := strings.ToLower(message)
	for _, b := range m.brands {
		if strings.Contains(lower, b) {
			return b
		}
	}
	return ""
}

// Brands returns a copy of the matcher's roster.
func (m *BrandMatcher) Brands() []string {
	return append([]string(nil), m.brands...)
}
