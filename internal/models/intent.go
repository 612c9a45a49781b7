// internal/models/intent.go
package models

// Intent is the single resolved purpose of a chat message.
type Intent string

const (
	IntentFindOrSearch   Intent = "find_or_search"
	IntentPriceCompare   Intent = "price_compare"
	IntentRecommend      Intent = "recommend"
	IntentCategoryBrowse Intent = "category_browse"
	IntentGreeting       Intent = "greeting"
	IntentFallback       Intent = "fallback"
)

// AllIntents lists every intent in classifier priority order.
var AllIntents = []Intent{
	IntentFindOrSearch,
	IntentPriceCompare,
	IntentRecommend,
	IntentCategoryBrowse,
	IntentGreeting,
	IntentFallback,
}

// Valid reports whether i belongs to the closed intent set.
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}

// PriceRange holds optional bounds; Min <= Max whenever both are set.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ExtractedEntities is the per-message entity bundle. Empty strings and a nil
// PriceRange mean "none".
type ExtractedEntities struct {
	Terms      []string    `json:"terms"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Category   string      `json:"category,omitempty"`
	Brand      string      `json:"brand,omitempty"`
}
