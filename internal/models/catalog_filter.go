// internal/models/catalog_filter.go
package models

// OrderKey selects the ordering a catalog applies to a filtered result.
type OrderKey string

const (
	// OrderDefault leaves ordering to the catalog (ascending id in every adapter here).
	OrderDefault    OrderKey = ""
	OrderRatingDesc OrderKey = "rating_desc"
	OrderPriceAsc   OrderKey = "price_asc"
)

// CatalogFilter is a declarative predicate set plus ordering and a result bound.
// Zero values mean "no constraint".
type CatalogFilter struct {
	Category      string   `json:"category,omitempty"`
	BrandContains string   `json:"brandContains,omitempty"`
	PriceMin      *float64 `json:"priceMin,omitempty"`
	PriceMax      *float64 `json:"priceMax,omitempty"`
	RatingMin     *float64 `json:"ratingMin,omitempty"`
	InStockOnly   bool     `json:"inStockOnly,omitempty"`
	// Terms are ANDed; each one matches name, description or features.
	Terms []string `json:"terms,omitempty"`
	// Keyword is one more substring, matched against name, description,
	// brand, category or features.
	Keyword string   `json:"keyword,omitempty"`
	OrderBy OrderKey `json:"orderBy,omitempty"`
	Limit   int      `json:"limit"`
}

// Float returns a pointer to v, for the optional numeric bounds above.
func Float(v float64) *float64 {
	return &v
}
