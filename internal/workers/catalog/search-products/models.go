package searchproducts

import "shop-assistant/internal/models"

// Input mirrors the GET /products/search parameters. Query is one substring
// matched against name, description, brand, category and features.
type Input struct {
	Query    string   `json:"query,omitempty"`
	Category string   `json:"category,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

type Output struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}
