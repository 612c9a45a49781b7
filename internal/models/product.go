// internal/models/product.go
package models

// Product is a catalog record. Features doubles as the product's tag list
// for free-text matching.
type Product struct {
	ID          int64    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       float64  `json:"price" yaml:"price"`
	Category    string   `json:"category" yaml:"category"`
	Brand       string   `json:"brand" yaml:"brand"`
	ImageURL    string   `json:"image_url" yaml:"image_url"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Stock       int      `json:"stock" yaml:"stock"`
	Features    []string `json:"features" yaml:"features"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}
