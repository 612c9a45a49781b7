// internal/models/query_types.go
package models

// QueryType names a catalog operation; used for metric labels and error details.
type QueryType string

const (
	QueryTypeFilter      QueryType = "filter"
	QueryTypeCategories  QueryType = "categories"
	QueryTypeBrands      QueryType = "brands"
	QueryTypeProductByID QueryType = "product_by_id"
)
