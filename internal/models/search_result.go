// internal/models/search_result.go
package models

// SearchResult is the pipeline output. Response and Products are the
// caller-facing payload; the remaining fields describe how it was produced.
type SearchResult struct {
	Response     string            `json:"response"`
	Products     []Product         `json:"products"`
	Intent       Intent            `json:"intent"`
	Entities     ExtractedEntities `json:"entities"`
	Category     string            `json:"category,omitempty"`
	FallbackUsed bool              `json:"fallbackUsed"`
}
