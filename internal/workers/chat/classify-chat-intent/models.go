package classifychatintent

import "shop-assistant/internal/models"

type Input struct {
	Message string `json:"message"`
}

// Output carries the classification only; no catalog query is made.
type Output struct {
	Intent   models.Intent            `json:"intent"`
	Entities models.ExtractedEntities `json:"entities"`
}
