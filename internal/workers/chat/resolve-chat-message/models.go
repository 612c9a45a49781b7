package resolvechatmessage

import "shop-assistant/internal/models"

type Input struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	Response     string           `json:"response"`
	Products     []models.Product `json:"products"`
	Intent       models.Intent    `json:"intent"`
	Category     string           `json:"category,omitempty"`
	SessionID    string           `json:"sessionId"`
	FallbackUsed bool             `json:"fallbackUsed"`
}
