// internal/models/chat.go
package models

// ChatRequest is the body of POST /chat/message.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is returned by POST /chat/message. Products is omitted when empty.
type ChatResponse struct {
	Response  string    `json:"response"`
	Products  []Product `json:"products,omitempty"`
	SessionID string    `json:"session_id"`
	Intent    Intent    `json:"intent"`
}
