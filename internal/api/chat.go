package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/validation"
	"shop-assistant/internal/models"

	"github.com/google/uuid"
)

// maxChatBody bounds the request body read by /chat/message.
const maxChatBody = 64 << 10

type chatHandler struct {
	engine  *assistant.Engine
	catalog catalog.Querier
	schema  map[string]interface{}
	logger  logger.Logger
	newID   func() string
}

func newSessionID() string {
	return uuid.NewString()
}

// Message handles POST /chat/message. Sessions are not stored; a supplied
// session_id is echoed and a missing one is minted.
func (h *chatHandler) Message(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChatBody))
	if err != nil {
		writeError(w, errors.NewInvalidChatMessageError("request body could not be read: "+err.Error()))
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, errors.NewInvalidChatMessageError("request body is not a JSON object: "+err.Error()))
		return
	}
	if raw == nil {
		writeError(w, errors.NewInvalidChatMessageError("request body is not a JSON object"))
		return
	}

	result, err := validation.ValidateInput(raw, h.schema)
	if err != nil {
		writeError(w, errors.NewInternalError(err))
		return
	}
	if !result.Valid {
		writeError(w, errors.NewInputValidationError(result.GetErrorMessages()))
		return
	}

	var req models.ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, errors.NewInvalidChatMessageError("request body does not match the chat request: "+err.Error()))
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = h.newID()
	}

	res, err := h.engine.Resolve(r.Context(), req.Message, h.catalog)
	if err != nil {
		h.logger.Error("chat resolution failed", map[string]interface{}{
			"sessionId": sessionID,
			"error":     err.Error(),
		})
		writeError(w, catalogError(err))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{
		Response:  res.Response,
		Products:  res.Products,
		SessionID: sessionID,
		Intent:    res.Intent,
	})
}

// catalogError keeps a typed backend error and classifies anything else as a
// failed catalog query.
func catalogError(err error) error {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return errors.NewCatalogQueryFailedError(string(models.QueryTypeFilter), err)
}
