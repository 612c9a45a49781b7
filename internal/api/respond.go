package api

import (
	"encoding/json"
	"net/http"

	"shop-assistant/internal/common/errors"
)

type errorBody struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Meta    map[string]interface{} `json:"metadata,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with the status mapped from err's code. Unknown errors
// become 500 INTERNAL_ERROR.
func writeError(w http.ResponseWriter, err error) {
	stdErr := errors.AsStandardError(err)
	writeJSON(w, errors.HTTPStatus(stdErr.Code), errorBody{
		Error:   string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
		Meta:    stdErr.Metadata,
	})
}
