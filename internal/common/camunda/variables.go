package camunda

import (
	"encoding/json"

	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/common/validation"
)

// DecodeVariables validates a job's variable document against schema and
// decodes it into out. An empty document is treated as {}.
func DecodeVariables(variables string, schema map[string]interface{}, out interface{}) error {
	if variables == "" {
		variables = "{}"
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return errors.NewInputValidationError([]string{"job variables are not a JSON object: " + err.Error()})
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	result, err := validation.ValidateInput(raw, schema)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !result.Valid {
		return errors.NewInputValidationError(result.GetErrorMessages())
	}

	if err := json.Unmarshal([]byte(variables), out); err != nil {
		return errors.NewInputValidationError([]string{err.Error()})
	}
	return nil
}

// ErrorCode reports the standard error code carried by err, for metric labels.
func ErrorCode(err error) string {
	return string(errors.AsStandardError(err).Code)
}
