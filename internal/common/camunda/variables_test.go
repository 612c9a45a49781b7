package camunda

import (
	"testing"

	"shop-assistant/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messageSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"message"},
	"properties": map[string]interface{}{
		"message": map[string]interface{}{"type": "string", "minLength": 1},
	},
}

type messageVars struct {
	Message string `json:"message"`
}

func TestDecodeVariables(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		want      string
		wantCode  errors.ErrorCode
	}{
		{name: "valid", variables: `{"message":"hi","extra":1}`, want: "hi"},
		{name: "empty document", variables: "", wantCode: errors.ErrCodeInputValidation},
		{name: "null document", variables: "null", wantCode: errors.ErrCodeInputValidation},
		{name: "not an object", variables: `["hi"]`, wantCode: errors.ErrCodeInputValidation},
		{name: "wrong type", variables: `{"message":42}`, wantCode: errors.ErrCodeInputValidation},
		{name: "empty message", variables: `{"message":""}`, wantCode: errors.ErrCodeInputValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out messageVars
			err := DecodeVariables(tt.variables, messageSchema, &out)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, string(tt.wantCode), ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Message)
		})
	}
}

func TestDecodeVariables_NilSchemaAcceptsAnyObject(t *testing.T) {
	var out messageVars
	require.NoError(t, DecodeVariables(`{"message":"x"}`, nil, &out))
	assert.Equal(t, "x", out.Message)
}
