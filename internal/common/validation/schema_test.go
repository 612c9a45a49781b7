package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"message"},
		"properties": map[string]interface{}{
			"message":    map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 2000},
			"session_id": map[string]interface{}{"type": "string"},
		},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name        string
		document    interface{}
		valid       bool
		failedField string
	}{
		{
			name:     "valid message",
			document: map[string]interface{}{"message": "show me laptops"},
			valid:    true,
		},
		{
			name:        "missing message",
			document:    map[string]interface{}{"session_id": "abc"},
			valid:       false,
			failedField: "message",
		},
		{
			name:        "empty message",
			document:    map[string]interface{}{"message": ""},
			valid:       false,
			failedField: "message",
		},
		{
			name:        "wrong type",
			document:    map[string]interface{}{"message": 42},
			valid:       false,
			failedField: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput(tt.document, chatSchema())
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.True(t, result.HasErrors(tt.failedField), "errors: %v", result.GetErrorMessages())
				assert.NotEmpty(t, result.GetErrorsForField(tt.failedField))
			}
		})
	}
}

func TestValidateInput_NilSchema(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{"anything": true}, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("chat.message.resolve"))
	assert.Error(t, ValidateActivityNaming("resolve-chat-message"))
	assert.Error(t, ValidateActivityNaming("Chat.Message.Resolve"))
}
