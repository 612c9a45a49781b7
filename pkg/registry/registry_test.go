package registry

import (
	"os"
	"path/filepath"
	"testing"

	"shop-assistant/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.Validate())

	for _, taskType := range []string{TaskResolveChatMessage, TaskClassifyChatIntent, TaskSearchProducts} {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotNil(t, a.InputSchema)
	}

	_, ok := reg.Find("unknown")
	assert.False(t, ok)
}

func TestDefault_ChatSchemaValidates(t *testing.T) {
	schema := Default().RequestSchema(RequestChatMessage)
	require.NotNil(t, schema)

	ok, err := validation.ValidateInput(map[string]interface{}{"message": "hi", "session_id": "s1"}, schema)
	require.NoError(t, err)
	assert.True(t, ok.Valid)

	bad, err := validation.ValidateInput(map[string]interface{}{"session_id": "s1"}, schema)
	require.NoError(t, err)
	assert.False(t, bad.Valid)
}

func TestSaveAndLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, Default().Save(path))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 3)
	assert.NotNil(t, reg.RequestSchema(RequestChatMessage))

	a, ok := reg.Find(TaskSearchProducts)
	require.True(t, ok)
	assert.Equal(t, "catalog.products.search", a.ID)
}

func TestLoadRegistry_RejectsDuplicateTaskType(t *testing.T) {
	reg := Default()
	reg.Activities[1].TaskType = reg.Activities[0].TaskType

	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, reg.Save(path))

	_, err := LoadRegistry(path)
	assert.ErrorContains(t, err, "declared by both")
}

func TestLoadOrDefault(t *testing.T) {
	reg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Version, reg.Version)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}
