// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"shop-assistant/internal/common/validation"
)

// Task types served by the workers.
const (
	TaskResolveChatMessage = "resolve-chat-message"
	TaskClassifyChatIntent = "classify-chat-intent"
	TaskSearchProducts     = "search-products"
)

// RequestChatMessage names the POST /chat/message body schema.
const RequestChatMessage = "chat-message"

// LoadRegistry reads a registry JSON file and validates it.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// LoadOrDefault returns the registry at path, or Default when path is empty.
func LoadOrDefault(path string) (*ActivityRegistry, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadRegistry(path)
}

// Save writes the registry as indented JSON.
func (r *ActivityRegistry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Validate checks activity naming and task type uniqueness.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]string, len(r.Activities))
	for _, a := range r.Activities {
		if err := validation.ValidateActivityNaming(a.ID); err != nil {
			return err
		}
		if a.TaskType == "" {
			return fmt.Errorf("activity %s has no taskType", a.ID)
		}
		if other, dup := seen[a.TaskType]; dup {
			return fmt.Errorf("taskType %s declared by both %s and %s", a.TaskType, other, a.ID)
		}
		seen[a.TaskType] = a.ID
	}
	return nil
}

// Find returns the activity bound to taskType.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// InputSchema returns the input schema for taskType, or nil.
func (r *ActivityRegistry) InputSchema(taskType string) map[string]interface{} {
	if a, ok := r.Find(taskType); ok {
		return a.InputSchema
	}
	return nil
}

// RequestSchema returns the HTTP body schema registered under name, or nil.
func (r *ActivityRegistry) RequestSchema(name string) map[string]interface{} {
	return r.Requests[name]
}
