package registry

// Default returns the built-in registry for the assistant's task types and
// HTTP request bodies.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: "2026-10-01",
		Activities: []Activity{
			{
				ID:                   "chat.message.resolve",
				DisplayName:          "Resolve Chat Message",
				Description:          "Classifies a shopper message, queries the catalog and selects a reply",
				Category:             "chat",
				Version:              "1.0.0",
				TaskType:             TaskResolveChatMessage,
				ImplementationStatus: "implemented",
				InputSchema: object([]interface{}{"message"}, map[string]interface{}{
					"message":   str(1, 2000),
					"sessionId": map[string]interface{}{"type": "string"},
				}),
				ErrorCodes: []string{"INVALID_CHAT_MESSAGE", "INPUT_VALIDATION_FAILED", "CATALOG_QUERY_FAILED", "CATALOG_TIMEOUT"},
				Timeout:    "10s",
				Retries:    3,
				Tags:       []string{"chat", "catalog"},
			},
			{
				ID:                   "chat.intent.classify",
				DisplayName:          "Classify Chat Intent",
				Description:          "Extracts entities and the intent of a shopper message without querying the catalog",
				Category:             "chat",
				Version:              "1.0.0",
				TaskType:             TaskClassifyChatIntent,
				ImplementationStatus: "implemented",
				InputSchema: object([]interface{}{"message"}, map[string]interface{}{
					"message": str(1, 2000),
				}),
				ErrorCodes: []string{"INVALID_CHAT_MESSAGE", "INPUT_VALIDATION_FAILED"},
				Timeout:    "5s",
				Retries:    0,
				Tags:       []string{"chat"},
			},
			{
				ID:                   "catalog.products.search",
				DisplayName:          "Search Products",
				Description:          "Runs a structured product search against the catalog",
				Category:             "catalog",
				Version:              "1.0.0",
				TaskType:             TaskSearchProducts,
				ImplementationStatus: "implemented",
				InputSchema: object(nil, map[string]interface{}{
					"query":    map[string]interface{}{"type": "string"},
					"category": map[string]interface{}{"type": "string"},
					"brand":    map[string]interface{}{"type": "string"},
					"minPrice": map[string]interface{}{"type": "number", "minimum": 0},
					"maxPrice": map[string]interface{}{"type": "number", "minimum": 0},
					"limit":    map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 100},
				}),
				ErrorCodes: []string{"INVALID_SEARCH_PARAMS", "CATALOG_QUERY_FAILED", "CATALOG_TIMEOUT"},
				Timeout:    "10s",
				Retries:    3,
				Tags:       []string{"catalog"},
			},
		},
		Requests: map[string]map[string]interface{}{
			RequestChatMessage: object([]interface{}{"message"}, map[string]interface{}{
				"message":    str(1, 2000),
				"session_id": map[string]interface{}{"type": "string"},
			}),
		},
	}
}

func object(required []interface{}, props map[string]interface{}) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(minLen, maxLen int) map[string]interface{} {
	return map[string]interface{}{"type": "string", "minLength": minLen, "maxLength": maxLen}
}
