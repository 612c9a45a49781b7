package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog/catalogtest"
	"shop-assistant/internal/catalog/memory"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/models"
	"shop-assistant/pkg/registry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func testAssistantConfig() config.AssistantConfig {
	return config.AssistantConfig{
		ResultLimit:             6,
		AroundFactor:            0.2,
		SearchFallbackMinRating: 4.5,
		RecommendMinRating:      4.5,
		GeneralMinRating:        4.7,
	}
}

func newTestServer(t *testing.T, deps Deps) *httptest.Server {
	log := logger.NewTestLogger(t)
	if deps.Engine == nil {
		deps.Engine = assistant.NewEngine(testAssistantConfig(), log, nil)
	}
	if deps.Catalog == nil {
		deps.Catalog = memory.New(catalogtest.Products())
	}
	deps.Logger = log

	srv := httptest.NewServer(NewRouter(deps))
	t.Cleanup(srv.Close)
	return srv
}

func postChat(t *testing.T, srv *httptest.Server, body string) (*http.Response, []byte) {
	resp, err := http.Post(srv.URL+"/chat/message", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func getJSON(t *testing.T, url string, dst interface{}) int {
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

func productIDs(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// failingCatalog fails every query.
type failingCatalog struct{ *memory.Store }

func (failingCatalog) Query(context.Context, models.CatalogFilter) ([]models.Product, error) {
	return nil, errors.New("connection refused")
}

// ==========================
// Chat Endpoint Tests
// ==========================

func TestChatMessage_MintsSession(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, body := postChat(t, srv, `{"message":"I need a refrigerator"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.ChatResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, models.IntentFindOrSearch, out.Intent)
	assert.Len(t, out.Products, 6)
	assert.Contains(t, out.Response, "popular alternatives")

	_, err := uuid.Parse(out.SessionID)
	assert.NoError(t, err)
}

func TestChatMessage_EchoesSession(t *testing.T) {
	srv := newTestServer(t, Deps{})

	_, body := postChat(t, srv, `{"message":"recommend a laptop","session_id":"abc-123"}`)

	var out models.ChatResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "abc-123", out.SessionID)
	assert.Equal(t, models.IntentRecommend, out.Intent)
	assert.Equal(t, []int64{3, 4}, productIDs(out.Products))
}

func TestChatMessage_GreetingOmitsProducts(t *testing.T) {
	srv := newTestServer(t, Deps{})

	resp, body := postChat(t, srv, `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), `"products"`)
	assert.Contains(t, string(body), `"intent":"greeting"`)
}

func TestChatMessage_InvalidRequests(t *testing.T) {
	srv := newTestServer(t, Deps{})

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"malformed json", `{"message":`, "INVALID_CHAT_MESSAGE"},
		{"not an object", `["hello"]`, "INVALID_CHAT_MESSAGE"},
		{"missing message", `{"session_id":"x"}`, "INPUT_VALIDATION_FAILED"},
		{"empty message", `{"message":""}`, "INPUT_VALIDATION_FAILED"},
		{"wrong type", `{"message":42}`, "INPUT_VALIDATION_FAILED"},
		{"null body", `null`, "INVALID_CHAT_MESSAGE"},
		{"empty body", ``, "INVALID_CHAT_MESSAGE"},
		{"oversized body", `{"message":"` + strings.Repeat("a", 70<<10) + `"}`, "INVALID_CHAT_MESSAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postChat(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var e errorBody
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, tt.wantCode, e.Error)
		})
	}
}

func TestChatMessage_BodyNotAChatRequest(t *testing.T) {
	// a looser schema lets a numeric session_id through validation
	reg := &registry.ActivityRegistry{
		Requests: map[string]map[string]interface{}{
			registry.RequestChatMessage: {"type": "object", "required": []interface{}{"message"}},
		},
	}
	srv := newTestServer(t, Deps{Registry: reg})

	resp, body := postChat(t, srv, `{"message":"hello","session_id":7}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "INVALID_CHAT_MESSAGE", e.Error)
}

func TestChatMessage_CatalogFailure(t *testing.T) {
	srv := newTestServer(t, Deps{Catalog: failingCatalog{memory.New(nil)}})

	resp, body := postChat(t, srv, `{"message":"find a laptop"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "CATALOG_QUERY_FAILED", e.Error)
}

// ==========================
// Product Endpoint Tests
// ==========================

func TestProductsSearch(t *testing.T) {
	srv := newTestServer(t, Deps{})

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"free text", "q=galaxy", []int64{2, 12}},
		{"free text matches brand", "q=apple", []int64{1, 3, 10}},
		{"free text matches category", "q=AUDIO", []int64{5, 6}},
		{"brand and max price", "brand=apple&max_price=1000", []int64{1, 10}},
		{"category exact ignoring case", "category=gaming", []int64{7, 8}},
		{"price window", "min_price=300&max_price=400", []int64{5, 8, 10}},
		{"limit", "limit=3", []int64{1, 2, 3}},
		{"limit capped", "limit=500", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{"no match", "q=refrigerator", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var products []models.Product
			status := getJSON(t, srv.URL+"/products/search?"+tt.query, &products)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, productIDs(products))
		})
	}
}

func TestProductsSearch_InvalidParams(t *testing.T) {
	srv := newTestServer(t, Deps{})

	for _, q := range []string{"min_price=abc", "max_price=-1", "limit=0", "limit=ten", "min_price=500&max_price=100"} {
		var e errorBody
		status := getJSON(t, srv.URL+"/products/search?"+q, &e)
		assert.Equal(t, http.StatusBadRequest, status, q)
		assert.Equal(t, "INVALID_SEARCH_PARAMS", e.Error, q)
	}
}

func TestProductsBrowse(t *testing.T) {
	srv := newTestServer(t, Deps{})

	var categories []string
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/products/categories", &categories))
	assert.Equal(t, []string{"Audio", "Cameras", "Computers", "Electronics", "Gaming", "Smart Home", "Wearables"}, categories)

	var brands []string
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/products/brands", &brands))
	assert.Contains(t, brands, "Nintendo")

	var featured []models.Product
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/products/featured", &featured))
	assert.Equal(t, []int64{3, 9, 1, 7, 5, 8, 2, 10}, productIDs(featured))

	var trending []models.Product
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/products/trending", &trending))
	assert.Equal(t, []int64{3, 9, 1, 7, 5, 10, 11}, productIDs(trending))
}

func TestProductsGet(t *testing.T) {
	srv := newTestServer(t, Deps{})

	var p models.Product
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/products/9", &p))
	assert.Equal(t, "EOS R6 Mark II", p.Name)

	var e errorBody
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/products/999", &e))
	assert.Equal(t, "PRODUCT_NOT_FOUND", e.Error)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/products/abc", &e))
	assert.Equal(t, "INVALID_SEARCH_PARAMS", e.Error)
}

// ==========================
// Health Endpoint Tests
// ==========================

func TestHealthAndReady(t *testing.T) {
	srv := newTestServer(t, Deps{Checks: map[string]ReadinessCheck{
		"catalog": func(context.Context) error { return nil },
	}})

	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", nil))
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/ready", nil))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestReady_FailingCheck(t *testing.T) {
	srv := newTestServer(t, Deps{Checks: map[string]ReadinessCheck{
		"redis": func(context.Context) error { return errors.New("dial tcp: refused") },
	}})

	var out struct {
		Status string            `json:"status"`
		Failed map[string]string `json:"failed"`
	}
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/ready", &out))
	assert.Equal(t, "not ready", out.Status)
	assert.Contains(t, out.Failed, "redis")
}
