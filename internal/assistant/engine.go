// Package assistant resolves a free-text chat message into a canned reply and
// a bounded product list.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shop-assistant/internal/assistant/extract"
	"shop-assistant/internal/assistant/intent"
	"shop-assistant/internal/assistant/response"
	"shop-assistant/internal/assistant/retrieval"
	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/common/observability"
	"shop-assistant/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrRetrievalFailed wraps any catalog error surfaced by Resolve.
var ErrRetrievalFailed = errors.New("RETRIEVAL_FAILED")

// Engine holds only tables built at construction; Resolve is safe for
// concurrent use.
type Engine struct {
	extractor  *extract.Extractor
	classifier *intent.Classifier
	builder    *retrieval.Builder
	logger     logger.Logger
	obs        *observability.Observability
}

// NewEngine builds an engine from the assistant tunables. obs may be nil.
func NewEngine(cfg config.AssistantConfig, log logger.Logger, obs *observability.Observability) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Engine{
		extractor:  extract.NewExtractor(cfg.AroundFactor, cfg.Brands),
		classifier: intent.NewClassifier(intent.DefaultRules),
		builder: retrieval.NewBuilder(retrieval.Settings{
			Limit:                   cfg.ResultLimit,
			SearchFallbackMinRating: cfg.SearchFallbackMinRating,
			RecommendMinRating:      cfg.RecommendMinRating,
			GeneralMinRating:        cfg.GeneralMinRating,
		}),
		logger: log.WithFields(map[string]interface{}{"component": "assistant"}),
		obs:    obs,
	}
}

// Settings returns the effective retrieval settings after defaults.
func (e *Engine) Settings() retrieval.Settings {
	return e.builder.Settings()
}

// Brands returns the brand roster in match order.
func (e *Engine) Brands() []string {
	return e.extractor.Brands()
}

// Classify runs extraction and intent resolution without touching the catalog.
func (e *Engine) Classify(message string) (models.Intent, models.ExtractedEntities) {
	return e.classifier.Classify(message), e.extractor.Extract(message)
}

// Resolve runs the full pipeline for message against q. The only error path
// is a failing catalog query, returned wrapped in ErrRetrievalFailed.
func (e *Engine) Resolve(ctx context.Context, message string, q catalog.Querier) (*models.SearchResult, error) {
	start := time.Now()
	ctx, span := e.obs.StartSpan(ctx, "assistant.resolve")
	defer span.End()

	entities := e.extractor.Extract(message)
	in, keyword := e.classifier.Explain(message)

	var browse string
	if in == models.IntentCategoryBrowse {
		browse = e.classifier.BrowseCategory(message)
	}

	plan := e.builder.Build(in, entities, browse)
	span.SetAttributes(
		attribute.String("chat.intent", string(in)),
		attribute.Int("chat.terms", len(entities.Terms)),
	)

	outcome, err := retrieval.Retrieve(ctx, q, plan)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "retrieval failed")
		e.logger.Warn("catalog retrieval failed", map[string]interface{}{
			"intent": string(in),
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrRetrievalFailed, err)
	}

	result := &models.SearchResult{
		Response:     response.Select(in, len(outcome.Products), outcome.FallbackUsed, plan.Category),
		Products:     outcome.Products,
		Intent:       in,
		Entities:     entities,
		Category:     plan.Category,
		FallbackUsed: outcome.FallbackUsed,
	}

	metrics.ChatMessagesResolved.WithLabelValues(string(in)).Inc()
	if outcome.FallbackUsed {
		metrics.ChatFallbacks.Inc()
	}
	e.obs.RecordResolution(ctx, string(in), outcome.FallbackUsed, time.Since(start))

	e.logger.Debug("message resolved", map[string]interface{}{
		"intent":       string(in),
		"keyword":      keyword,
		"terms":        entities.Terms,
		"category":     plan.Category,
		"brand":        entities.Brand,
		"products":     len(outcome.Products),
		"fallbackUsed": outcome.FallbackUsed,
		"duration":     time.Since(start).String(),
	})

	return result, nil
}
