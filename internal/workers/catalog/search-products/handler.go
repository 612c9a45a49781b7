package searchproducts

import (
	"context"
	stderrors "errors"
	"strings"

	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/camunda"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"
	"shop-assistant/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = registry.TaskSearchProducts

type Handler struct {
	config   *Config
	catalog  catalog.Querier
	schema   map[string]interface{}
	failures *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, store catalog.Querier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:   config,
		catalog:  store,
		schema:   registry.Default().InputSchema(TaskType),
		failures: errors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := camunda.DecodeVariables(job.Variables, h.schema, &input); err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	filter, err := h.buildFilter(input)
	if err != nil {
		return nil, err
	}

	products, err := h.catalog.Query(ctx, filter)
	if err != nil {
		var stdErr *errors.StandardError
		switch {
		case stderrors.As(err, &stdErr):
			return nil, stdErr
		case ctx.Err() != nil:
			return nil, errors.NewCatalogTimeoutError(string(models.QueryTypeFilter), err)
		default:
			return nil, errors.NewCatalogQueryFailedError(string(models.QueryTypeFilter), err)
		}
	}
	if products == nil {
		products = []models.Product{}
	}

	h.logger.Info("products searched", map[string]interface{}{
		"query":    input.Query,
		"category": input.Category,
		"brand":    input.Brand,
		"count":    len(products),
	})

	return &Output{Products: products, Count: len(products)}, nil
}

func (h *Handler) buildFilter(input *Input) (models.CatalogFilter, error) {
	f := models.CatalogFilter{
		Category:      strings.TrimSpace(input.Category),
		BrandContains: strings.TrimSpace(input.Brand),
		PriceMin:      input.MinPrice,
		PriceMax:      input.MaxPrice,
		Keyword:       strings.TrimSpace(input.Query),
		Limit:         input.Limit,
	}
	if f.Limit <= 0 {
		f.Limit = h.config.DefaultLimit
	}
	if f.PriceMin != nil && *f.PriceMin < 0 {
		return f, errors.NewInvalidSearchParamsError("minPrice", "must be a non-negative number")
	}
	if f.PriceMax != nil && *f.PriceMax < 0 {
		return f, errors.NewInvalidSearchParamsError("maxPrice", "must be a non-negative number")
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return f, errors.NewInvalidSearchParamsError("minPrice", "must not exceed maxPrice")
	}
	return f, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(ctx, client, job, errors.NewInternalError(err))
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, camunda.ErrorCode(err)).Inc()
	h.failures.HandleJobError(ctx, client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
