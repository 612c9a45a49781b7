package resolvechatmessage

import (
	"context"
	stderrors "errors"

	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/camunda"
	"shop-assistant/internal/common/errors"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/models"
	"shop-assistant/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = registry.TaskResolveChatMessage

type Handler struct {
	config   *Config
	engine   *assistant.Engine
	catalog  catalog.Querier
	schema   map[string]interface{}
	failures *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, engine *assistant.Engine, store catalog.Querier, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:   config,
		engine:   engine,
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
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	res, err := h.engine.Resolve(ctx, input.Message, h.catalog)
	if err != nil {
		var stdErr *errors.StandardError
		if stderrors.As(err, &stdErr) {
			return nil, stdErr
		}
		if ctx.Err() != nil {
			return nil, errors.NewCatalogTimeoutError(string(models.QueryTypeFilter), err)
		}
		return nil, errors.NewCatalogQueryFailedError(string(models.QueryTypeFilter), err)
	}

	h.logger.Info("chat message resolved", map[string]interface{}{
		"sessionId":    sessionID,
		"intent":       res.Intent,
		"productCount": len(res.Products),
		"fallbackUsed": res.FallbackUsed,
	})

	return &Output{
		Response:     res.Response,
		Products:     res.Products,
		Intent:       res.Intent,
		Category:     res.Category,
		SessionID:    sessionID,
		FallbackUsed: res.FallbackUsed,
	}, nil
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
