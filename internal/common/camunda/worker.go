// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"sync"
	"time"

	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/metrics"
	"shop-assistant/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler completes or fails the job itself.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Manager opens job workers and closes them together on shutdown.
type Manager struct {
	client  zbc.Client
	logger  *zap.Logger
	obs     *observability.Observability
	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

// NewManager builds a manager. obs may be nil.
func NewManager(client zbc.Client, logger *zap.Logger, obs *observability.Observability) *Manager {
	return &Manager{
		client:  client,
		logger:  logger,
		obs:     obs,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType unless wcfg disables it.
func (m *Manager) Start(taskType string, wcfg config.WorkerConfig, handler JobHandler) {
	if !wcfg.Enabled {
		m.logger.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	jw := m.client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, m.obs, handler.Handle)).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	m.mu.Lock()
	m.workers[taskType] = jw
	m.mu.Unlock()

	m.logger.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeoutMs", wcfg.Timeout),
	)
}

// Running lists the task types with an open worker.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.workers))
	for t := range m.workers {
		types = append(types, t)
	}
	return types
}

// Close stops every worker and waits for in-flight jobs.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for taskType, jw := range m.workers {
		m.logger.Info("stopping worker", zap.String("taskType", taskType))
		jw.Close()
		jw.AwaitClose()
	}
	m.workers = make(map[string]worker.JobWorker)
}

// Instrument wraps a job handler with the worker_* Prometheus metrics and,
// when obs is set, the otel job counters.
func Instrument(taskType string, obs *observability.Observability, fn worker.JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJobProcessed(context.Background(), taskType)
			obs.RecordJobDuration(context.Background(), elapsed, taskType)
		}()
		fn(client, job)
	}
}
