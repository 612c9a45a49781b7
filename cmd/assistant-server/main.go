// cmd/assistant-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shop-assistant/internal/api"
	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog"
	"shop-assistant/internal/catalog/backend"
	"shop-assistant/internal/common/camunda"
	"shop-assistant/internal/common/config"
	"shop-assistant/internal/common/database"
	"shop-assistant/internal/common/logger"
	"shop-assistant/internal/common/observability"
	"shop-assistant/pkg/registry"

	sp "shop-assistant/internal/workers/catalog/search-products"
	cci "shop-assistant/internal/workers/chat/classify-chat-intent"
	rcm "shop-assistant/internal/workers/chat/resolve-chat-message"
)

func main() {
	zapLog := logger.New("info", "console")
	zapLog.Info("Starting assistant server...")

	cfg, err := loadConfig()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name, observability.WithLogger(zapLog))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, err := registry.LoadOrDefault(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("registry load failed", zap.Error(err))
	}

	// --- Catalog backend with retry ---
	cat, err := backend.Open(ctx, cfg, backend.Options{Logger: zapLog})
	if err != nil {
		zapLog.Fatal("catalog backend failed", zap.String("backend", cfg.Catalog.Backend), zap.Error(err))
	}
	defer cat.Close()

	engine := assistant.NewEngine(cfg.Assistant, log, obs)

	checks := make(map[string]api.ReadinessCheck, len(cat.Checks)+1)
	for name, check := range cat.Checks {
		checks[name] = check
	}

	// --- Zeebe workers ---
	var workers *camunda.Manager
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		err = database.RetryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		_, err = zeebe.ExecuteWithRetry(ctx, func(ctx context.Context) (interface{}, error) {
			return nil, zeebe.HealthCheck(ctx)
		}, "topology")
		if err != nil {
			zapLog.Fatal("zeebe gateway unreachable", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checks["zeebe"] = zeebe.HealthCheck

		workers = camunda.NewManager(zeebe.Raw(), zapLog, obs)
		startWorkers(workers, cfg, engine, cat.Store, log)
		zapLog.Info("workers running", zap.Strings("taskTypes", workers.Running()))
	}

	// --- HTTP API ---
	srv := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: api.NewRouter(api.Deps{
			Engine:         engine,
			Catalog:        cat.Store,
			Registry:       reg,
			Logger:         log,
			RequestTimeout: config.GetDuration(cfg.HTTP.RequestTimeout),
			Checks:         checks,
		}),
		ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server failed", zap.Error(err))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if workers != nil {
		workers.Close()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped gracefully")
}

// loadConfig reads APP_CONFIG when set, else the configs/ search path.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("APP_CONFIG"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func startWorkers(m *camunda.Manager, cfg *config.Config, engine *assistant.Engine, store catalog.Store, log logger.Logger) {
	if config.IsWorkerEnabled(cfg, rcm.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, rcm.TaskType)
		m.Start(rcm.TaskType, wcfg, rcm.NewHandler(rcm.FromWorkerConfig(wcfg), engine, store, log))
	}

	if config.IsWorkerEnabled(cfg, cci.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, cci.TaskType)
		m.Start(cci.TaskType, wcfg, cci.NewHandler(cci.FromWorkerConfig(wcfg), engine, log))
	}

	if config.IsWorkerEnabled(cfg, sp.TaskType) {
		wcfg := config.GetWorkerConfig(cfg, sp.TaskType)
		m.Start(sp.TaskType, wcfg, sp.NewHandler(sp.FromWorkerConfig(wcfg), store, log))
	}
}
