// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/observability"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("jobSource", cfg.Matching.JobSource),
	)

	obs := observability.New(observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	}, log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	deps := &dependencies{postgres: pg}

	// --- Init Elasticsearch with retry (alternate job source only) ---
	if cfg.Matching.JobSource == config.JobSourceElasticsearch {
		err = retryWithBackoff(func() error {
			var err error
			deps.search, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return deps.search.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Init Redis with retry (persona/weight cache) ---
	if cfg.Matching.CacheTTL > 0 {
		err = retryWithBackoff(func() error {
			var err error
			deps.redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return deps.redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer deps.redis.Close()
		zapLog.Info("Redis connected successfully")
	}

	// --- Init AWS notification clients ---
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		if err := deps.initNotifications(ctx, cfg.Notifications); err != nil {
			zapLog.Fatal("aws client initialization failed", zap.Error(err))
		}
		zapLog.Info("AWS notification clients initialized",
			zap.Bool("email", cfg.Notifications.Email.Enabled),
			zap.Bool("sms", cfg.Notifications.SMS.Enabled),
		)
	}

	validator, err := validation.NewValidator(registry.Builtin())
	if err != nil {
		zapLog.Fatal("failed to compile input schemas", zap.Error(err))
	}

	engine := buildEngine(cfg, deps, log)
	handlers := buildHandlers(cfg, engine, deps, validator, log)

	// --- Register Workers ---
	var workers []*camunda.Worker
	for _, h := range handlers {
		wcfg := config.GetWorkerConfig(cfg, h.taskType)
		w := camunda.StartWorker(zeebe.GetClient(), h.taskType, wcfg, &instrumentedHandler{
			next:     h.handler,
			taskType: h.taskType,
			obs:      obs,
		}, zapLog)
		if w != nil {
			workers = append(workers, w)
		}
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.ready(checkCtx, zeebe); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)

	server := &http.Server{Addr: cfg.App.HTTPAddress, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.App.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
