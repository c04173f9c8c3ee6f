// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gigboard/internal/catalog"
	awsclient "gigboard/internal/common/aws"
	"gigboard/internal/common/camunda"
	"gigboard/internal/common/config"
	"gigboard/internal/common/database"
	"gigboard/internal/common/logger"
	"gigboard/internal/common/observability"
	"gigboard/internal/common/validation"
	"gigboard/internal/events"
	"gigboard/internal/session"
	"gigboard/internal/store"
	"gigboard/pkg/registry"
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

// readinessCheck reports whether one dependency answers.
type readinessCheck func(ctx context.Context) error

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "console").Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("worker-manager", zapLog)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]readinessCheck{}

	// --- Activity registry and variable schemas ---
	reg, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewSchemaValidator(reg)
	if err != nil {
		zapLog.Fatal("activity schemas invalid", zap.Error(err))
	}

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
	checks["zeebe"] = zeebe.HealthCheck
	zapLog.Info("Zeebe client connected successfully")

	// --- Flow state store ---
	var flowStore store.Store
	switch cfg.Flows.Store {
	case config.StoreRedis:
		redisClient := database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		checks["redis"] = redisClient.Ping
		flowStore = store.NewRedisStore(redisClient.GetClient(), store.Config{
			TTL: config.GetDuration(cfg.Flows.StateTTL),
		})
		zapLog.Info("Redis connected successfully")
	default:
		flowStore = store.NewMemoryStore()
		zapLog.Warn("flow state kept in memory; it is lost on restart")
	}

	// --- Gig catalog ---
	var gigCatalog catalog.Catalog
	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
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
		checks["postgres"] = pg.Ping
		gigCatalog = catalog.NewPostgresCatalog(pg.GetDB(), cfg.Catalog.Limit)
		zapLog.Info("PostgreSQL connected successfully")
	case config.CatalogElasticsearch:
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		checks["elasticsearch"] = esClient.Ping
		gigCatalog = catalog.NewElasticsearchCatalog(esClient.Client, cfg.Catalog.Index, cfg.Catalog.Limit)
		zapLog.Info("Elasticsearch connected successfully")
	default:
		static, err := catalog.LoadStatic(cfg.Catalog.StaticFile)
		if err != nil {
			zapLog.Fatal("static catalog load failed", zap.Error(err))
		}
		gigCatalog = static
		zapLog.Info("Static gig catalog loaded", zap.Int("gigs", len(static)))
	}

	// --- Job events ---
	var publisher events.Publisher = events.Discard{}
	if cfg.Events.Enabled {
		nats, err := events.Connect(events.Config{
			URL:            cfg.Events.URL,
			SubjectPrefix:  cfg.Events.SubjectPrefix,
			ConnectTimeout: config.GetDuration(cfg.Events.ConnectTimeout),
		}, log)
		if err != nil {
			zapLog.Fatal("nats connect failed", zap.Error(err))
		}
		publisher = nats
		zapLog.Info("NATS publisher ready", zap.String("prefix", cfg.Events.SubjectPrefix))
	}
	defer publisher.Close()

	// --- Notification delivery ---
	var push *awsclient.SNSClient
	var email *awsclient.SESClient
	if cfg.Notifications.SNS.Enabled || cfg.Notifications.Email.Enabled {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws config load failed", zap.Error(err))
		}
		if cfg.Notifications.SNS.Enabled {
			push = awsclient.NewSNSClient(awsCfg, cfg.Notifications.SNS.TopicARN)
		}
		if cfg.Notifications.Email.Enabled {
			email = awsclient.NewSESClient(awsCfg, cfg.Notifications.Email.FromEmail)
		}
	}

	deps := &dependencies{
		cfg:       cfg,
		log:       log,
		zapLog:    zapLog,
		validator: validator,
		boards:    session.NewBoards(flowStore),
		sessions:  session.NewSessions(flowStore, gigCatalog, cfg.Catalog.Source),
		publisher: publisher,
		push:      push,
		email:     email,
		recorder:  obs,
	}
	workers := registerWorkers(zeebe, deps)
	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		rctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		body := map[string]string{"status": "ready", "time": time.Now().Format(time.RFC3339)}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(rctx); err != nil {
				body["status"] = "not ready"
				body[name] = err.Error()
				status = http.StatusServiceUnavailable
			}
		}
		writeStatus(w, status, body)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.App.HTTPAddress, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("addr", cfg.App.HTTPAddress))
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
		w.Close()
	}
	awaitWorkers(shutdownCtx, workers, zapLog)

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func awaitWorkers(ctx context.Context, workers []worker.JobWorker, log *zap.Logger) {
	done := make(chan struct{})
	go func() {
		for _, w := range workers {
			w.AwaitClose()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("workers did not drain before shutdown deadline")
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
