package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-actions/internal/adapter/repository"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/messaging"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-actions/internal/usecase/analysis"
	pkgai "github.com/johnquangdev/meeting-actions/pkg/ai"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-actions/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		log.Fatalf("Invalid worker configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Cancelled on SIGINT/SIGTERM; the poll loop exits and an in-flight job is failed
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("🤖 Initializing Azure OpenAI client...")
	aiClient, err := pkgai.NewAzureOpenAIClient(&cfg.AzureOpenAI, nil, logger)
	if err != nil {
		log.Fatalf("Failed to initialize Azure OpenAI client: %v", err)
	}

	opts := []analysis.Option{
		analysis.WithJobTimeout(cfg.Worker.JobTimeout),
		analysis.WithStaleAfter(cfg.Worker.StaleAfter),
	}

	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store := cache.NewRedisStore(redisClient, cfg.Redis.ResultTTL)
		defer store.Close()
		opts = append(opts, analysis.WithResultCache(store))
	}

	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		opts = append(opts, analysis.WithArchiver(minioClient))
	}

	if cfg.RabbitMQ.URL != "" {
		log.Println("🐇 Connecting to RabbitMQ...")
		publisher, err := messaging.NewRabbitMQPublisher(&cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		opts = append(opts, analysis.WithPublisher(publisher))
	}

	jobRepo := repository.NewJobRepository(db)
	processor := analysis.NewProcessor(jobRepo, aiClient, logger, opts...)

	if _, err := processor.RecoverStalled(ctx); err != nil {
		logger.Error("stalled job recovery failed", zap.Error(err))
	}

	metricsServer := startMetricsServer(cfg, db, logger)

	log.Printf("👷 Worker polling every %s", cfg.Worker.PollInterval)
	analysis.NewPoller(processor, cfg.Worker.PollInterval, logger).Run(ctx)

	log.Println("🛑 Shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Metrics server forced to shutdown: %v", err)
	}

	log.Println("✅ Worker stopped gracefully")
}

// startMetricsServer exposes /metrics and /health for the worker process
func startMetricsServer(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Worker.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("📈 Metrics on %s/metrics", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()

	return srv
}
