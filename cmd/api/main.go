package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-actions/docs"
	"github.com/johnquangdev/meeting-actions/internal/adapter/handler"
	"github.com/johnquangdev/meeting-actions/internal/adapter/repository"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-actions/internal/infrastructure/database"
	jobUsecase "github.com/johnquangdev/meeting-actions/internal/usecase/job"
	"github.com/johnquangdev/meeting-actions/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-actions/pkg/logger"
	pkgvalidator "github.com/johnquangdev/meeting-actions/pkg/validator"
)

// @title           Meeting Actions API
// @version         1.0
// @description     Asynchronous analysis of meeting transcripts into decisions, actions, dates, risks and open questions

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human} | ${id}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Production deployments should manage schema via cmd/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with cmd/migrate.")
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use cmd/migrate for schema migrations in CI/CD/production")
	}

	// Result cache
	var resultCache jobUsecase.ResultCache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store := cache.NewRedisStore(redisClient, cfg.Redis.ResultTTL)
		defer store.Close()
		resultCache = store
	} else {
		log.Println("⚠️  Redis disabled, caching results in memory")
		store := cache.NewMemoryStore(cfg.Redis.ResultTTL)
		defer store.Close()
		resultCache = store
	}

	log.Println("⚙️  Initializing repositories...")
	jobRepo := repository.NewJobRepository(db)

	log.Println("🗂️  Initializing job service...")
	jobService := jobUsecase.NewJobService(jobRepo, resultCache, logger)
	jobHandler := handler.NewJobHandler(jobService, logger)

	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, jobHandler, func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, logger)
	router.Setup(e)

	if !cfg.IsProduction() {
		log.Println("🧪 Development endpoints enabled: /swagger/*, /v1/jobs/:jobId/_dev/complete")
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}
