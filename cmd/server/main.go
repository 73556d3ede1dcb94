package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prepcoach/coach/internal/chat"
	"prepcoach/coach/internal/config"
	"prepcoach/coach/internal/feedback"
	"prepcoach/coach/internal/handlers"
	"prepcoach/coach/internal/jobs"
	"prepcoach/coach/internal/llm"
	_ "prepcoach/coach/internal/llm/gemini"
	_ "prepcoach/coach/internal/llm/groq"
	"prepcoach/coach/internal/metrics"
	"prepcoach/coach/internal/models"
	"prepcoach/coach/internal/prompts"
	"prepcoach/coach/internal/routers"
	"prepcoach/coach/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, chatHandler *handlers.ChatHandler, sessionHandler *handlers.SessionHandler, feedbackHandler *handlers.FeedbackHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.CoachRoutes(router, chatHandler, sessionHandler, feedbackHandler)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// newSessionStore builds the configured session backend. Redis survives
// restarts and supports TTL expiry; memory is the default for local runs.
func newSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.SessionBackend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return session.NewRedisStore(rdb, cfg.SessionTTL), nil
	}
	return session.NewMemoryStore(), nil
}

// initDatabase connects to PostgreSQL for feedback storage
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.CoachFeedback{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("session_backend", cfg.SessionBackend))

	catalog, err := prompts.NewCatalog()
	if err != nil {
		logger.Fatal("Failed to load prompt catalog", zap.Error(err))
	}

	// a missing or invalid provider credential is fatal at startup; there is
	// no degraded mode without a model
	provider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize model provider", zap.Error(err))
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}

	formatter := chat.NewTurnFormatter(catalog, cfg.HistoryMaxTurns)
	pipeline := chat.NewTurnPipeline(provider, formatter, store, logger)

	chatHandler := handlers.NewChatHandler(pipeline, store, logger)
	sessionHandler := handlers.NewSessionHandler(store, catalog, logger)
	healthHandler := handlers.NewHealthHandler(provider, catalog, store, cfg)

	// feedback storage is optional; the coach runs without it
	db, err := initDatabase()
	if err != nil {
		logger.Error("Failed to initialize database, feedback system will be disabled", zap.Error(err))
	}

	var feedbackHandler *handlers.FeedbackHandler
	var exporterJob *jobs.FeedbackExporterJob

	if db != nil {
		cacheTTL, _ := time.ParseDuration(getEnv("FEEDBACK_CACHE_TTL", "15m"))
		feedbackManager := feedback.NewFeedbackManager(db, cacheTTL)

		chatHandler.SetFeedbackManager(feedbackManager)

		exporterConfig := &jobs.ExporterConfig{
			Schedule:      getEnv("FEEDBACK_EXPORT_SCHEDULE", "0 2 * * *"),
			ExportDir:     getEnv("FEEDBACK_EXPORT_DIR", "./exports"),
			ExportEnabled: getEnv("FEEDBACK_EXPORT_ENABLED", "false") == "true",
		}

		exporterJob = jobs.NewFeedbackExporterJob(feedbackManager, exporterConfig)
		if exporterConfig.ExportEnabled {
			if err := exporterJob.Start(); err != nil {
				logger.Error("Failed to start feedback exporter job", zap.Error(err))
			} else {
				logger.Info("Feedback exporter job started", zap.String("schedule", exporterConfig.Schedule))
			}
		}

		feedbackHandler = handlers.NewFeedbackHandler(feedbackManager)

		logger.Info("Feedback system initialized successfully")
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// the request timeout must outlive the provider's own 120s call timeout
	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(130*time.Second))
	router.Use(metrics.Middleware("coach"))

	registerRoutes(router, chatHandler, sessionHandler, feedbackHandler, healthHandler)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Coach service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Coach service shutting down...")

	if exporterJob != nil {
		exporterJob.Stop()
		logger.Info("Feedback exporter job stopped")
	}

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Coach service exited")
}
