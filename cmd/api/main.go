package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/homsent/homsent-chef/backend/config"
	"github.com/homsent/homsent-chef/backend/internal/api"
	"github.com/homsent/homsent-chef/backend/internal/database"
	"github.com/homsent/homsent-chef/backend/internal/export"
	"github.com/homsent/homsent-chef/backend/internal/gemini"
	"github.com/homsent/homsent-chef/backend/internal/logger"
	"github.com/homsent/homsent-chef/backend/internal/metrics"
	"github.com/homsent/homsent-chef/backend/internal/middleware"
	"github.com/homsent/homsent-chef/backend/internal/server"
	"github.com/homsent/homsent-chef/backend/internal/service"
	"github.com/homsent/homsent-chef/backend/internal/storage"
)

func main() {
	// A missing .env file is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	zl := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: config.IsDevelopment(),
	})
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zl.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	m := metrics.NewWithRuntime()

	var redisClient *redis.Client
	if cfg.StorageBackend == config.StorageRedis {
		client, err := database.NewRedisClient(cfg, zl)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
	}

	backend, health, err := openBackend(cfg, redisClient, zl)
	if err != nil {
		return err
	}

	gw, err := gemini.NewGateway(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, zl)
	if err != nil {
		return err
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return err
	}

	adapter := storage.NewAdapter(backend, zl, m)
	workspaces := service.NewWorkspaces(service.NewInstrumentedGateway(gw, m), adapter, zl, m)
	scopes := service.NewScopeService(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewHandler(
		workspaces,
		scopes,
		export.NewPublisher(s3Config, zl),
		middleware.NewAIRateLimiter(redisClient, cfg.AIRequestsPerHour),
		zl,
	)

	srv := server.New(cfg, handler, workspaces, m, health, zl)
	return srv.Start(ctx)
}

// openBackend selects the persistence backend named in the configuration.
func openBackend(cfg *config.Config, redisClient *redis.Client, zl *zap.Logger) (storage.Backend, server.HealthCheck, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		zl.Warn("using in-memory storage, records are lost on restart")
		return storage.NewMemoryBackend(), nil, nil

	case config.StorageRedis:
		health := func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		return storage.NewRedisBackend(redisClient, 0), health, nil

	case config.StorageSQLite, config.StoragePostgres:
		db, err := database.Open(cfg, zl)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(db, zl); err != nil {
			return nil, nil, err
		}
		health := func(ctx context.Context) error { return database.HealthCheck(ctx, db) }
		return storage.NewGormBackend(db), health, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}
