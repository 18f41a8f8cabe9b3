package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/filevault/backend/internal/auth"
	"github.com/filevault/backend/internal/config"
	"github.com/filevault/backend/internal/database"
	"github.com/filevault/backend/internal/files"
	"github.com/filevault/backend/internal/handlers"
	"github.com/filevault/backend/internal/middleware"
	"github.com/filevault/backend/internal/storage"
	"github.com/filevault/backend/internal/thumbnail"
	"github.com/filevault/backend/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	logger.Init()

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("redis connection failed: %v", err)
	}
	cancel()

	store, err := newContentStore(cfg)
	if err != nil {
		log.Fatalf("content store initialization failed: %v", err)
	}

	tokens := auth.NewRedisTokenStore(redisClient, cfg.Auth.TokenTTL)
	dispatcher := thumbnail.NewRedisDispatcher(redisClient, cfg.Thumbnail.Queue)

	repo := files.NewRepository(db, store)
	pipeline := files.NewPipeline(repo, dispatcher)

	appHandler := handlers.NewAppHandler(repo, dbHealthcheck(db), redisHealthcheck(redisClient))
	authHandler := handlers.NewAuthHandler(db, tokens)
	filesHandler := handlers.NewFilesHandler(repo, pipeline)
	authMiddleware := middleware.NewAuthMiddleware(db, tokens)

	app := fiber.New(fiber.Config{BodyLimit: 100 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())

	handlers.Register(app, appHandler, authHandler, filesHandler, authMiddleware)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"address":         listenAddr,
		"storage_backend": cfg.Storage.Backend,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}

	_ = redisClient.Close()
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newContentStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "fs":
		return storage.NewFSStore(cfg.Storage.FolderPath)
	default:
		store, err := storage.NewMinIOStore(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func dbHealthcheck(db *gorm.DB) handlers.HealthFunc {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func redisHealthcheck(client redis.UniversalClient) handlers.HealthFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
