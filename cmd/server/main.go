package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sunvoyage/admin-backend/internal/config"
	"github.com/sunvoyage/admin-backend/internal/database"
	"github.com/sunvoyage/admin-backend/internal/handlers"
	"github.com/sunvoyage/admin-backend/internal/logger"
	"github.com/sunvoyage/admin-backend/internal/middleware"
	"github.com/sunvoyage/admin-backend/internal/repository"
	"github.com/sunvoyage/admin-backend/internal/services"
	"github.com/sunvoyage/admin-backend/internal/storage"
	"github.com/sunvoyage/admin-backend/internal/tasks"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	log, err := logger.New(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, mc, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.Database, log)
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	idxCtx, cancelIdx := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(idxCtx, db); err != nil {
		log.Warnf("index bootstrap: %v", err)
	}
	cancelIdx()

	collection := cfg.Mongo.Collection
	if collection == "" {
		collection = database.ColMedia
	}
	repo := repository.NewMediaRepo(db.Collection(collection))

	host, err := storage.NewS3Host(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.AWS.Endpoint, storage.Transform{
		MaxWidth:  cfg.Upload.MaxWidth,
		MaxHeight: cfg.Upload.MaxHeight,
	})
	if err != nil {
		log.Fatalf("s3 init: %v", err)
	}

	runner := tasks.NewRunner(log, 30*time.Second)
	msvc := services.NewMediaService(repo, host, runner, cfg.Upload.Folder, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.Upload.MaxBodyMB * 1024 * 1024,
	})

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rl := middleware.NewRateLimiter(rdb, "ratelimit:media", cfg.Redis.RateLimit, cfg.RateWindow)
		app.Use(rl.Middleware())
	}

	h := handlers.NewMediaHandler(msvc, cfg.Upload.MaxFiles, log)
	h.Register(app)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Infof("starting admin media backend on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	_ = app.Shutdown()
	if err := runner.Drain(shutdownCtx); err != nil {
		log.Warnf("background tasks not drained: %v", err)
	}
	_ = mc.Disconnect(shutdownCtx)
	log.Info("shutdown completed")
}
