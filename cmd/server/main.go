// Package main is the entry point for the payment request API server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moneroreq/internal/config"
	"moneroreq/internal/handlers"
	"moneroreq/internal/logger"
	"moneroreq/internal/metrics"
	"moneroreq/internal/middleware"
	"moneroreq/internal/paymentcode"
	"moneroreq/internal/repositories"
	"moneroreq/internal/repositories/cache"
	"moneroreq/internal/routes"
	"moneroreq/internal/services/paymentrequest"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log := logger.Must(cfg.Env)
	defer log.Sync()

	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("PostgreSQL connected and migrated", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheService := cache.NewCacheService(redisClient, cfg.Redis.TTL)
	if err := cacheService.HealthCheck(context.Background()); err != nil {
		log.Warn("Redis unavailable, decoding will bypass the cache", zap.Error(err))
	}

	defer closeAll(log, db, cacheService)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	service := paymentrequest.NewService(
		paymentcode.New(cfg.PaymentCode()),
		repositories.NewPaymentRequestRepository(db),
		cacheService,
		metrics.NewPrometheusCollector(reg),
		log.Named("paymentrequest"),
	)

	var auth *middleware.AuthMiddleware
	if cfg.AuthEnabled() {
		auth = middleware.NewAuthMiddleware(cfg.JWTSecret, log.Named("auth"))
	} else {
		log.Warn("JWT_SECRET not set, issuing endpoints are unauthenticated")
	}

	app := fiber.New(fiber.Config{
		AppName:      "moneroreq",
		BodyLimit:    int(cfg.MaxPayloadBytes) * 2,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/payment-requests", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		PaymentRequests: service,
		Health: handlers.NewHealthHandler(version, map[string]handlers.HealthCheckFunc{
			"database": func(context.Context) error { return repositories.Ping(db) },
			"redis":    cacheService.HealthCheck,
		}),
		Auth:     auth,
		Gatherer: reg,
	})

	go func() {
		log.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

func closeAll(log *zap.Logger, db *gorm.DB, cacheService *cache.CacheService) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn("Failed to close database connection", zap.Error(err))
		}
	}
	if err := cacheService.Close(); err != nil {
		log.Warn("Failed to close Redis connection", zap.Error(err))
	}
}
