package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop_backoffice/internal/config"
	"shop_backoffice/internal/database"
	"shop_backoffice/internal/events"
	"shop_backoffice/internal/middleware"
	"shop_backoffice/internal/revocation"
	"shop_backoffice/internal/router"
	"shop_backoffice/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("production", "info")
		fatal(err, "Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	db, err := database.InitDB(cfg.DSN())
	if err != nil {
		fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	if cfg.ApplySchema {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.ApplySchema(ctx, db)
		cancel()
		if err != nil {
			fatal(err, "Failed to apply schema")
		}
	}

	// Token revocation: Redis when configured, otherwise logout only clears the cookie.
	revoked := revocation.NewNoopStore()
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := revocation.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			fatal(err, "Failed to connect to redis")
		}
		defer client.Close()
		revoked = revocation.NewRedisStore(client)
		utils.LogInfo("Token revocation backed by redis", map[string]interface{}{"addr": cfg.RedisAddr})
	}

	// Domain events
	publisher := events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		utils.LogInfo("Publishing domain events", map[string]interface{}{"brokers": cfg.KafkaBrokers, "topic": cfg.KafkaTopic})
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			utils.LogWarn(err, "Failed to close event publisher")
		}
	}()

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	// Setup all application routes
	router.Setup(engine, router.Deps{
		DB:           db,
		Tokens:       utils.NewTokenManager(cfg.JWTSecret),
		Revoked:      revoked,
		Publisher:    publisher,
		SecureCookie: cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(err, "Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.LogInfo("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}

func fatal(err error, message string) {
	utils.LogError(err, message)
	os.Exit(1)
}
