package main

import (
	"context"                          // Graceful shutdown and Redis ping
	"errors"                           // Server close detection
	"expense_tracker/internal/api"     // Custom package for API handlers
	"expense_tracker/internal/config"  // Custom package for configuration
	"expense_tracker/internal/db"      // Database connection and migration
	"expense_tracker/internal/service" // Use-cases
	"expense_tracker/internal/utils"   // Tokens and cache
	"net/http"                         // HTTP server
	"os"                               // Signals
	"os/signal"                        // Signal notification
	"syscall"                          // SIGTERM
	"time"                             // Timeouts

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig()
	setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Redis is optional, without it every list read goes to the database
	var cache *utils.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cache = utils.NewCache(redisClient, cfg.CacheTTL)
	}

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret)
	r := api.NewRouter(api.Dependencies{
		Accounts:    service.NewAccountService(db.NewUserStore(gdb), tokens),
		Expenses:    service.NewExpenseService(db.NewExpenseStore(gdb), cache),
		Tokens:      tokens,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}

func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
