package main

import (
	"context"                        // context package is needed for Redis operations
	"savings_ledger/internal/api"    // Custom package for API handlers
	"savings_ledger/internal/config" // Custom package for configuration
	"savings_ledger/internal/ledger" // Ledger engine
	"savings_ledger/internal/store"  // In-memory user store
	"savings_ledger/internal/utils"  // Redis-backed response cache
	"time"                           // Ping timeout

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl) // Apply configured level
	} else {
		logrus.Warnf("unknown log level %q, keeping %s", cfg.LogLevel, logrus.GetLevel())
	}

	// Setup Redis client when an address is configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})

		// Test Redis connection
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = redisClient.Ping(ctx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, response cache disabled")
	}
	cache := utils.NewCache(redisClient, cfg.CacheTTL) // Nil client means no caching

	users := store.New(0)                                                         // Users and their books
	engine := ledger.NewEngine(users, ledger.WithLogger(logrus.StandardLogger())) // Ledger policies

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r, err := api.NewRouter(api.Deps{
		Users:     users,         // User store
		Engine:    engine,        // Ledger engine
		Cache:     cache,         // Response cache
		JWTSecret: cfg.JWTSecret, // JWT secret key
		TokenTTL:  cfg.TokenTTL,  // Token lifetime
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.Info("Server running on " + cfg.AppPort)  // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
