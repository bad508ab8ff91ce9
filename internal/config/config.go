package config

import (
	"fmt"     // Error wrapping
	"strings" // Key normalization
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/viper"   // Typed access to environment values
)

// Config holds the application configuration
type Config struct {
	AppPort   string        // Application port
	JWTSecret string        // JWT secret key
	TokenTTL  time.Duration // Lifetime of issued tokens
	RedisAddr string        // Redis server address, empty disables the cache
	RedisPass string        // Redis password
	RedisDB   int           // Redis database number
	CacheTTL  time.Duration // Lifetime of cached responses
	LogLevel  string        // Logrus level name
	IsProd    bool          // Is production environment
}

// defaults are applied when neither the environment nor .env sets a key
var defaults = map[string]any{
	"app_port":   "8080", // Application port
	"token_ttl":  "24h",  // Tokens expire in 24 hours
	"redis_addr": "",     // Cache disabled
	"redis_db":   0,      // Default Redis database
	"cache_ttl":  "60s",  // Cached responses live for 60 seconds
	"log_level":  "info", // Default log level
	"is_prod":    false,  // Development mode
}

// LoadConfig loads configuration from the environment, reading a .env file first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	return fromViper(newViper())
}

// newViper builds a viper instance bound to the environment with defaults applied
func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val) // Register each default
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // Nested keys map to underscores
	v.AutomaticEnv()                                   // Read matching environment variables
	for _, k := range []string{"jwt_secret", "redis_pass"} {
		_ = v.BindEnv(k) // Keys without defaults must be bound explicitly
	}
	return v
}

// fromViper converts viper values into a validated Config
func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:   v.GetString("app_port"),    // Application port
		JWTSecret: v.GetString("jwt_secret"),  // JWT secret key
		TokenTTL:  v.GetDuration("token_ttl"), // Token lifetime
		RedisAddr: v.GetString("redis_addr"),  // Redis server address
		RedisPass: v.GetString("redis_pass"),  // Redis password
		RedisDB:   v.GetInt("redis_db"),       // Redis database number
		CacheTTL:  v.GetDuration("cache_ttl"), // Cache lifetime
		LogLevel:  v.GetString("log_level"),   // Log level
		IsProd:    v.GetBool("is_prod"),       // Is production environment
	}
	// A secret is required to sign tokens
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	// Tokens must be able to expire
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	return cfg, nil
}
