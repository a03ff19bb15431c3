package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

type Config struct {
	Issuer   string // Optional: issuer claim for tokens (default: taskdeck)
	Audience string // Optional: audience claim for tokens (default: taskdeck)

	JWTAccessSecret  string // Required: HS256 secret for access tokens (min 32 bytes)
	JWTRefreshSecret string // Required: HS256 secret for refresh tokens (min 32 bytes, must differ)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 7 days)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 30 days)
	BcryptCost      int           // Optional: bcrypt work factor (default: 12)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./taskdeck.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is folded in first, real environment variables winning.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Issuer:   getEnvOrDefault("TASKDECK_ISSUER", "taskdeck"),
		Audience: getEnvOrDefault("TASKDECK_AUDIENCE", "taskdeck"),

		JWTAccessSecret:  os.Getenv("TASKDECK_JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("TASKDECK_JWT_REFRESH_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("TASKDECK_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("TASKDECK_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		BcryptCost:      getEnvIntOrDefault("TASKDECK_BCRYPT_COST", 0),

		DatabaseFile:        getEnvOrDefault("TASKDECK_DATABASE_FILE", "taskdeck.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations that cannot produce a working service.
// Secret strength itself is enforced by jwtx.NewCodec.
func (c Config) Validate() error {
	if c.JWTAccessSecret == "" {
		return fmt.Errorf("TASKDECK_JWT_ACCESS_SECRET is required")
	}
	if c.JWTRefreshSecret == "" {
		return fmt.Errorf("TASKDECK_JWT_REFRESH_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration strings like "168h" or "30m"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
