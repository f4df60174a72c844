// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Parasuram76/Task-Management-System/database"
)

const (
	// EnvProduction enables Secure cookies and requires an explicit JWT secret.
	EnvProduction = "production"

	defaultJWTSecret = "dev-secret-change-in-production"
)

// Config holds every runtime setting.
type Config struct {
	Env             string
	Port            int
	NATSPort        int
	JWTSecret       string
	JWTIssuer       string
	SessionTTL      time.Duration
	BcryptCost      int
	Database        database.Config
	RedisAddr       string
	CacheTTL        time.Duration
	CORSOrigin      string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// Production reports whether the app runs in production mode.
func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Env:        getEnv("APP_ENV", getEnv("NODE_ENV", "development")),
		Port:       getEnvInt("PORT", 5000),
		NATSPort:   getEnvInt("NATS_PORT", 4222),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		JWTIssuer:  getEnv("JWT_ISSUER", "task-management-system"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),
		BcryptCost: getEnvInt("BCRYPT_COST", 12),
		Database: database.Config{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", database.DriverSQLite)),
			SQLitePath:    getEnv("DB_PATH", "tasks.db"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "CodingClub"),
			Debug:         getEnvBool("DB_DEBUG", false),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CacheTTL:        getEnvDuration("CACHE_TTL", 30*time.Second),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:5173"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.JWTSecret == "" && !cfg.Production() {
		log.Println("Warning: JWT_SECRET not set, using development secret")
		cfg.JWTSecret = defaultJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	switch c.Database.Driver {
	case database.DriverSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite driver"))
		}
	case database.DriverMongo:
		if c.Database.MongoURI == "" || c.Database.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DATABASE are required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or mongo, got %q", c.Database.Driver))
	}
	if c.CORSOrigin == "*" {
		errs = append(errs, errors.New("CORS_ORIGIN cannot be * because session cookies need credentials"))
	}

	return errors.Join(errs...)
}

// getEnv returns environment variable or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
