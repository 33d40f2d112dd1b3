package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Persistence backends accepted by REGISTRY_BACKEND.
const (
	BackendPostgres    = "postgres"
	BackendObjectStore = "objectstore"
	BackendRedis       = "redis"
	BackendMemory      = "memory"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage settings were provided.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	URL       string
	KeyPrefix string
	PoolSize  int
}

// RegistryConfig holds the registry engine settings.
type RegistryConfig struct {
	Backend         string
	Prefix          string
	RolloverCheck   string
	EnforceCatalogs bool
	Timezone        string
	CatalogSeedFile string
}

// Location resolves Timezone. An empty value is the local zone.
func (c RegistryConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	EventsAddr string
	LogLevel   string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Redis      RedisConfig
	Registry   RegistryConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:    getEnv("APP_HOST", "localhost:8080"),
		Port:       getEnv("PORT", "8080"), // default only for non-sensitive value
		EventsAddr: getEnv("EVENTS_ADDR", ":8081"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			URL:       getEnv("REDIS_URL", ""),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "docregistry:"),
			PoolSize:  getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Registry: RegistryConfig{
			Backend:         getEnv("REGISTRY_BACKEND", BackendPostgres),
			Prefix:          getEnv("REGISTRY_PREFIX", "CNDES"),
			RolloverCheck:   getEnv("REGISTRY_ROLLOVER_CHECK", "session"),
			EnforceCatalogs: getEnvBool("REGISTRY_CATALOG_ENFORCE", false),
			Timezone:        getEnv("APP_TIMEZONE", ""),
			CatalogSeedFile: getEnv("CATALOG_SEED_FILE", ""),
		},
	}
}

// Validate checks that the selected backend has the settings it needs.
func (c *AppConfig) Validate() error {
	var errs []error
	switch c.Registry.Backend {
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
			errs = append(errs, errors.New("postgres backend requires DB_HOST, DB_USER and DB_NAME"))
		}
	case BackendObjectStore:
		if !c.MinIO.Enabled() || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("objectstore backend requires MINIO_ENDPOINT and MINIO_BUCKET"))
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("redis backend requires REDIS_URL"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown REGISTRY_BACKEND %q", c.Registry.Backend))
	}

	switch c.Registry.RolloverCheck {
	case "session", "request":
	default:
		errs = append(errs, fmt.Errorf("unknown REGISTRY_ROLLOVER_CHECK %q", c.Registry.RolloverCheck))
	}
	if _, err := c.Registry.Location(); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
