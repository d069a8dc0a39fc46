package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Storage backends understood by the backend factory.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
)

// Config is the full process configuration.
type Config struct {
	Server  Server
	Log     Log
	Storage Storage
	Redis   RedisConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Log selects the slog handler and minimum level.
type Log struct {
	Level  string
	Format string
}

// Storage selects and configures the dialogue backend.
type Storage struct {
	Backend     string
	Serializer  string
	DatabaseURL string
	SQLitePath  string
	BoltPath    string
	// Trace wraps the backend in the trace-logging decorator.
	Trace bool
}

// RedisConfig holds go-redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr: getEnv("PARLEY_ADDR", ":8080"),
		},
		Log: Log{
			Level:  getEnv("PARLEY_LOG_LEVEL", "info"),
			Format: getEnv("PARLEY_LOG_FORMAT", "json"),
		},
		Storage: Storage{
			Backend:     getEnv("PARLEY_STORAGE_BACKEND", BackendMemory),
			Serializer:  getEnv("PARLEY_SERIALIZER", "json"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  getEnv("SQLITE_PATH", "parley.db"),
			BoltPath:    getEnv("BOLT_PATH", "parley.bolt"),
			Trace:       os.Getenv("PARLEY_TRACE_STORAGE") != "false",
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}

// Validate rejects combinations the backend factory cannot build.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	case BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	case BackendBolt:
		if c.Storage.BoltPath == "" {
			errs = append(errs, errors.New("BOLT_PATH is required for the bolt backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.Storage.Backend))
	}
	switch c.Storage.Serializer {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("unknown serializer %q", c.Storage.Serializer))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
