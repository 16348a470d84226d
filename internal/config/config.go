package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env     string `env:"ENV" env-required:"true" env-description:"dev, prod or local"`
	Storage string `env:"STORAGE" env-default:"memory" env-description:"memory or postgres"`
	// LogLevel overrides the level ENV picks when set.
	LogLevel string `env:"LOG_LEVEL" env-description:"zerolog level overriding the ENV default"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
}

// Validate rejects values cleanenv can parse but the application can't use.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %q", c.Env)
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Postgres.Host == "" || c.Postgres.Username == "" || c.Postgres.Database == "" {
			return fmt.Errorf("storage %q requires POSTGRES_HOST, POSTGRES_USERNAME and POSTGRES_DATABASE", c.Storage)
		}
		if c.Postgres.MinConns < 0 || c.Postgres.MaxConns < 1 || c.Postgres.MinConns > c.Postgres.MaxConns {
			return fmt.Errorf("invalid postgres pool size: min %d, max %d",
				c.Postgres.MinConns, c.Postgres.MaxConns)
		}
	default:
		return fmt.Errorf("unknown storage: %q", c.Storage)
	}

	if c.LogLevel != "" {
		_, err := zerolog.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}

	return nil
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s" env-description:"grace period for in-flight requests"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	MinConns       int32         `env:"POSTGRES_MIN_CONNS" env-default:"0"`
	MaxConns       int32         `env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}
