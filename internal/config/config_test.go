package config

import (
	"strings"
	"testing"
	"time"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", EnvLocal)

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage != StorageMemory {
		t.Errorf("storage: got %q", cfg.Storage)
	}
	if cfg.HTTP.Port != "3000" || cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.Postgres.Port != 5432 || cfg.Postgres.MaxConns != 10 {
		t.Errorf("unexpected postgres config: %+v", cfg.Postgres)
	}
}

func TestEnvReader_Postgres(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("STORAGE", StoragePostgres)
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USERNAME", "tasks")
	t.Setenv("POSTGRES_DATABASE", "tasks")
	t.Setenv("POSTGRES_MIN_CONNS", "2")
	t.Setenv("POSTGRES_MAX_CONNS", "8")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Postgres.MinConns != 2 || cfg.Postgres.MaxConns != 8 {
		t.Errorf("pool size: got %d..%d", cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	}
	if cfg.HTTP.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout: got %v", cfg.HTTP.ShutdownTimeout)
	}
}

func TestEnvReader_MissingEnv(t *testing.T) {
	t.Setenv("ENV", "")

	_, err := NewEnvReader().Read()
	if err == nil {
		t.Fatal("expected error for empty ENV")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:     EnvDev,
			Storage: StoragePostgres,
			Postgres: PostgresConfig{
				Host:     "db",
				Username: "u",
				Database: "d",
				MaxConns: 4,
			},
		}
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]func(*Config){
		"unknown env":     func(c *Config) { c.Env = "staging" },
		"unknown storage": func(c *Config) { c.Storage = "redis" },
		"missing host":    func(c *Config) { c.Postgres.Host = "" },
		"no connections":  func(c *Config) { c.Postgres.MaxConns = 0 },
		"min above max":   func(c *Config) { c.Postgres.MinConns = 5 },
		"bad log level":   func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestEnvReader_LogLevel(t *testing.T) {
	t.Setenv("ENV", EnvProd)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level: got %q", cfg.LogLevel)
	}

	t.Setenv("LOG_LEVEL", "loud")
	_, err = NewEnvReader().Read()
	if err == nil {
		t.Fatal("expected error for unknown LOG_LEVEL")
	}
}

func TestEnvReader_Describe(t *testing.T) {
	desc := NewEnvReader().Describe()
	for _, name := range []string{"ENV", "STORAGE", "LOG_LEVEL", "POSTGRES_HOST"} {
		if !strings.Contains(desc, name) {
			t.Errorf("description misses %s:\n%s", name, desc)
		}
	}
}
