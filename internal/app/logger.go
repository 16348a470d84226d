package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/config"
)

const serviceName = "task-manager"

var globalLogger zerolog.Logger

// InitDefaultLogger sets up the JSON logger used until the config is read.
func InitDefaultLogger() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	globalLogger = newBaseLogger(os.Stdout)
	globalLogger.Info().Msg("initialized default logger")
}

func MustInitApplicationLogger() {
	cfg := config.Global()

	level, err := logLevel(cfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("env", cfg.Env).
			Str("log_level", cfg.LogLevel).
			Msg("failed to pick log level")
		panic(err)
	}
	zerolog.SetGlobalLevel(level)

	globalLogger = globalLogger.
		Output(logWriter(cfg.Env, os.Stdout)).
		With().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage).
		Logger()

	globalLogger.Info().
		Str("log_level", level.String()).
		Msg("initialized application logger")
}

func newBaseLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Int("pid", os.Getpid()).
		Logger()
}

// logLevel picks the level for cfg.Env; LOG_LEVEL wins when set.
func logLevel(cfg *config.Config) (zerolog.Level, error) {
	var level zerolog.Level
	switch cfg.Env {
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		level = zerolog.InfoLevel
	case config.EnvLocal:
		level = zerolog.TraceLevel
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown env: %s", cfg.Env)
	}

	if cfg.LogLevel == "" {
		return level, nil
	}
	return zerolog.ParseLevel(cfg.LogLevel)
}

// logWriter keeps JSON output everywhere except local runs.
func logWriter(env string, out io.Writer) io.Writer {
	if env != config.EnvLocal {
		return out
	}

	consoleWriter := zerolog.NewConsoleWriter()
	consoleWriter.TimeFormat = time.DateTime
	consoleWriter.Out = out
	return consoleWriter
}
