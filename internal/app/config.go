package app

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/adanyl0v/task-manager/internal/config"
)

func MustReadEnv() {
	reader := config.NewEnvReader()

	cfg, err := reader.Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("usage", reader.Describe()).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage).
		Str("log_level", cfg.LogLevel).
		Str("http_addr", cfg.HTTP.Host+":"+cfg.HTTP.Port).
		Msg("read env")

	config.SetGlobal(cfg)
}
