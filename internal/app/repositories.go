package app

import (
	"github.com/adanyl0v/task-manager/internal/config"
	"github.com/adanyl0v/task-manager/internal/repositories"
	"github.com/adanyl0v/task-manager/internal/repositories/memory"
	"github.com/adanyl0v/task-manager/internal/repositories/postgres"
)

var (
	globalTaskRepository repositories.TaskRepository
	globalUserRepository repositories.UserRepository
)

// MustInitRepositories picks the storage backend once at startup. The
// postgres backend requires MustConnectPostgres to have run.
func MustInitRepositories() {
	storage := config.Global().Storage
	switch storage {
	case config.StoragePostgres:
		globalTaskRepository = postgres.NewTaskRepository(globalLogger, globalPostgresPool)
		globalUserRepository = postgres.NewUserRepository(globalLogger, globalPostgresPool)
	case config.StorageMemory:
		globalTaskRepository = memory.NewTaskRepository(globalLogger)
		globalUserRepository = memory.NewUserRepository(globalLogger)
	default:
		globalLogger.Error().
			Str("storage", storage).
			Msg("unknown storage")
		panic("unknown storage: " + storage)
	}

	globalLogger.Info().
		Str("storage", storage).
		Msg("initialized repositories")
}

func usesPostgres() bool {
	return config.Global().Storage == config.StoragePostgres
}

// MustConnectStorage opens the connections the configured backend needs.
func MustConnectStorage() {
	if usesPostgres() {
		MustConnectPostgres()
	}
}
