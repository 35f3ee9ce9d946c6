package core

import (
	"fmt"
	"os"

	"familycore/internal/infra/persistence/memory"
	"familycore/internal/infra/persistence/postgres"
	"familycore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// StorageSettings selects the persistence backend for OpenPersistentStore.
// Zero values fall back to the backend defaults (sqlite driver,
// ./familycore.db path).
type StorageSettings struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
}

// OpenPersistentStore opens the backend named by settings.
func OpenPersistentStore(engine *RulesEngine, settings StorageSettings) (PersistentStore, error) {
	driver := settings.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	switch driver {
	case StorageMemory:
		return memory.NewStore(engine), nil
	case StorageSQLite:
		return sqlite.NewStore(settings.SQLitePath, engine)
	case StoragePostgres:
		return postgres.NewStore(settings.PostgresDSN, engine)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// OpenPersistentStoreFromEnv selects a backend using environment variables.
//
//	FAMILYCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	FAMILYCORE_SQLITE_PATH: path to sqlite file (default ./familycore.db)
//	FAMILYCORE_POSTGRES_DSN: postgres DSN when driver=postgres
func OpenPersistentStoreFromEnv(engine *RulesEngine) (PersistentStore, error) {
	return OpenPersistentStore(engine, StorageSettings{
		Driver:      StorageDriver(os.Getenv("FAMILYCORE_STORAGE_DRIVER")),
		SQLitePath:  os.Getenv("FAMILYCORE_SQLITE_PATH"),
		PostgresDSN: os.Getenv("FAMILYCORE_POSTGRES_DSN"),
	})
}
