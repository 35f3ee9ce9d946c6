package core

import (
	"path/filepath"
	"testing"

	"familycore/internal/infra/persistence/memory"
	"familycore/internal/infra/persistence/sqlite"
)

func TestOpenPersistentStoreSelectsDriver(t *testing.T) {
	store, err := OpenPersistentStore(NewDefaultRulesEngine(), StorageSettings{Driver: StorageMemory})
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	store, err = OpenPersistentStore(NewDefaultRulesEngine(), StorageSettings{
		Driver:     StorageSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "familycore.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	sq, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	_ = sq.Close()
}

func TestOpenPersistentStoreDefaultsToSQLite(t *testing.T) {
	store, err := OpenPersistentStore(nil, StorageSettings{
		SQLitePath: filepath.Join(t.TempDir(), "familycore.db"),
	})
	if err != nil {
		t.Fatalf("open default store: %v", err)
	}
	sq, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	_ = sq.Close()
}

func TestOpenPersistentStoreRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenPersistentStore(nil, StorageSettings{Driver: "floppy"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestOpenPersistentStoreIgnoresEnvWithExplicitSettings(t *testing.T) {
	t.Setenv("FAMILYCORE_STORAGE_DRIVER", "sqlite")
	t.Setenv("FAMILYCORE_SQLITE_PATH", filepath.Join(t.TempDir(), "unused.db"))
	store, err := OpenPersistentStore(nil, StorageSettings{Driver: StorageMemory})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected the settings to win over env, got %T", store)
	}
}

func TestOpenPersistentStoreFromEnv(t *testing.T) {
	t.Setenv("FAMILYCORE_STORAGE_DRIVER", "memory")
	store, err := OpenPersistentStoreFromEnv(NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open store from env: %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	t.Setenv("FAMILYCORE_STORAGE_DRIVER", "sqlite")
	t.Setenv("FAMILYCORE_SQLITE_PATH", filepath.Join(t.TempDir(), "familycore.db"))
	store, err = OpenPersistentStoreFromEnv(nil)
	if err != nil {
		t.Fatalf("open store from env: %v", err)
	}
	sq, ok := store.(*sqlite.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	_ = sq.Close()
}
