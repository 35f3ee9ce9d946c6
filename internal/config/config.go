// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the familycore process.
type Config struct {
	// Storage selection
	StorageDriver string // memory|sqlite|postgres
	SQLitePath    string
	PostgresDSN   string

	// Snapshot backup
	BlobDriver string // fs|s3|memory
	BlobFSRoot string
	AutoBackup bool

	// Presentation
	Language string // en|hu|de

	// Observability
	MetricsEnabled bool

	// Demo data
	SeedDemo bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; missing files are not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("familycore: skipping .env: %v", err)
	}
	cfg := &Config{
		StorageDriver:  getEnvOrDefault("FAMILYCORE_STORAGE_DRIVER", "sqlite"),
		SQLitePath:     getEnvOrDefault("FAMILYCORE_SQLITE_PATH", "familycore.db"),
		PostgresDSN:    getEnvOrDefault("FAMILYCORE_POSTGRES_DSN", ""),
		BlobDriver:     getEnvOrDefault("FAMILYCORE_BLOB_DRIVER", "fs"),
		BlobFSRoot:     getEnvOrDefault("FAMILYCORE_BLOB_FS_ROOT", "./backupdata"),
		AutoBackup:     boolEnv("FAMILYCORE_AUTO_BACKUP", false),
		Language:       getEnvOrDefault("FAMILYCORE_LANGUAGE", "en"),
		MetricsEnabled: boolEnv("FAMILYCORE_METRICS", true),
		SeedDemo:       boolEnv("FAMILYCORE_SEED_DEMO", false),
	}
	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
