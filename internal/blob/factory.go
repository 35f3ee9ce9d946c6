package blob

import (
	"context"
	"fmt"
	"os"

	fsstore "familycore/internal/infra/blob/fs"
	memorystore "familycore/internal/infra/blob/memory"
	s3store "familycore/internal/infra/blob/s3"
)

// Settings selects the blob backend for Open. An empty driver falls back to
// the filesystem store. The s3 store reads its own FAMILYCORE_BLOB_S3_*
// variables for bucket, region and credentials.
type Settings struct {
	Driver Driver
	FSRoot string
}

// Open constructs the blob.Store named by settings.
func Open(ctx context.Context, settings Settings) (Store, error) {
	driver := settings.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return fsstore.New(settings.FSRoot)
	case DriverS3:
		return s3store.OpenFromEnv(ctx)
	case DriverMemory:
		return memorystore.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// OpenFromEnv selects a blob.Store implementation using environment variables.
//
//	FAMILYCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	FAMILYCORE_BLOB_FS_ROOT: directory root when driver=fs (default ./backupdata)
func OpenFromEnv(ctx context.Context) (Store, error) {
	return Open(ctx, Settings{
		Driver: Driver(os.Getenv("FAMILYCORE_BLOB_DRIVER")),
		FSRoot: os.Getenv("FAMILYCORE_BLOB_FS_ROOT"),
	})
}

// NewMemory returns an in-memory blob.Store suitable for tests.
func NewMemory() Store { return memorystore.New() }
