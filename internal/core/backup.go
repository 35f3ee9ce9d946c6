package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"familycore/internal/blob"
	"familycore/pkg/domain"
)

const backupContentType = "application/json"

// BackupKey returns the object key for a snapshot taken at ts.
func BackupKey(ts time.Time) string {
	return fmt.Sprintf("backups/%s.json", ts.UTC().Format("20060102T150405Z"))
}

// BackupSnapshot serializes the store's committed state into the blob store
// under key, replacing any previous object with that key.
func BackupSnapshot(ctx context.Context, store PersistentStore, blobs blob.Store, key string) (blob.Info, error) {
	return writeBackup(ctx, store.ExportState(), blobs, key)
}

func writeBackup(ctx context.Context, snap Snapshot, blobs blob.Store, key string) (blob.Info, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	// blob stores are create-only; drop the previous object to replace it
	if _, err := blobs.Delete(ctx, key); err != nil {
		return blob.Info{}, fmt.Errorf("replace %s: %w", key, err)
	}
	info, err := blobs.Put(ctx, key, bytes.NewReader(data), blob.PutOptions{
		ContentType: backupContentType,
		Metadata:    map[string]string{"schema_version": strconv.Itoa(snap.SchemaVersion)},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("put %s: %w", key, err)
	}
	return info, nil
}

// RestoreSnapshot loads the backup at key and imports it into the store,
// migrating legacy snapshot shapes on the way in.
func RestoreSnapshot(ctx context.Context, store PersistentStore, blobs blob.Store, key string) error {
	_, rc, err := blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	store.ImportState(snap)
	return nil
}

// AutoBackup registers a commit listener that mirrors every committed
// snapshot into the blob store under key. Backup failures are reported via
// logf and never reach store callers: in-memory state stays authoritative.
func AutoBackup(store PersistentStore, blobs blob.Store, key string, logf func(format string, args ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	store.OnCommit(func(snap Snapshot) {
		if _, err := writeBackup(context.Background(), snap, blobs, key); err != nil {
			logf("familycore: auto backup failed: %v", err)
		}
	})
}
