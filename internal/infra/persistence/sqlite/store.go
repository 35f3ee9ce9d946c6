// Package sqlite provides the default on-device persistent store. It keeps
// the in-memory semantics and snapshots each slice of state to a SQLite
// table as a JSON blob after every committed transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"familycore/internal/infra/persistence/memory"
	"familycore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	bucketCalendar = "calendar"
	bucketTodos    = "todos"
	bucketShopping = "shopping"
	bucketFamily   = "family"
)

var sqliteBuckets = []string{bucketCalendar, bucketTodos, bucketShopping, bucketFamily}

// Store persists the in-memory state to a single SQLite table keyed by
// bucket. Each domain slice (calendar, todos, shopping, family) has its own
// row so one corrupt payload never takes the others down with it.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore opens (or creates) the database at path and hydrates the
// in-memory store from any persisted snapshot. A bucket that fails to decode
// is dropped and its slice starts empty; the remaining buckets still load.
func NewStore(path string, engine *domain.RulesEngine) (*Store, error) {
	if path == "" {
		path = "familycore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(engine), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := map[string][]byte{}
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		payloads[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if len(payloads) == 0 {
		return nil
	}
	snapshot := domain.Snapshot{SchemaVersion: domain.SnapshotSchemaVersion}
	decodeBucket(bucketCalendar, payloads[bucketCalendar], &snapshot.Events)
	decodeBucket(bucketTodos, payloads[bucketTodos], &snapshot.Todos)
	decodeBucket(bucketShopping, payloads[bucketShopping], &snapshot.Lists)
	decodeBucket(bucketFamily, payloads[bucketFamily], &snapshot.Family)
	s.ImportState(snapshot)
	return nil
}

// decodeBucket falls back to the zero value when a payload is missing or
// corrupt. Losing one slice beats refusing to start.
func decodeBucket(bucket string, payload []byte, target any) {
	if len(payload) == 0 {
		return
	}
	if err := json.Unmarshal(payload, target); err != nil {
		log.Printf("familycore: dropping corrupt %s bucket: %v", bucket, err)
	}
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range sqliteBuckets {
		var data []byte
		switch bucket {
		case bucketCalendar:
			data, err = json.Marshal(snapshot.Events)
		case bucketTodos:
			data, err = json.Marshal(snapshot.Todos)
		case bucketShopping:
			data, err = json.Marshal(snapshot.Lists)
		case bucketFamily:
			data, err = json.Marshal(snapshot.Family)
		}
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err = tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	return tx.Commit()
}

// RunInTransaction applies fn within a transaction, then snapshots the
// committed state to SQLite. The in-memory state stays authoritative: a
// failed snapshot write is logged and never surfaced to the caller, since
// the mutation is already committed and visible.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	if pErr := s.persist(); pErr != nil {
		log.Printf("familycore: persist committed state: %v", pErr)
	}
	return res, nil
}

// ImportState replaces the state and persists it immediately so a restored
// snapshot survives a restart without waiting for the next transaction.
func (s *Store) ImportState(snapshot domain.Snapshot) {
	s.Store.ImportState(snapshot)
	if err := s.persist(); err != nil {
		log.Printf("familycore: persist imported state: %v", err)
	}
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }

// Close flushes nothing (persist is synchronous) and closes the database.
func (s *Store) Close() error { return s.db.Close() }
