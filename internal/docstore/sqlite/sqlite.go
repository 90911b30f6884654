// Package sqlite persists documents in a local SQLite file. Documents
// are stored as JSON bodies keyed by path, with field-level merge on
// upsert. Live subscriptions cover in-process changes: the current
// value is delivered on subscribe and again after every local upsert.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tuuhea417/bear-365-saving/internal/docstore"
)

type subscriber struct {
	path string
	fn   func(docstore.Snapshot)
}

type Store struct {
	db *sql.DB

	mu      sync.Mutex
	subs    map[int]subscriber
	nextSub int
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, subs: map[int]subscriber{}}, nil
}

func (s *Store) Subscribe(ctx context.Context, path string, fn func(docstore.Snapshot)) (docstore.UnsubscribeFunc, error) {
	snap, err := s.read(ctx, path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = subscriber{path: path, fn: fn}
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}, nil
}

func (s *Store) Upsert(ctx context.Context, path string, doc map[string]any) error {
	snap, err := s.read(ctx, path)
	if err != nil {
		return err
	}

	merged := map[string]json.RawMessage{}
	if snap.Exists {
		if err := json.Unmarshal(snap.Data, &merged); err != nil {
			return fmt.Errorf("decode document %q: %w", path, err)
		}
	}
	for k, v := range doc {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode field %q: %w", k, err)
		}
		merged[k] = raw
	}
	body, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (path, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		path, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert document %q: %w", path, err)
	}

	s.mu.Lock()
	var fns []func(docstore.Snapshot)
	for _, sub := range s.subs {
		if sub.path == path {
			fns = append(fns, sub.fn)
		}
	}
	s.mu.Unlock()

	next := docstore.Snapshot{Exists: true, Data: body}
	for _, fn := range fns {
		fn(next)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.subs = map[int]subscriber{}
	s.mu.Unlock()
	return s.db.Close()
}

func (s *Store) read(ctx context.Context, path string) (docstore.Snapshot, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE path = ?`, path).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Snapshot{}, nil
	}
	if err != nil {
		return docstore.Snapshot{}, fmt.Errorf("read document %q: %w", path, err)
	}
	return docstore.Snapshot{Exists: true, Data: []byte(body)}, nil
}
