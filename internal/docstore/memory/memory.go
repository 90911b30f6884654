// Package memory is an in-process document store. It is the default
// backend and the test double: same contract as the remote adapters,
// with synchronous snapshot delivery.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tuuhea417/bear-365-saving/internal/docstore"
)

type subscriber struct {
	path string
	fn   func(docstore.Snapshot)
}

type Store struct {
	mu      sync.Mutex
	docs    map[string]map[string]json.RawMessage
	subs    map[int]subscriber
	nextSub int
}

func New() *Store {
	return &Store{
		docs: map[string]map[string]json.RawMessage{},
		subs: map[int]subscriber{},
	}
}

// Subscribe registers fn and synchronously delivers the current value,
// with Exists false when the document has never been written.
func (s *Store) Subscribe(_ context.Context, path string, fn func(docstore.Snapshot)) (docstore.UnsubscribeFunc, error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = subscriber{path: path, fn: fn}
	snap := s.snapshotLocked(path)
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}, nil
}

// Upsert merges doc's top-level fields and notifies the path's
// subscribers with the merged value.
func (s *Store) Upsert(_ context.Context, path string, doc map[string]any) error {
	s.mu.Lock()
	existing, ok := s.docs[path]
	if !ok {
		existing = map[string]json.RawMessage{}
		s.docs[path] = existing
	}
	for k, v := range doc {
		raw, err := json.Marshal(v)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("encode field %q: %w", k, err)
		}
		existing[k] = raw
	}
	snap := s.snapshotLocked(path)
	var fns []func(docstore.Snapshot)
	for _, sub := range s.subs {
		if sub.path == path {
			fns = append(fns, sub.fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = map[int]subscriber{}
	return nil
}

func (s *Store) snapshotLocked(path string) docstore.Snapshot {
	doc, ok := s.docs[path]
	if !ok {
		return docstore.Snapshot{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return docstore.Snapshot{}
	}
	return docstore.Snapshot{Exists: true, Data: data}
}
