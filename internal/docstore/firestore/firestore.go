// Package firestore adapts Cloud Firestore to the document store
// port. The production deployment keeps each identity's four documents
// under artifacts/{app}/users/{uid}/data/{collection}; snapshot
// listeners and merge-sets map one-to-one onto the contract.
package firestore

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"github.com/tuuhea417/bear-365-saving/internal/docstore"
)

type Store struct {
	client *firestore.Client
}

// New connects to the project. credentialsFile is optional; when empty
// the ambient application-default credentials are used.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Subscribe(ctx context.Context, path string, fn func(docstore.Snapshot)) (docstore.UnsubscribeFunc, error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := s.client.Doc(path).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				// Cancelled teardown or a broken stream; either way the
				// subscription is over. The store reconnects on its own
				// for transient faults before erroring out here.
				return
			}
			out := docstore.Snapshot{Exists: snap.Exists()}
			if out.Exists {
				data, err := json.Marshal(snap.Data())
				if err != nil {
					continue
				}
				out.Data = data
			}
			fn(out)
		}
	}()

	return docstore.UnsubscribeFunc(cancel), nil
}

func (s *Store) Upsert(ctx context.Context, path string, doc map[string]any) error {
	paths := make([]firestore.FieldPath, 0, len(doc))
	for k := range doc {
		paths = append(paths, firestore.FieldPath{k})
	}
	// Top-level field merge, not MergeAll: a deep merge would resurrect
	// savings keys that were deleted locally.
	if _, err := s.client.Doc(path).Set(ctx, doc, firestore.Merge(paths...)); err != nil {
		return fmt.Errorf("merge document %q: %w", path, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
