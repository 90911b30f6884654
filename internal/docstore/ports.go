// Package docstore defines the port for the per-identity remote
// document store. The sync bridge treats the store as a black box:
// live subscription per document plus field-level merge upserts.
package docstore

import (
	"context"
	"fmt"
)

// Collection names understood by every adapter.
const (
	CollectionSavings  = "savings"
	CollectionExpenses = "expenses"
	CollectionWishlist = "wishlist"
	CollectionSettings = "settings"
)

// Path returns the stable identity-scoped document address.
func Path(appID, userID, collection string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/data/%s", appID, userID, collection)
}

type (
	// Snapshot is the latest value of one document. Data is the JSON
	// document body and is only meaningful when Exists is true.
	Snapshot struct {
		Exists bool
		Data   []byte
	}

	// UnsubscribeFunc tears down a live subscription.
	UnsubscribeFunc func()

	// Store is a per-identity key-value document service.
	//
	// Subscribe delivers the document's current value immediately and
	// again on every subsequent change, until the returned func is
	// called or ctx is cancelled. Snapshots for a given path arrive in
	// store delivery order.
	//
	// Upsert merges doc's top-level fields into the document, creating
	// it if absent. Fields not named in doc are left alone, so two
	// writers touching unrelated fields of one document do not clobber
	// each other.
	Store interface {
		Subscribe(ctx context.Context, path string, fn func(Snapshot)) (UnsubscribeFunc, error)
		Upsert(ctx context.Context, path string, doc map[string]any) error
		Close() error
	}
)
