package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/tuuhea417/bear-365-saving/internal/docstore"
)

func TestSubscribeMissingDocument(t *testing.T) {
	s := New()
	defer s.Close()

	var got docstore.Snapshot
	delivered := false
	_, err := s.Subscribe(context.Background(), "a/b", func(snap docstore.Snapshot) {
		got = snap
		delivered = true
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if !delivered {
		t.Fatal("initial snapshot not delivered")
	}
	if got.Exists {
		t.Error("missing document should deliver Exists=false")
	}
}

func TestUpsertNotifiesSubscribers(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	var snaps []docstore.Snapshot
	s.Subscribe(ctx, "p", func(snap docstore.Snapshot) { snaps = append(snaps, snap) })

	if err := s.Upsert(ctx, "p", map[string]any{"goal": 100}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d deliveries, want 2 (initial + upsert)", len(snaps))
	}
	if !snaps[1].Exists {
		t.Error("post-upsert snapshot should exist")
	}
}

func TestUpsertMergesTopLevelFields(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	s.Upsert(ctx, "p", map[string]any{"goal": 100, "currency": "TWD"})
	s.Upsert(ctx, "p", map[string]any{"goal": 200})

	var last docstore.Snapshot
	s.Subscribe(ctx, "p", func(snap docstore.Snapshot) { last = snap })

	var doc struct {
		Goal     float64 `json:"goal"`
		Currency string  `json:"currency"`
	}
	if err := json.Unmarshal(last.Data, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Goal != 200 {
		t.Errorf("goal = %v, want 200 (replaced)", doc.Goal)
	}
	if doc.Currency != "TWD" {
		t.Errorf("currency = %q, want TWD (preserved by merge)", doc.Currency)
	}
}

func TestUpsertIsolatesPaths(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	other := 0
	s.Subscribe(ctx, "other", func(docstore.Snapshot) { other++ })
	s.Upsert(ctx, "p", map[string]any{"x": 1})

	if other != 1 {
		t.Errorf("unrelated path notified %d times, want 1 (initial only)", other)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := New()
	defer s.Close()
	ctx := context.Background()

	calls := 0
	unsub, _ := s.Subscribe(ctx, "p", func(docstore.Snapshot) { calls++ })
	unsub()
	s.Upsert(ctx, "p", map[string]any{"x": 1})

	if calls != 1 {
		t.Errorf("unsubscribed fn called %d times, want 1", calls)
	}
}
