// Package bridge reconciles the in-memory ledger with the remote
// document store: inbound live snapshots are applied into the ledger,
// outbound mutations are coalesced behind a debounce timer and written
// back as four merge-upserts. The bridge also owns the identity
// lifecycle transition — on every identity change it tears down
// subscriptions, clears the ledger and resubscribes.
package bridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuuhea417/bear-365-saving/internal/core"
	"github.com/tuuhea417/bear-365-saving/internal/docstore"
	"github.com/tuuhea417/bear-365-saving/internal/identity"
	"github.com/tuuhea417/bear-365-saving/internal/ledger"
	applog "github.com/tuuhea417/bear-365-saving/internal/log"
)

// State describes the bridge's position in its per-identity lifecycle.
type State int

const (
	// StateDetached means no identity drives the bridge; mutations stay
	// in memory and nothing is persisted.
	StateDetached State = iota
	// StateSubscribing means the four inbound subscriptions are open
	// but no snapshot has been applied yet.
	StateSubscribing
	// StateSynced means the store has delivered at least one snapshot,
	// existing or not.
	StateSynced
)

func (s State) String() string {
	switch s {
	case StateSubscribing:
		return "subscribing"
	case StateSynced:
		return "synced"
	default:
		return "detached"
	}
}

// Config holds bridge configuration.
type Config struct {
	// AppID namespaces all document paths.
	AppID string

	// Debounce is the quiet period coalescing outbound writes. Every
	// local mutation restarts it; only the latest state is written.
	Debounce time.Duration
}

// DefaultConfig returns the contract defaults.
func DefaultConfig() Config {
	return Config{
		AppID:    "bear-365-app",
		Debounce: time.Second,
	}
}

// Bridge connects one ledger store to one document store. Construct
// with New, drive with SetIdentity, dispose with Close.
type Bridge struct {
	docs   docstore.Store
	ledger *ledger.Store
	cfg    Config
	logger *applog.Logger

	unwatch func()

	mu    sync.Mutex
	ident *identity.Identity
	state State
	gen   int // bumped on every identity change; stale work checks it
	// inboundDepth guards against echo writes: while inbound snapshots
	// are being applied into the ledger, the resulting change events
	// must not arm the outbound timer. A counter rather than a flag
	// because the four collections can echo concurrently.
	inboundDepth int
	cancel       context.CancelFunc
	unsubs       []docstore.UnsubscribeFunc
	timer        *time.Timer
}

func New(docs docstore.Store, led *ledger.Store, cfg Config, logger *applog.Logger) *Bridge {
	def := DefaultConfig()
	if cfg.AppID == "" {
		cfg.AppID = def.AppID
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	b := &Bridge{
		docs:   docs,
		ledger: led,
		cfg:    cfg,
		logger: logger.WithComponent("bridge"),
	}
	b.unwatch = led.Watch(b.onLedgerEvent)
	return b
}

// State returns the current lifecycle state.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Identity returns the identity currently driving the bridge.
func (b *Bridge) Identity() *identity.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ident == nil {
		return nil
	}
	id := *b.ident
	return &id
}

// SetIdentity switches the bridge to a new identity (or none).
// Teardown is synchronous and unconditional: all four subscriptions
// and any pending outbound write are cancelled, the echo guard is
// reset, and the ledger is cleared so no data from the previous
// identity remains visible. With a non-nil identity the bridge then
// resubscribes.
func (b *Bridge) SetIdentity(ident *identity.Identity) {
	b.mu.Lock()
	b.teardownLocked()
	b.ident = ident
	if ident == nil {
		b.state = StateDetached
		b.mu.Unlock()
		b.applyGuarded(b.ledger.Reset)
		b.logger.Info("Detached from identity")
		return
	}
	b.state = StateSubscribing
	gen := b.gen
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	b.mu.Unlock()

	// Replace the previous identity's view before any snapshot lands.
	b.applyGuarded(b.ledger.Reset)

	b.logger.Info("Subscribing to remote documents",
		"user_id", ident.ID,
		"anonymous", ident.IsAnonymous)

	var unsubs []docstore.UnsubscribeFunc
	for _, col := range ledger.Collections {
		col := string(col)
		path := docstore.Path(b.cfg.AppID, ident.ID, col)
		unsub, err := b.docs.Subscribe(ctx, path, func(snap docstore.Snapshot) {
			b.applyInbound(gen, col, snap)
		})
		if err != nil {
			// Non-fatal: the other collections keep syncing and reads
			// for this one stay stale until the next identity change.
			b.logger.Error("Subscription failed", "collection", col, "error", err)
			continue
		}
		unsubs = append(unsubs, unsub)
	}

	b.mu.Lock()
	if b.gen != gen {
		// Identity changed while subscribing; drop everything.
		b.mu.Unlock()
		for _, unsub := range unsubs {
			unsub()
		}
		cancel()
		return
	}
	b.unsubs = unsubs
	b.mu.Unlock()
}

// Flush forces a pending debounced write to run immediately. A no-op
// when nothing is pending. The returned error is best-effort
// information for interactive callers; failures are already logged and
// never retried.
func (b *Bridge) Flush(ctx context.Context) error {
	b.mu.Lock()
	if b.timer == nil {
		b.mu.Unlock()
		return nil
	}
	b.timer.Stop()
	b.timer = nil
	ident := b.ident
	b.mu.Unlock()
	if ident == nil {
		return nil
	}
	return b.writeOut(ctx, ident)
}

// Close detaches the bridge and stops observing the ledger.
func (b *Bridge) Close() {
	b.unwatch()
	b.mu.Lock()
	b.teardownLocked()
	b.ident = nil
	b.state = StateDetached
	b.mu.Unlock()
}

// teardownLocked cancels subscriptions and any pending outbound timer.
// A write that was merely scheduled never survives an identity switch.
func (b *Bridge) teardownLocked() {
	b.gen++
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	for _, unsub := range b.unsubs {
		unsub()
	}
	b.unsubs = nil
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.inboundDepth = 0
}

// applyGuarded runs a ledger mutation with the echo guard held, so
// the resulting change events never schedule an outbound write.
func (b *Bridge) applyGuarded(fn func()) {
	b.mu.Lock()
	b.inboundDepth++
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		if b.inboundDepth > 0 {
			b.inboundDepth--
		}
		b.mu.Unlock()
	}()
	fn()
}

// onLedgerEvent observes ledger mutations. Local mutations (re)arm the
// debounce timer; changes the bridge itself applied from inbound
// snapshots are suppressed by the echo guard.
func (b *Bridge) onLedgerEvent(ledger.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inboundDepth > 0 || b.ident == nil {
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	gen := b.gen
	b.timer = time.AfterFunc(b.cfg.Debounce, func() { b.fire(gen) })
}

func (b *Bridge) fire(gen int) {
	b.mu.Lock()
	if gen != b.gen || b.ident == nil {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	ident := b.ident
	b.mu.Unlock()

	if err := b.writeOut(context.Background(), ident); err != nil {
		// Already logged per collection; the next mutation's debounce
		// cycle is the implicit retry path.
		return
	}
}

// writeOut performs the four independent merge-upserts against the
// identity's documents, each carrying the latest ledger state.
func (b *Bridge) writeOut(ctx context.Context, ident *identity.Identity) error {
	snap := b.ledger.Snapshot()
	expenses := snap.Expenses
	if expenses == nil {
		expenses = []core.Expense{}
	}
	wishlist := snap.Wishlist
	if wishlist == nil {
		wishlist = []core.WishItem{}
	}

	docs := map[string]map[string]any{
		docstore.CollectionSavings:  {"data": snap.Savings},
		docstore.CollectionExpenses: {"data": expenses},
		docstore.CollectionWishlist: {"data": wishlist},
		docstore.CollectionSettings: {
			"goal":     snap.Settings.Goal,
			"currency": snap.Settings.Currency,
		},
	}

	// Plain group, no shared cancellation: one failed collection must
	// not abort the other three.
	var g errgroup.Group
	for col, doc := range docs {
		path := docstore.Path(b.cfg.AppID, ident.ID, col)
		g.Go(func() error {
			if err := b.docs.Upsert(ctx, path, doc); err != nil {
				b.logger.Error("Outbound write failed", "collection", col, "error", err)
				return err
			}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		b.logger.Debug("Persisted ledger state", "user_id", ident.ID)
	}
	return err
}

// applyInbound installs one remote snapshot into the ledger. Missing
// documents leave current state untouched so a transient "not found"
// never wipes pre-sync defaults; a present document with a missing or
// malformed data field counts as an empty collection.
func (b *Bridge) applyInbound(gen int, collection string, snap docstore.Snapshot) {
	b.mu.Lock()
	if gen != b.gen || b.ident == nil {
		b.mu.Unlock()
		return
	}
	b.state = StateSynced
	if !snap.Exists {
		// Absent document: leave current state (defaults or data from a
		// still-arriving burst) untouched.
		b.mu.Unlock()
		return
	}
	b.inboundDepth++
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		if b.inboundDepth > 0 {
			b.inboundDepth--
		}
		b.mu.Unlock()
	}()

	switch collection {
	case docstore.CollectionSavings:
		var doc struct {
			Data map[core.DateKey]float64 `json:"data"`
		}
		b.decode(collection, snap.Data, &doc)
		b.ledger.ReplaceSavings(doc.Data)
	case docstore.CollectionExpenses:
		var doc struct {
			Data []core.Expense `json:"data"`
		}
		b.decode(collection, snap.Data, &doc)
		b.ledger.ReplaceExpenses(doc.Data)
	case docstore.CollectionWishlist:
		var doc struct {
			Data []core.WishItem `json:"data"`
		}
		b.decode(collection, snap.Data, &doc)
		b.ledger.ReplaceWishlist(doc.Data)
	case docstore.CollectionSettings:
		var doc struct {
			Goal     *float64       `json:"goal"`
			Currency *core.Currency `json:"currency"`
		}
		b.decode(collection, snap.Data, &doc)
		b.ledger.MergeSettings(doc.Goal, doc.Currency)
	}
}

func (b *Bridge) decode(collection string, data []byte, out any) {
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		b.logger.Warn("Malformed remote document, treating as empty",
			"collection", collection, "error", err)
	}
}
