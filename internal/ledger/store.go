// Package ledger holds the canonical in-memory state for the four
// identity-scoped collections and exposes the only legal mutation
// operations on them. The store performs no I/O: persistence and sync
// are layered on top through the observer hooks.
package ledger

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

// Collection names the four record sets a change event can refer to.
type Collection string

const (
	CollectionSavings  Collection = "savings"
	CollectionExpenses Collection = "expenses"
	CollectionWishlist Collection = "wishlist"
	CollectionSettings Collection = "settings"
)

// Collections lists all four in document order.
var Collections = []Collection{
	CollectionSavings,
	CollectionExpenses,
	CollectionWishlist,
	CollectionSettings,
}

// Event is published after a mutation completes. Observers never see a
// partially applied mutation.
type Event struct {
	Collection Collection
}

// Observer receives change events. Observers run synchronously on the
// mutating call, after the store's state is fully consistent.
type Observer func(Event)

// Store is the single shared mutable resource of the system. Invalid
// input is rejected as a silent no-op at this boundary: callers see
// unchanged state, never an error.
type Store struct {
	mu    sync.Mutex
	state core.State

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObs   int
}

func New() *Store {
	return &Store{
		state:     core.EmptyState(),
		observers: map[int]Observer{},
	}
}

// Watch registers an observer and returns its removal func.
func (s *Store) Watch(fn Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) notify(c Collection) {
	s.obsMu.Lock()
	obs := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	s.obsMu.Unlock()
	for _, fn := range obs {
		fn(Event{Collection: c})
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() core.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetSavingsEntry upserts or deletes one savings entry. The empty
// string is the deletion sentinel: it removes the key entirely rather
// than zeroing it. Non-numeric or negative input leaves prior state
// untouched.
func (s *Store) SetSavingsEntry(key core.DateKey, raw string) bool {
	if !key.Valid() {
		return false
	}
	raw = strings.TrimSpace(raw)

	s.mu.Lock()
	if raw == "" {
		if _, ok := s.state.Savings[key]; !ok {
			s.mu.Unlock()
			return false
		}
		delete(s.state.Savings, key)
		s.mu.Unlock()
		s.notify(CollectionSavings)
		return true
	}

	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || !core.ValidAmount(amount) {
		s.mu.Unlock()
		return false
	}
	s.state.Savings[key] = amount
	s.mu.Unlock()
	s.notify(CollectionSavings)
	return true
}

// AddExpense validates, assigns a fresh ID, defaults the title, and
// appends. Insertion order is the display order. The stored record is
// returned so callers can reference its ID.
func (s *Store) AddExpense(e core.Expense) (core.Expense, bool) {
	if e.Category == "" {
		e.Category = core.CategoryFood
	}
	if e.Method == "" {
		e.Method = core.MethodCash
	}
	if strings.TrimSpace(e.Title) == "" {
		e.Title = core.DefaultTitle
	}
	if e.Validate() != nil {
		return core.Expense{}, false
	}
	e.ID = uuid.NewString()

	s.mu.Lock()
	s.state.Expenses = append(s.state.Expenses, e)
	s.mu.Unlock()
	s.notify(CollectionExpenses)
	return e, true
}

// RemoveExpense deletes by ID; absent IDs are a no-op.
func (s *Store) RemoveExpense(id string) bool {
	s.mu.Lock()
	removed := false
	for i, e := range s.state.Expenses {
		if e.ID == id {
			s.state.Expenses = append(s.state.Expenses[:i:i], s.state.Expenses[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.notify(CollectionExpenses)
	}
	return removed
}

// AddWishlistItem validates, assigns a fresh ID and appends.
func (s *Store) AddWishlistItem(w core.WishItem) (core.WishItem, bool) {
	if w.Validate() != nil {
		return core.WishItem{}, false
	}
	w.ID = uuid.NewString()

	s.mu.Lock()
	s.state.Wishlist = append(s.state.Wishlist, w)
	s.mu.Unlock()
	s.notify(CollectionWishlist)
	return w, true
}

// RemoveWishlistItem deletes by ID; absent IDs are a no-op.
func (s *Store) RemoveWishlistItem(id string) bool {
	s.mu.Lock()
	removed := false
	for i, w := range s.state.Wishlist {
		if w.ID == id {
			s.state.Wishlist = append(s.state.Wishlist[:i:i], s.state.Wishlist[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.notify(CollectionWishlist)
	}
	return removed
}

// SetGoal replaces the annual target. NaN, infinite or negative values
// are rejected; zero is allowed and handled by the progress clamp.
func (s *Store) SetGoal(goal float64) bool {
	if !core.ValidAmount(goal) {
		return false
	}
	s.mu.Lock()
	s.state.Settings.Goal = goal
	s.mu.Unlock()
	s.notify(CollectionSettings)
	return true
}

// SetCurrency replaces the display currency.
func (s *Store) SetCurrency(c core.Currency) bool {
	if !c.Valid() {
		return false
	}
	s.mu.Lock()
	s.state.Settings.Currency = c
	s.mu.Unlock()
	s.notify(CollectionSettings)
	return true
}

// ReplaceSavings overwrites the savings ledger wholesale. Inbound sync
// is the only caller; a nil map installs the empty default.
func (s *Store) ReplaceSavings(m map[core.DateKey]float64) {
	if m == nil {
		m = map[core.DateKey]float64{}
	}
	s.mu.Lock()
	s.state.Savings = m
	s.mu.Unlock()
	s.notify(CollectionSavings)
}

// ReplaceExpenses overwrites the expense collection wholesale.
func (s *Store) ReplaceExpenses(records []core.Expense) {
	s.mu.Lock()
	s.state.Expenses = records
	s.mu.Unlock()
	s.notify(CollectionExpenses)
}

// ReplaceWishlist overwrites the wishlist wholesale.
func (s *Store) ReplaceWishlist(items []core.WishItem) {
	s.mu.Lock()
	s.state.Wishlist = items
	s.mu.Unlock()
	s.notify(CollectionWishlist)
}

// MergeSettings applies the settings document. The two fields arrive
// in one document but merge independently: a nil pointer leaves the
// current value in place.
func (s *Store) MergeSettings(goal *float64, currency *core.Currency) {
	s.mu.Lock()
	changed := false
	if goal != nil && core.ValidAmount(*goal) {
		s.state.Settings.Goal = *goal
		changed = true
	}
	if currency != nil && currency.Valid() {
		s.state.Settings.Currency = *currency
		changed = true
	}
	s.mu.Unlock()
	if changed {
		s.notify(CollectionSettings)
	}
}

// Reset atomically replaces all four collections with empty defaults.
// Used on identity switch so that no data from the previous identity
// stays visible under the next one.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = core.EmptyState()
	s.mu.Unlock()
	for _, c := range Collections {
		s.notify(c)
	}
}
