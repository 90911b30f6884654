package ledger

import (
	"testing"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func TestSetSavingsEntry(t *testing.T) {
	tests := []struct {
		name    string
		key     core.DateKey
		raw     string
		want    bool
		wantVal float64
		present bool
	}{
		{"valid amount", "2026-01-15", "120", true, 120, true},
		{"fractional", "2026-01-15", "99.5", true, 99.5, true},
		{"zero allowed", "2026-01-15", "0", true, 0, true},
		{"whitespace trimmed", "2026-01-15", " 40 ", true, 40, true},
		{"negative rejected", "2026-01-15", "-5", false, 0, false},
		{"non numeric rejected", "2026-01-15", "abc", false, 0, false},
		{"nan rejected", "2026-01-15", "NaN", false, 0, false},
		{"infinity rejected", "2026-01-15", "+Inf", false, 0, false},
		{"bad key rejected", "2026-13-99", "10", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			if got := s.SetSavingsEntry(tt.key, tt.raw); got != tt.want {
				t.Fatalf("SetSavingsEntry = %v, want %v", got, tt.want)
			}
			v, ok := s.Snapshot().Savings[tt.key]
			if ok != tt.present {
				t.Fatalf("key present = %v, want %v", ok, tt.present)
			}
			if ok && v != tt.wantVal {
				t.Errorf("stored value = %v, want %v", v, tt.wantVal)
			}
		})
	}
}

func TestSetSavingsEntryDeleteSentinel(t *testing.T) {
	s := New()
	s.SetSavingsEntry("2026-01-15", "120")

	if !s.SetSavingsEntry("2026-01-15", "") {
		t.Fatal("deleting an existing entry should report a change")
	}
	if _, ok := s.Snapshot().Savings["2026-01-15"]; ok {
		t.Error("deleted key must be absent from the map, not present with zero")
	}

	// Deleting an absent key changes nothing.
	if s.SetSavingsEntry("2026-01-15", "") {
		t.Error("deleting an absent entry should be a no-op")
	}
}

func TestAddExpenseDefaults(t *testing.T) {
	s := New()
	e, ok := s.AddExpense(core.Expense{Date: "2026-05-01", Amount: 80})
	if !ok {
		t.Fatal("AddExpense rejected a valid record")
	}
	if e.ID == "" {
		t.Error("expense should get a generated ID")
	}
	if e.Title != core.DefaultTitle {
		t.Errorf("Title = %q, want %q", e.Title, core.DefaultTitle)
	}
	if e.Category != core.CategoryFood {
		t.Errorf("Category = %q, want food", e.Category)
	}
	if e.Method != core.MethodCash {
		t.Errorf("Method = %q, want cash", e.Method)
	}
}

func TestAddExpenseRejectsInvalid(t *testing.T) {
	s := New()
	tests := []struct {
		name string
		e    core.Expense
	}{
		{"bad date", core.Expense{Date: "soon", Amount: 10}},
		{"zero amount", core.Expense{Date: "2026-05-01", Amount: 0}},
		{"bad category", core.Expense{Date: "2026-05-01", Amount: 10, Category: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.AddExpense(tt.e); ok {
				t.Error("invalid expense accepted")
			}
		})
	}
	if got := s.Snapshot().Expenses; len(got) != 0 {
		t.Errorf("rejected records leaked into state: %v", got)
	}
}

func TestRemoveExpense(t *testing.T) {
	s := New()
	e, _ := s.AddExpense(core.Expense{Date: "2026-05-01", Amount: 10})
	s.AddExpense(core.Expense{Date: "2026-05-02", Amount: 20})

	if !s.RemoveExpense(e.ID) {
		t.Fatal("RemoveExpense failed for an existing ID")
	}
	if s.RemoveExpense(e.ID) {
		t.Error("removing twice should be a no-op")
	}
	if got := s.Snapshot().Expenses; len(got) != 1 {
		t.Errorf("expenses remaining = %d, want 1", len(got))
	}
}

func TestWishlistRoundTrip(t *testing.T) {
	s := New()
	w, ok := s.AddWishlistItem(core.WishItem{Name: "chair", Price: 4500, Platform: "momo"})
	if !ok {
		t.Fatal("AddWishlistItem rejected a valid item")
	}
	if w.ID == "" {
		t.Error("item should get a generated ID")
	}
	if _, ok := s.AddWishlistItem(core.WishItem{Name: "", Price: 10}); ok {
		t.Error("nameless item accepted")
	}
	if !s.RemoveWishlistItem(w.ID) {
		t.Error("RemoveWishlistItem failed for an existing ID")
	}
	if s.RemoveWishlistItem("missing") {
		t.Error("removing a missing ID should be a no-op")
	}
}

func TestSettings(t *testing.T) {
	s := New()
	if !s.SetGoal(0) {
		t.Error("a zero goal is allowed")
	}
	if s.SetGoal(-1) {
		t.Error("a negative goal must be rejected")
	}
	if !s.SetCurrency(core.CurrencyKRW) {
		t.Error("SetCurrency rejected a valid code")
	}
	if s.SetCurrency("EUR") {
		t.Error("SetCurrency accepted an unsupported code")
	}
	got := s.Snapshot().Settings
	if got.Goal != 0 || got.Currency != core.CurrencyKRW {
		t.Errorf("settings = %+v", got)
	}
}

func TestObserversRunAfterMutation(t *testing.T) {
	s := New()
	var seen []Collection
	s.Watch(func(ev Event) {
		seen = append(seen, ev.Collection)
		// State must already reflect the mutation when observers run.
		if ev.Collection == CollectionSavings {
			if _, ok := s.Snapshot().Savings["2026-01-01"]; !ok {
				t.Error("observer ran before the mutation was applied")
			}
		}
	})

	s.SetSavingsEntry("2026-01-01", "10")
	s.SetGoal(5000)

	if len(seen) != 2 || seen[0] != CollectionSavings || seen[1] != CollectionSettings {
		t.Errorf("events = %v", seen)
	}
}

func TestObserverRejectedMutationSilent(t *testing.T) {
	s := New()
	fired := 0
	s.Watch(func(Event) { fired++ })

	s.SetSavingsEntry("2026-01-01", "not a number")
	s.SetGoal(-1)
	s.RemoveExpense("missing")

	if fired != 0 {
		t.Errorf("rejected mutations published %d events, want 0", fired)
	}
}

func TestWatchRemove(t *testing.T) {
	s := New()
	fired := 0
	remove := s.Watch(func(Event) { fired++ })
	s.SetGoal(10)
	remove()
	s.SetGoal(20)

	if fired != 1 {
		t.Errorf("observer fired %d times after removal, want 1", fired)
	}
}

func TestReplaceAndMerge(t *testing.T) {
	s := New()
	s.SetSavingsEntry("2026-01-01", "10")

	s.ReplaceSavings(map[core.DateKey]float64{"2026-02-02": 20})
	if got := s.Snapshot().Savings; len(got) != 1 || got["2026-02-02"] != 20 {
		t.Errorf("ReplaceSavings result = %v", got)
	}

	s.ReplaceSavings(nil)
	if got := s.Snapshot().Savings; got == nil || len(got) != 0 {
		t.Errorf("ReplaceSavings(nil) should install an empty map, got %v", got)
	}

	s.ReplaceExpenses([]core.Expense{{ID: "x", Date: "2026-01-01", Amount: 5}})
	s.ReplaceWishlist([]core.WishItem{{ID: "y", Name: "n", Price: 1}})

	goal := 42.0
	s.MergeSettings(&goal, nil)
	if got := s.Snapshot().Settings; got.Goal != 42 || got.Currency != core.CurrencyTWD {
		t.Errorf("partial merge = %+v", got)
	}

	cur := core.CurrencyUSD
	s.MergeSettings(nil, &cur)
	if got := s.Snapshot().Settings; got.Goal != 42 || got.Currency != core.CurrencyUSD {
		t.Errorf("second merge = %+v", got)
	}

	bad := core.Currency("EUR")
	fired := 0
	s.Watch(func(Event) { fired++ })
	s.MergeSettings(nil, &bad)
	if fired != 0 {
		t.Error("merge with only invalid fields should publish nothing")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.SetSavingsEntry("2026-01-01", "10")
	s.AddExpense(core.Expense{Date: "2026-01-01", Amount: 5})
	s.AddWishlistItem(core.WishItem{Name: "n", Price: 1})
	s.SetGoal(777)

	var events []Collection
	s.Watch(func(ev Event) { events = append(events, ev.Collection) })

	s.Reset()

	got := s.Snapshot()
	if len(got.Savings) != 0 || len(got.Expenses) != 0 || len(got.Wishlist) != 0 {
		t.Errorf("Reset left data behind: %+v", got)
	}
	if got.Settings.Goal != core.DefaultGoal {
		t.Errorf("Reset goal = %v, want default", got.Settings.Goal)
	}
	if len(events) != len(Collections) {
		t.Errorf("Reset published %d events, want %d", len(events), len(Collections))
	}
}
