package core

import (
	"errors"
	"math"
	"testing"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{"zero", 0, true},
		{"positive", 120.5, true},
		{"negative", -1, false},
		{"nan", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
		{"negative infinity", math.Inf(-1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAmount(tt.v); got != tt.want {
				t.Errorf("ValidAmount(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Date:     "2026-03-15",
		Amount:   250,
		Title:    "lunch",
		Category: CategoryFood,
		Method:   MethodCash,
	}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"valid", func(e *Expense) {}, nil},
		{"bad date", func(e *Expense) { e.Date = "2026-13-01" }, ErrInvalidDate},
		{"not a date", func(e *Expense) { e.Date = "yesterday" }, ErrInvalidDate},
		{"zero amount", func(e *Expense) { e.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = -5 }, ErrInvalidAmount},
		{"nan amount", func(e *Expense) { e.Amount = math.NaN() }, ErrInvalidAmount},
		{"unknown category", func(e *Expense) { e.Category = "groceries" }, ErrInvalidCategory},
		{"unknown method", func(e *Expense) { e.Method = "check" }, ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWishItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    WishItem
		wantErr error
	}{
		{"valid", WishItem{Name: "keyboard", Price: 3200}, nil},
		{"empty name", WishItem{Name: "", Price: 100}, ErrEmptyName},
		{"whitespace name", WishItem{Name: "   ", Price: 100}, ErrEmptyName},
		{"zero price", WishItem{Name: "keyboard", Price: 0}, ErrInvalidAmount},
		{"negative price", WishItem{Name: "keyboard", Price: -1}, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Goal != DefaultGoal {
		t.Errorf("Goal = %v, want %v", s.Goal, DefaultGoal)
	}
	if s.Currency != CurrencyTWD {
		t.Errorf("Currency = %v, want %v", s.Currency, CurrencyTWD)
	}
}

func TestStateCloneIsDeep(t *testing.T) {
	orig := State{
		Savings:  map[DateKey]float64{"2026-01-01": 100},
		Expenses: []Expense{{ID: "a", Date: "2026-01-01", Amount: 50, Category: CategoryFood, Method: MethodCash}},
		Wishlist: []WishItem{{ID: "b", Name: "lamp", Price: 900}},
		Settings: DefaultSettings(),
	}

	clone := orig.Clone()
	clone.Savings["2026-01-02"] = 200
	clone.Expenses[0].Amount = 999
	clone.Wishlist[0].Name = "changed"

	if len(orig.Savings) != 1 {
		t.Errorf("clone mutation leaked into original savings: %v", orig.Savings)
	}
	if orig.Expenses[0].Amount != 50 {
		t.Errorf("clone mutation leaked into original expenses: %v", orig.Expenses[0])
	}
	if orig.Wishlist[0].Name != "lamp" {
		t.Errorf("clone mutation leaked into original wishlist: %v", orig.Wishlist[0])
	}
}

func TestEnumValid(t *testing.T) {
	if Category("food ").Valid() {
		t.Error("category with trailing space should be invalid")
	}
	if Currency("twd").Valid() {
		t.Error("currency codes are case sensitive")
	}
	for _, c := range []Currency{CurrencyTWD, CurrencyKRW, CurrencyJPY, CurrencyUSD, CurrencyCNY} {
		if !c.Valid() {
			t.Errorf("currency %q should be valid", c)
		}
	}
}
