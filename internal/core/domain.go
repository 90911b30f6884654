package core

import (
	"errors"
	"math"
	"strings"
)

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryMedical       Category = "medical"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

const (
	MethodCash Method = "cash"
	MethodCard Method = "card"
)

const (
	CurrencyTWD Currency = "TWD"
	CurrencyKRW Currency = "KRW"
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
	CurrencyCNY Currency = "CNY"
)

// DefaultTitle is used when an expense is recorded without one.
const DefaultTitle = "一般消費"

// DefaultGoal is the annual savings target before any settings arrive.
const DefaultGoal = 100000

type (
	Category string
	Method   string
	Currency string

	// Expense is a single spending record. Records are append-only:
	// created once, deleted by ID, never edited in place.
	Expense struct {
		ID       string   `json:"id"`
		Date     DateKey  `json:"date"`
		Amount   float64  `json:"amount"`
		Title    string   `json:"title"`
		Category Category `json:"category"`
		Method   Method   `json:"method"`
	}

	// WishItem is a wishlist entry. Image holds an optional
	// data-URL encoded thumbnail.
	WishItem struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Platform string  `json:"platform,omitempty"`
		Image    string  `json:"image,omitempty"`
	}

	// Settings is the per-identity singleton configuration.
	Settings struct {
		Goal     float64  `json:"goal"`
		Currency Currency `json:"currency"`
	}

	// State bundles the four identity-scoped collections. Savings maps
	// date keys to amounts; a day with no contribution is absent from
	// the map, never present with value zero.
	State struct {
		Savings  map[DateKey]float64
		Expenses []Expense
		Wishlist []WishItem
		Settings Settings
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date key")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidMethod   = errors.New("invalid method")
	ErrInvalidCurrency = errors.New("invalid currency")
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryMedical, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard:
		return true
	}
	return false
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyTWD, CurrencyKRW, CurrencyJPY, CurrencyUSD, CurrencyCNY:
		return true
	}
	return false
}

// DefaultSettings returns the settings in effect before the first
// remote sync completes.
func DefaultSettings() Settings {
	return Settings{Goal: DefaultGoal, Currency: CurrencyTWD}
}

// EmptyState returns a fresh state with empty collections and default
// settings, ready to receive inbound snapshots.
func EmptyState() State {
	return State{
		Savings:  map[DateKey]float64{},
		Settings: DefaultSettings(),
	}
}

// Clone returns a deep copy so that callers can read derived values
// without holding any lock over the canonical state.
func (s State) Clone() State {
	out := State{
		Savings:  make(map[DateKey]float64, len(s.Savings)),
		Settings: s.Settings,
	}
	for k, v := range s.Savings {
		out.Savings[k] = v
	}
	if s.Expenses != nil {
		out.Expenses = append([]Expense(nil), s.Expenses...)
	}
	if s.Wishlist != nil {
		out.Wishlist = append([]WishItem(nil), s.Wishlist...)
	}
	return out
}

// ValidAmount reports whether v is usable as a monetary value: finite
// and non-negative.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func (e Expense) Validate() error {
	if !e.Date.Valid() {
		return ErrInvalidDate
	}
	if !ValidAmount(e.Amount) || e.Amount == 0 {
		return ErrInvalidAmount
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if !e.Method.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

func (w WishItem) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if !ValidAmount(w.Price) || w.Price == 0 {
		return ErrInvalidAmount
	}
	return nil
}
