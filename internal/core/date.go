package core

import (
	"fmt"
	"time"
)

// DateKey is a canonical YYYY-MM-DD calendar date string. It is both
// the savings ledger key and the expense filter field. Keys are kept
// as strings on purpose: period filters work by string prefix, and a
// malformed key must degrade to "matches nothing", never to an error.
type DateKey string

const dateKeyLayout = "2006-01-02"

// NewDateKey formats t as a date key in t's location.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey validates s as a calendar date.
func ParseDateKey(s string) (DateKey, error) {
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateKey(s), nil
}

// Valid reports whether the key is a syntactically valid calendar date.
func (k DateKey) Valid() bool {
	_, err := time.Parse(dateKeyLayout, string(k))
	return err == nil
}

// Time parses the key; the zero time is returned for malformed keys.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(dateKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Period is the currently viewed year and month, scoping the monthly
// and annual aggregations.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Prefix returns the zero-padded "YYYY-MM" prefix used to scope
// monthly expense filters.
func (p Period) Prefix() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Key returns the date key for a day within the period.
func (p Period) Key(day int) DateKey {
	return DateKey(fmt.Sprintf("%s-%02d", p.Prefix(), day))
}

// Next steps one month forward, rolling the year over.
func (p Period) Next() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return PeriodOf(t)
}

// Prev steps one month back.
func (p Period) Prev() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return PeriodOf(t)
}

// Days returns the number of days in the month.
func (p Period) Days() int {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// FirstWeekday returns the weekday of the first of the month, for
// calendar grid layout.
func (p Period) FirstWeekday() time.Weekday {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func (p Period) String() string {
	return p.Prefix()
}
