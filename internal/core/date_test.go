package core

import (
	"testing"
	"time"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-08-28", false},
		{"2024-02-29", false},
		{"2026-02-30", true},
		{"2026-8-28", true},
		{"28-08-2026", true},
		{"", true},
		{"not a date", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseDateKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestNewDateKey(t *testing.T) {
	k := NewDateKey(time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC))
	if k != "2026-03-05" {
		t.Errorf("NewDateKey = %q, want 2026-03-05", k)
	}
}

func TestPeriodPrefix(t *testing.T) {
	tests := []struct {
		p    Period
		want string
	}{
		{Period{2026, time.January}, "2026-01"},
		{Period{2026, time.December}, "2026-12"},
		{Period{980, time.June}, "0980-06"},
	}
	for _, tt := range tests {
		if got := tt.p.Prefix(); got != tt.want {
			t.Errorf("Prefix(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPeriodKey(t *testing.T) {
	p := Period{2026, time.July}
	if got := p.Key(4); got != "2026-07-04" {
		t.Errorf("Key(4) = %q, want 2026-07-04", got)
	}
}

func TestPeriodNextPrevRollover(t *testing.T) {
	p := Period{2025, time.December}
	if next := p.Next(); next != (Period{2026, time.January}) {
		t.Errorf("Next() = %v, want 2026-01", next)
	}
	q := Period{2026, time.January}
	if prev := q.Prev(); prev != (Period{2025, time.December}) {
		t.Errorf("Prev() = %v, want 2025-12", prev)
	}
}

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		p    Period
		want int
	}{
		{Period{2026, time.January}, 31},
		{Period{2026, time.February}, 28},
		{Period{2024, time.February}, 29},
		{Period{2026, time.April}, 30},
	}
	for _, tt := range tests {
		if got := tt.p.Days(); got != tt.want {
			t.Errorf("Days(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPeriodFirstWeekday(t *testing.T) {
	// 2026-08-01 is a Saturday.
	if got := (Period{2026, time.August}).FirstWeekday(); got != time.Saturday {
		t.Errorf("FirstWeekday = %v, want Saturday", got)
	}
}
