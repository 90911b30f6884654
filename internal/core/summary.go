package core

import (
	"strconv"
	"strings"
)

// CategoryDisplay and MethodDisplay are the fixed breakdown tables:
// enum value, bilingual display label and chart color. Order here is
// the display order of the legends.
var (
	CategoryDisplay = []DisplayEntry{
		{ID: string(CategoryFood), Label: "飲食 (식사)", Color: "#D97706"},
		{ID: string(CategoryTransport), Label: "交通 (교통)", Color: "#059669"},
		{ID: string(CategoryMedical), Label: "醫療 (의료)", Color: "#DC2626"},
		{ID: string(CategoryEntertainment), Label: "娛樂 (오락)", Color: "#7C3AED"},
		{ID: string(CategoryOther), Label: "其他 (기타)", Color: "#6B7280"},
	}

	MethodDisplay = []DisplayEntry{
		{ID: string(MethodCash), Label: "現金 (현금)", Color: "#3B82F6"},
		{ID: string(MethodCard), Label: "刷卡 (카드)", Color: "#EC4899"},
	}
)

type (
	// DisplayEntry pairs an enum value with its label and color.
	DisplayEntry struct {
		ID    string
		Label string
		Color string
	}

	// Slice is one wedge of a breakdown chart.
	Slice struct {
		Name   string
		Amount float64
		Color  string
	}
)

// YearToDateSavings sums savings whose date key starts with the
// decimal year. The filter is a deliberate string-prefix match, not a
// date parse: a malformed key sharing the prefix still counts, and one
// that does not share it is silently excluded.
func YearToDateSavings(savings map[DateKey]float64, year int) float64 {
	prefix := strconv.Itoa(year)
	var total float64
	for k, v := range savings {
		if strings.HasPrefix(string(k), prefix) {
			total += v
		}
	}
	return total
}

// GoalProgressPercent returns the goal completion clamped to [0,100].
// A zero goal yields 0 rather than a division fault.
func GoalProgressPercent(saved, goal float64) float64 {
	if goal == 0 {
		return 0
	}
	pct := saved / goal * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// WishlistTotal sums the price of every wishlist item.
func WishlistTotal(items []WishItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price
	}
	return total
}

// MonthlyExpenses returns expenses whose date starts with the period's
// zero-padded "YYYY-MM" prefix, preserving insertion order.
func MonthlyExpenses(expenses []Expense, p Period) []Expense {
	prefix := p.Prefix()
	var out []Expense
	for _, e := range expenses {
		if strings.HasPrefix(string(e.Date), prefix) {
			out = append(out, e)
		}
	}
	return out
}

// DailyExpenses returns expenses recorded on exactly the given day.
func DailyExpenses(expenses []Expense, key DateKey) []Expense {
	var out []Expense
	for _, e := range expenses {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

// CategoryBreakdown sums the given expenses per category. Categories
// with a zero sum are excluded, not zero-weighted.
func CategoryBreakdown(expenses []Expense) []Slice {
	return breakdown(expenses, CategoryDisplay, func(e Expense) string { return string(e.Category) })
}

// MethodBreakdown sums the given expenses per payment method.
func MethodBreakdown(expenses []Expense) []Slice {
	return breakdown(expenses, MethodDisplay, func(e Expense) string { return string(e.Method) })
}

func breakdown(expenses []Expense, table []DisplayEntry, key func(Expense) string) []Slice {
	var out []Slice
	for _, entry := range table {
		var sum float64
		for _, e := range expenses {
			if key(e) == entry.ID {
				sum += e.Amount
			}
		}
		if sum > 0 {
			out = append(out, Slice{Name: entry.Label, Amount: sum, Color: entry.Color})
		}
	}
	return out
}
