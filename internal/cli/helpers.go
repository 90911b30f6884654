package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tuuhea417/bear-365-saving/internal/core"
)

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !core.ValidAmount(v) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// parsePeriod accepts "YYYY-MM"; empty means the current month.
func parsePeriod(s string) (core.Period, error) {
	if s == "" {
		return core.PeriodOf(time.Now()), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return core.Period{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return core.PeriodOf(t), nil
}
