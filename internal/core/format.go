package core

import (
	"fmt"
	"math"
	"strings"
)

// FormatAmount renders an amount with its currency prefix, e.g.
// "NT$ 1,000" or "₩ 52,000". Currency is a display label only; no
// conversion happens anywhere in this system.
func FormatAmount(v float64, c Currency) string {
	switch c {
	case CurrencyTWD:
		return "NT$ " + groupThousands(v)
	case CurrencyKRW:
		return "₩ " + groupThousands(v)
	case CurrencyJPY, CurrencyCNY:
		return "¥ " + groupThousands(v)
	case CurrencyUSD:
		return "$ " + groupThousands(v)
	default:
		return groupThousands(v)
	}
}

// groupThousands formats v with comma separators. Fractions are kept
// to two places and trimmed; the common case is whole amounts.
func groupThousands(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	neg := v < 0
	v = math.Round(math.Abs(v)*100) / 100

	whole := int64(v)
	frac := v - float64(whole)

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	out := b.String()

	if frac >= 0.005 {
		out += strings.TrimRight(fmt.Sprintf("%.2f", frac), "0")[1:]
	}
	if neg {
		out = "-" + out
	}
	return out
}
