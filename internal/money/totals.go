// Package money implements currency math for sponsorship contract pricing.
//
// All monetary amounts are handled as int64 euro cents. Form inputs accept
// whole-euro values (the web widgets strip non-digit characters), so the
// parsing helpers convert integer euros to cents. Tax is rounded half-up at
// the cent, which keeps the core invariant Total == Subtotal + Tax exact.
package money

import (
	"fmt"
	"math"
	"strings"
)

// LineItem is an optional add-on priced on top of a contract's base package
// (e.g. LED board slots, shirt placement, hospitality seats).
type LineItem struct {
	Label      string
	PriceCents int64
}

// Totals holds the display-ready monetary breakdown of a contract draft.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// ComputeTotals derives subtotal, tax and grand total from the raw pricing
// inputs of a contract draft. Negative prices are clamped to zero and the tax
// rate is clamped to [0,100]; the function is pure and never fails, so it can
// run on every keystroke of the pricing step.
func ComputeTotals(basePriceCents int64, items []LineItem, taxRatePercent float64) Totals {
	subtotal := clampNonNegative(basePriceCents)
	for _, item := range items {
		subtotal += clampNonNegative(item.PriceCents)
	}

	rate := taxRatePercent
	if rate < 0 {
		rate = 0
	}
	if rate > 100 {
		rate = 100
	}

	tax := roundHalfUp(float64(subtotal) * rate / 100)

	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}
}

// MonthlyRateCents spreads a total over a contract duration, rounding half-up
// at the cent. Durations below one month are treated as one month.
func MonthlyRateCents(totalCents int64, months int) int64 {
	if months < 1 {
		months = 1
	}
	return roundHalfUp(float64(totalCents) / float64(months))
}

// ParseAmount converts a whole-euro form input to cents. Every non-digit rune
// is stripped before parsing, matching the price widgets' behavior, so
// "€ 1.500", "1500" and "1,500" all yield 150000. An input with no digits
// yields zero.
func ParseAmount(s string) int64 {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	// Saturate at the largest euro amount whose cent value fits in int64;
	// the bound also keeps the accumulation below overflow.
	const maxEuros = math.MaxInt64 / 100
	var euros int64
	for _, r := range digits.String() {
		euros = euros*10 + int64(r-'0')
		if euros > maxEuros {
			return maxEuros * 100
		}
	}
	return euros * 100
}

// FormatEUR renders cents as an Italian-style euro amount ("1.464,00 €").
func FormatEUR(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	euros := cents / 100
	rem := cents % 100

	grouped := groupThousands(euros)
	out := fmt.Sprintf("%s,%02d €", grouped, rem)
	if negative {
		return "-" + out
	}
	return out
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
