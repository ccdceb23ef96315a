package money

import (
	"math"
	"testing"
)

// TestComputeTotals tests the contract pricing breakdown
func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		base         int64
		items        []LineItem
		rate         float64
		wantSubtotal int64
		wantTax      int64
		wantTotal    int64
	}{
		{
			name:         "Base package with one add-on at 22% VAT",
			base:         100000, // 1000 €
			items:        []LineItem{{Label: "LED board", PriceCents: 20000}},
			rate:         22,
			wantSubtotal: 120000,
			wantTax:      26400,
			wantTotal:    146400,
		},
		{
			name:         "No add-ons, zero rate",
			base:         50000,
			items:        nil,
			rate:         0,
			wantSubtotal: 50000,
			wantTax:      0,
			wantTotal:    50000,
		},
		{
			name: "Multiple add-ons",
			base: 100000,
			items: []LineItem{
				{Label: "Shirt placement", PriceCents: 30000},
				{Label: "Hospitality", PriceCents: 15000},
			},
			rate:         22,
			wantSubtotal: 145000,
			wantTax:      31900,
			wantTotal:    176900,
		},
		{
			name:         "Negative base clamps to zero",
			base:         -5000,
			items:        []LineItem{{PriceCents: 10000}},
			rate:         22,
			wantSubtotal: 10000,
			wantTax:      2200,
			wantTotal:    12200,
		},
		{
			name:         "Negative add-on clamps to zero",
			base:         10000,
			items:        []LineItem{{PriceCents: -999}},
			rate:         10,
			wantSubtotal: 10000,
			wantTax:      1000,
			wantTotal:    11000,
		},
		{
			name:         "Rate above 100 clamps to 100",
			base:         10000,
			items:        nil,
			rate:         150,
			wantSubtotal: 10000,
			wantTax:      10000,
			wantTotal:    20000,
		},
		{
			name:         "Negative rate clamps to zero",
			base:         10000,
			items:        nil,
			rate:         -5,
			wantSubtotal: 10000,
			wantTax:      0,
			wantTotal:    10000,
		},
		{
			name:         "Half-up rounding at the cent",
			base:         505, // 5.05 € at 10% -> 50.5 cents -> 51
			items:        nil,
			rate:         10,
			wantSubtotal: 505,
			wantTax:      51,
			wantTotal:    556,
		},
		{
			name:         "All zero",
			base:         0,
			items:        nil,
			rate:         22,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.base, tt.items, tt.rate)
			if got.SubtotalCents != tt.wantSubtotal {
				t.Errorf("SubtotalCents = %d, want %d", got.SubtotalCents, tt.wantSubtotal)
			}
			if got.TaxCents != tt.wantTax {
				t.Errorf("TaxCents = %d, want %d", got.TaxCents, tt.wantTax)
			}
			if got.TotalCents != tt.wantTotal {
				t.Errorf("TotalCents = %d, want %d", got.TotalCents, tt.wantTotal)
			}
		})
	}
}

// TestComputeTotalsInvariant checks Total == Subtotal + Tax and Tax >= 0
// across a sweep of inputs.
func TestComputeTotalsInvariant(t *testing.T) {
	bases := []int64{0, 1, 99, 505, 10000, 123456, 99999999}
	itemPrices := []int64{0, 1, 250, 9999, 500000}
	rates := []float64{0, 4, 10, 21.5, 22, 50, 100}

	for _, base := range bases {
		for _, price := range itemPrices {
			for _, rate := range rates {
				got := ComputeTotals(base, []LineItem{{PriceCents: price}}, rate)
				if got.TotalCents != got.SubtotalCents+got.TaxCents {
					t.Fatalf("ComputeTotals(%d, %d, %v): total %d != subtotal %d + tax %d",
						base, price, rate, got.TotalCents, got.SubtotalCents, got.TaxCents)
				}
				if got.TaxCents < 0 {
					t.Fatalf("ComputeTotals(%d, %d, %v): negative tax %d", base, price, rate, got.TaxCents)
				}
			}
		}
	}
}

// TestComputeTotalsMonotonic checks that raising a single line item price never
// lowers subtotal or total.
func TestComputeTotalsMonotonic(t *testing.T) {
	const base = 100000
	const rate = 22.0

	prev := ComputeTotals(base, []LineItem{{PriceCents: 0}, {PriceCents: 5000}}, rate)
	for price := int64(100); price <= 100000; price += 4973 {
		got := ComputeTotals(base, []LineItem{{PriceCents: price}, {PriceCents: 5000}}, rate)
		if got.SubtotalCents < prev.SubtotalCents {
			t.Fatalf("subtotal decreased: %d -> %d at price %d", prev.SubtotalCents, got.SubtotalCents, price)
		}
		if got.TotalCents < prev.TotalCents {
			t.Fatalf("total decreased: %d -> %d at price %d", prev.TotalCents, got.TotalCents, price)
		}
		prev = got
	}
}

// TestMonthlyRateCents tests duration spreading
func TestMonthlyRateCents(t *testing.T) {
	tests := []struct {
		name   string
		total  int64
		months int
		want   int64
	}{
		{"Exact division", 120000, 12, 10000},
		{"Rounds half up", 100000, 3, 33333},
		{"One month", 5000, 1, 5000},
		{"Zero months treated as one", 5000, 0, 5000},
		{"Negative months treated as one", 5000, -3, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyRateCents(tt.total, tt.months); got != tt.want {
				t.Errorf("MonthlyRateCents(%d, %d) = %d, want %d", tt.total, tt.months, got, tt.want)
			}
		})
	}
}

// TestParseAmount tests whole-euro input parsing
func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1500", 150000},
		{"€ 1.500", 150000},
		{"1,500", 150000},
		{"  42  ", 4200},
		{"abc", 0},
		{"", 0},
		{"-300", 30000}, // minus sign stripped like any other non-digit
		{"0", 0},
		// Inputs past the int64 cent range saturate instead of going negative.
		{"922337203685477580", math.MaxInt64 / 100 * 100},
		{"99999999999999999999", math.MaxInt64 / 100 * 100},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseAmount(tt.input); got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseAmountNeverNegative sweeps long digit strings across the overflow
// boundary; a parsed price must stay non-negative all the way through the
// payload builder.
func TestParseAmountNeverNegative(t *testing.T) {
	input := ""
	for i := 0; i < 25; i++ {
		input += "9"
		if got := ParseAmount(input); got < 0 {
			t.Fatalf("ParseAmount(%q) = %d, want non-negative", input, got)
		}
	}
}

// TestFormatEUR tests Italian-style currency formatting
func TestFormatEUR(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{146400, "1.464,00 €"},
		{0, "0,00 €"},
		{99, "0,99 €"},
		{123456789, "1.234.567,89 €"},
		{-5000, "-50,00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatEUR(tt.cents); got != tt.want {
				t.Errorf("FormatEUR(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}
