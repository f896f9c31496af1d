package format

import (
	"math"
	"testing"
)

func TestCurrency(t *testing.T) {
	cases := []struct {
		v        *float64
		currency string
		decimals int
		want     string
	}{
		{Value(1234.5), "usd", 2, "$1,234.50"},
		{Value(0.125), "eur", 2, "€0.13"},
		{Value(1234567.891), "USD", 0, "$1,234,568"},
		{Value(-9876.5), "uah", 1, "₴-9,876.5"},
		{Value(42), "jpy", 2, "42.00"},
		{nil, "usd", 2, "-"},
		{Value(math.NaN()), "usd", 2, "-"},
	}
	for _, tc := range cases {
		if got := Currency(tc.v, tc.currency, tc.decimals); got != tc.want {
			t.Errorf("Currency(%v, %q, %d) = %q, want %q", tc.v, tc.currency, tc.decimals, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	cases := []struct {
		v        *float64
		decimals int
		want     string
	}{
		{Value(2e9), 0, "2,000,000,000"},
		{Value(999), 0, "999"},
		{Value(1000), 0, "1,000"},
		{Value(123456.789), 2, "123,456.79"},
		{Value(math.Inf(1)), 0, "-"},
	}
	for _, tc := range cases {
		if got := Number(tc.v, tc.decimals); got != tc.want {
			t.Errorf("Number(%v, %d) = %q, want %q", *tc.v, tc.decimals, got, tc.want)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		v    *float64
		want string
	}{
		{Value(3.2), "+3.20%"},
		{Value(-1), "-1.00%"},
		{Value(0), "0.00%"},
		{nil, "-"},
	}
	for _, tc := range cases {
		if got := Percent(tc.v, 2); got != tc.want {
			t.Errorf("Percent = %q, want %q", got, tc.want)
		}
	}
}
