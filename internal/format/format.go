package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder is rendered for missing values.
const Placeholder = "-"

// CurrencySymbols maps lower-case currency codes to display symbols.
var CurrencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"uah": "₴",
	"btc": "₿",
}

// Currency renders v with the symbol for currency and thousands separators,
// e.g. "$1,234.50". Unknown currencies get no symbol.
func Currency(v *float64, currency string, decimals int) string {
	s, ok := fixed(v, decimals)
	if !ok {
		return Placeholder
	}
	return CurrencySymbols[strings.ToLower(currency)] + group(s)
}

// Number renders v with thousands separators.
func Number(v *float64, decimals int) string {
	s, ok := fixed(v, decimals)
	if !ok {
		return Placeholder
	}
	return group(s)
}

// Percent renders v as a signed percentage, e.g. "+3.20%".
func Percent(v *float64, decimals int) string {
	s, ok := fixed(v, decimals)
	if !ok {
		return Placeholder
	}
	if *v > 0 {
		s = "+" + s
	}
	return s + "%"
}

// Value returns a pointer to v for the formatters.
func Value(v float64) *float64 {
	return &v
}

func fixed(v *float64, decimals int) (string, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "", false
	}
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(*v).StringFixed(int32(decimals)), true
}

// group inserts "," every three digits of the integer part of a plain
// decimal string.
func group(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}
