package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a string to a decimal amount, tolerating thousands
// separators and surrounding whitespace. Empty or unparseable strings yield
// zero; callers that must distinguish absence use ParseNullAmount.
func ParseAmount(s string) decimal.Decimal {
	d, _ := ParseNullAmount(s)
	return d.Decimal
}

// ParseNullAmount converts a string to a nullable decimal amount. An empty
// string is absent (Valid=false); an unparseable string is absent as well,
// with ok=false so callers can warn.
func ParseNullAmount(s string) (decimal.NullDecimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, true
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, true
}
