package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"finops/lease-recon/internal/dateutils"
)

func tier(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestContractRentYear(t *testing.T) {
	c := Contract{RentYears: []decimal.NullDecimal{tier("100"), {}, tier("0")}}

	t.Run("present tier", func(t *testing.T) {
		amount, ok := c.RentYear(1)
		assert.True(t, ok)
		assert.Equal(t, "100.00", amount.StringFixed(2))
	})

	t.Run("absent tier", func(t *testing.T) {
		_, ok := c.RentYear(2)
		assert.False(t, ok)
	})

	t.Run("present zero tier", func(t *testing.T) {
		amount, ok := c.RentYear(3)
		assert.True(t, ok)
		assert.True(t, amount.IsZero())
	})

	t.Run("out of range", func(t *testing.T) {
		_, ok := c.RentYear(0)
		assert.False(t, ok)
		_, ok = c.RentYear(4)
		assert.False(t, ok)
	})
}

func TestContractPresentRentYears(t *testing.T) {
	c := Contract{RentYears: []decimal.NullDecimal{tier("100"), {}, tier("0"), tier("200")}}
	assert.Equal(t, 2, c.PresentRentYears())
}

func TestContractHasDelivery(t *testing.T) {
	assert.False(t, Contract{}.HasDelivery())
	assert.True(t, Contract{DeliveryDate: dateutils.Date(2025, time.May, 12)}.HasDelivery())
}

func TestReportingWindow(t *testing.T) {
	w := NewReportingWindow(dateutils.Date(2025, time.August, 17), dateutils.Date(2025, time.October, 3))

	assert.Equal(t, dateutils.Date(2025, time.August, 1), w.Start)
	assert.Equal(t, dateutils.Date(2025, time.October, 1), w.End)
	assert.Equal(t, 3, w.Months())
	assert.Equal(t, "2025-08..2025-10", w.String())

	start, end := w.Expand()
	assert.Equal(t, dateutils.Date(2025, time.August, 1), start)
	assert.Equal(t, dateutils.Date(2025, time.October, 31), end)
}

func TestParseNullAmount(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expectedOk bool
		valid      bool
		value      string
	}{
		{"Plain integer", "12000", true, true, "12000"},
		{"Decimal", "387.10", true, true, "387.1"},
		{"Thousands separators", "1,200,000.50", true, true, "1200000.5"},
		{"Whitespace", "  42  ", true, true, "42"},
		{"Empty is absent", "", true, false, ""},
		{"Blank is absent", "   ", true, false, ""},
		{"Garbage is absent with warning", "n/a", false, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			value, ok := ParseNullAmount(tc.input)
			assert.Equal(t, tc.expectedOk, ok)
			assert.Equal(t, tc.valid, value.Valid)
			if tc.valid {
				assert.Equal(t, tc.value, value.Decimal.String())
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, "1500.00", ParseAmount("1,500").StringFixed(2))
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("not a number").IsZero())
}
