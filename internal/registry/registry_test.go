package registry

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finops/lease-recon/internal/models"
)

func tier(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func TestNewPadsShorterContracts(t *testing.T) {
	contracts := []models.Contract{
		{Customer: "A", RentYears: []decimal.NullDecimal{tier("100")}},
		{Customer: "B", RentYears: []decimal.NullDecimal{tier("100"), tier("200"), tier("300")}},
		{Customer: "C", RentYears: nil},
	}

	reg := New(contracts, nil, nil)
	assert.Equal(t, 3, reg.MaxLeaseYears())

	for _, c := range reg.Contracts() {
		require.Len(t, c.RentYears, 3, "contract %s", c.Customer)
	}

	// Padding is absent, not zero, and existing tiers survive in place.
	a := reg.Contracts()[0]
	assert.True(t, a.RentYears[0].Valid)
	assert.False(t, a.RentYears[1].Valid)
	assert.False(t, a.RentYears[2].Valid)
}

func TestNewKeepsLoadOrder(t *testing.T) {
	contracts := []models.Contract{
		{Customer: "Z"}, {Customer: "A"}, {Customer: "M"},
	}
	reg := New(contracts, nil, nil)

	names := make([]string, 0, 3)
	for _, c := range reg.Contracts() {
		names = append(names, c.Customer)
	}
	assert.Equal(t, []string{"Z", "A", "M"}, names)
}

func TestNewEmptyRegistry(t *testing.T) {
	reg := New(nil, nil, nil)
	assert.Equal(t, 1, reg.MaxLeaseYears())
	assert.Empty(t, reg.Contracts())
	assert.Empty(t, reg.Bank())
	assert.Empty(t, reg.Invoices())
}

func TestNewCarriesRecordTables(t *testing.T) {
	bank := []models.BankTransaction{{Counterparty: "A"}}
	invoices := []models.Invoice{{Buyer: "A"}, {Buyer: "B"}}

	reg := New(nil, bank, invoices)
	assert.Len(t, reg.Bank(), 1)
	assert.Len(t, reg.Invoices(), 2)
}
