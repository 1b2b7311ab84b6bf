// Package registry holds the loaded contract, bank-transaction and invoice
// records for one batch run. The registry is immutable after construction
// and safe for concurrent readers.
package registry

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finops/lease-recon/internal/logging"
	"finops/lease-recon/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// Registry is the read-only record store driving a batch run.
type Registry struct {
	contracts     []models.Contract
	bank          []models.BankTransaction
	invoices      []models.Invoice
	maxLeaseYears int
}

// New builds a registry. The rent-tier count is detected as the maximum
// tier-sequence length across all contracts (at least 1); shorter contracts
// are padded with absent tiers, never rejected.
func New(contracts []models.Contract, bank []models.BankTransaction, invoices []models.Invoice) *Registry {
	maxYears := 1
	for _, c := range contracts {
		if len(c.RentYears) > maxYears {
			maxYears = len(c.RentYears)
		}
	}

	padded := make([]models.Contract, len(contracts))
	for i, c := range contracts {
		if len(c.RentYears) < maxYears {
			tiers := make([]decimal.NullDecimal, maxYears)
			copy(tiers, c.RentYears)
			c.RentYears = tiers
		}
		padded[i] = c
	}

	log.WithFields(logrus.Fields{
		"contracts":       len(contracts),
		"bank_records":    len(bank),
		"invoice_records": len(invoices),
		"max_lease_years": maxYears,
	}).Info("Registry loaded")

	return &Registry{
		contracts:     padded,
		bank:          bank,
		invoices:      invoices,
		maxLeaseYears: maxYears,
	}
}

// Contracts returns the contracts in load order.
func (r *Registry) Contracts() []models.Contract {
	return r.contracts
}

// Bank returns the bank transaction records.
func (r *Registry) Bank() []models.BankTransaction {
	return r.bank
}

// Invoices returns the invoice records.
func (r *Registry) Invoices() []models.Invoice {
	return r.invoices
}

// MaxLeaseYears returns the registry-wide detected rent tier count.
func (r *Registry) MaxLeaseYears() int {
	return r.maxLeaseYears
}
