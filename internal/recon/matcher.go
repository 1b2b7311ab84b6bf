// Package recon matches bank settlement and invoice records to contracts by
// exact counterparty name and date range, summing the matched amounts.
package recon

import (
	"time"

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

// Matcher sums bank and invoice records against contracts. Records whose
// dates could not be parsed at load time carry a zero date; they contribute
// zero here rather than aborting the batch, and are warned about once.
type Matcher struct {
	bank     []models.BankTransaction
	invoices []models.Invoice
}

// NewMatcher builds a matcher over the given record tables.
func NewMatcher(bank []models.BankTransaction, invoices []models.Invoice) *Matcher {
	return &Matcher{bank: bank, invoices: invoices}
}

// MatchBank sums credited amounts of bank transactions whose counterparty
// equals customerName exactly and whose date falls inside [start, end].
func (m *Matcher) MatchBank(customerName string, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range m.bank {
		if tx.Counterparty != customerName {
			continue
		}
		if tx.Date.IsZero() {
			log.WithFields(logrus.Fields{
				"counterparty": tx.Counterparty,
			}).Warn("Bank record has unparseable date, contributing zero")
			continue
		}
		if inRange(tx.Date, start, end) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// MatchInvoices sums tax-inclusive totals of invoices whose buyer equals
// customerName exactly and whose invoice date falls inside [start, end].
func (m *Matcher) MatchInvoices(customerName string, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range m.invoices {
		if inv.Buyer != customerName {
			continue
		}
		if inv.Date.IsZero() {
			log.WithFields(logrus.Fields{
				"buyer": inv.Buyer,
			}).Warn("Invoice record has unparseable date, contributing zero")
			continue
		}
		if inRange(inv.Date, start, end) {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

func inRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
