// Package models defines the domain records shared by every component:
// contracts, bank transactions, invoices, the reporting window, and the
// rows of the three output tables.
package models

import (
	"time"

	"github.com/shopspring/decimal"

	"finops/lease-recon/internal/dateutils"
)

// Contract is one lease contract row from the contracts sheet.
// A zero DeliveryDate or LeaseEndDate means the cell was absent.
// RentYears is padded by the registry to the registry-wide maximum tier
// count; Valid=false entries distinguish an absent tier from a zero one.
type Contract struct {
	Customer     string
	MerchantID   string
	DeliveryDate time.Time
	LeaseEndDate time.Time
	FreeDays     int
	RentYears    []decimal.NullDecimal
}

// HasDelivery reports whether the contract has a delivery date. Contracts
// without one produce an all-zero summary and no monthly rows.
func (c Contract) HasDelivery() bool {
	return !c.DeliveryDate.IsZero()
}

// RentYear returns the tier amount for a 1-based lease-year index and
// whether it is present. Out-of-range indexes are absent.
func (c Contract) RentYear(index int) (decimal.Decimal, bool) {
	if index < 1 || index > len(c.RentYears) {
		return decimal.Zero, false
	}
	tier := c.RentYears[index-1]
	if !tier.Valid {
		return decimal.Zero, false
	}
	return tier.Decimal, true
}

// PresentRentYears counts tiers that are present and non-zero. Used by the
// tier-count vs. lease-duration validation.
func (c Contract) PresentRentYears() int {
	count := 0
	for _, tier := range c.RentYears {
		if tier.Valid && !tier.Decimal.IsZero() {
			count++
		}
	}
	return count
}

// BankTransaction is one bank statement row. A zero Date means the cell
// could not be parsed; such rows never match.
type BankTransaction struct {
	Date         time.Time
	Amount       decimal.Decimal
	Counterparty string
}

// Invoice is one invoice row. Amount is tax-inclusive.
type Invoice struct {
	Buyer  string
	Date   time.Time
	Amount decimal.Decimal
}

// ReportingWindow is a month-granularity reporting window, both ends
// inclusive. Start and End are first-of-month dates.
type ReportingWindow struct {
	Start time.Time
	End   time.Time
}

// NewReportingWindow builds a window from two dates, snapping each to the
// first of its month.
func NewReportingWindow(start, end time.Time) ReportingWindow {
	return ReportingWindow{
		Start: dateutils.StartOfMonth(start),
		End:   dateutils.StartOfMonth(end),
	}
}

// Expand returns the full calendar span of the window: the first day of the
// start month through the last day of the end month.
func (w ReportingWindow) Expand() (time.Time, time.Time) {
	return w.Start, dateutils.EndOfMonth(w.End)
}

// Months returns the count of calendar months in the window.
func (w ReportingWindow) Months() int {
	return dateutils.MonthSpan(w.Start, w.End)
}

// String renders the window as "YYYY-MM..YYYY-MM".
func (w ReportingWindow) String() string {
	return dateutils.ToMonthLabel(w.Start) + ".." + dateutils.ToMonthLabel(w.End)
}
