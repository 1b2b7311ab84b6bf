// Package summary computes per-contract totals for a reporting window: the
// receivable over the window's months, the recognized income via a smoothed
// daily rate over the full contract lifetime, and the two monthly
// breakdowns behind those figures.
package summary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/proration"
)

// Summary holds the per-contract totals for one reporting window. Created
// fresh per (contract, window) invocation and never mutated afterwards.
type Summary struct {
	TotalReceivable decimal.Decimal
	TotalIncome     decimal.Decimal

	// Full-lifetime figures behind the income smoothing model.
	ContractReceivable decimal.Decimal
	ContractDays       int
	DailyIncomeRate    decimal.Decimal
	PeriodDays         int
	IncomeFormula      string
}

// ReceivableMonth is one month of the receivable breakdown.
type ReceivableMonth struct {
	Month  time.Time
	Amount decimal.Decimal
	Detail proration.Detail
}

// IncomeMonth is one month of the income breakdown.
type IncomeMonth struct {
	Month  time.Time
	Amount decimal.Decimal
	Days   int // in-contract days of this month
}

// Summarize computes the window totals for one contract. A contract without
// a delivery date yields the all-zero summary; a delivery date without a
// lease-end date is malformed and returns an error, which fails the batch.
// The trace may be nil.
func Summarize(c models.Contract, w models.ReportingWindow, tr *proration.Trace) (Summary, error) {
	if !c.HasDelivery() {
		tr.Printf("contract %s (%s): no delivery date, all figures are 0", c.Customer, c.MerchantID)
		return Summary{IncomeFormula: "0 / 0 x 0 = 0"}, nil
	}
	if c.LeaseEndDate.IsZero() {
		return Summary{}, fmt.Errorf("contract %s (%s): delivery date present but lease end date missing",
			c.Customer, c.MerchantID)
	}

	start, end := w.Expand()
	tr.Printf("contract %s (%s)", c.Customer, c.MerchantID)
	tr.Printf("  delivery %s, lease end %s, free days %d",
		dateutils.ToISODate(c.DeliveryDate), dateutils.ToISODate(c.LeaseEndDate), c.FreeDays)
	tr.Printf("  window %s to %s", dateutils.ToISODate(start), dateutils.ToISODate(end))

	// Receivable over the window's months, offsets relative to the
	// delivery month. Months before delivery or after lease end prorate
	// to zero inside the engine.
	tr.Printf("  receivable:")
	totalReceivable := decimal.Zero
	for month := w.Start; !month.After(w.End); month = month.AddDate(0, 1, 0) {
		offset := dateutils.MonthDiff(c.DeliveryDate, month)
		totalReceivable = totalReceivable.Add(proration.MonthlyRent(c, offset, tr))
	}
	tr.Printf("  total receivable %s", totalReceivable.StringFixed(2))

	// Income: full-lifetime receivable smoothed into a daily rate.
	fullMonths := dateutils.MonthSpan(c.DeliveryDate, c.LeaseEndDate)
	contractReceivable := decimal.Zero
	for offset := 0; offset < fullMonths; offset++ {
		contractReceivable = contractReceivable.Add(proration.MonthlyRent(c, offset, nil))
	}

	contractDays := dateutils.DaysInclusive(c.DeliveryDate, c.LeaseEndDate)
	dailyRate := decimal.Zero
	if contractDays > 0 {
		dailyRate = contractReceivable.Div(decimal.NewFromInt(int64(contractDays)))
	}

	periodDays := dateutils.OverlapDays(start, end, c.DeliveryDate, c.LeaseEndDate)
	totalIncome := dailyRate.Mul(decimal.NewFromInt(int64(periodDays)))

	formula := fmt.Sprintf("%s / %d x %d = %s",
		contractReceivable.StringFixed(2), contractDays, periodDays, totalIncome.StringFixed(2))
	tr.Printf("  income: %s (daily rate %s over %d day(s) in window)",
		formula, dailyRate.StringFixed(4), periodDays)

	return Summary{
		TotalReceivable:    totalReceivable,
		TotalIncome:        totalIncome,
		ContractReceivable: contractReceivable,
		ContractDays:       contractDays,
		DailyIncomeRate:    dailyRate,
		PeriodDays:         periodDays,
		IncomeFormula:      formula,
	}, nil
}

// MonthlyBreakdown returns the per-month receivable rows for the window,
// with the engine's diagnostic detail attached. Contracts without a
// delivery date have no breakdown.
func MonthlyBreakdown(c models.Contract, w models.ReportingWindow) []ReceivableMonth {
	if !c.HasDelivery() {
		return nil
	}

	var months []ReceivableMonth
	for month := w.Start; !month.After(w.End); month = month.AddDate(0, 1, 0) {
		offset := dateutils.MonthDiff(c.DeliveryDate, month)
		amount, detail := proration.MonthlyRentDetail(c, offset, nil)
		months = append(months, ReceivableMonth{Month: month, Amount: amount, Detail: detail})
	}
	return months
}

// MonthlyIncomeBreakdown returns the per-month income rows for the window:
// the daily income rate times each month's overlap with the contract term.
func MonthlyIncomeBreakdown(c models.Contract, w models.ReportingWindow, dailyRate decimal.Decimal) []IncomeMonth {
	if !c.HasDelivery() {
		return nil
	}

	var months []IncomeMonth
	for month := w.Start; !month.After(w.End); month = month.AddDate(0, 1, 0) {
		days := dateutils.OverlapDays(month, dateutils.EndOfMonth(month), c.DeliveryDate, c.LeaseEndDate)
		amount := dailyRate.Mul(decimal.NewFromInt(int64(days)))
		months = append(months, IncomeMonth{Month: month, Amount: amount, Days: days})
	}
	return months
}
