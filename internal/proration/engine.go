// Package proration implements the per-contract rent proration engine: the
// date arithmetic that allocates tiered annual rent figures across calendar
// months, honoring free-rent grace periods and lease-year boundary splits.
//
// Day counting is inclusive of both endpoints throughout, with one
// exception: in a split month the second part starts the day after the
// boundary, so the two parts always sum to the days of the month.
//
// A month that lies fully inside one lease year with no free days yields the
// tier's declared figure in full, not a twelfth of it. That is the business
// convention this engine replaces (tiers are monthly committed amounts
// labeled by lease year) and is preserved deliberately.
package proration

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/models"
)

// Detail carries the intermediate values of one monthly proration. It feeds
// the optional diagnostic columns and the trace; nothing downstream consumes
// it for computation.
type Detail struct {
	FreeDays      int
	EffectiveDays int
	PayableDays   int
	MonthDays     int

	// Non-split month: the lease year used and its figures.
	YearIndex  int // 1-based, 0 when not determined
	AnnualRent decimal.NullDecimal
	DailyRent  decimal.NullDecimal

	// Split month: the boundary index and the two parts.
	Split       bool
	SplitYear   int // boundary between lease years SplitYear and SplitYear+1
	N1Days      int
	N2Days      int
	AnnualRent1 decimal.Decimal
	AnnualRent2 decimal.Decimal

	Formula string
}

// MonthlyRent returns the rent attributable to the calendar month that lies
// monthOffset months after the contract's delivery month (offset 0 is the
// delivery month itself). The trace may be nil.
func MonthlyRent(c models.Contract, monthOffset int, tr *Trace) decimal.Decimal {
	amount, _ := MonthlyRentDetail(c, monthOffset, tr)
	return amount
}

// MonthlyRentDetail is MonthlyRent plus the intermediate values.
func MonthlyRentDetail(c models.Contract, monthOffset int, tr *Trace) (decimal.Decimal, Detail) {
	if !c.HasDelivery() {
		return decimal.Zero, Detail{Formula: "no delivery date, rent is 0"}
	}

	delivery := c.DeliveryDate
	monthStart := dateutils.StartOfMonth(dateutils.AddMonths(delivery, monthOffset))
	monthEnd := dateutils.EndOfMonth(monthStart)

	tr.Printf("    month %s (%s to %s)",
		dateutils.ToMonthLabel(monthStart),
		dateutils.ToISODate(monthStart), dateutils.ToISODate(monthEnd))

	// Free-rent window: delivery date through delivery+freeDays-1.
	// Empty when FreeDays <= 0.
	freeEnd := delivery.AddDate(0, 0, c.FreeDays-1)
	nFree := dateutils.OverlapDays(delivery, freeEnd, monthStart, monthEnd)
	if nFree > 0 {
		tr.Printf("      free-rent window %s to %s, %d free day(s) this month",
			dateutils.ToISODate(delivery), dateutils.ToISODate(freeEnd), nFree)
	}

	nEff := dateutils.OverlapDays(delivery, c.LeaseEndDate, monthStart, monthEnd)
	if nEff == 0 {
		tr.Printf("      outside lease term, rent is 0")
		return decimal.Zero, Detail{FreeDays: nFree, Formula: "outside lease term, rent is 0"}
	}

	nPay := nEff - nFree
	if nPay < 0 {
		nPay = 0
	}
	tr.Printf("      effective days %d, payable days %d", nEff, nPay)
	if nPay == 0 {
		tr.Printf("      no payable days, rent is 0")
		return decimal.Zero, Detail{
			FreeDays: nFree, EffectiveDays: nEff,
			Formula: "no payable days, rent is 0",
		}
	}

	monthDays := monthEnd.Day()

	// Lease-year boundaries: delivery advanced by 12*i months, minus one
	// day. The last tier has no following boundary, so only the first N-1
	// can split a month.
	splitYear := 0
	var splitDate time.Time
	for i := 1; i < len(c.RentYears); i++ {
		boundary := dateutils.AddMonths(delivery, 12*i).AddDate(0, 0, -1)
		if !boundary.Before(monthStart) && !boundary.After(monthEnd) {
			splitYear = i
			splitDate = boundary
			break
		}
	}

	if splitYear == 0 {
		return wholeYearRent(c, monthStart, monthDays, nFree, nEff, nPay, tr)
	}
	return splitYearRent(c, splitYear, splitDate, monthStart, monthEnd,
		monthDays, nFree, nEff, nPay, tr)
}

// wholeYearRent handles a month lying entirely inside one lease year.
func wholeYearRent(c models.Contract, monthStart time.Time,
	monthDays, nFree, nEff, nPay int, tr *Trace) (decimal.Decimal, Detail) {

	// The lease-year anniversary falls on the delivery day of month, not
	// the first: a month start before that day still belongs to the
	// previous lease year.
	monthsDiff := dateutils.MonthDiff(c.DeliveryDate, monthStart)
	if monthStart.Day() < c.DeliveryDate.Day() {
		monthsDiff--
	}
	yearNum := monthsDiff/12 + 1
	if yearNum > len(c.RentYears) {
		yearNum = len(c.RentYears)
	}

	detail := Detail{
		FreeDays: nFree, EffectiveDays: nEff, PayableDays: nPay,
		MonthDays: monthDays, YearIndex: yearNum,
	}

	rent, ok := c.RentYear(yearNum)
	if !ok || rent.IsZero() {
		tr.Printf("      no rent set for lease year %d, rent is 0", yearNum)
		detail.Formula = "rent tier not set, rent is 0"
		return decimal.Zero, detail
	}

	daily := rent.Div(decimal.NewFromInt(int64(monthDays)))
	amount := daily.Mul(decimal.NewFromInt(int64(nPay)))

	detail.AnnualRent = decimal.NullDecimal{Decimal: rent, Valid: true}
	detail.DailyRent = decimal.NullDecimal{Decimal: daily, Valid: true}
	detail.Formula = fmt.Sprintf("%s / %d x %d = %s",
		rent.StringFixed(2), monthDays, nPay, amount.StringFixed(2))

	tr.Printf("      lease year %d, annual rent %s", yearNum, rent.StringFixed(2))
	tr.Printf("      rent = %s / %d x %d = %s",
		rent.StringFixed(2), monthDays, nPay, amount.StringFixed(2))

	return amount, detail
}

// splitYearRent handles a month straddling the boundary between lease years
// splitYear and splitYear+1. The two parts use their own tier figures over
// their own day counts; free days are not re-subtracted here (the payable
// check above already zeroed fully-free months).
func splitYearRent(c models.Contract, splitYear int, splitDate, monthStart, monthEnd time.Time,
	monthDays, nFree, nEff, nPay int, tr *Trace) (decimal.Decimal, Detail) {

	tr.Printf("      month straddles lease-year boundary %s", dateutils.ToISODate(splitDate))

	n1 := dateutils.DaysInclusive(monthStart, splitDate)
	n2 := dateutils.DaysBetween(splitDate, monthEnd) // day after boundary through month end

	rent1, _ := c.RentYear(splitYear) // absent tiers count as zero here
	rent2, _ := c.RentYear(splitYear + 1)

	dMonth := decimal.NewFromInt(int64(monthDays))
	part1 := rent1.Div(dMonth).Mul(decimal.NewFromInt(int64(n1)))
	part2 := rent2.Div(dMonth).Mul(decimal.NewFromInt(int64(n2)))
	total := part1.Add(part2)

	tr.Printf("      part 1 (year %d): %s / %d x %d = %s",
		splitYear, rent1.StringFixed(2), monthDays, n1, part1.StringFixed(2))
	tr.Printf("      part 2 (year %d): %s / %d x %d = %s",
		splitYear+1, rent2.StringFixed(2), monthDays, n2, part2.StringFixed(2))
	tr.Printf("      rent = %s + %s = %s",
		part1.StringFixed(2), part2.StringFixed(2), total.StringFixed(2))

	return total, Detail{
		FreeDays: nFree, EffectiveDays: nEff, PayableDays: nPay,
		MonthDays: monthDays,
		Split:     true, SplitYear: splitYear,
		N1Days: n1, N2Days: n2,
		AnnualRent1: rent1, AnnualRent2: rent2,
		Formula: fmt.Sprintf("(%s/%d x %d) + (%s/%d x %d) = %s + %s = %s",
			rent1.StringFixed(2), monthDays, n1,
			rent2.StringFixed(2), monthDays, n2,
			part1.StringFixed(2), part2.StringFixed(2), total.StringFixed(2)),
	}
}
