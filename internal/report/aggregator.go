// Package report drives the per-contract loop over the whole registry and
// assembles the three output tables: contract summary, monthly receivable
// breakdown, and monthly income breakdown.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/logging"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/proration"
	"finops/lease-recon/internal/recon"
	"finops/lease-recon/internal/registry"
	"finops/lease-recon/internal/summary"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// Options controls a batch run.
type Options struct {
	// Aux attaches the diagnostic columns to every row.
	Aux bool
	// Trace, when non-nil, collects the calculation narrative.
	Trace *proration.Trace
}

// Totals are the aggregate figures over all summary rows.
type Totals struct {
	Contracts  int
	Receivable decimal.Decimal
	Income     decimal.Decimal
	Bank       decimal.Decimal
	Invoice    decimal.Decimal
}

// Report is the assembled output of one batch run.
type Report struct {
	Window      models.ReportingWindow
	Summary     []models.SummaryRecord
	Receivables []models.ReceivableRecord
	Income      []models.IncomeRecord
	Totals      Totals
}

// Aggregator runs the batch over a registry.
type Aggregator struct {
	reg     *registry.Registry
	matcher *recon.Matcher
}

// NewAggregator builds an aggregator over the given registry.
func NewAggregator(reg *registry.Registry) *Aggregator {
	return &Aggregator{
		reg:     reg,
		matcher: recon.NewMatcher(reg.Bank(), reg.Invoices()),
	}
}

// Run computes the full report for the window. Output row order mirrors
// registry order; no sorting or deduplication. A malformed contract fails
// the whole run.
func (a *Aggregator) Run(w models.ReportingWindow, opts Options) (*Report, error) {
	rep := &Report{
		Window: w,
		Totals: Totals{
			Receivable: decimal.Zero,
			Income:     decimal.Zero,
			Bank:       decimal.Zero,
			Invoice:    decimal.Zero,
		},
	}

	start, end := w.Expand()
	log.WithField(logging.FieldWindow, w.String()).Info("Starting batch calculation")

	for i, c := range a.reg.Contracts() {
		clog := log.WithFields(logrus.Fields{
			logging.FieldCustomer: c.Customer,
			logging.FieldMerchant: c.MerchantID,
		})
		clog.Debugf("Processing contract %d/%d", i+1, len(a.reg.Contracts()))

		note := summary.ValidateTiers(c)
		if note != "" {
			clog.Warn(note)
			opts.Trace.Printf("%s", note)
		}

		s, err := summary.Summarize(c, w, opts.Trace)
		if err != nil {
			return nil, fmt.Errorf("summarizing contract %d: %w", i+1, err)
		}

		bank := decimal.Zero
		invoice := decimal.Zero
		if c.HasDelivery() {
			bank = a.matcher.MatchBank(c.Customer, start, end)
			invoice = a.matcher.MatchInvoices(c.Customer, start, end)
			opts.Trace.Printf("  matched: bank %s, invoices %s",
				bank.StringFixed(2), invoice.StringFixed(2))
		}

		rep.Summary = append(rep.Summary, summaryRecord(c, s, bank, invoice, note, opts.Aux))

		for _, m := range summary.MonthlyBreakdown(c, w) {
			rep.Receivables = append(rep.Receivables, receivableRecord(c, m, opts.Aux))
		}
		for _, m := range summary.MonthlyIncomeBreakdown(c, w, s.DailyIncomeRate) {
			rep.Income = append(rep.Income, incomeRecord(c, m, s.DailyIncomeRate, opts.Aux))
		}

		row := rep.Summary[len(rep.Summary)-1].Row
		rep.Totals.Contracts++
		rep.Totals.Receivable = rep.Totals.Receivable.Add(row.TotalReceivable)
		rep.Totals.Income = rep.Totals.Income.Add(row.TotalIncome)
		rep.Totals.Bank = rep.Totals.Bank.Add(row.BankMatched)
		rep.Totals.Invoice = rep.Totals.Invoice.Add(row.InvoiceMatched)
	}

	log.WithFields(logrus.Fields{
		"contracts":        rep.Totals.Contracts,
		"total_receivable": rep.Totals.Receivable.StringFixed(2),
		"total_income":     rep.Totals.Income.StringFixed(2),
	}).Info("Batch calculation finished")

	return rep, nil
}

func summaryRecord(c models.Contract, s summary.Summary, bank, invoice decimal.Decimal, note string, aux bool) models.SummaryRecord {
	rec := models.SummaryRecord{
		Row: models.SummaryRow{
			Customer:        c.Customer,
			MerchantID:      c.MerchantID,
			DeliveryDate:    formatDate(c.DeliveryDate),
			LeaseEndDate:    formatDate(c.LeaseEndDate),
			FreeDays:        c.FreeDays,
			TotalReceivable: s.TotalReceivable.Round(2),
			TotalIncome:     s.TotalIncome.Round(2),
			BankMatched:     bank.Round(2),
			InvoiceMatched:  invoice.Round(2),
			Notes:           note,
		},
	}
	if aux {
		rec.Aux = &models.SummaryAux{
			ContractDays:       s.ContractDays,
			ContractReceivable: s.ContractReceivable.Round(2),
			DailyIncomeRate:    s.DailyIncomeRate.Round(4),
			PeriodDays:         s.PeriodDays,
			IncomeFormula:      s.IncomeFormula,
		}
	}
	return rec
}

func receivableRecord(c models.Contract, m summary.ReceivableMonth, aux bool) models.ReceivableRecord {
	rec := models.ReceivableRecord{
		Row: models.MonthlyReceivableRow{
			Customer:   c.Customer,
			MerchantID: c.MerchantID,
			Month:      dateutils.ToMonthLabel(m.Month),
			Receivable: m.Amount.Round(2),
		},
	}
	if aux {
		rec.Aux = receivableAux(m.Detail)
	}
	return rec
}

func receivableAux(d proration.Detail) *models.ReceivableAux {
	aux := &models.ReceivableAux{
		FreeDays:      d.FreeDays,
		EffectiveDays: d.EffectiveDays,
		PayableDays:   d.PayableDays,
		MonthDays:     d.MonthDays,
		LeaseYear:     "-",
		AnnualRent:    "-",
		DailyRent:     "-",
		SplitMonth:    "no",
		Formula:       d.Formula,
	}

	if d.Split {
		md := d.MonthDays
		if md == 0 {
			md = 1
		}
		dm := decimal.NewFromInt(int64(md))
		aux.LeaseYear = fmt.Sprintf("year %d/%d", d.SplitYear, d.SplitYear+1)
		aux.AnnualRent = d.AnnualRent1.StringFixed(2) + "/" + d.AnnualRent2.StringFixed(2)
		aux.DailyRent = d.AnnualRent1.Div(dm).StringFixed(2) + "/" + d.AnnualRent2.Div(dm).StringFixed(2)
		aux.SplitMonth = "yes"
		return aux
	}

	if d.YearIndex > 0 {
		aux.LeaseYear = fmt.Sprintf("year %d", d.YearIndex)
	}
	if d.AnnualRent.Valid {
		aux.AnnualRent = d.AnnualRent.Decimal.StringFixed(2)
	}
	if d.DailyRent.Valid {
		aux.DailyRent = d.DailyRent.Decimal.StringFixed(2)
	}
	return aux
}

func incomeRecord(c models.Contract, m summary.IncomeMonth, dailyRate decimal.Decimal, aux bool) models.IncomeRecord {
	rec := models.IncomeRecord{
		Row: models.MonthlyIncomeRow{
			Customer:   c.Customer,
			MerchantID: c.MerchantID,
			Month:      dateutils.ToMonthLabel(m.Month),
			Income:     m.Amount.Round(2),
		},
	}
	if aux {
		rec.Aux = &models.IncomeAux{
			DailyIncomeRate: dailyRate.Round(4),
			ContractDays:    m.Days,
			Formula: fmt.Sprintf("%s x %d = %s",
				dailyRate.StringFixed(4), m.Days, m.Amount.StringFixed(2)),
		}
	}
	return rec
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutils.ToISODate(t)
}
