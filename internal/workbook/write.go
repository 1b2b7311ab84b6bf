package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/report"
)

// Output sheet names of the three generated workbooks.
const (
	SummarySheet    = "Summary"
	ReceivableSheet = "Monthly Receivable"
	IncomeSheet     = "Monthly Income"
)

// OutputPaths are the written workbook locations. The lease/single/income
// naming is kept from the spreadsheet workflow this tool replaces.
type OutputPaths struct {
	Lease  string
	Single string
	Income string
}

// Write renders the report into three timestamped workbooks under dir:
// <ts>-lease.xlsx (summary), <ts>-single.xlsx (monthly receivable) and
// <ts>-income.xlsx (monthly income). aux adds the diagnostic columns where
// the report carries them.
func Write(rep *report.Report, dir string, aux bool) (OutputPaths, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return OutputPaths{}, fmt.Errorf("creating output directory: %w", err)
	}

	ts := time.Now().Format("20060102150405")
	paths := OutputPaths{
		Lease:  filepath.Join(dir, ts+"-lease.xlsx"),
		Single: filepath.Join(dir, ts+"-single.xlsx"),
		Income: filepath.Join(dir, ts+"-income.xlsx"),
	}

	if err := writeTable(paths.Lease, SummarySheet, summaryTable(rep.Summary, aux)); err != nil {
		return OutputPaths{}, err
	}
	if err := writeTable(paths.Single, ReceivableSheet, receivableTable(rep.Receivables, aux)); err != nil {
		return OutputPaths{}, err
	}
	if err := writeTable(paths.Income, IncomeSheet, incomeTable(rep.Income, aux)); err != nil {
		return OutputPaths{}, err
	}

	log.WithField("directory", dir).Info("Report workbooks written")
	return paths, nil
}

// table is a header row plus data rows, ready for cell-by-cell writing.
type table struct {
	headers []string
	rows    [][]interface{}
}

func writeTable(path, sheet string, t table) error {
	f := excelize.NewFile()
	defer closeFile(f)

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet %q: %w", sheet, err)
	}

	header := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func summaryTable(records []models.SummaryRecord, aux bool) table {
	t := table{headers: []string{
		"Customer Name", "Merchant ID", "Delivery Date", "Lease End Date",
		"Free Rent Days", "Total Receivable", "Total Income",
		"Bank Matched", "Invoice Matched", "Notes",
	}}
	if aux {
		t.headers = append(t.headers,
			"Contract Days", "Contract Receivable", "Daily Income Rate",
			"Days In Period", "Income Formula")
	}

	for _, rec := range records {
		r := rec.Row
		row := []interface{}{
			r.Customer, r.MerchantID, r.DeliveryDate, r.LeaseEndDate,
			r.FreeDays,
			r.TotalReceivable.InexactFloat64(), r.TotalIncome.InexactFloat64(),
			r.BankMatched.InexactFloat64(), r.InvoiceMatched.InexactFloat64(),
			r.Notes,
		}
		if aux && rec.Aux != nil {
			row = append(row,
				rec.Aux.ContractDays,
				rec.Aux.ContractReceivable.InexactFloat64(),
				rec.Aux.DailyIncomeRate.InexactFloat64(),
				rec.Aux.PeriodDays,
				rec.Aux.IncomeFormula)
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func receivableTable(records []models.ReceivableRecord, aux bool) table {
	t := table{headers: []string{"Customer Name", "Merchant ID", "Month", "Receivable"}}
	if aux {
		t.headers = append(t.headers,
			"Free Days", "Effective Days", "Payable Days", "Days In Month",
			"Lease Year", "Annual Rent", "Daily Rent", "Split Month", "Formula")
	}

	for _, rec := range records {
		r := rec.Row
		row := []interface{}{r.Customer, r.MerchantID, r.Month, r.Receivable.InexactFloat64()}
		if aux && rec.Aux != nil {
			row = append(row,
				rec.Aux.FreeDays, rec.Aux.EffectiveDays, rec.Aux.PayableDays,
				rec.Aux.MonthDays, rec.Aux.LeaseYear, rec.Aux.AnnualRent,
				rec.Aux.DailyRent, rec.Aux.SplitMonth, rec.Aux.Formula)
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func incomeTable(records []models.IncomeRecord, aux bool) table {
	t := table{headers: []string{"Customer Name", "Merchant ID", "Month", "Income"}}
	if aux {
		t.headers = append(t.headers,
			"Daily Income Rate", "Contract Days In Month", "Formula")
	}

	for _, rec := range records {
		r := rec.Row
		row := []interface{}{r.Customer, r.MerchantID, r.Month, r.Income.InexactFloat64()}
		if aux && rec.Aux != nil {
			row = append(row,
				rec.Aux.DailyIncomeRate.InexactFloat64(),
				rec.Aux.ContractDays, rec.Aux.Formula)
		}
		t.rows = append(t.rows, row)
	}
	return t
}
