package models

import "github.com/shopspring/decimal"

// Output table rows. Monetary fields are rounded to two decimal places when
// the rows are built; everything upstream accumulates unrounded values.
// The csv tags drive the gocsv export; the workbook writer uses the same
// column names.

// SummaryRow is one row of the contract summary table.
type SummaryRow struct {
	Customer        string          `csv:"Customer Name"`
	MerchantID      string          `csv:"Merchant ID"`
	DeliveryDate    string          `csv:"Delivery Date"`
	LeaseEndDate    string          `csv:"Lease End Date"`
	FreeDays        int             `csv:"Free Rent Days"`
	TotalReceivable decimal.Decimal `csv:"Total Receivable"`
	TotalIncome     decimal.Decimal `csv:"Total Income"`
	BankMatched     decimal.Decimal `csv:"Bank Matched"`
	InvoiceMatched  decimal.Decimal `csv:"Invoice Matched"`
	Notes           string          `csv:"Notes"`
}

// SummaryAux carries the diagnostic columns of the summary table. Advisory
// only, never consumed downstream.
type SummaryAux struct {
	ContractDays       int             `csv:"Contract Days"`
	ContractReceivable decimal.Decimal `csv:"Contract Receivable"`
	DailyIncomeRate    decimal.Decimal `csv:"Daily Income Rate"`
	PeriodDays         int             `csv:"Days In Period"`
	IncomeFormula      string          `csv:"Income Formula"`
}

// MonthlyReceivableRow is one row of the monthly receivable breakdown.
type MonthlyReceivableRow struct {
	Customer   string          `csv:"Customer Name"`
	MerchantID string          `csv:"Merchant ID"`
	Month      string          `csv:"Month"`
	Receivable decimal.Decimal `csv:"Receivable"`
}

// ReceivableAux carries the per-month proration diagnostics.
type ReceivableAux struct {
	FreeDays      int    `csv:"Free Days"`
	EffectiveDays int    `csv:"Effective Days"`
	PayableDays   int    `csv:"Payable Days"`
	MonthDays     int    `csv:"Days In Month"`
	LeaseYear     string `csv:"Lease Year"`
	AnnualRent    string `csv:"Annual Rent"`
	DailyRent     string `csv:"Daily Rent"`
	SplitMonth    string `csv:"Split Month"`
	Formula       string `csv:"Formula"`
}

// MonthlyIncomeRow is one row of the monthly income breakdown.
type MonthlyIncomeRow struct {
	Customer   string          `csv:"Customer Name"`
	MerchantID string          `csv:"Merchant ID"`
	Month      string          `csv:"Month"`
	Income     decimal.Decimal `csv:"Income"`
}

// IncomeAux carries the per-month income diagnostics.
type IncomeAux struct {
	DailyIncomeRate decimal.Decimal `csv:"Daily Income Rate"`
	ContractDays    int             `csv:"Contract Days In Month"`
	Formula         string          `csv:"Formula"`
}

// SummaryRecord pairs a summary row with its optional diagnostics.
type SummaryRecord struct {
	Row SummaryRow
	Aux *SummaryAux
}

// ReceivableRecord pairs a receivable row with its optional diagnostics.
type ReceivableRecord struct {
	Row MonthlyReceivableRow
	Aux *ReceivableAux
}

// IncomeRecord pairs an income row with its optional diagnostics.
type IncomeRecord struct {
	Row MonthlyIncomeRow
	Aux *IncomeAux
}
