// Package workbook is the spreadsheet I/O adapter around the core: it loads
// the three input sheets into domain records, writes the three output
// workbooks, and generates the input template. All date normalization
// happens here; the engine never sees a string date.
package workbook

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/logging"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/registry"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// Sheets names the three required input sheets.
type Sheets struct {
	Contracts string
	Bank      string
	Invoices  string
}

// DefaultSheets returns the default input sheet names.
func DefaultSheets() Sheets {
	return Sheets{Contracts: "Contracts", Bank: "Bank Statements", Invoices: "Invoices"}
}

// Contract sheet columns. Tier columns follow the "Base Rent Year N"
// pattern; year 1 is mandatory and may carry a "(required)" suffix.
const (
	colCustomer = "customer name"
	colMerchant = "merchant id"
	colDelivery = "delivery date"
	colLeaseEnd = "lease end date"
	colFreeDays = "free rent days"

	colTxDate       = "transaction date"
	colTxAmount     = "credited amount"
	colCounterparty = "counterparty name"

	colBuyer     = "buyer name"
	colInvDate   = "invoice date"
	colInvAmount = "total amount"
)

var rentYearPattern = regexp.MustCompile(`(?i)^base rent year (\d+)`)

// Load reads an input workbook from disk and builds the registry.
// A missing required sheet or column is a fatal load error.
func Load(path string, sheets Sheets) (*registry.Registry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer closeFile(f)

	return loadFile(f, sheets)
}

// LoadReader reads an input workbook from a stream and builds the registry.
func LoadReader(r io.Reader, sheets Sheets) (*registry.Registry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer closeFile(f)

	return loadFile(f, sheets)
}

func loadFile(f *excelize.File, sheets Sheets) (*registry.Registry, error) {
	contracts, err := loadContracts(f, sheets.Contracts)
	if err != nil {
		return nil, err
	}
	bank, err := loadBank(f, sheets.Bank)
	if err != nil {
		return nil, err
	}
	invoices, err := loadInvoices(f, sheets.Invoices)
	if err != nil {
		return nil, err
	}

	return registry.New(contracts, bank, invoices), nil
}

func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, fmt.Errorf("required sheet %q not found in workbook", sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return rows, nil
}

func loadContracts(f *excelize.File, sheet string) ([]models.Contract, error) {
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}

	header := rows[0]
	cols, err := findColumns(sheet, header, colCustomer, colMerchant, colDelivery, colLeaseEnd, colFreeDays)
	if err != nil {
		return nil, err
	}

	// Tier columns are discovered from whichever headers are present; the
	// maximum year index found determines the sheet's tier count.
	tierCols := map[int]int{}
	maxYear := 0
	for i, h := range header {
		if m := rentYearPattern.FindStringSubmatch(strings.TrimSpace(h)); m != nil {
			year, _ := strconv.Atoi(m[1])
			tierCols[year] = i
			if year > maxYear {
				maxYear = year
			}
		}
	}
	if _, ok := tierCols[1]; !ok {
		return nil, fmt.Errorf("sheet %q is missing the mandatory 'Base Rent Year 1' column", sheet)
	}

	var contracts []models.Contract
	for rowNum, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}

		c := models.Contract{
			Customer:   cell(row, cols[colCustomer]),
			MerchantID: cell(row, cols[colMerchant]),
			RentYears:  make([]decimal.NullDecimal, maxYear),
		}
		c.DeliveryDate = parseDateCell(sheet, rowNum+2, "delivery date", cell(row, cols[colDelivery]))
		c.LeaseEndDate = parseDateCell(sheet, rowNum+2, "lease end date", cell(row, cols[colLeaseEnd]))
		c.FreeDays = parseIntCell(sheet, rowNum+2, "free rent days", cell(row, cols[colFreeDays]))

		for year, col := range tierCols {
			value, ok := models.ParseNullAmount(cell(row, col))
			if !ok {
				log.WithFields(logrus.Fields{
					logging.FieldSheet: sheet,
					logging.FieldRow:   rowNum + 2,
				}).Warnf("Unparseable rent amount for year %d, treating as absent", year)
			}
			c.RentYears[year-1] = value
		}

		contracts = append(contracts, c)
	}

	return contracts, nil
}

func loadBank(f *excelize.File, sheet string) ([]models.BankTransaction, error) {
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}
	cols, err := findColumns(sheet, rows[0], colTxDate, colTxAmount, colCounterparty)
	if err != nil {
		return nil, err
	}

	var txs []models.BankTransaction
	for rowNum, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		txs = append(txs, models.BankTransaction{
			Date:         parseDateCell(sheet, rowNum+2, "transaction date", cell(row, cols[colTxDate])),
			Amount:       models.ParseAmount(cell(row, cols[colTxAmount])),
			Counterparty: cell(row, cols[colCounterparty]),
		})
	}
	return txs, nil
}

func loadInvoices(f *excelize.File, sheet string) ([]models.Invoice, error) {
	rows, err := sheetRows(f, sheet)
	if err != nil {
		return nil, err
	}
	cols, err := findColumns(sheet, rows[0], colBuyer, colInvDate, colInvAmount)
	if err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	for rowNum, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}
		invoices = append(invoices, models.Invoice{
			Buyer:  cell(row, cols[colBuyer]),
			Date:   parseDateCell(sheet, rowNum+2, "invoice date", cell(row, cols[colInvDate])),
			Amount: models.ParseAmount(cell(row, cols[colInvAmount])),
		})
	}
	return invoices, nil
}

// findColumns maps normalized column names to indexes. Matching is
// case-insensitive and ignores any parenthesized suffix, so the template's
// "(required)" annotation does not matter.
func findColumns(sheet string, header []string, names ...string) (map[string]int, error) {
	index := map[string]int{}
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}

	cols := map[string]int{}
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("sheet %q is missing required column %q", sheet, name)
		}
		cols[name] = i
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	if i := strings.Index(h, "("); i >= 0 {
		h = strings.TrimSpace(h[:i])
	}
	return h
}

// parseDateCell normalizes a date cell. Empty cells are absent; unparseable
// cells are warned about and treated as absent so that one bad record never
// aborts the batch.
func parseDateCell(sheet string, rowNum int, field, value string) time.Time {
	if strings.TrimSpace(value) == "" {
		return time.Time{}
	}
	parsed, _, err := dateutils.ParseDate(value)
	if err != nil {
		log.WithFields(logrus.Fields{
			logging.FieldSheet: sheet,
			logging.FieldRow:   rowNum,
		}).Warnf("Unparseable %s %q, treating as absent", field, value)
		return time.Time{}
	}
	return parsed
}

func parseIntCell(sheet string, rowNum int, field, value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	// Spreadsheets often render integers as floats ("30.0").
	if fl, err := strconv.ParseFloat(value, 64); err == nil {
		return int(fl)
	}
	log.WithFields(logrus.Fields{
		logging.FieldSheet: sheet,
		logging.FieldRow:   rowNum,
	}).Warnf("Unparseable %s %q, treating as 0", field, value)
	return 0
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Warn("Failed to close workbook")
	}
}
