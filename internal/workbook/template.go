package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Template colors.
const (
	headerFill  = "DBEAFE"
	exampleFill = "F5F5F5"
	inputFill   = "FFFFF0"
)

const blankRows = 20

// Template builds the three-sheet input template workbook: a header row the
// loader reads, a description row for the person filling it in, two example
// rows, and a styled blank fill-in area.
func Template(sheets Sheets) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheets.Contracts); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheets.Bank); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheets.Invoices); err != nil {
		return nil, err
	}

	st, err := newTemplateStyles(f)
	if err != nil {
		return nil, err
	}

	if err := contractsSheet(f, sheets.Contracts, st); err != nil {
		return nil, err
	}
	if err := bankSheet(f, sheets.Bank, st); err != nil {
		return nil, err
	}
	if err := invoicesSheet(f, sheets.Invoices, st); err != nil {
		return nil, err
	}

	return f, nil
}

// WriteTemplate writes the template workbook to w.
func WriteTemplate(w io.Writer, sheets Sheets) error {
	f, err := Template(sheets)
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}
	defer closeFile(f)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// SaveTemplate writes the template workbook to path.
func SaveTemplate(path string, sheets Sheets) error {
	f, err := Template(sheets)
	if err != nil {
		return fmt.Errorf("building template: %w", err)
	}
	defer closeFile(f)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving template %s: %w", path, err)
	}
	return nil
}

type templateStyles struct {
	header  int
	desc    int
	example int
	input   int
	date    int
}

func newTemplateStyles(f *excelize.File) (templateStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "CCCCCC"},
		{Type: "right", Style: 1, Color: "CCCCCC"},
		{Type: "top", Style: 1, Color: "CCCCCC"},
		{Type: "bottom", Style: 1, Color: "CCCCCC"},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 9},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: center,
	})
	if err != nil {
		return templateStyles{}, err
	}

	desc, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 8, Color: "777777", Italic: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{exampleFill}, Pattern: 1},
		Alignment: center,
	})
	if err != nil {
		return templateStyles{}, err
	}

	example, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{exampleFill}, Pattern: 1},
		Alignment: center,
		Border:    thin,
	})
	if err != nil {
		return templateStyles{}, err
	}

	input, err := f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{inputFill}, Pattern: 1},
		Border: thin,
	})
	if err != nil {
		return templateStyles{}, err
	}

	dateFmt := "yyyy-mm-dd"
	date, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Size: 9},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{exampleFill}, Pattern: 1},
		Alignment:    center,
		Border:       thin,
		CustomNumFmt: &dateFmt,
	})
	if err != nil {
		return templateStyles{}, err
	}

	return templateStyles{header: header, desc: desc, example: example, input: input, date: date}, nil
}

type templateColumn struct {
	name  string
	desc  string
	width float64
	date  bool
}

func buildSheet(f *excelize.File, sheet string, cols []templateColumn, examples [][]interface{}, st templateStyles) error {
	for i, col := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return err
		}

		headerCell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, headerCell, col.name); err != nil {
			return err
		}
		descCell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, descCell, col.desc); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(cols))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", st.header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", st.desc); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 1, 30); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheet, 2, 24); err != nil {
		return err
	}

	for r, example := range examples {
		rowNum := 3 + r
		for c, value := range example {
			cellName, _ := excelize.CoordinatesToCellName(c+1, rowNum)
			if value != nil {
				if err := f.SetCellValue(sheet, cellName, value); err != nil {
					return err
				}
			}
			style := st.example
			if cols[c].date {
				style = st.date
			}
			if err := f.SetCellStyle(sheet, cellName, cellName, style); err != nil {
				return err
			}
		}
	}

	// Blank fill-in area below the examples.
	firstBlank := 3 + len(examples)
	topLeft, _ := excelize.CoordinatesToCellName(1, firstBlank)
	bottomRight, _ := excelize.CoordinatesToCellName(len(cols), firstBlank+blankRows-1)
	return f.SetCellStyle(sheet, topLeft, bottomRight, st.input)
}

func contractsSheet(f *excelize.File, sheet string, st templateStyles) error {
	cols := []templateColumn{
		{name: "Customer Name", desc: "Legal name, must match bank and invoice records exactly", width: 26},
		{name: "Merchant ID", desc: "Internal merchant identifier", width: 12},
		{name: "Delivery Date", desc: "YYYY-MM-DD; rent accrues from this day", width: 14, date: true},
		{name: "Lease End Date", desc: "YYYY-MM-DD; last day of the lease", width: 16, date: true},
		{name: "Free Rent Days", desc: "Grace period in days from delivery", width: 12},
		{name: "Base Rent Year 1 (required)", desc: "Monthly committed amount during lease year 1", width: 22},
	}
	for year := 2; year <= 7; year++ {
		cols = append(cols, templateColumn{
			name:  fmt.Sprintf("Base Rent Year %d", year),
			desc:  "Leave blank for shorter terms",
			width: 16,
		})
	}

	examples := [][]interface{}{
		{"Aurora Dining Group Ltd", "B1-01c", "2025-05-12", "2027-05-11", 30,
			26496.00, 27820.80, nil, nil, nil, nil, nil},
		{"Harbor Trade Co Ltd", "C2-03a", "2024-01-01", "2028-12-31", 60,
			120000.00, 126000.00, 132300.00, 138915.00, 145860.75, nil, nil},
	}
	return buildSheet(f, sheet, cols, examples, st)
}

func bankSheet(f *excelize.File, sheet string, st templateStyles) error {
	cols := []templateColumn{
		{name: "Transaction Date", desc: "YYYY-MM-DD", width: 22, date: true},
		{name: "Credited Amount", desc: "Amount credited to the account", width: 20},
		{name: "Counterparty Name", desc: "Must match the contract's customer name", width: 26},
	}
	examples := [][]interface{}{
		{"2025-08-05", 26496.00, "Aurora Dining Group Ltd"},
		{"2025-09-03", 26496.00, "Aurora Dining Group Ltd"},
	}
	return buildSheet(f, sheet, cols, examples, st)
}

func invoicesSheet(f *excelize.File, sheet string, st templateStyles) error {
	cols := []templateColumn{
		{name: "Buyer Name", desc: "Must match the contract's customer name", width: 26},
		{name: "Invoice Date", desc: "YYYY-MM-DD", width: 18, date: true},
		{name: "Total Amount", desc: "Tax-inclusive invoice total", width: 22},
	}
	examples := [][]interface{}{
		{"Aurora Dining Group Ltd", "2025-08-10", 29920.48},
		{"Aurora Dining Group Ltd", "2025-09-10", 29920.48},
	}
	return buildSheet(f, sheet, cols, examples, st)
}
