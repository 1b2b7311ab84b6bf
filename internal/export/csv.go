// Package export renders the three report tables as CSV files using gocsv,
// for deployments that diff outputs without spreadsheet tooling.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"finops/lease-recon/internal/logging"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/report"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// Paths are the written CSV file locations.
type Paths struct {
	Lease  string
	Single string
	Income string
}

// Combined row shapes for the diagnostic-columns mode; gocsv flattens the
// embedded structs into one header row.
type summaryAuxRow struct {
	models.SummaryRow
	models.SummaryAux
}

type receivableAuxRow struct {
	models.MonthlyReceivableRow
	models.ReceivableAux
}

type incomeAuxRow struct {
	models.MonthlyIncomeRow
	models.IncomeAux
}

// WriteCSV renders the report into three timestamped CSV files under dir,
// mirroring the workbook writer's lease/single/income naming.
func WriteCSV(rep *report.Report, dir string, aux bool) (Paths, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return Paths{}, fmt.Errorf("creating output directory: %w", err)
	}

	ts := time.Now().Format("20060102150405")
	paths := Paths{
		Lease:  filepath.Join(dir, ts+"-lease.csv"),
		Single: filepath.Join(dir, ts+"-single.csv"),
		Income: filepath.Join(dir, ts+"-income.csv"),
	}

	if err := writeSummary(paths.Lease, rep.Summary, aux); err != nil {
		return Paths{}, err
	}
	if err := writeReceivables(paths.Single, rep.Receivables, aux); err != nil {
		return Paths{}, err
	}
	if err := writeIncome(paths.Income, rep.Income, aux); err != nil {
		return Paths{}, err
	}

	log.WithField("directory", dir).Info("Report CSV files written")
	return paths, nil
}

func writeSummary(path string, records []models.SummaryRecord, aux bool) error {
	if aux {
		rows := make([]summaryAuxRow, 0, len(records))
		for _, rec := range records {
			row := summaryAuxRow{SummaryRow: rec.Row}
			if rec.Aux != nil {
				row.SummaryAux = *rec.Aux
			}
			rows = append(rows, row)
		}
		return marshalCSV(path, &rows)
	}

	rows := make([]models.SummaryRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row)
	}
	return marshalCSV(path, &rows)
}

func writeReceivables(path string, records []models.ReceivableRecord, aux bool) error {
	if aux {
		rows := make([]receivableAuxRow, 0, len(records))
		for _, rec := range records {
			row := receivableAuxRow{MonthlyReceivableRow: rec.Row}
			if rec.Aux != nil {
				row.ReceivableAux = *rec.Aux
			}
			rows = append(rows, row)
		}
		return marshalCSV(path, &rows)
	}

	rows := make([]models.MonthlyReceivableRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row)
	}
	return marshalCSV(path, &rows)
}

func writeIncome(path string, records []models.IncomeRecord, aux bool) error {
	if aux {
		rows := make([]incomeAuxRow, 0, len(records))
		for _, rec := range records {
			row := incomeAuxRow{MonthlyIncomeRow: rec.Row}
			if rec.Aux != nil {
				row.IncomeAux = *rec.Aux
			}
			rows = append(rows, row)
		}
		return marshalCSV(path, &rows)
	}

	rows := make([]models.MonthlyIncomeRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Row)
	}
	return marshalCSV(path, &rows)
}

func marshalCSV(path string, rows interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(rows, file); err != nil {
		return fmt.Errorf("writing CSV data to %s: %w", path, err)
	}
	return nil
}
