package export

import (
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/report"
)

func testReport() *report.Report {
	return &report.Report{
		Summary: []models.SummaryRecord{{
			Row: models.SummaryRow{
				Customer: "Aurora Dining Group Ltd", MerchantID: "B1-01c",
				DeliveryDate: "2025-05-12", LeaseEndDate: "2027-05-11", FreeDays: 30,
				TotalReceivable: decimal.RequireFromString("26496.00"),
				TotalIncome:     decimal.RequireFromString("25000.00"),
				Notes:           "data conflict: something",
			},
			Aux: &models.SummaryAux{
				ContractDays:  730,
				IncomeFormula: "26496.00 / 730 x 31 = 1125.16",
			},
		}},
		Receivables: []models.ReceivableRecord{{
			Row: models.MonthlyReceivableRow{
				Customer: "Aurora Dining Group Ltd", MerchantID: "B1-01c",
				Month: "2025-08", Receivable: decimal.RequireFromString("26496.00"),
			},
		}},
		Income: []models.IncomeRecord{{
			Row: models.MonthlyIncomeRow{
				Customer: "Aurora Dining Group Ltd", MerchantID: "B1-01c",
				Month: "2025-08", Income: decimal.RequireFromString("27000.00"),
			},
		}},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteCSV(testReport(), dir, false)
	require.NoError(t, err)

	lease := readLines(t, paths.Lease)
	require.Len(t, lease, 2)
	assert.Contains(t, lease[0], "Customer Name")
	assert.Contains(t, lease[0], "Total Receivable")
	assert.NotContains(t, lease[0], "Income Formula")
	assert.Contains(t, lease[1], "Aurora Dining Group Ltd")
	assert.Contains(t, lease[1], "26496")

	single := readLines(t, paths.Single)
	require.Len(t, single, 2)
	assert.Contains(t, single[0], "Month")
	assert.Contains(t, single[1], "2025-08")

	income := readLines(t, paths.Income)
	require.Len(t, income, 2)
	assert.Contains(t, income[0], "Income")
	assert.Contains(t, income[1], "27000")
}

func TestWriteCSVWithAuxColumns(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteCSV(testReport(), dir, true)
	require.NoError(t, err)

	lease := readLines(t, paths.Lease)
	require.Len(t, lease, 2)
	assert.Contains(t, lease[0], "Income Formula")
	assert.Contains(t, lease[0], "Contract Days")
	assert.Contains(t, lease[1], "26496.00 / 730 x 31 = 1125.16")
}

func TestWriteCSVFileNaming(t *testing.T) {
	dir := t.TempDir()
	paths, err := WriteCSV(testReport(), dir, false)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(paths.Lease, "-lease.csv"), paths.Lease)
	assert.True(t, strings.HasSuffix(paths.Single, "-single.csv"), paths.Single)
	assert.True(t, strings.HasSuffix(paths.Income, "-income.csv"), paths.Income)
}
