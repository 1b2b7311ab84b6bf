package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"finops/lease-recon/internal/config"
	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/report"
	"finops/lease-recon/internal/workbook"
)

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	cfg *config.Config
}

// NewHandler creates a handler bound to the given configuration.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// CalculateResponse is the JSON body of a successful calculation.
type CalculateResponse struct {
	ContractCount   int              `json:"contract_count"`
	TotalReceivable float64          `json:"total_receivable"`
	TotalIncome     float64          `json:"total_income"`
	Summary         []SummaryDTO     `json:"summary"`
	Files           EncodedWorkbooks `json:"files"`
}

// SummaryDTO is one contract's summary row in the response.
type SummaryDTO struct {
	Customer       string  `json:"customer"`
	MerchantID     string  `json:"merchant_id"`
	Receivable     float64 `json:"receivable"`
	Income         float64 `json:"income"`
	BankMatched    float64 `json:"bank_matched"`
	InvoiceMatched float64 `json:"invoice_matched"`
	Notes          string  `json:"notes"`
}

// EncodedWorkbooks carries the three output workbooks, base64-encoded.
type EncodedWorkbooks struct {
	Lease  string `json:"lease"`
	Single string `json:"single"`
	Income string `json:"income"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Calculate accepts a multipart upload (file, start, end) and runs the
// batch. Each request computes inside its own temp directory so concurrent
// invocations never share scratch state, and the response is only written
// once the whole batch succeeded.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.cfg.Server.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "request must be multipart/form-data with an xlsx file", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing file field "file"`, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close upload")
		}
	}()

	window, err := parseWindow(r.FormValue("start"), r.FormValue("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	sheets := workbook.Sheets{
		Contracts: h.cfg.Sheets.Contracts,
		Bank:      h.cfg.Sheets.Bank,
		Invoices:  h.cfg.Sheets.Invoices,
	}
	reg, err := workbook.LoadReader(file, sheets)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to load workbook", err)
		return
	}

	tmpDir, err := os.MkdirTemp("", "lease-recon-")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to allocate scratch directory", err)
		return
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.WithError(err).Warn("Failed to clean up scratch directory")
		}
	}()

	rep, err := report.NewAggregator(reg).Run(window, report.Options{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "calculation failed", err)
		return
	}

	paths, err := workbook.Write(rep, tmpDir, false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render output workbooks", err)
		return
	}

	files, err := encodeWorkbooks(paths)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode output workbooks", err)
		return
	}

	resp := CalculateResponse{
		ContractCount:   rep.Totals.Contracts,
		TotalReceivable: rep.Totals.Receivable.InexactFloat64(),
		TotalIncome:     rep.Totals.Income.InexactFloat64(),
		Summary:         make([]SummaryDTO, 0, len(rep.Summary)),
		Files:           files,
	}
	for _, rec := range rep.Summary {
		resp.Summary = append(resp.Summary, SummaryDTO{
			Customer:       rec.Row.Customer,
			MerchantID:     rec.Row.MerchantID,
			Receivable:     rec.Row.TotalReceivable.InexactFloat64(),
			Income:         rec.Row.TotalIncome.InexactFloat64(),
			BankMatched:    rec.Row.BankMatched.InexactFloat64(),
			InvoiceMatched: rec.Row.InvoiceMatched.InexactFloat64(),
			Notes:          rec.Row.Notes,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// Template serves a freshly generated input template workbook.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	sheets := workbook.Sheets{
		Contracts: h.cfg.Sheets.Contracts,
		Bank:      h.cfg.Sheets.Bank,
		Invoices:  h.cfg.Sheets.Invoices,
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="template.xlsx"`)
	if err := workbook.WriteTemplate(w, sheets); err != nil {
		// Headers are already out; all we can do is log.
		log.WithError(err).Error("Failed to stream template workbook")
	}
}

// Health is a trivial liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseWindow(start, end string) (models.ReportingWindow, error) {
	if start == "" || end == "" {
		return models.ReportingWindow{}, fmt.Errorf("missing start or end parameter (format YYYY-MM or YYYY-MM-DD)")
	}
	startMonth, err := dateutils.ParseMonth(start)
	if err != nil {
		return models.ReportingWindow{}, fmt.Errorf("invalid start month %q", start)
	}
	endMonth, err := dateutils.ParseMonth(end)
	if err != nil {
		return models.ReportingWindow{}, fmt.Errorf("invalid end month %q", end)
	}
	if endMonth.Before(startMonth) {
		return models.ReportingWindow{}, fmt.Errorf("end month %q precedes start month %q", end, start)
	}
	return models.NewReportingWindow(startMonth, endMonth), nil
}

func encodeWorkbooks(paths workbook.OutputPaths) (EncodedWorkbooks, error) {
	encode := func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	}

	var files EncodedWorkbooks
	var err error
	if files.Lease, err = encode(paths.Lease); err != nil {
		return EncodedWorkbooks{}, err
	}
	if files.Single, err = encode(paths.Single); err != nil {
		return EncodedWorkbooks{}, err
	}
	if files.Income, err = encode(paths.Income); err != nil {
		return EncodedWorkbooks{}, err
	}
	return files, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		log.WithError(err).Warn(msg)
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}
