// Package calculate implements the batch calculation subcommand.
package calculate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finops/lease-recon/cmd/root"
	"finops/lease-recon/internal/dateutils"
	"finops/lease-recon/internal/export"
	"finops/lease-recon/internal/models"
	"finops/lease-recon/internal/proration"
	"finops/lease-recon/internal/report"
	"finops/lease-recon/internal/workbook"
)

var (
	inputFile  string
	startMonth string
	endMonth   string
	outputDir  string
	format     string
	auxColumns bool
	traceFile  string

	// Cmd is the calculate command
	Cmd = &cobra.Command{
		Use:   "calculate",
		Short: "Run the batch calculation for a reporting window",
		Long: `Read the contract workbook, compute per-contract receivable and income
for the reporting window, reconcile against bank statements and invoices,
and write the three report files (summary, monthly receivable, monthly
income).`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input workbook (required)")
	Cmd.Flags().StringVar(&startMonth, "start", "", "Reporting window start month, YYYY-MM (required)")
	Cmd.Flags().StringVar(&endMonth, "end", "", "Reporting window end month, YYYY-MM (required)")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (default from config)")
	Cmd.Flags().StringVar(&format, "format", "", "Output format: xlsx or csv (default from config)")
	Cmd.Flags().BoolVar(&auxColumns, "aux-columns", false, "Add diagnostic columns (intermediate values and formulas)")
	Cmd.Flags().StringVar(&traceFile, "trace", "", "Write the calculation trace to this file")
	_ = Cmd.MarkFlagRequired("input")
	_ = Cmd.MarkFlagRequired("start")
	_ = Cmd.MarkFlagRequired("end")
}

func run(cmd *cobra.Command, args []string) error {
	log := root.Log

	window, err := parseWindow(startMonth, endMonth)
	if err != nil {
		return err
	}

	if outputDir == "" {
		outputDir = root.Cfg.Output.Directory
	}
	if format == "" {
		format = root.Cfg.Output.Format
	}

	log.Infof("Calculating window %s from %s", window, inputFile)

	reg, err := workbook.Load(inputFile, root.InputSheets())
	if err != nil {
		return err
	}

	var trace *proration.Trace
	if traceFile != "" {
		trace = &proration.Trace{}
	}

	rep, err := report.NewAggregator(reg).Run(window, report.Options{
		Aux:   auxColumns,
		Trace: trace,
	})
	if err != nil {
		return err
	}

	switch format {
	case "xlsx":
		paths, err := workbook.Write(rep, outputDir, auxColumns)
		if err != nil {
			return err
		}
		log.Infof("Summary written to %s", paths.Lease)
		log.Infof("Monthly receivable written to %s", paths.Single)
		log.Infof("Monthly income written to %s", paths.Income)
	case "csv":
		paths, err := export.WriteCSV(rep, outputDir, auxColumns)
		if err != nil {
			return err
		}
		log.Infof("Summary written to %s", paths.Lease)
		log.Infof("Monthly receivable written to %s", paths.Single)
		log.Infof("Monthly income written to %s", paths.Income)
	default:
		return fmt.Errorf("unknown output format %q (want xlsx or csv)", format)
	}

	if trace != nil {
		if err := os.WriteFile(traceFile, []byte(trace.String()+"\n"), 0644); err != nil {
			return fmt.Errorf("writing trace file: %w", err)
		}
		log.Infof("Calculation trace written to %s (%d lines)", traceFile, trace.Len())
	}

	log.Infof("Contracts processed: %d", rep.Totals.Contracts)
	log.Infof("Total receivable: %s", rep.Totals.Receivable.StringFixed(2))
	log.Infof("Total income: %s", rep.Totals.Income.StringFixed(2))
	log.Infof("Total bank matched: %s", rep.Totals.Bank.StringFixed(2))
	log.Infof("Total invoices matched: %s", rep.Totals.Invoice.StringFixed(2))

	return nil
}

func parseWindow(start, end string) (models.ReportingWindow, error) {
	s, err := dateutils.ParseMonth(start)
	if err != nil {
		return models.ReportingWindow{}, fmt.Errorf("invalid start month %q: %w", start, err)
	}
	e, err := dateutils.ParseMonth(end)
	if err != nil {
		return models.ReportingWindow{}, fmt.Errorf("invalid end month %q: %w", end, err)
	}
	if e.Before(s) {
		return models.ReportingWindow{}, fmt.Errorf("end month %q precedes start month %q", end, start)
	}
	return models.NewReportingWindow(s, e), nil
}
