// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"finops/lease-recon/internal/config"
	"finops/lease-recon/internal/export"
	"finops/lease-recon/internal/logging"
	"finops/lease-recon/internal/recon"
	"finops/lease-recon/internal/registry"
	"finops/lease-recon/internal/report"
	"finops/lease-recon/internal/server"
	"finops/lease-recon/internal/workbook"
)

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lease-recon",
		Short: "Compute lease receivables and recognized income from a contract workbook.",
		Long: `lease-recon replaces the spreadsheet formulas used to compute, per lease
contract, the receivable and recognized income for a reporting window, and
reconciles those figures against bank statements and invoices.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to lease-recon!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg

			Log = logging.Configure(cfg.Log.Level, cfg.Log.Format)

			// Hand the configured logger to every package that logs.
			registry.SetLogger(Log)
			recon.SetLogger(Log)
			report.SetLogger(Log)
			workbook.SetLogger(Log)
			export.SetLogger(Log)
			server.SetLogger(Log)

			return nil
		},
	}
)

// InputSheets returns the configured input sheet names.
func InputSheets() workbook.Sheets {
	return workbook.Sheets{
		Contracts: Cfg.Sheets.Contracts,
		Bank:      Cfg.Sheets.Bank,
		Invoices:  Cfg.Sheets.Invoices,
	}
}
