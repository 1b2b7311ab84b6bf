// Package template implements the template generation subcommand.
package template

import (
	"github.com/spf13/cobra"

	"finops/lease-recon/cmd/root"
	"finops/lease-recon/internal/workbook"
)

var (
	outputFile string

	// Cmd is the template command
	Cmd = &cobra.Command{
		Use:   "template",
		Short: "Generate a blank input workbook",
		Long: `Generate an input workbook with the expected sheets, column headers,
per-column descriptions and a few example rows, ready to be filled in
and fed back to the calculate command.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "template.xlsx", "Output file path")
}

func run(cmd *cobra.Command, args []string) error {
	if err := workbook.SaveTemplate(outputFile, root.InputSheets()); err != nil {
		return err
	}
	root.Log.Infof("Template written to %s", outputFile)
	return nil
}
