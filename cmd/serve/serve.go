// Package serve implements the HTTP server subcommand.
package serve

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"finops/lease-recon/cmd/root"
	"finops/lease-recon/internal/server"
)

var (
	addr string

	// Cmd is the serve command
	Cmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the calculation over HTTP: POST /api/calculate takes a multipart
upload with the workbook and the reporting window, GET /api/template
returns a blank input workbook.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
}

func run(cmd *cobra.Command, args []string) error {
	if addr == "" {
		addr = root.Cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      server.NewRouter(root.Cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	root.Log.Infof("Listening on %s", addr)
	return srv.ListenAndServe()
}
