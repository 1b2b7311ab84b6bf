package main

import (
	"fmt"
	"os"
	"strings"

	"finops/lease-recon/cmd/calculate"
	"finops/lease-recon/cmd/root"
	"finops/lease-recon/cmd/serve"
	"finops/lease-recon/cmd/template"
	"finops/lease-recon/internal/logging"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently first (no logging yet), then
	// force the level from the environment on every logger so nothing
	// prints below the requested level before config is read.
	loadEnvSilently()
	logging.SetAllLogLevels(configureLogLevelDirectly())

	root.Cmd.AddCommand(calculate.Cmd)
	root.Cmd.AddCommand(template.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return
	}
	_ = godotenv.Load(".env")
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
