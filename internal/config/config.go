// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"finops/lease-recon/internal/logging"
)

var (
	once sync.Once
	log  = logging.GetLogger()
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Sheets struct {
		Contracts string `mapstructure:"contracts" yaml:"contracts"`
		Bank      string `mapstructure:"bank" yaml:"bank"`
		Invoices  string `mapstructure:"invoices" yaml:"invoices"`
	} `mapstructure:"sheets" yaml:"sheets"`

	Output struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Format    string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"output" yaml:"output"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		MaxUploadMB    int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional YAML config file, then LEASE_-prefixed
// environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.lease-recon")
	v.AddConfigPath(".lease-recon")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LEASE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars, but tell the operator.
			log.Warnf("error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("sheets.contracts", "Contracts")
	v.SetDefault("sheets.bank", "Bank Statements")
	v.SetDefault("sheets.invoices", "Invoices")

	v.SetDefault("output.directory", ".")
	v.SetDefault("output.format", "xlsx")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_mb", 32)
	v.SetDefault("server.allowed_origins", []string{"*"})
}

func validateConfig(c *Config) error {
	switch c.Output.Format {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("output.format must be 'xlsx' or 'csv', got '%s'", c.Output.Format)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Sheets.Contracts == "" || c.Sheets.Bank == "" || c.Sheets.Invoices == "" {
		return fmt.Errorf("sheet names must not be empty")
	}
	return nil
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("Error loading .env file: %v", err)
			return
		}
		log.Infof("Loaded environment variables from %s", envFile)
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set.
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
