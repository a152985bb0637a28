package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"adhypo/internal"
	"adhypo/internal/errors"
)

// Default values for a run
const (
	DefaultPath            = "config/config.yaml"
	DefaultLowCTRThreshold = 0.015
	DefaultMinImpressions  = 1000
	DefaultRandomSeed      = 42
	DefaultInsightsPath    = "reports/insights.json"
	DefaultCreativesPath   = "reports/creatives.json"
	DefaultReportPath      = "reports/report.md"
	DefaultLogsPath        = "logs"
	DefaultLogLevel        = "info"
	DefaultServerAddr      = ":8080"
)

// Supported ledger drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete application configuration. Unknown keys in
// the file are ignored.
type Config struct {
	DataCSV         string  `yaml:"data_csv"`
	LowCTRThreshold float64 `yaml:"low_ctr_threshold"`
	MinImpressions  int     `yaml:"min_impressions"`
	RandomSeed      int64   `yaml:"random_seed"`

	// LenientNumbers accepts currency, thousands separators, European
	// decimals, (negatives) and percents in numeric cells
	LenientNumbers bool `yaml:"lenient_numbers"`

	InsightsPath   string `yaml:"insights_path"`
	CreativesPath  string `yaml:"creatives_path"`
	ReportPath     string `yaml:"report_path"`
	ReportHTMLPath string `yaml:"report_html_path"`
	LogsPath       string `yaml:"logs_path"`

	LogLevel string       `yaml:"log_level"`
	Ledger   LedgerConfig `yaml:"ledger"`
	Server   ServerConfig `yaml:"server"`
}

// LedgerConfig holds run ledger connection settings. An empty DSN disables the ledger.
type LedgerConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Enabled reports whether runs should be recorded
func (l LedgerConfig) Enabled() bool {
	return l.DSN != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the YAML file at path, fills defaults and environment
// fallbacks, and validates the result. Every failure is CONFIG_INVALID; a
// missing file still matches os.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.AppError{
			Code:    errors.CodeConfigInvalid,
			Message: fmt.Sprintf("read config %q", path),
			Cause:   err,
		}
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &errors.AppError{
			Code:    errors.CodeConfigInvalid,
			Message: "parse config yaml",
			Cause:   err,
		}
	}

	applyEnv(cfg)
	fillEmpty(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values
func defaults() *Config {
	return &Config{
		LowCTRThreshold: DefaultLowCTRThreshold,
		MinImpressions:  DefaultMinImpressions,
		RandomSeed:      DefaultRandomSeed,
		InsightsPath:    DefaultInsightsPath,
		CreativesPath:   DefaultCreativesPath,
		ReportPath:      DefaultReportPath,
		LogsPath:        DefaultLogsPath,
		LogLevel:        DefaultLogLevel,
		Server:          ServerConfig{Addr: DefaultServerAddr},
	}
}

// applyEnv fills settings the file left empty from the environment
func applyEnv(cfg *Config) {
	if cfg.DataCSV == "" {
		cfg.DataCSV = getEnvOrDefault("DATA_CSV", "")
	}

	if cfg.Ledger.DSN == "" {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.Ledger.DSN = url
			if cfg.Ledger.Driver == "" {
				cfg.Ledger.Driver = DriverPostgres
			}
		}
	}
}

// fillEmpty restores defaults for keys present in the file with empty values
func fillEmpty(cfg *Config) {
	d := defaults()
	if cfg.InsightsPath == "" {
		cfg.InsightsPath = d.InsightsPath
	}
	if cfg.CreativesPath == "" {
		cfg.CreativesPath = d.CreativesPath
	}
	if cfg.ReportPath == "" {
		cfg.ReportPath = d.ReportPath
	}
	if cfg.LogsPath == "" {
		cfg.LogsPath = d.LogsPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = d.Server.Addr
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataCSV) == "" {
		return errors.ConfigInvalid("data path is required (data_csv or DATA_CSV)")
	}
	if math.IsNaN(cfg.LowCTRThreshold) || math.IsInf(cfg.LowCTRThreshold, 0) || cfg.LowCTRThreshold < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("low_ctr_threshold must be a non-negative number, got %v", cfg.LowCTRThreshold))
	}
	if cfg.MinImpressions < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("min_impressions must be non-negative, got %d", cfg.MinImpressions))
	}
	if _, err := internal.ParseLogLevel(cfg.LogLevel); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	if cfg.Ledger.Enabled() {
		switch cfg.Ledger.Driver {
		case DriverPostgres, DriverSQLite:
		default:
			return errors.ConfigInvalid(fmt.Sprintf("ledger.driver must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Ledger.Driver))
		}
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
