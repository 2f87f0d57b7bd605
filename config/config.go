// Package config loads the dvt configuration.
//
// Values are resolved with priority: defaults -> TOML files -> .env file ->
// DVT_* environment variables -> command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "dvt.toml"

// Config represents the application configuration.
type Config struct {
	DataDir    string           `toml:"data_dir"`
	LedgerFile string           `toml:"ledger_file"`
	Currency   string           `toml:"currency"`
	Backups    int              `toml:"backups"`
	LogLevel   string           `toml:"log_level"`
	CacheTTL   Duration         `toml:"cache_ttl"`
	Projection ProjectionConfig `toml:"projection"`
	Tax        TaxConfig        `toml:"tax"`
}

// ProjectionConfig holds the projection defaults.
type ProjectionConfig struct {
	Method   string `toml:"method"`
	Scenario string `toml:"scenario"` // empty for the historical growth rate
}

// TaxConfig holds the tax estimate defaults.
type TaxConfig struct {
	FilingStatus string `toml:"filing_status"`
	Bracket      string `toml:"bracket"` // empty to skip the estimate
}

// Duration is a time.Duration read from strings like "5m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Load loads configuration from the given files, in order. An empty path
// list looks for DefaultFile, which is optional.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultFile); err == nil {
			paths = []string{DefaultFile}
		}
	}
	return LoadFromFiles(paths...)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	// Try to load .env file (ignore error if it doesn't exist)
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("cannot load .env file: %v", err)
	}
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies DVT_* environment variable overrides to config.
func applyEnvOverrides(config *Config) error {
	config.DataDir = getEnv("DVT_DATA_DIR", config.DataDir)
	config.LedgerFile = getEnv("DVT_LEDGER_FILE", config.LedgerFile)
	config.Currency = getEnv("DVT_CURRENCY", config.Currency)
	config.LogLevel = getEnv("DVT_LOG_LEVEL", config.LogLevel)
	config.Projection.Method = getEnv("DVT_PROJECTION_METHOD", config.Projection.Method)
	config.Projection.Scenario = getEnv("DVT_PROJECTION_SCENARIO", config.Projection.Scenario)
	config.Tax.FilingStatus = getEnv("DVT_TAX_FILING_STATUS", config.Tax.FilingStatus)
	config.Tax.Bracket = getEnv("DVT_TAX_BRACKET", config.Tax.Bracket)

	if v := os.Getenv("DVT_BACKUPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DVT_BACKUPS %q: %w", v, err)
		}
		config.Backups = n
	}
	if v := os.Getenv("DVT_CACHE_TTL"); v != "" {
		if err := config.CacheTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid DVT_CACHE_TTL %q: %w", v, err)
		}
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Validate checks values that cannot be checked by decoding.
func (c *Config) Validate() error {
	if c.Backups < 0 {
		return fmt.Errorf("backups must not be negative, got %d", c.Backups)
	}
	if c.CacheTTL.Duration < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %v", c.CacheTTL)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, dataDir, ledgerFile, logLevel string) {
	if dataDir != "" {
		config.DataDir = dataDir
	}
	if ledgerFile != "" {
		config.LedgerFile = ledgerFile
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
}

// SetupLogging configures the standard logrus logger from the config.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return nil
}
