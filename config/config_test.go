package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.LedgerFile != "dividends.jsonl" {
		t.Errorf("expected default ledger file dividends.jsonl, got %s", cfg.LedgerFile)
	}
	if cfg.Backups != 10 {
		t.Errorf("expected 10 backups by default, got %d", cfg.Backups)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected default log level warn, got %s", cfg.LogLevel)
	}
	if cfg.CacheTTL.Duration != 0 {
		t.Errorf("expected caching disabled by default, got %v", cfg.CacheTTL)
	}
	if cfg.Tax.FilingStatus != "single" || cfg.Tax.Bracket != "" {
		t.Errorf("expected single filing without estimate by default, got %+v", cfg.Tax)
	}
}

func TestLoadFromFiles_NoFiles(t *testing.T) {
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles with no files should not error: %v", err)
	}
	if cfg.Currency != "USD" {
		t.Errorf("expected default currency USD, got %s", cfg.Currency)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "dvt.toml")

	content := `
data_dir = "/tmp/dividends"
currency = "EUR"
backups = 3
log_level = "debug"
cache_ttl = "5m"

[projection]
method = "last-year"
scenario = "moderate"

[tax]
filing_status = "married-jointly"
bracket = "high"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.DataDir != "/tmp/dividends" {
		t.Errorf("expected data dir /tmp/dividends, got %s", cfg.DataDir)
	}
	if cfg.Currency != "EUR" || cfg.Backups != 3 || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.CacheTTL.Duration != 5*time.Minute {
		t.Errorf("expected cache ttl 5m, got %v", cfg.CacheTTL)
	}
	if cfg.Projection.Method != "last-year" || cfg.Projection.Scenario != "moderate" {
		t.Errorf("unexpected projection config %+v", cfg.Projection)
	}
	if cfg.Tax.FilingStatus != "married-jointly" || cfg.Tax.Bracket != "high" {
		t.Errorf("unexpected tax config %+v", cfg.Tax)
	}
	// untouched keys keep their default
	if cfg.LedgerFile != "dividends.jsonl" {
		t.Errorf("expected default ledger file, got %s", cfg.LedgerFile)
	}
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	if err := os.WriteFile(first, []byte(`currency = "EUR"`+"\nbackups = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`currency = "GBP"`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFiles(first, second)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Currency != "GBP" || cfg.Backups != 2 {
		t.Errorf("expected GBP and 2 backups, got %s and %d", cfg.Currency, cfg.Backups)
	}
}

func TestLoadFromFiles_EnvOverrides(t *testing.T) {
	t.Setenv("DVT_DATA_DIR", "/data")
	t.Setenv("DVT_BACKUPS", "0")
	t.Setenv("DVT_CACHE_TTL", "30s")
	t.Setenv("DVT_PROJECTION_SCENARIO", "3%")
	t.Setenv("DVT_TAX_BRACKET", "medium")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.DataDir != "/data" || cfg.Backups != 0 || cfg.CacheTTL.Duration != 30*time.Second || cfg.Projection.Scenario != "3%" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.Tax.Bracket != "medium" || cfg.Tax.FilingStatus != "single" {
		t.Errorf("tax env override not applied: %+v", cfg.Tax)
	}
}

func TestLoadFromFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("backups = \"ten\""), 0644); err != nil {
		t.Fatal(err)
	}
	negative := filepath.Join(dir, "negative.toml")
	if err := os.WriteFile(negative, []byte("backups = -1"), 0644); err != nil {
		t.Fatal(err)
	}
	level := filepath.Join(dir, "level.toml")
	if err := os.WriteFile(level, []byte(`log_level = "chatty"`), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{bad, negative, level, filepath.Join(dir, "missing.toml")} {
		if _, err := LoadFromFiles(path); err == nil {
			t.Errorf("LoadFromFiles(%s) expected an error", filepath.Base(path))
		}
	}

	t.Setenv("DVT_BACKUPS", "many")
	if _, err := LoadFromFiles(); err == nil {
		t.Error("expected an error for an invalid DVT_BACKUPS")
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, "/flags", "", "info")
	if cfg.DataDir != "/flags" || cfg.LedgerFile != "dividends.jsonl" || cfg.LogLevel != "info" {
		t.Errorf("unexpected config %+v", cfg)
	}
}
