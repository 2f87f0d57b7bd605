package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		DataDir:    ".",
		LedgerFile: "dividends.jsonl",
		Currency:   "USD",
		Backups:    10,
		LogLevel:   "warn",
		Projection: ProjectionConfig{
			Method: "last-twelve-months",
		},
		Tax: TaxConfig{
			FilingStatus: "single",
		},
	}
}
