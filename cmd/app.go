// Package cmd implements the dvt command line application to manage a
// dividend ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/dividends"
	"github.com/etnz/dividends/config"
	"github.com/etnz/dividends/date"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// Commands lists the subcommands by group, in display order.
var Commands = []struct {
	Group    string
	Commands []subcommands.Command
}{
	{"ledger", []subcommands.Command{&addCmd{}, &removeCmd{}, &listCmd{}, &fmtCmd{}}},
	{"holdings", []subcommands.Command{&holdingAddCmd{}, &holdingRemoveCmd{}, &holdingsCmd{}}},
	{"import/export", []subcommands.Command{&importCmd{}, &exportCmd{}}},
	{"reports", []subcommands.Command{&summaryCmd{}, &monthlyCmd{}, &quarterlyCmd{}, &topCmd{}, &taxCmd{}}},
	{"analytics", []subcommands.Command{&growthCmd{}, &yieldCmd{}, &consistencyCmd{}, &projectCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range Commands {
		for _, cmd := range g.Commands {
			c.Register(cmd, g.Group)
		}
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the configuration file (defaults to dvt.toml if present)")
var dataDir = flag.String("data-dir", "", "Data directory holding the ledger file and its backups")
var ledgerFile = flag.String("ledger-file", "", "Ledger file name within the data directory (JSONL format)")
var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error)")
var raw = flag.Bool("raw", false, "Print reports as raw markdown")

// todayEnv overrides today's date, for reproducible reports.
const todayEnv = "DVT_TODAY"

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// loadConfig resolves the configuration and applies it to the process.
func loadConfig() (*config.Config, error) {
	var paths []string
	if *configFile != "" {
		paths = append(paths, *configFile)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	config.ApplyFlagOverrides(cfg, *dataDir, *ledgerFile, *logLevel)
	if err := cfg.SetupLogging(); err != nil {
		return nil, err
	}
	dividends.Currency = cfg.Currency
	return cfg, nil
}

// openStore returns the configured store.
func openStore(cfg *config.Config) *dividends.Store {
	s := dividends.NewStore(cfg.DataDir)
	s.File = cfg.LedgerFile
	s.Backups = cfg.Backups
	return s
}

// DecodeLedger loads the configuration and the ledger it designates.
func DecodeLedger() (*config.Config, *dividends.Store, *dividends.Ledger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}
	store := openStore(cfg)
	ledger, err := store.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log.Debugf("loaded %d dividend(s) from %s", ledger.Len(), store.Path())
	return cfg, store, ledger, nil
}

// newAnalyzer returns an analyzer over ledger using the configured cache.
func newAnalyzer(cfg *config.Config, ledger *dividends.Ledger) (*dividends.Analyzer, error) {
	a := dividends.NewAnalyzer(ledger, cfg.CacheTTL.Duration)
	on, err := today()
	if err != nil {
		return nil, err
	}
	a.Today = on
	return a, nil
}

func today() (date.Date, error) {
	v := os.Getenv(todayEnv)
	if v == "" {
		return date.Today(), nil
	}
	d, err := date.Parse(v)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid %s: %w", todayEnv, err)
	}
	return d, nil
}

// printMarkdown renders md for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Warnf("cannot render markdown: %v", err)
		out = md
	}
	fmt.Fprint(stdout, out)
}

// writeOutput calls write on the file at path, or on stdout if path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	log.Infof("wrote %s", path)
	return nil
}

// failure reports err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, dividends.ErrInvalidParameter) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usageError reports a malformed command line.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// parseYear parses an optional year flag, 0 when empty.
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 {
		return 0, fmt.Errorf("%w: invalid year %q", dividends.ErrInvalidParameter, s)
	}
	return y, nil
}
