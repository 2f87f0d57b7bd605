package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/dividends"
	"github.com/google/subcommands"
)

const (
	kindDividends = "dividends"
	kindHoldings  = "holdings"
)

type importCmd struct {
	kind  string
	force bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import dividends or holdings from a CSV file" }
func (*importCmd) Usage() string {
	return `dvt import [-kind dividends|holdings] [-force] <file.csv>

  Imports a CSV file with a header line. Dividend columns are symbol,
  company, ex_date, pay_date, amount_per_share, shares, type and tax.
  Holding columns are symbol, shares, cost_basis and current_yield.

  The file is validated as a whole before anything is recorded. Dividends
  already in the ledger are skipped, or replaced with -force.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", kindDividends, "What the file contains (dividends, holdings)")
	f.BoolVar(&c.force, "force", false, "Replace dividends already in the ledger")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usageError("import expects exactly one file, got %d", f.NArg())
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	defer file.Close()

	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}

	var res dividends.ImportResult
	switch c.kind {
	case kindDividends:
		res, err = dividends.ImportDividendsCSV(file, ledger, c.force)
	case kindHoldings:
		res, err = dividends.ImportHoldingsCSV(file, ledger)
	default:
		return usageError("unknown kind %q", c.kind)
	}
	if err != nil {
		return failure(fmt.Errorf("error importing %q: %w", f.Arg(0), err))
	}
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Imported %s: %s\n", f.Arg(0), res)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	kind   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export dividends or holdings to a CSV file" }
func (*exportCmd) Usage() string {
	return `dvt export [-kind dividends|holdings] [-o <file.csv>]

  Writes the dividends or the holdings in the CSV format read by import.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", kindDividends, "What to export (dividends, holdings)")
	f.StringVar(&c.output, "o", "", "Output file, defaults to the standard output")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var export func(io.Writer, *dividends.Ledger) error
	switch c.kind {
	case kindDividends:
		export = dividends.ExportDividendsCSV
	case kindHoldings:
		export = dividends.ExportHoldingsCSV
	default:
		return usageError("unknown kind %q", c.kind)
	}

	_, _, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}

	if err := writeOutput(c.output, func(w io.Writer) error { return export(w, ledger) }); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
