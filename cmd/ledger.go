package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/date"
	"github.com/etnz/dividends/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	symbol  string
	company string
	exDate  string
	payDate string
	amount  string
	shares  string
	kind    string
	tax     string
	force   bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a dividend payment" }
func (*addCmd) Usage() string {
	return `dvt add -s <symbol> -ex <date> [-pay <date>] -amount <per share> -shares <quantity> [-type <type>] [-tax <classification>] [-force]

  Records a dividend payment in the ledger. The total is amount × shares.
  A dividend with the same symbol and ex-date is rejected unless -force.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.StringVar(&c.company, "company", "", "Company name")
	f.StringVar(&c.exDate, "ex", "", "Ex-dividend date (YYYY-MM-DD)")
	f.StringVar(&c.payDate, "pay", "", "Payment date (YYYY-MM-DD), defaults to the ex-date")
	f.StringVar(&c.amount, "amount", "", "Amount per share")
	f.StringVar(&c.shares, "shares", "", "Number of shares held on the ex-date")
	f.StringVar(&c.kind, "type", "regular", "Dividend type (regular, special, return-of-capital, stock, spin-off)")
	f.StringVar(&c.tax, "tax", "unknown", "Tax classification (qualified, non-qualified, return-of-capital, tax-free, foreign)")
	f.BoolVar(&c.force, "force", false, "Record a duplicate dividend anyway")
}

// record validates the flags into a dividend record.
func (c *addCmd) record() (dividends.DividendRecord, error) {
	var rec dividends.DividendRecord
	exDate, err := date.Parse(c.exDate)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid ex-date: %v", dividends.ErrInvalidParameter, err)
	}
	payDate := exDate
	if c.payDate != "" {
		if payDate, err = date.Parse(c.payDate); err != nil {
			return rec, fmt.Errorf("%w: invalid pay date: %v", dividends.ErrInvalidParameter, err)
		}
	}
	amount, err := dividends.ParseMoney(c.amount)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid amount %q", dividends.ErrInvalidParameter, c.amount)
	}
	shares, err := dividends.ParseQuantity(c.shares)
	if err != nil {
		return rec, fmt.Errorf("%w: invalid shares %q", dividends.ErrInvalidParameter, c.shares)
	}
	kind, err := dividends.ParseDividendType(c.kind)
	if err != nil {
		return rec, err
	}
	tax, err := dividends.ParseTaxClassification(c.tax)
	if err != nil {
		return rec, err
	}
	rec, err = dividends.NewDividendRecord(c.symbol, exDate, payDate, amount, shares,
		dividends.WithCompany(c.company), dividends.WithType(kind), dividends.WithTax(tax))
	if err != nil {
		return rec, fmt.Errorf("%w: %w", dividends.ErrInvalidParameter, err)
	}
	return rec, nil
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rec, err := c.record()
	if err != nil {
		return failure(err)
	}
	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	if err := ledger.Add(rec, c.force); err != nil {
		return failure(err)
	}
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Added %s: %s\n", rec.Key(), rec.Total())
	return subcommands.ExitSuccess
}

type removeCmd struct {
	symbol string
	exDate string
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete a dividend payment" }
func (*removeCmd) Usage() string {
	return `dvt remove -s <symbol> -ex <date>

  Deletes the dividends of a symbol on an ex-date.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.StringVar(&c.exDate, "ex", "", "Ex-dividend date (YYYY-MM-DD)")
}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	exDate, err := date.Parse(c.exDate)
	if err != nil {
		return usageError("invalid ex-date: %v", err)
	}
	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	n, err := ledger.Remove(c.symbol, exDate)
	if err != nil {
		return failure(err)
	}
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Removed %d dividend(s)\n", n)
	return subcommands.ExitSuccess
}

type listCmd struct {
	symbol string
	year   string
	tax    string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list dividend payments" }
func (*listCmd) Usage() string {
	return `dvt list [-s <symbol>] [-y <year>] [-tax <classification>]

  Lists the dividends in chronological order of ex-date.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only list this symbol")
	f.StringVar(&c.year, "y", "", "Only list this ex-date year")
	f.StringVar(&c.tax, "tax", "", "Only list this tax classification")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []func(dividends.DividendRecord) bool
	title := "Dividends"
	if c.symbol != "" {
		filters = append(filters, dividends.BySymbol(c.symbol))
		title += " of " + dividends.NormalizeSymbol(c.symbol)
	}
	year, err := parseYear(c.year)
	if err != nil {
		return failure(err)
	}
	if year != 0 {
		filters = append(filters, dividends.ByYear(year))
		title += fmt.Sprintf(" in %d", year)
	}
	if c.tax != "" {
		tax, err := dividends.ParseTaxClassification(c.tax)
		if err != nil {
			return failure(err)
		}
		filters = append(filters, dividends.ByTax(tax))
	}

	_, _, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.RecordsMarkdown(title, slices.Collect(ledger.Records(filters...))))
	return subcommands.ExitSuccess
}

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "formats the ledger file into a canonical form" }
func (*fmtCmd) Usage() string {
	return `dvt fmt

  Rewrites the ledger file in canonical form: dividends sorted by ex-date
  then symbol, holdings sorted by symbol, fields in a fixed order.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Ledger file %q has been formatted.\n", store.Path())
	return subcommands.ExitSuccess
}
