package cmd

import (
	"cmp"
	"context"
	"flag"
	"io"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/renderer"
	"github.com/google/subcommands"
)

// report opens the ledger and returns an analyzer over it.
func report() (*dividends.Analyzer, error) {
	cfg, _, ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	return newAnalyzer(cfg, ledger)
}

// reportYear returns the year flag value, or the current year.
func reportYear(a *dividends.Analyzer, flagValue string) (int, error) {
	y, err := parseYear(flagValue)
	if err != nil || y != 0 {
		return y, err
	}
	return a.Today.Year(), nil
}

type summaryCmd struct {
	top int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the dividend income summary" }
func (*summaryCmd) Usage() string {
	return `dvt summary [-top <n>]

  Displays the total income, the income of each year and the top payers.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 5, "Number of top payers to display")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	top, err := a.TopDividendPayers(c.top)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.SummaryMarkdown(a.TotalIncome(nil), a.YearlyTotals(), top))
	return subcommands.ExitSuccess
}

type monthlyCmd struct {
	year string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the income of each month of a year" }
func (*monthlyCmd) Usage() string {
	return `dvt monthly [-y <year>]

  Displays the income of the 12 months of a year, by ex-date.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Year of the report (defaults to the current year)")
}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	year, err := reportYear(a, c.year)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.MonthlyMarkdown(year, a.MonthlyBreakdown(year)))
	return subcommands.ExitSuccess
}

type quarterlyCmd struct {
	year string
}

func (*quarterlyCmd) Name() string     { return "quarterly" }
func (*quarterlyCmd) Synopsis() string { return "display the income of each quarter of a year" }
func (*quarterlyCmd) Usage() string {
	return `dvt quarterly [-y <year>]

  Displays the income of the 4 quarters of a year, by ex-date.
`
}

func (c *quarterlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Year of the report (defaults to the current year)")
}

func (c *quarterlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	year, err := reportYear(a, c.year)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.QuarterlyMarkdown(year, a.QuarterlyBreakdown(year)))
	return subcommands.ExitSuccess
}

type topCmd struct {
	limit int
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "rank symbols by total dividends received" }
func (*topCmd) Usage() string {
	return `dvt top [-n <limit>]

  Ranks the symbols by total dividends received, 0 lists them all.
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Number of symbols to display, 0 for all")
}

func (c *topCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	top, err := a.TopDividendPayers(c.limit)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.TopPayersMarkdown(top))
	return subcommands.ExitSuccess
}

type taxCmd struct {
	year    string
	filing  string
	bracket string
	form    bool
	output  string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "summarize the income of a year by tax classification" }
func (*taxCmd) Usage() string {
	return `dvt tax [-y <year>] [-bracket <bracket>] [-filing <status>] [-1099] [-o <file.csv>]

  Totals the income of a year per tax classification and per symbol.

  With an income bracket (low, medium, high, very-high) the federal tax due
  on the dividends is estimated for the filing status (single,
  married-jointly, married-separately, head-of-household).

  -1099 displays the income in 1099-DIV boxes, one line per payer. -o writes
  that report to a CSV file instead.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Tax year (defaults to the current year)")
	f.StringVar(&c.filing, "filing", "", "Filing status of the tax estimate (defaults to the configured status)")
	f.StringVar(&c.bracket, "bracket", "", "Income bracket of the tax estimate (defaults to the configured bracket, none to skip the estimate)")
	f.BoolVar(&c.form, "1099", false, "Display the 1099-DIV report")
	f.StringVar(&c.output, "o", "", "Write the 1099-DIV report to this CSV file")
}

// assumptions resolves the tax estimate flags and defaults, nil when no bracket is set.
func (c *taxCmd) assumptions(defaultFiling, defaultBracket string) (*dividends.TaxAssumptions, error) {
	bracket := cmp.Or(c.bracket, defaultBracket)
	if bracket == "" {
		return nil, nil
	}
	b, err := dividends.ParseIncomeBracket(bracket)
	if err != nil {
		return nil, err
	}
	s, err := dividends.ParseFilingStatus(cmp.Or(c.filing, defaultFiling))
	if err != nil {
		return nil, err
	}
	return &dividends.TaxAssumptions{Status: s, Bracket: b}, nil
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	t, err := c.assumptions(cfg.Tax.FilingStatus, cfg.Tax.Bracket)
	if err != nil {
		return failure(err)
	}
	a, err := newAnalyzer(cfg, ledger)
	if err != nil {
		return failure(err)
	}
	year, err := reportYear(a, c.year)
	if err != nil {
		return failure(err)
	}
	r := a.TaxSummary(year)

	switch {
	case c.output != "":
		form := r.Form1099DIV()
		err := writeOutput(c.output, func(w io.Writer) error { return dividends.Export1099DIVCSV(w, form) })
		if err != nil {
			return failure(err)
		}
	case c.form:
		printMarkdown(renderer.Form1099Markdown(r.Form1099DIV()))
	default:
		var estimate *dividends.EstimatedTax
		if t != nil {
			e := r.EstimateTax(*t)
			estimate = &e
		}
		printMarkdown(renderer.TaxMarkdown(r, estimate))
	}
	return subcommands.ExitSuccess
}
