package cmd

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/renderer"
	"github.com/google/subcommands"
)

type growthCmd struct {
	years string
	from  string
	to    string
}

func (*growthCmd) Name() string     { return "growth" }
func (*growthCmd) Synopsis() string { return "analyze the year over year dividend growth" }
func (*growthCmd) Usage() string {
	return `dvt growth [-from <year>] [-to <year>] | [-years <y1,y2,...>]

  Compares the income of consecutive years, overall and per symbol.
  By default all years from the first dividend to the last complete year
  are analyzed.
`
}

func (c *growthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "", "Comma separated list of years, in ascending order")
	f.StringVar(&c.from, "from", "", "First year (defaults to the first year with dividends)")
	f.StringVar(&c.to, "to", "", "Last year (defaults to the last complete year)")
}

// span returns the years to analyze.
func (c *growthCmd) span(a *dividends.Analyzer) ([]int, error) {
	var years []int
	if c.years != "" {
		for _, s := range strings.Split(c.years, ",") {
			y, err := parseYear(strings.TrimSpace(s))
			if err != nil {
				return nil, err
			}
			years = append(years, y)
		}
		return years, nil
	}

	from, err := parseYear(c.from)
	if err != nil {
		return nil, err
	}
	to, err := parseYear(c.to)
	if err != nil {
		return nil, err
	}
	if from == 0 {
		totals := a.YearlyTotals()
		if len(totals) == 0 {
			return nil, fmt.Errorf("%w: no dividend on record", dividends.ErrInsufficientData)
		}
		from = totals[0].Year
	}
	if to == 0 {
		to = a.Today.Year() - 1
	}
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years, nil
}

func (c *growthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	years, err := c.span(a)
	if err != nil {
		return failure(err)
	}
	r, err := a.GrowthAnalysis(years)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.GrowthMarkdown(r))
	return subcommands.ExitSuccess
}

type yieldCmd struct {
	year string
}

func (*yieldCmd) Name() string     { return "yield" }
func (*yieldCmd) Synopsis() string { return "compute the yield on cost of each holding" }
func (*yieldCmd) Usage() string {
	return `dvt yield [-y <year>]

  Computes the dividends of a year divided by the cost value of the
  holdings, per symbol and for the portfolio. Defaults to the most recent
  year with dividends.
`
}

func (c *yieldCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "y", "", "Year of the dividends (defaults to the most recent year with dividends)")
}

func (c *yieldCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	year, err := parseYear(c.year)
	if err != nil {
		return failure(err)
	}
	var y *int
	if year != 0 {
		y = &year
	}
	r, err := a.YieldAnalysis(y)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.YieldMarkdown(r))
	return subcommands.ExitSuccess
}

type consistencyCmd struct {
	symbol string
}

func (*consistencyCmd) Name() string     { return "consistency" }
func (*consistencyCmd) Synopsis() string { return "score the payment regularity of each symbol" }
func (*consistencyCmd) Usage() string {
	return `dvt consistency [-s <symbol>]

  Scores each symbol by the share of years it paid a dividend, from its
  first payment to the most recent year on record, and detects its payment
  frequency.
`
}

func (c *consistencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Only score this symbol")
}

func (c *consistencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := report()
	if err != nil {
		return failure(err)
	}
	var list []dividends.Consistency
	if c.symbol == "" {
		list = a.ConsistencyList()
	} else {
		symbol := dividends.NormalizeSymbol(c.symbol)
		score, ok := a.ConsistencyAnalysis()[symbol]
		if !ok {
			return failure(fmt.Errorf("%w: no dividend for %s", dividends.ErrInsufficientData, symbol))
		}
		list = []dividends.Consistency{score}
	}
	printMarkdown(renderer.ConsistencyMarkdown(list))
	return subcommands.ExitSuccess
}

type projectCmd struct {
	method   string
	scenario string
	target   string
	monthly  bool
	format   string
	output   string
}

func (*projectCmd) Name() string     { return "project" }
func (*projectCmd) Synopsis() string { return "project the future dividend income" }
func (*projectCmd) Usage() string {
	return `dvt project [-method <method>] [-scenario <scenario>] [-target <year>] [-monthly] [-format csv|json] [-o <file>]

  Projects the income of a future year from a baseline and a growth rate.

  Methods: last-twelve-months, average-two-years, last-year, current-yield.
  Scenarios: conservative (2%), moderate (5%), optimistic (8%) or a custom
  rate like 3%. Without a scenario the historical growth rate is used.

  The monthly breakdown lists the number of expected payments and the top
  payers of each month. With -format or -o the projection is exported as
  CSV or JSON, the format defaults to the extension of the output file.
`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "", "Baseline method (defaults to the configured method)")
	f.StringVar(&c.scenario, "scenario", "", "Growth scenario or rate (defaults to the configured scenario, or the historical growth)")
	f.StringVar(&c.target, "target", "", "Target year (defaults to next year)")
	f.BoolVar(&c.monthly, "monthly", false, "Distribute the projected income over the months")
	f.StringVar(&c.format, "format", "", "Export format, csv or json")
	f.StringVar(&c.output, "o", "", "Export the projection to this file")
}

// exporter returns the export function selected by the flags, nil to display the projection.
func (c *projectCmd) exporter() (func(io.Writer, *dividends.Projection) error, error) {
	if c.format == "" && c.output == "" {
		return nil, nil
	}
	format := cmp.Or(c.format, strings.TrimPrefix(filepath.Ext(c.output), "."))
	switch strings.ToLower(format) {
	case "csv":
		return dividends.ExportProjectionCSV, nil
	case "json":
		return dividends.ExportProjectionJSON, nil
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", dividends.ErrInvalidParameter, format)
	}
}

// request resolves the flags and the configured defaults into a request.
func (c *projectCmd) request(defaultMethod, defaultScenario string) (dividends.ProjectionRequest, error) {
	var req dividends.ProjectionRequest
	method, err := dividends.ParseMethod(cmp.Or(c.method, defaultMethod))
	if err != nil {
		return req, err
	}
	req.Method = method
	if s := cmp.Or(c.scenario, defaultScenario); s != "" {
		scenario, err := dividends.ParseScenario(s)
		if err != nil {
			return req, err
		}
		req.Scenario = &scenario
	}
	if req.TargetYear, err = parseYear(c.target); err != nil {
		return req, err
	}
	req.Monthly = c.monthly
	return req, nil
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, _, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	req, err := c.request(cfg.Projection.Method, cfg.Projection.Scenario)
	if err != nil {
		return failure(err)
	}
	export, err := c.exporter()
	if err != nil {
		return failure(err)
	}
	a, err := newAnalyzer(cfg, ledger)
	if err != nil {
		return failure(err)
	}
	p, err := a.Project(req)
	if err != nil {
		return failure(err)
	}
	if export == nil {
		printMarkdown(renderer.ProjectionMarkdown(p))
		return subcommands.ExitSuccess
	}
	if err := writeOutput(c.output, func(w io.Writer) error { return export(w, p) }); err != nil {
		return failure(err)
	}
	return subcommands.ExitSuccess
}
