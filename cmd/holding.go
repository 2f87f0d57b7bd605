package cmd

import (
	"context"
	"flag"
	"fmt"
	"slices"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/renderer"
	"github.com/google/subcommands"
)

type holdingAddCmd struct {
	symbol    string
	shares    string
	costBasis string
	yield     string
}

func (*holdingAddCmd) Name() string     { return "holding-add" }
func (*holdingAddCmd) Synopsis() string { return "create or update a holding" }
func (*holdingAddCmd) Usage() string {
	return `dvt holding-add -s <symbol> -shares <quantity> [-cost <per share>] [-yield <rate>]

  Creates the holding of a symbol, or replaces it if it already exists.
  The cost basis is the average cost per share, the yield is the current
  indicated yield as a percentage: 3.5 and 3.5% both mean three and a half
  percent.
`
}

func (c *holdingAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
	f.StringVar(&c.shares, "shares", "", "Number of shares held")
	f.StringVar(&c.costBasis, "cost", "", "Average cost per share")
	f.StringVar(&c.yield, "yield", "", "Current indicated yield, in percent")
}

func (c *holdingAddCmd) holding() (dividends.Holding, error) {
	shares, err := dividends.ParseQuantity(c.shares)
	if err != nil {
		return dividends.Holding{}, fmt.Errorf("%w: invalid shares %q", dividends.ErrInvalidParameter, c.shares)
	}
	var basis *dividends.Money
	if c.costBasis != "" {
		m, err := dividends.ParseMoney(c.costBasis)
		if err != nil {
			return dividends.Holding{}, fmt.Errorf("%w: invalid cost basis %q", dividends.ErrInvalidParameter, c.costBasis)
		}
		basis = &m
	}
	var yield *dividends.Rate
	if c.yield != "" {
		r, err := dividends.ParsePercent(c.yield)
		if err != nil {
			return dividends.Holding{}, fmt.Errorf("%w: invalid yield %q", dividends.ErrInvalidParameter, c.yield)
		}
		yield = &r
	}
	h, err := dividends.NewHolding(c.symbol, shares, basis, yield)
	if err != nil {
		return h, fmt.Errorf("%w: %w", dividends.ErrInvalidParameter, err)
	}
	return h, nil
}

func (c *holdingAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	h, err := c.holding()
	if err != nil {
		return failure(err)
	}
	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	replaced := ledger.UpsertHolding(h)
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	verb := "Created"
	if replaced {
		verb = "Updated"
	}
	fmt.Fprintf(stdout, "%s holding %s: %s shares\n", verb, h.Symbol, h.Shares)
	return subcommands.ExitSuccess
}

type holdingRemoveCmd struct {
	symbol string
}

func (*holdingRemoveCmd) Name() string     { return "holding-remove" }
func (*holdingRemoveCmd) Synopsis() string { return "delete a holding" }
func (*holdingRemoveCmd) Usage() string {
	return `dvt holding-remove -s <symbol>

  Deletes the holding of a symbol. Its dividends stay in the ledger.
`
}

func (c *holdingRemoveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Ticker symbol")
}

func (c *holdingRemoveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, store, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	if err := ledger.RemoveHolding(c.symbol); err != nil {
		return failure(err)
	}
	if err := store.Save(ledger); err != nil {
		return failure(err)
	}
	fmt.Fprintf(stdout, "Removed holding %s\n", dividends.NormalizeSymbol(c.symbol))
	return subcommands.ExitSuccess
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list holdings" }
func (*holdingsCmd) Usage() string {
	return `dvt holdings

  Lists the holdings with their cost value.
`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (*holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, _, ledger, err := DecodeLedger()
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.HoldingsMarkdown(slices.Collect(ledger.AllHoldings())))
	return subcommands.ExitSuccess
}
