package dividends

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Reasons a symbol yield is unknown.
const (
	ReasonNoHolding   = "no holding on record"
	ReasonNoCostBasis = "no cost basis"
	ReasonNoShares    = "no shares held"
)

// SymbolYield is the yield on cost of a symbol for the analyzed year.
type SymbolYield struct {
	Symbol    string
	Dividends Money // dividends received in the year
	CostValue Money // cost basis × shares, zero when unknown
	Yield     Rate
	Known     bool
	Reason    string // why the yield is unknown
}

// YieldReport is the result of a yield analysis.
//
// The portfolio yield only weights symbols with a known yield; the others
// are listed with Known unset and a Reason.
type YieldReport struct {
	Year             int
	PortfolioYield   Rate
	Dividends        Money         // dividends of the symbols with a known yield
	CostValue        Money         // cost value of the symbols with a known yield
	Symbols          []SymbolYield // sorted by symbol
	Highest, Lowest  *SymbolYield  // among known yields
	UnknownDividends Money         // dividends of symbols with an unknown yield
}

// Unknown returns the symbols whose yield could not be computed.
func (r *YieldReport) Unknown() []SymbolYield {
	var out []SymbolYield
	for _, s := range r.Symbols {
		if !s.Known {
			out = append(out, s)
		}
	}
	return out
}

// latestYear returns the most recent ex-date year, and false for an empty snapshot.
func (a *Analyzer) latestYear() (int, bool) {
	years := a.years()
	if len(years) == 0 {
		return 0, false
	}
	return years[len(years)-1], true
}

// YieldAnalysis computes the yield on cost of each symbol and of the
// portfolio for year, by default the most recent year with dividends.
//
// It fails with ErrMissingCostBasis only when no holding has a usable cost
// basis; otherwise symbols lacking data are reported as unknown.
func (a *Analyzer) YieldAnalysis(year *int) (*YieldReport, error) {
	defer trackTime("yield analysis", time.Now())
	holdings := a.snapshot.Holdings()
	usable := false
	for _, h := range holdings {
		if h.HasUsableCostBasis() {
			usable = true
			break
		}
	}
	if !usable {
		return nil, fmt.Errorf("%w: no holding has a cost basis and shares", ErrMissingCostBasis)
	}

	var target int
	if year != nil {
		target = *year
	} else {
		y, ok := a.latestYear()
		if !ok {
			return nil, fmt.Errorf("%w: no dividend to compute a yield from", ErrInsufficientData)
		}
		target = y
	}

	dividends := make(map[string]Money)
	for k, b := range Aggregate(a.snapshot.Records(ByYear(target)), GroupBySymbol).All() {
		dividends[k.Symbol] = b.Total
	}
	symbols := make(map[string]struct{})
	for s := range dividends {
		symbols[s] = struct{}{}
	}
	for s := range holdings {
		symbols[s] = struct{}{}
	}

	r := &YieldReport{Year: target}
	for _, symbol := range slices.Sorted(maps.Keys(symbols)) {
		sy := SymbolYield{Symbol: symbol, Dividends: dividends[symbol]}
		h, held := holdings[symbol]
		switch {
		case !held:
			sy.Reason = ReasonNoHolding
		case h.CostBasis == nil:
			sy.Reason = ReasonNoCostBasis
		case !h.Shares.IsPositive():
			sy.Reason = ReasonNoShares
		default:
			sy.CostValue, _ = h.CostValue()
			sy.Yield = sy.Dividends.Ratio(sy.CostValue)
			sy.Known = true
		}
		if sy.Known {
			r.Dividends = r.Dividends.Add(sy.Dividends)
			r.CostValue = r.CostValue.Add(sy.CostValue)
		} else {
			r.UnknownDividends = r.UnknownDividends.Add(sy.Dividends)
		}
		r.Symbols = append(r.Symbols, sy)
	}

	for i := range r.Symbols {
		s := &r.Symbols[i]
		if !s.Known {
			continue
		}
		if r.Highest == nil || s.Yield.Cmp(r.Highest.Yield) > 0 {
			r.Highest = s
		}
		if r.Lowest == nil || s.Yield.Cmp(r.Lowest.Yield) < 0 {
			r.Lowest = s
		}
	}
	// usable basis guarantees a positive cost value
	r.PortfolioYield = r.Dividends.Ratio(r.CostValue)
	return r, nil
}
