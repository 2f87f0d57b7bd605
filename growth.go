package dividends

import (
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// GrowthPair is the year-over-year change between two consecutive requested years.
//
// When the earlier year total is zero the rate is undefined: Skipped is set and
// the pair is excluded from averages.
type GrowthPair struct {
	From, To           int
	FromTotal, ToTotal Money
	Rate               Rate
	Skipped            bool
}

// SymbolGrowth is the growth of a single symbol over the requested years.
// Years without dividends count as a zero total.
type SymbolGrowth struct {
	Symbol  string
	Pairs   []GrowthPair
	Rate    Rate // mean of the defined pair rates
	Defined bool // false when no pair rate is defined
}

// GrowthReport is the result of a growth analysis.
type GrowthReport struct {
	Years   []int
	Totals  []Money // yearly totals, aligned with Years
	Pairs   []GrowthPair
	Overall Rate // mean of the defined pair rates

	// Cumulative is the change from the first to the last requested year,
	// undefined when the first year has no dividends.
	Cumulative        Rate
	CumulativeDefined bool
	Best, Worst       *GrowthPair // highest and lowest defined pairs

	Symbols []SymbolGrowth // sorted by symbol
}

// Symbol returns the growth of symbol, and false if it is not in the report.
func (r *GrowthReport) Symbol(symbol string) (SymbolGrowth, bool) {
	i, found := slices.BinarySearchFunc(r.Symbols, NormalizeSymbol(symbol), func(g SymbolGrowth, s string) int {
		switch {
		case g.Symbol < s:
			return -1
		case g.Symbol > s:
			return 1
		}
		return 0
	})
	if !found {
		return SymbolGrowth{}, false
	}
	return r.Symbols[i], true
}

// growthPairs computes the pairs of consecutive years of a series of totals.
func growthPairs(years []int, totals []Money) []GrowthPair {
	pairs := make([]GrowthPair, 0, len(years)-1)
	for i := 1; i < len(years); i++ {
		p := GrowthPair{From: years[i-1], To: years[i], FromTotal: totals[i-1], ToTotal: totals[i]}
		if p.FromTotal.IsZero() {
			p.Skipped = true
		} else {
			p.Rate = p.ToTotal.Sub(p.FromTotal).Ratio(p.FromTotal)
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// meanRate returns the mean of the defined rates, and false if there is none.
func meanRate(pairs []GrowthPair) (Rate, bool) {
	var rates []Rate
	for _, p := range pairs {
		if !p.Skipped {
			rates = append(rates, p.Rate)
		}
	}
	if len(rates) == 0 {
		return Rate{}, false
	}
	return mean(rates), true
}

// validateYears checks that years is a non empty, strictly ascending list of past or current years.
func (a *Analyzer) validateYears(years []int) error {
	if len(years) == 0 {
		return fmt.Errorf("%w: no year to compare", ErrInsufficientData)
	}
	for i, y := range years {
		if y < 1 || y > a.currentYear() {
			return fmt.Errorf("%w: year %d is out of range", ErrInvalidParameter, y)
		}
		if i > 0 && y <= years[i-1] {
			return fmt.Errorf("%w: years must be strictly ascending, got %d after %d", ErrInvalidParameter, y, years[i-1])
		}
	}
	return nil
}

// GrowthAnalysis computes year-over-year growth over the requested years.
//
// Pairs are formed by consecutive elements of years. The overall rate is the
// mean of the defined pair rates of the portfolio yearly totals, not the mean
// of the per symbol rates. At least two requested years must have dividends.
func (a *Analyzer) GrowthAnalysis(years []int) (*GrowthReport, error) {
	defer trackTime("growth analysis", time.Now())
	if err := a.validateYears(years); err != nil {
		return nil, err
	}

	r := &GrowthReport{Years: slices.Clone(years), Totals: make([]Money, len(years))}
	withData := 0
	for i, y := range years {
		r.Totals[i] = a.yearTotal(y)
		if !r.Totals[i].IsZero() {
			withData++
		}
	}
	if withData < 2 {
		return nil, fmt.Errorf("%w: %d of the requested years have dividends, at least 2 are needed", ErrInsufficientData, withData)
	}

	r.Pairs = growthPairs(years, r.Totals)
	r.Overall, _ = meanRate(r.Pairs) // at least one pair is defined when two years have data
	for i := range r.Pairs {
		p := &r.Pairs[i]
		if p.Skipped {
			continue
		}
		if r.Best == nil || p.Rate.Cmp(r.Best.Rate) > 0 {
			r.Best = p
		}
		if r.Worst == nil || p.Rate.Cmp(r.Worst.Rate) < 0 {
			r.Worst = p
		}
	}
	first, last := r.Totals[0], r.Totals[len(r.Totals)-1]
	if !first.IsZero() {
		r.Cumulative = last.Sub(first).Ratio(first)
		r.CumulativeDefined = true
	}

	symbols, err := a.symbolGrowth(years)
	if err != nil {
		return nil, err
	}
	r.Symbols = symbols
	return r, nil
}

// symbolGrowth computes the growth of every symbol paying in one of years.
// Symbols are independent, they are computed concurrently.
func (a *Analyzer) symbolGrowth(years []int) ([]SymbolGrowth, error) {
	series := make(map[string]map[int]Money)
	for rec := range a.snapshot.Records() {
		if !slices.Contains(years, rec.Year()) {
			continue
		}
		s, ok := series[rec.Symbol()]
		if !ok {
			s = make(map[int]Money)
			series[rec.Symbol()] = s
		}
		s[rec.Year()] = s[rec.Year()].Add(rec.Total())
	}

	symbols := make([]string, 0, len(series))
	for s := range series {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)

	out := make([]SymbolGrowth, len(symbols))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, symbol := range symbols {
		g.Go(func() error {
			totals := make([]Money, len(years))
			for j, y := range years {
				totals[j] = series[symbol][y] // missing year is zero
			}
			sg := SymbolGrowth{Symbol: symbol, Pairs: growthPairs(years, totals)}
			sg.Rate, sg.Defined = meanRate(sg.Pairs)
			out[i] = sg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
