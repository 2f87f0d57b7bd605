package dividends

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/etnz/dividends/date"
)

// MonthlyTotal is the income of a calendar month.
type MonthlyTotal struct {
	Month time.Month
	Total Money
	Count int
}

// QuarterlyTotal is the income of a calendar quarter.
type QuarterlyTotal struct {
	Quarter int
	Total   Money
	Count   int
}

// YearlyTotal is the income of a calendar year.
type YearlyTotal struct {
	Year    int
	Total   Money
	Count   int
	Symbols int
}

// PayerTotal summarizes the dividends paid by one symbol.
type PayerTotal struct {
	Symbol  string
	Company string
	Total   Money
	Count   int
	Average Money // average payment
	First   date.Date
	Last    date.Date
}

// MonthlyBreakdown returns exactly 12 entries, January to December, for year.
// Months without dividends are zero.
func (a *Analyzer) MonthlyBreakdown(year int) []MonthlyTotal {
	agg := a.Aggregate(GroupByMonth)
	out := make([]MonthlyTotal, 12)
	for i := range out {
		b := agg.Get(GroupKey{Year: year, Month: i + 1})
		out[i] = MonthlyTotal{Month: time.Month(i + 1), Total: b.Total, Count: b.Count}
	}
	return out
}

// QuarterlyBreakdown returns exactly 4 entries, Q1 to Q4, for year.
func (a *Analyzer) QuarterlyBreakdown(year int) []QuarterlyTotal {
	agg := a.Aggregate(GroupByQuarter)
	out := make([]QuarterlyTotal, 4)
	for i := range out {
		b := agg.Get(GroupKey{Year: year, Quarter: i + 1})
		out[i] = QuarterlyTotal{Quarter: i + 1, Total: b.Total, Count: b.Count}
	}
	return out
}

// YearlyTotals returns the income of each year with dividends, oldest first.
func (a *Analyzer) YearlyTotals() []YearlyTotal {
	var out []YearlyTotal
	for k, b := range a.Aggregate(GroupByYear).All() {
		symbols := Aggregate(a.snapshot.Records(ByYear(k.Year)), GroupBySymbol).Len()
		out = append(out, YearlyTotal{Year: k.Year, Total: b.Total, Count: b.Count, Symbols: symbols})
	}
	return out
}

// TotalIncome returns the total of every record, or of year's records if year is not nil.
func (a *Analyzer) TotalIncome(year *int) Money {
	if year != nil {
		return a.yearTotal(*year)
	}
	return a.Aggregate(GroupByYear).Total()
}

// TopDividendPayers returns symbols by descending total, ties broken by
// ascending symbol. A limit of zero returns every symbol.
func (a *Analyzer) TopDividendPayers(limit int) ([]PayerTotal, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative, got %d", ErrInvalidParameter, limit)
	}

	payers := make(map[string]*PayerTotal)
	for rec := range a.snapshot.Records() {
		p, ok := payers[rec.Symbol()]
		if !ok {
			p = &PayerTotal{Symbol: rec.Symbol(), First: rec.ExDate(), Last: rec.ExDate()}
			payers[rec.Symbol()] = p
		}
		p.Total = p.Total.Add(rec.Total())
		p.Count++
		if rec.ExDate().Before(p.First) {
			p.First = rec.ExDate()
		}
		if !rec.ExDate().Before(p.Last) {
			p.Last = rec.ExDate()
			if rec.Company() != "" {
				p.Company = rec.Company()
			}
		}
	}

	out := make([]PayerTotal, 0, len(payers))
	for _, p := range payers {
		p.Average = p.Total.Div(Q(p.Count))
		out = append(out, *p)
	}
	slices.SortFunc(out, func(x, y PayerTotal) int {
		return cmp.Or(y.Total.Cmp(x.Total), cmp.Compare(x.Symbol, y.Symbol))
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
