package dividends

import (
	"time"

	"github.com/etnz/dividends/date"
)

// Analyzer answers analytics and projection queries over a snapshot.
//
// It never mutates the snapshot and holds no derived state besides the
// optional aggregation memo, which is keyed by the snapshot revision.
type Analyzer struct {
	snapshot Snapshot
	agg      *Aggregator
	// Today is the reference date for trailing windows and the current year.
	Today date.Date
}

// NewAnalyzer returns an analyzer over s. Today is initialized from the clock,
// cacheTTL configures the aggregation memo (zero disables it).
func NewAnalyzer(s Snapshot, cacheTTL time.Duration) *Analyzer {
	return &Analyzer{
		snapshot: s,
		agg:      NewAggregator(s, cacheTTL),
		Today:    date.Today(),
	}
}

// Aggregate groups every record of the snapshot along d.
func (a *Analyzer) Aggregate(d Dimension) Aggregation { return a.agg.Aggregate(d) }

// currentYear is the calendar year of Today.
func (a *Analyzer) currentYear() int { return a.Today.Year() }

// yearTotal returns the total of records with ex-date in year, zero if none.
func (a *Analyzer) yearTotal(year int) Money {
	return a.Aggregate(GroupByYear).Get(GroupKey{Year: year}).Total
}

// years returns the sorted distinct ex-date years of the snapshot.
func (a *Analyzer) years() []int {
	var years []int
	for _, k := range a.Aggregate(GroupByYear).Keys() {
		years = append(years, k.Year)
	}
	return years
}

// symbols returns the sorted distinct symbols that paid dividends.
func (a *Analyzer) symbols() []string {
	var symbols []string
	for _, k := range a.Aggregate(GroupBySymbol).Keys() {
		symbols = append(symbols, k.Symbol)
	}
	return symbols
}
