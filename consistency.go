package dividends

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/etnz/dividends/date"
	"github.com/shopspring/decimal"
)

// Frequency is the observed payment cadence of a symbol.
type Frequency int

const (
	Irregular Frequency = iota
	Monthly
	Quarterly
	SemiAnnual
	Annual
)

func (f Frequency) String() string {
	switch f {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case SemiAnnual:
		return "semi-annual"
	case Annual:
		return "annual"
	default:
		return "irregular"
	}
}

// PaymentsPerYear returns the expected number of payments in a year, zero for Irregular.
func (f Frequency) PaymentsPerYear() int {
	switch f {
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case SemiAnnual:
		return 2
	case Annual:
		return 1
	default:
		return 0
	}
}

// frequencyBands maps mean intervals between ex-dates, in days, to a frequency.
var frequencyBands = []struct {
	min, max  int
	frequency Frequency
}{
	{20, 40, Monthly},
	{80, 100, Quarterly},
	{170, 200, SemiAnnual},
	{350, 380, Annual},
}

// classifyFrequency returns the frequency matching the mean interval between
// sorted ex-dates. A single payment is Irregular.
func classifyFrequency(exDates []date.Date) Frequency {
	if len(exDates) < 2 {
		return Irregular
	}
	days := exDates[0].DaysUntil(exDates[len(exDates)-1])
	mean := float64(days) / float64(len(exDates)-1)
	for _, b := range frequencyBands {
		if mean >= float64(b.min) && mean <= float64(b.max) {
			return b.frequency
		}
	}
	return Irregular
}

// Consistency is the payment regularity of a symbol.
type Consistency struct {
	Symbol string
	// Score is the share of years with at least one payment, from the first
	// payment year to the latest year of the ledger.
	Score decimal.Decimal
	// InsufficientHistory is set when the symbol paid in a single year: the
	// score is 1 but carries no information.
	InsufficientHistory bool
	FirstYear           int
	LastYear            int // latest year of the ledger
	PaidYears           int
	Payments            int
	Frequency           Frequency
}

// ConsistencyAnalysis scores the payment regularity of every symbol.
func (a *Analyzer) ConsistencyAnalysis() map[string]Consistency {
	defer trackTime("consistency analysis", time.Now())
	latest, ok := a.latestYear()
	if !ok {
		return map[string]Consistency{}
	}

	exDates := make(map[string][]date.Date)
	paid := make(map[string]map[int]struct{})
	for rec := range a.snapshot.Records() {
		s := rec.Symbol()
		exDates[s] = append(exDates[s], rec.ExDate())
		if paid[s] == nil {
			paid[s] = make(map[int]struct{})
		}
		paid[s][rec.Year()] = struct{}{}
	}

	out := make(map[string]Consistency, len(exDates))
	for s, dates := range exDates {
		slices.SortFunc(dates, date.Date.Compare)
		c := Consistency{
			Symbol:    s,
			FirstYear: dates[0].Year(),
			LastYear:  latest,
			PaidYears: len(paid[s]),
			Payments:  len(dates),
			Frequency: classifyFrequency(dates),
		}
		if c.PaidYears == 1 {
			c.Score = decimal.NewFromInt(1)
			c.InsufficientHistory = true
		} else {
			span := latest - c.FirstYear + 1
			c.Score = decimal.NewFromInt(int64(c.PaidYears)).Div(decimal.NewFromInt(int64(span)))
		}
		out[s] = c
	}
	return out
}

// ConsistencyList returns the consistency of every symbol, sorted by symbol.
func (a *Analyzer) ConsistencyList() []Consistency {
	m := a.ConsistencyAnalysis()
	out := make([]Consistency, 0, len(m))
	for _, s := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[s])
	}
	return out
}

// ScoreString formats the score as a percentage.
func (c Consistency) ScoreString() string {
	return fmt.Sprintf("%s%%", c.Score.Shift(2).StringFixed(1))
}
