package dividends

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/etnz/dividends/date"
	"github.com/shopspring/decimal"
)

// Method is the way a projection computes its baseline annual income.
type Method int

const (
	// LastTwelveMonths sums the dividends with an ex-date in the twelve months up to today.
	LastTwelveMonths Method = iota
	// AverageTwoYears averages the last two complete calendar years.
	AverageTwoYears
	// LastYear is the total of the last complete calendar year.
	LastYear
	// CurrentYield sums cost basis × shares × current yield over holdings.
	CurrentYield
)

func (m Method) String() string {
	switch m {
	case LastTwelveMonths:
		return "last-twelve-months"
	case AverageTwoYears:
		return "average-two-years"
	case LastYear:
		return "last-year"
	case CurrentYield:
		return "current-yield"
	default:
		return "invalid"
	}
}

// Methods lists the baseline methods.
func Methods() []Method { return []Method{LastTwelveMonths, AverageTwoYears, LastYear, CurrentYield} }

// ParseMethod parses a method name. The empty string is LastTwelveMonths.
func ParseMethod(s string) (Method, error) {
	switch normalizeTag(s) {
	case "", "last-twelve-months", "ltm", "ttm":
		return LastTwelveMonths, nil
	case "average-two-years", "avg2", "average":
		return AverageTwoYears, nil
	case "last-year":
		return LastYear, nil
	case "current-yield", "yield":
		return CurrentYield, nil
	default:
		return LastTwelveMonths, fmt.Errorf("%w: unknown projection method %q", ErrInvalidParameter, s)
	}
}

// Scenario is an annual growth rate applied to a baseline.
type Scenario struct {
	Name string
	Rate Rate
}

// Named growth scenarios.
var (
	Conservative = Scenario{Name: "conservative", Rate: R(0.02)}
	Moderate     = Scenario{Name: "moderate", Rate: R(0.05)}
	Optimistic   = Scenario{Name: "optimistic", Rate: R(0.08)}
)

// Custom returns a scenario with a caller supplied rate.
func Custom(rate Rate) Scenario { return Scenario{Name: "custom", Rate: rate} }

func (s Scenario) String() string { return fmt.Sprintf("%s (%s)", s.Name, s.Rate) }

// ParseScenario parses a scenario name or a custom rate like "3%" or "0.03".
func ParseScenario(s string) (Scenario, error) {
	switch normalizeTag(s) {
	case Conservative.Name:
		return Conservative, nil
	case Moderate.Name:
		return Moderate, nil
	case Optimistic.Name:
		return Optimistic, nil
	}
	r, err := ParseRate(s)
	if err != nil {
		return Scenario{}, fmt.Errorf("%w: unknown scenario %q", ErrInvalidParameter, s)
	}
	return Custom(r), nil
}

// ProjectionRequest describes a projection.
type ProjectionRequest struct {
	Method Method
	// Scenario is the growth to apply, nil to use the historical growth rate.
	Scenario *Scenario
	// TargetYear is the projected year, zero for next year.
	TargetYear int
	// Monthly requests the breakdown of the projected year into months.
	Monthly bool
}

// SymbolProjection is the share of a projection attributed to a symbol.
type SymbolProjection struct {
	Symbol    string
	Baseline  Money
	Projected Money
}

// MonthlyProjection is the projected income of a month.
type MonthlyProjection struct {
	MonthlyTotal // Count is the number of symbols expected to pay in the month
	// Payers lists up to three symbols contributing most to the month, largest first.
	Payers []string
}

// ProjectionMetadata describes the data a projection stands on.
type ProjectionMetadata struct {
	// DataPoints is the number of dividend records in the ledger.
	DataPoints int
	// History spans the oldest to the newest ex-date, zero for an empty ledger.
	History date.Range
	// Included is the number of symbols sharing the projected income.
	Included int
	// Excluded lists the holdings that contribute nothing to the baseline.
	Excluded []string
	// Confidence is a 0 to 100 score of how much data backs the method.
	Confidence int
}

// YearProjection is the projected income of one year.
type YearProjection struct {
	Year  int
	Total Money
}

// Projection is a forecast of the income of a future year.
type Projection struct {
	Method        Method
	Scenario      Scenario // zero value when the historical rate is used
	Historical    bool     // the rate comes from the growth analysis
	Rate          Rate
	ReferenceYear int        // year the baseline stands for
	Window        date.Range // records considered by the baseline, zero for CurrentYield
	Baseline      Money
	TargetYear    int
	Annual        Money

	// Path lists the projected income of every year after the current one up to the target.
	Path []YearProjection
	// Monthly holds 12 buckets summing to Annual, when requested.
	Monthly []MonthlyProjection
	// UniformDistribution is set when the baseline has no monthly pattern and
	// Annual was split evenly.
	UniformDistribution bool
	Symbols             []SymbolProjection
	Metadata            ProjectionMetadata
}

// baseline is the outcome of a baseline method.
type baseline struct {
	amount  Money
	ref     int
	window  date.Range
	anchor  int // last complete year with records, zero if none
	months  [12]Money
	payers  [12]map[string]Money // per month income of each symbol
	symbols map[string]Money
	uniform bool
}

// anchorYear returns the most recent complete calendar year with records.
func (a *Analyzer) anchorYear() (int, bool) {
	years := a.years()
	for i := len(years) - 1; i >= 0; i-- {
		if years[i] < a.currentYear() {
			return years[i], true
		}
	}
	return 0, false
}

// windowBaseline sums records in window into a baseline divided by n years.
func (a *Analyzer) windowBaseline(window date.Range, n int) baseline {
	b := baseline{window: window, symbols: make(map[string]Money)}
	for rec := range a.snapshot.Records(ByRange(window)) {
		m := rec.ExDate().Month() - 1
		b.amount = b.amount.Add(rec.Total())
		b.months[m] = b.months[m].Add(rec.Total())
		if b.payers[m] == nil {
			b.payers[m] = make(map[string]Money)
		}
		b.payers[m][rec.Symbol()] = b.payers[m][rec.Symbol()].Add(rec.Total())
		b.symbols[rec.Symbol()] = b.symbols[rec.Symbol()].Add(rec.Total())
	}
	if n > 1 {
		b.amount = b.amount.Div(Q(n))
		for s, v := range b.symbols {
			b.symbols[s] = v.Div(Q(n))
		}
	}
	return b
}

// computeBaseline runs the baseline method.
func (a *Analyzer) computeBaseline(m Method) (baseline, error) {
	anchor, hasAnchor := a.anchorYear()
	var b baseline
	switch m {
	case LastTwelveMonths:
		b = a.windowBaseline(date.TrailingMonths(a.Today, 12), 1)
		b.ref = a.currentYear()
	case LastYear:
		if !hasAnchor {
			return b, fmt.Errorf("%w: no complete calendar year with dividends", ErrNoBaselineData)
		}
		b = a.windowBaseline(date.Year(anchor), 1)
		b.ref = anchor
	case AverageTwoYears:
		if !hasAnchor {
			return b, fmt.Errorf("%w: no complete calendar year with dividends", ErrNoBaselineData)
		}
		b = a.windowBaseline(date.Range{From: date.Year(anchor - 1).From, To: date.Year(anchor).To}, 2)
		b.ref = anchor
	case CurrentYield:
		b = baseline{ref: a.currentYear(), symbols: make(map[string]Money), uniform: true}
		for _, h := range a.snapshot.Holdings() {
			if !h.HasUsableCostBasis() || h.CurrentYield == nil {
				continue
			}
			cost, _ := h.CostValue()
			income := cost.Scale(h.CurrentYield.Decimal())
			if income.IsZero() {
				continue
			}
			b.symbols[h.Symbol] = income
			b.amount = b.amount.Add(income)
		}
	default:
		return b, fmt.Errorf("%w: unknown projection method %d", ErrInvalidParameter, m)
	}
	b.anchor = anchor
	if b.amount.IsZero() {
		return b, fmt.Errorf("%w: %s baseline is empty", ErrNoBaselineData, m)
	}
	return b, nil
}

// historicalRate returns the overall growth over the complete years up to anchor.
func (a *Analyzer) historicalRate(anchor int) (Rate, error) {
	years := a.years()
	if len(years) == 0 || anchor == 0 {
		return Rate{}, fmt.Errorf("%w: no complete year to derive a growth rate from", ErrInsufficientData)
	}
	var span []int
	for y := years[0]; y <= anchor; y++ {
		span = append(span, y)
	}
	g, err := a.GrowthAnalysis(span)
	if err != nil {
		return Rate{}, fmt.Errorf("cannot derive a growth rate: %w", err)
	}
	return g.Overall, nil
}

// compound returns (1 + rate)^n by repeated exact multiplication.
func compound(rate Rate, n int) decimal.Decimal {
	growth := decimal.NewFromInt(1).Add(rate.Decimal())
	factor := decimal.NewFromInt(1)
	for range n {
		factor = factor.Mul(growth)
	}
	return factor
}

// Project forecasts the income of the target year.
//
// The annual income is baseline × (1 + rate)^(target − reference year). When
// no scenario is given the rate is the historical growth of the complete
// years, and its errors are returned as is.
func (a *Analyzer) Project(req ProjectionRequest) (*Projection, error) {
	defer trackTime("projection", time.Now())
	current := a.currentYear()
	target := req.TargetYear
	if target == 0 {
		target = current + 1
	}
	if target <= current {
		return nil, fmt.Errorf("%w: target year %d must be after %d", ErrInvalidParameter, target, current)
	}
	if req.Scenario != nil && req.Scenario.Rate.Decimal().LessThanOrEqual(decimal.NewFromInt(-1)) {
		return nil, fmt.Errorf("%w: growth rate must be greater than -100%%, got %s", ErrInvalidParameter, req.Scenario.Rate)
	}

	b, err := a.computeBaseline(req.Method)
	if err != nil {
		return nil, err
	}

	p := &Projection{
		Method:        req.Method,
		ReferenceYear: b.ref,
		Window:        b.window,
		Baseline:      b.amount,
		TargetYear:    target,
	}
	if req.Scenario != nil {
		p.Scenario = *req.Scenario
		p.Rate = req.Scenario.Rate
	} else {
		rate, err := a.historicalRate(b.anchor)
		if err != nil {
			return nil, err
		}
		p.Rate = rate
		p.Historical = true
	}

	factor := compound(p.Rate, target-b.ref)
	p.Annual = b.amount.Scale(factor)
	for y := current + 1; y <= target; y++ {
		p.Path = append(p.Path, YearProjection{Year: y, Total: b.amount.Scale(compound(p.Rate, y-b.ref))})
	}

	for _, symbol := range slices.Sorted(maps.Keys(b.symbols)) {
		v := b.symbols[symbol]
		p.Symbols = append(p.Symbols, SymbolProjection{Symbol: symbol, Baseline: v, Projected: v.Scale(factor)})
	}
	slices.SortStableFunc(p.Symbols, func(x, y SymbolProjection) int { return y.Projected.Cmp(x.Projected) })

	if req.Monthly {
		p.UniformDistribution = b.uniform
		for i, m := range distribute(p.Annual, b.months, b.uniform) {
			m.Count = len(b.payers[i])
			p.Monthly = append(p.Monthly, MonthlyProjection{MonthlyTotal: m, Payers: topPayers(b.payers[i], 3)})
		}
	}
	p.Metadata = a.projectionMetadata(req.Method, b)
	return p, nil
}

// topPayers returns at most n symbols of income, largest first.
func topPayers(income map[string]Money, n int) []string {
	symbols := slices.Sorted(maps.Keys(income))
	slices.SortStableFunc(symbols, func(x, y string) int { return income[y].Cmp(income[x]) })
	return symbols[:min(n, len(symbols))]
}

// projectionMetadata describes the ledger behind b.
//
// Confidence grows with the number of records and drops when holdings are
// left out of the baseline. Yield based projections do not depend on the
// number of records.
func (a *Analyzer) projectionMetadata(m Method, b baseline) ProjectionMetadata {
	md := ProjectionMetadata{Included: len(b.symbols)}
	for rec := range a.snapshot.Records() {
		md.DataPoints++
		if md.History.From.IsZero() || rec.ExDate().Before(md.History.From) {
			md.History.From = rec.ExDate()
		}
		if rec.ExDate().After(md.History.To) {
			md.History.To = rec.ExDate()
		}
	}
	for symbol := range a.snapshot.Holdings() {
		if _, ok := b.symbols[symbol]; !ok {
			md.Excluded = append(md.Excluded, symbol)
		}
	}
	slices.Sort(md.Excluded)

	complete := len(md.Excluded) == 0
	switch m {
	case LastTwelveMonths:
		md.Confidence = confidence(md.DataPoints, complete, 20, 10, 95, 80, 60)
	case CurrentYield:
		md.Confidence = 65
		if complete {
			md.Confidence = 85
		}
	default:
		md.Confidence = confidence(md.DataPoints, complete, 30, 15, 90, 75, 55)
	}
	return md
}

// confidence scores n data points: high when n reaches full and nothing is
// excluded, medium when n reaches some, low otherwise.
func confidence(n int, complete bool, full, some, high, medium, low int) int {
	switch {
	case n >= full && complete:
		return high
	case n >= some:
		return medium
	default:
		return low
	}
}

// distribute splits total into 12 months proportionally to weights, or evenly
// if uniform. Buckets are rounded to the currency fraction and the rounding
// residue goes to the largest bucket, so that they sum to total exactly.
func distribute(total Money, weights [12]Money, uniform bool) []MonthlyTotal {
	var sum Money
	if uniform {
		for i := range weights {
			weights[i] = M(1)
		}
	}
	for _, w := range weights {
		sum = sum.Add(w)
	}

	out := make([]MonthlyTotal, 12)
	var allocated Money
	largest := 0
	for i, w := range weights {
		v := total.Scale(w.Decimal().Div(sum.Decimal())).Round()
		out[i] = MonthlyTotal{Month: time.Month(i + 1), Total: v}
		allocated = allocated.Add(v)
		if v.GreaterThan(out[largest].Total) {
			largest = i
		}
	}
	out[largest].Total = out[largest].Total.Add(total.Sub(allocated))
	return out
}
