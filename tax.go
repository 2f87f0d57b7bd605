package dividends

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// TaxLine is the income of a tax classification.
type TaxLine struct {
	Classification TaxClassification
	Total          Money
	Count          int
}

// SymbolTax is the income of a symbol split by tax classification.
type SymbolTax struct {
	Symbol  string
	Company string
	Total   Money
	Count   int
	ByClass map[TaxClassification]Money
}

// TaxReport summarizes a year of income for tax preparation.
type TaxReport struct {
	Year     int
	Total    Money
	ByClass  []TaxLine // classifications with income, in declaration order
	BySymbol []SymbolTax
}

// TaxSummary totals the income of year per tax classification and per symbol.
func (a *Analyzer) TaxSummary(year int) TaxReport {
	r := TaxReport{Year: year}
	classes := make(map[TaxClassification]*TaxLine)
	symbols := make(map[string]*SymbolTax)
	for rec := range a.snapshot.Records(ByYear(year)) {
		r.Total = r.Total.Add(rec.Total())

		l, ok := classes[rec.Tax()]
		if !ok {
			l = &TaxLine{Classification: rec.Tax()}
			classes[rec.Tax()] = l
		}
		l.Total = l.Total.Add(rec.Total())
		l.Count++

		s, ok := symbols[rec.Symbol()]
		if !ok {
			s = &SymbolTax{Symbol: rec.Symbol(), ByClass: make(map[TaxClassification]Money)}
			symbols[rec.Symbol()] = s
		}
		if rec.Company() != "" {
			s.Company = rec.Company()
		}
		s.Total = s.Total.Add(rec.Total())
		s.Count++
		s.ByClass[rec.Tax()] = s.ByClass[rec.Tax()].Add(rec.Total())
	}

	for _, c := range TaxClassifications() {
		if l, ok := classes[c]; ok {
			r.ByClass = append(r.ByClass, *l)
		}
	}
	for _, symbol := range slices.Sorted(maps.Keys(symbols)) {
		r.BySymbol = append(r.BySymbol, *symbols[symbol])
	}
	return r
}

// Class returns the income of the given classifications.
func (r TaxReport) Class(classes ...TaxClassification) Money {
	var total Money
	for _, l := range r.ByClass {
		if slices.Contains(classes, l.Classification) {
			total = total.Add(l.Total)
		}
	}
	return total
}

// FilingStatus is the filing status of the tax estimate.
type FilingStatus int

const (
	Single FilingStatus = iota
	MarriedFilingJointly
	MarriedFilingSeparately
	HeadOfHousehold
)

func (s FilingStatus) String() string {
	switch s {
	case Single:
		return "single"
	case MarriedFilingJointly:
		return "married-jointly"
	case MarriedFilingSeparately:
		return "married-separately"
	case HeadOfHousehold:
		return "head-of-household"
	default:
		return "invalid"
	}
}

// ParseFilingStatus parses a filing status. The empty string is Single.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch normalizeTag(s) {
	case "", "single":
		return Single, nil
	case "married-jointly", "joint", "jointly":
		return MarriedFilingJointly, nil
	case "married-separately", "separate", "separately":
		return MarriedFilingSeparately, nil
	case "head-of-household", "head":
		return HeadOfHousehold, nil
	default:
		return Single, fmt.Errorf("%w: unknown filing status %q", ErrInvalidParameter, s)
	}
}

// IncomeBracket is the ordinary income bracket of the taxpayer.
type IncomeBracket int

const (
	LowIncome IncomeBracket = iota
	MediumIncome
	HighIncome
	VeryHighIncome
)

func (b IncomeBracket) String() string {
	switch b {
	case LowIncome:
		return "low"
	case MediumIncome:
		return "medium"
	case HighIncome:
		return "high"
	case VeryHighIncome:
		return "very-high"
	default:
		return "invalid"
	}
}

// ParseIncomeBracket parses an income bracket name.
func ParseIncomeBracket(s string) (IncomeBracket, error) {
	switch normalizeTag(s) {
	case "low":
		return LowIncome, nil
	case "medium":
		return MediumIncome, nil
	case "high":
		return HighIncome, nil
	case "very-high", "veryhigh":
		return VeryHighIncome, nil
	default:
		return LowIncome, fmt.Errorf("%w: unknown income bracket %q", ErrInvalidParameter, s)
	}
}

// TaxAssumptions are the taxpayer facts the estimate depends on.
type TaxAssumptions struct {
	Status  FilingStatus
	Bracket IncomeBracket
}

// Rates returns the ordinary and the long term capital gains rates.
//
// These are approximate 2023 federal rates; every filing status shares the
// same table.
func (t TaxAssumptions) Rates() (ordinary, capitalGains Rate) {
	switch t.Bracket {
	case MediumIncome:
		return R(0.22), R(0.15)
	case HighIncome:
		return R(0.24), R(0.15)
	case VeryHighIncome:
		return R(0.32), R(0.20)
	default:
		return R(0.12), R(0)
	}
}

// EstimatedTax is the federal tax estimate of a year of dividends.
type EstimatedTax struct {
	Assumptions      TaxAssumptions
	OrdinaryRate     Rate
	CapitalGainsRate Rate
	QualifiedIncome  Money // taxed at the capital gains rate
	OrdinaryIncome   Money // taxed at the ordinary rate
	QualifiedTax     Money
	OrdinaryTax      Money
	Total            Money
}

// EstimateTax estimates the federal tax due on the report income.
//
// Unclassified income is assumed qualified. Return of capital, tax free and
// foreign income are not taxed by the estimate.
func (r TaxReport) EstimateTax(t TaxAssumptions) EstimatedTax {
	ordinary, capitalGains := t.Rates()
	e := EstimatedTax{
		Assumptions:      t,
		OrdinaryRate:     ordinary,
		CapitalGainsRate: capitalGains,
		QualifiedIncome:  r.Class(Qualified, Unknown),
		OrdinaryIncome:   r.Class(NonQualified),
	}
	e.QualifiedTax = e.QualifiedIncome.Scale(capitalGains.Decimal()).Round()
	e.OrdinaryTax = e.OrdinaryIncome.Scale(ordinary.Decimal()).Round()
	e.Total = e.QualifiedTax.Add(e.OrdinaryTax)
	return e
}

// Payer1099 holds the 1099-DIV boxes of a payer.
type Payer1099 struct {
	Name                     string
	Symbols                  []string
	OrdinaryDividends        Money // box 1a
	QualifiedDividends       Money // box 1b
	CapitalGainDistributions Money // box 2a
	NonDividendDistributions Money // box 3
	FederalTaxWithheld       Money // box 4
	ForeignTaxPaid           Money // box 6
}

func (p *Payer1099) add(q Payer1099) {
	p.OrdinaryDividends = p.OrdinaryDividends.Add(q.OrdinaryDividends)
	p.QualifiedDividends = p.QualifiedDividends.Add(q.QualifiedDividends)
	p.CapitalGainDistributions = p.CapitalGainDistributions.Add(q.CapitalGainDistributions)
	p.NonDividendDistributions = p.NonDividendDistributions.Add(q.NonDividendDistributions)
	p.FederalTaxWithheld = p.FederalTaxWithheld.Add(q.FederalTaxWithheld)
	p.ForeignTaxPaid = p.ForeignTaxPaid.Add(q.ForeignTaxPaid)
}

// Form1099DIV is a 1099-DIV style report of a year, one entry per payer.
type Form1099DIV struct {
	Year   int
	Payers []Payer1099 // sorted by name
	Total  Payer1099
}

// Form1099DIV groups the report income by payer into 1099-DIV boxes.
//
// The payer is the company name, or the symbol when the company is unknown;
// symbols sharing a company are reported together. Withholdings and capital
// gain distributions are not recorded by the ledger and stay zero.
func (r TaxReport) Form1099DIV() Form1099DIV {
	f := Form1099DIV{Year: r.Year, Total: Payer1099{Name: "Total"}}
	payers := make(map[string]*Payer1099)
	for _, s := range r.BySymbol {
		name := s.Company
		if name == "" {
			name = s.Symbol
		}
		p, ok := payers[name]
		if !ok {
			p = &Payer1099{Name: name}
			payers[name] = p
		}
		p.Symbols = append(p.Symbols, s.Symbol)

		qualified := s.ByClass[Qualified].Add(s.ByClass[Unknown])
		boxes := Payer1099{
			OrdinaryDividends:        qualified.Add(s.ByClass[NonQualified]),
			QualifiedDividends:       qualified,
			NonDividendDistributions: s.ByClass[NonDividendDistribution],
		}
		p.add(boxes)
		f.Total.add(boxes)
	}
	for _, name := range slices.Sorted(maps.Keys(payers)) {
		f.Payers = append(f.Payers, *payers[name])
	}
	return f
}

// Export1099DIVCSV writes the payers of f and their total to w.
func Export1099DIVCSV(w io.Writer, f Form1099DIV) error {
	cw := csv.NewWriter(w)
	header := []string{"payer", "symbols", "box_1a", "box_1b", "box_2a", "box_3", "box_4", "box_6"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range append(slices.Clone(f.Payers), f.Total) {
		row := []string{
			p.Name,
			strings.Join(p.Symbols, ";"),
			p.OrdinaryDividends.Exact(),
			p.QualifiedDividends.Exact(),
			p.CapitalGainDistributions.Exact(),
			p.NonDividendDistributions.Exact(),
			p.FederalTaxWithheld.Exact(),
			p.ForeignTaxPaid.Exact(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
