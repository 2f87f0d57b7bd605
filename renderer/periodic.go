package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/dividends"
	md "github.com/nao1215/markdown"
)

// MonthlyMarkdown renders the 12 months of a year.
func MonthlyMarkdown(year int, months []dividends.MonthlyTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Income %d", year))
	table := md.TableSet{
		Alignment: numericColumns(3),
		Header:    []string{"Month", "Total", "Payments"},
	}
	var total dividends.Money
	for _, m := range months {
		table.Rows = append(table.Rows, []string{m.Month.String(), money(m.Total), count(m.Count)})
		total = total.Add(m.Total)
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(total.String()), ""})
	doc.Table(table)
	return doc.String()
}

// QuarterlyMarkdown renders the 4 quarters of a year.
func QuarterlyMarkdown(year int, quarters []dividends.QuarterlyTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Quarterly Income %d", year))
	table := md.TableSet{
		Alignment: numericColumns(3),
		Header:    []string{"Quarter", "Total", "Payments"},
	}
	var total dividends.Money
	for _, q := range quarters {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("Q%d", q.Quarter), money(q.Total), count(q.Count)})
		total = total.Add(q.Total)
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(total.String()), ""})
	doc.Table(table)
	return doc.String()
}

// TaxMarkdown renders the tax summary of a year, and the tax estimate if not nil.
func TaxMarkdown(r dividends.TaxReport, estimate *dividends.EstimatedTax) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Tax Summary %d", r.Year))
	if len(r.ByClass) == 0 {
		doc.PlainText("No dividend in this year.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("Total income: %s", md.Bold(r.Total.String())))

	doc.H2("By Classification")
	table := md.TableSet{
		Alignment: numericColumns(3),
		Header:    []string{"Classification", "Total", "Payments"},
	}
	for _, l := range r.ByClass {
		table.Rows = append(table.Rows, []string{l.Classification.String(), l.Total.String(), count(l.Count)})
	}
	doc.Table(table)

	doc.H2("By Symbol")
	classes := make([]dividends.TaxClassification, 0, len(r.ByClass))
	header := []string{"Symbol"}
	for _, l := range r.ByClass {
		classes = append(classes, l.Classification)
		header = append(header, l.Classification.String())
	}
	header = append(header, "Total")
	bySymbol := md.TableSet{Alignment: numericColumns(len(header)), Header: header}
	for _, s := range r.BySymbol {
		row := []string{s.Symbol}
		for _, c := range classes {
			row = append(row, money(s.ByClass[c]))
		}
		row = append(row, s.Total.String())
		bySymbol.Rows = append(bySymbol.Rows, row)
	}
	doc.Table(bySymbol)

	if estimate != nil {
		e := estimate
		doc.H2("Estimated Tax")
		doc.PlainText(fmt.Sprintf("Filing status %s, %s income bracket.", e.Assumptions.Status, e.Assumptions.Bracket))
		table := md.TableSet{
			Alignment: numericColumns(4),
			Header:    []string{"Income", "Amount", "Rate", "Tax"},
			Rows: [][]string{
				{"Qualified", e.QualifiedIncome.String(), e.CapitalGainsRate.String(), e.QualifiedTax.String()},
				{"Ordinary", e.OrdinaryIncome.String(), e.OrdinaryRate.String(), e.OrdinaryTax.String()},
				{md.Bold("Total"), "", "", md.Bold(e.Total.String())},
			},
		}
		doc.Table(table)
	}
	return doc.String()
}

// Form1099Markdown renders a 1099-DIV style report.
func Form1099Markdown(f dividends.Form1099DIV) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("1099-DIV %d", f.Year))
	if len(f.Payers) == 0 {
		doc.PlainText("No dividend in this year.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: numericColumns(6),
		Header:    []string{"Payer", "1a Ordinary", "1b Qualified", "2a Capital Gains", "3 Non-Dividend", "6 Foreign Tax"},
	}
	row := func(name string, p dividends.Payer1099) []string {
		return []string{name, money(p.OrdinaryDividends), money(p.QualifiedDividends),
			money(p.CapitalGainDistributions), money(p.NonDividendDistributions), money(p.ForeignTaxPaid)}
	}
	for _, p := range f.Payers {
		name := p.Name
		if len(p.Symbols) > 1 || p.Symbols[0] != p.Name {
			name = fmt.Sprintf("%s (%s)", p.Name, strings.Join(p.Symbols, ", "))
		}
		table.Rows = append(table.Rows, row(name, p))
	}
	table.Rows = append(table.Rows, row(md.Bold(f.Total.Name), f.Total))
	doc.Table(table)
	doc.PlainText(md.Italic("Withholdings and capital gain distributions are not recorded and reported as zero."))
	return doc.String()
}
