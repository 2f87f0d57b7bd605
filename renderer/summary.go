package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dividends"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the income of every year and the top payers.
func SummaryMarkdown(total dividends.Money, years []dividends.YearlyTotal, top []dividends.PayerTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dividend Summary")
	if len(years) == 0 {
		doc.PlainText("No dividend on record.")
		return doc.String()
	}
	doc.PlainText(fmt.Sprintf("Total income: %s", md.Bold(total.String())))

	doc.H2("Income by Year")
	table := md.TableSet{
		Alignment: numericColumns(4),
		Header:    []string{"Year", "Total", "Payments", "Symbols"},
	}
	for _, y := range years {
		table.Rows = append(table.Rows, []string{fmt.Sprint(y.Year), y.Total.String(), count(y.Count), count(y.Symbols)})
	}
	doc.Table(table)

	if len(top) > 0 {
		doc.H2("Top Payers")
		doc.Table(payersTable(top))
	}
	return doc.String()
}

// TopPayersMarkdown renders symbols by descending total.
func TopPayersMarkdown(top []dividends.PayerTotal) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Top Dividend Payers")
	if len(top) == 0 {
		doc.PlainText("No dividend on record.")
		return doc.String()
	}
	doc.Table(payersTable(top))
	return doc.String()
}

func payersTable(top []dividends.PayerTotal) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"#", "Symbol", "Total", "Payments", "Average", "First", "Last"},
	}
	for i, p := range top {
		symbol := p.Symbol
		if p.Company != "" {
			symbol = fmt.Sprintf("%s (%s)", p.Symbol, p.Company)
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(i + 1),
			symbol,
			p.Total.String(),
			fmt.Sprint(p.Count),
			p.Average.String(),
			p.First.String(),
			p.Last.String(),
		})
	}
	return table
}
