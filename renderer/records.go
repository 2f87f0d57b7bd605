package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dividends"
	md "github.com/nao1215/markdown"
)

// RecordsMarkdown renders dividend records, in the given order.
func RecordsMarkdown(title string, records []dividends.DividendRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	if len(records) == 0 {
		doc.PlainText("No dividend on record.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Ex-Date", "Pay Date", "Symbol", "Per Share", "Shares", "Total", "Type", "Tax"},
	}
	var total dividends.Money
	for _, rec := range records {
		table.Rows = append(table.Rows, []string{
			rec.ExDate().String(),
			rec.PayDate().String(),
			rec.Symbol(),
			rec.AmountPerShare().Exact(),
			rec.Shares().String(),
			rec.Total().String(),
			rec.Type().String(),
			rec.Tax().String(),
		})
		total = total.Add(rec.Total())
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", "", "", md.Bold(total.String()), "", ""})
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("%d dividend(s).", len(records)))
	return doc.String()
}

// HoldingsMarkdown renders holdings, in the given order.
func HoldingsMarkdown(holdings []dividends.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	if len(holdings) == 0 {
		doc.PlainText("No holding on record.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: numericColumns(5),
		Header:    []string{"Symbol", "Shares", "Cost Basis", "Cost Value", "Current Yield"},
	}
	for _, h := range holdings {
		basis, value, yield := "-", "-", "-"
		if h.CostBasis != nil {
			basis = h.CostBasis.String()
		}
		if v, ok := h.CostValue(); ok {
			value = v.String()
		}
		if h.CurrentYield != nil {
			yield = h.CurrentYield.String()
		}
		table.Rows = append(table.Rows, []string{h.Symbol, h.Shares.String(), basis, value, yield})
	}
	doc.Table(table)
	return doc.String()
}
