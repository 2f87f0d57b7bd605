package dividends

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// This file contains the projection exports: a flat CSV for spreadsheets and
// an indented JSON document for other tools.

// ExportProjectionCSV writes p to w as rows of kind, symbol, month, amount
// and details.
func ExportProjectionCSV(w io.Writer, p *Projection) error {
	rows := [][]string{
		{"kind", "symbol", "month", "amount", "details"},
		{"summary", "", "", p.Annual.Exact(), fmt.Sprintf("projected income %d", p.TargetYear)},
		{"summary", "", "", p.Baseline.Exact(), fmt.Sprintf("baseline %d", p.ReferenceYear)},
	}
	for _, y := range p.Path {
		rows = append(rows, []string{"year", "", "", y.Total.Exact(), fmt.Sprint(y.Year)})
	}
	for _, s := range p.Symbols {
		rows = append(rows, []string{"symbol", s.Symbol, "", s.Projected.Exact(), "baseline " + s.Baseline.Exact()})
	}
	for _, m := range p.Monthly {
		rows = append(rows, []string{"month", "", m.Month.String(), m.Total.Exact(), strings.Join(m.Payers, "|")})
	}
	md := p.Metadata
	rows = append(rows,
		[]string{"metadata", "", "", "", "method " + p.Method.String()},
		[]string{"metadata", "", "", "", "rate " + projectionRate(p)},
		[]string{"metadata", "", "", "", fmt.Sprintf("confidence %d%%", md.Confidence)},
		[]string{"metadata", "", "", "", fmt.Sprintf("data points %d", md.DataPoints)},
	)
	if !md.History.From.IsZero() {
		rows = append(rows, []string{"metadata", "", "", "", "history " + md.History.String()})
	}
	if len(md.Excluded) > 0 {
		rows = append(rows, []string{"metadata", "", "", "", "excluded " + strings.Join(md.Excluded, "|")})
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("cannot write projection csv: %w", err)
	}
	return nil
}

// projectionRate describes the growth rate of p.
func projectionRate(p *Projection) string {
	if p.Historical {
		return "historical " + p.Rate.String()
	}
	return p.Scenario.String()
}

// ExportProjectionJSON writes p to w as an indented JSON document.
func ExportProjectionJSON(w io.Writer, p *Projection) error {
	var path []*objectWriter
	for _, y := range p.Path {
		var o objectWriter
		o.Append("year", y.Year).Append("total", y.Total)
		path = append(path, &o)
	}
	var symbols []*objectWriter
	for _, s := range p.Symbols {
		var o objectWriter
		o.Append("symbol", s.Symbol).Append("baseline", s.Baseline).Append("projected", s.Projected)
		symbols = append(symbols, &o)
	}
	var monthly []*objectWriter
	for _, m := range p.Monthly {
		var o objectWriter
		o.Append("month", int(m.Month)).
			Append("name", m.Month.String()).
			Append("total", m.Total).
			Append("count", m.Count).
			Optional("payers", m.Payers)
		monthly = append(monthly, &o)
	}

	var meta objectWriter
	meta.Append("dataPoints", p.Metadata.DataPoints).
		Append("included", p.Metadata.Included).
		Optional("excluded", p.Metadata.Excluded).
		Append("confidence", p.Metadata.Confidence)
	if !p.Metadata.History.From.IsZero() {
		meta.Append("historyFrom", p.Metadata.History.From).Append("historyTo", p.Metadata.History.To)
	}

	var o objectWriter
	o.Append("targetYear", p.TargetYear).
		Append("method", p.Method.String()).
		Optional("scenario", p.Scenario.Name).
		Append("rate", p.Rate).
		Append("historical", p.Historical).
		Append("referenceYear", p.ReferenceYear).
		Append("baseline", p.Baseline).
		Append("annual", p.Annual).
		Append("path", path).
		Append("symbols", symbols).
		Optional("monthly", monthly).
		Optional("uniformDistribution", p.UniformDistribution).
		Append("metadata", &meta)

	data, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write projection: %w", err)
	}
	return nil
}
