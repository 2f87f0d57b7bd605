package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/dividends"
	md "github.com/nao1215/markdown"
)

// GrowthMarkdown renders a growth analysis.
func GrowthMarkdown(r *dividends.GrowthReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dividend Growth %d-%d", r.Years[0], r.Years[len(r.Years)-1]))
	lines := []string{fmt.Sprintf("Average annual growth: %s", md.Bold(r.Overall.SignedString()))}
	if r.CumulativeDefined {
		lines = append(lines, fmt.Sprintf("Cumulative growth: %s", r.Cumulative.SignedString()))
	}
	if r.Best != nil && r.Best != r.Worst {
		lines = append(lines,
			fmt.Sprintf("Best year: %d (%s)", r.Best.To, r.Best.Rate.SignedString()),
			fmt.Sprintf("Worst year: %d (%s)", r.Worst.To, r.Worst.Rate.SignedString()))
	}
	doc.BulletList(lines...)

	doc.H2("Year over Year")
	table := md.TableSet{
		Alignment: numericColumns(3),
		Header:    []string{"Year", "Total", "Growth"},
	}
	for i, y := range r.Years {
		growth := ""
		if i > 0 {
			growth = pairRate(r.Pairs[i-1])
		}
		table.Rows = append(table.Rows, []string{fmt.Sprint(y), money(r.Totals[i]), growth})
	}
	doc.Table(table)

	if len(r.Symbols) > 0 {
		doc.H2("By Symbol")
		header := []string{"Symbol"}
		for _, p := range r.Pairs {
			header = append(header, fmt.Sprintf("%d→%d", p.From, p.To))
		}
		header = append(header, "Average")
		table := md.TableSet{Alignment: numericColumns(len(header)), Header: header}
		for _, s := range r.Symbols {
			row := []string{s.Symbol}
			for _, p := range s.Pairs {
				row = append(row, pairRate(p))
			}
			avg := "n/a"
			if s.Defined {
				avg = s.Rate.SignedString()
			}
			row = append(row, avg)
			table.Rows = append(table.Rows, row)
		}
		doc.Table(table)
	}

	var b strings.Builder
	b.WriteString(doc.String())
	ConditionalBlock(&b, func(w io.Writer) bool {
		var skipped []string
		for _, p := range r.Pairs {
			if p.Skipped {
				skipped = append(skipped, fmt.Sprintf("%d→%d", p.From, p.To))
			}
		}
		fmt.Fprintf(w, "\nSkipped, no dividend in the base year: %s\n", strings.Join(skipped, ", "))
		return len(skipped) > 0
	})
	return b.String()
}

func pairRate(p dividends.GrowthPair) string {
	if p.Skipped {
		return "skipped"
	}
	return p.Rate.SignedString()
}

// YieldMarkdown renders a yield analysis.
func YieldMarkdown(r *dividends.YieldReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Yield on Cost %d", r.Year))
	lines := []string{
		fmt.Sprintf("Portfolio yield: %s", md.Bold(r.PortfolioYield.String())),
		fmt.Sprintf("Dividends %s on a cost of %s", r.Dividends, r.CostValue),
	}
	if r.Highest != nil && r.Highest != r.Lowest {
		lines = append(lines,
			fmt.Sprintf("Highest: %s (%s)", r.Highest.Symbol, r.Highest.Yield),
			fmt.Sprintf("Lowest: %s (%s)", r.Lowest.Symbol, r.Lowest.Yield))
	}
	doc.BulletList(lines...)

	table := md.TableSet{
		Alignment: numericColumns(4),
		Header:    []string{"Symbol", "Dividends", "Cost Value", "Yield"},
	}
	for _, s := range r.Symbols {
		cost, yield := "-", "unknown: "+s.Reason
		if s.Known {
			cost, yield = s.CostValue.String(), s.Yield.String()
		}
		table.Rows = append(table.Rows, []string{s.Symbol, money(s.Dividends), cost, yield})
	}
	doc.Table(table)

	if unknown := r.Unknown(); len(unknown) > 0 {
		doc.PlainText(md.Italic(fmt.Sprintf("%d symbol(s) excluded from the portfolio yield, %s of dividends.", len(unknown), r.UnknownDividends)))
	}
	return doc.String()
}

// ConsistencyMarkdown renders consistency scores.
func ConsistencyMarkdown(list []dividends.Consistency) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Payment Consistency")
	if len(list) == 0 {
		doc.PlainText("No dividend on record.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Symbol", "Score", "Years Paid", "Payments", "Frequency"},
	}
	for _, c := range list {
		score := c.ScoreString()
		if c.InsufficientHistory {
			score += " (insufficient history)"
		}
		table.Rows = append(table.Rows, []string{
			c.Symbol,
			score,
			fmt.Sprintf("%d/%d", c.PaidYears, c.LastYear-c.FirstYear+1),
			fmt.Sprint(c.Payments),
			c.Frequency.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// ProjectionMarkdown renders a projection.
func ProjectionMarkdown(p *dividends.Projection) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Projected Income %d", p.TargetYear))
	rate := fmt.Sprintf("%s growth", p.Scenario)
	if p.Historical {
		rate = fmt.Sprintf("historical growth (%s)", p.Rate.SignedString())
	}
	lines := []string{
		fmt.Sprintf("Projected annual income: %s", md.Bold(p.Annual.String())),
		fmt.Sprintf("Baseline: %s, %s for %d", p.Method, p.Baseline, p.ReferenceYear),
		fmt.Sprintf("Rate: %s", rate),
	}
	if !p.Window.From.IsZero() {
		lines = append(lines, fmt.Sprintf("Baseline window: %s", p.Window))
	}
	doc.BulletList(lines...)

	if len(p.Path) > 1 {
		doc.H2("By Year")
		table := md.TableSet{Alignment: numericColumns(2), Header: []string{"Year", "Projected"}}
		for _, y := range p.Path {
			table.Rows = append(table.Rows, []string{fmt.Sprint(y.Year), y.Total.String()})
		}
		doc.Table(table)
	}

	if len(p.Monthly) > 0 {
		doc.H2("By Month")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
			Header:    []string{"Month", "Projected", "Payments", "Top Payers"},
		}
		for _, m := range p.Monthly {
			table.Rows = append(table.Rows, []string{m.Month.String(), money(m.Total), count(m.Count), strings.Join(m.Payers, ", ")})
		}
		doc.Table(table)
		if p.UniformDistribution {
			doc.PlainText(md.Italic("Uniform distribution assumed: the baseline has no monthly pattern."))
		}
	}

	if len(p.Symbols) > 0 {
		doc.H2("By Symbol")
		table := md.TableSet{Alignment: numericColumns(3), Header: []string{"Symbol", "Baseline", "Projected"}}
		for _, s := range p.Symbols {
			table.Rows = append(table.Rows, []string{s.Symbol, s.Baseline.String(), s.Projected.String()})
		}
		doc.Table(table)
	}

	meta := p.Metadata
	doc.H2("Data")
	lines = []string{
		fmt.Sprintf("Confidence: %d%%", meta.Confidence),
		fmt.Sprintf("Dividend records: %d", meta.DataPoints),
		fmt.Sprintf("Symbols included: %d", meta.Included),
	}
	if !meta.History.From.IsZero() {
		lines = append(lines, fmt.Sprintf("History: %s", meta.History))
	}
	if len(meta.Excluded) > 0 {
		lines = append(lines, fmt.Sprintf("Holdings excluded: %s", strings.Join(meta.Excluded, ", ")))
	}
	doc.BulletList(lines...)
	return doc.String()
}
