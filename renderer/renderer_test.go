package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/dividends"
	"github.com/etnz/dividends/date"
)

func record(t *testing.T, symbol, exDate string, amount, shares float64) dividends.DividendRecord {
	t.Helper()
	d := date.MustParse(exDate)
	rec, err := dividends.NewDividendRecord(symbol, d, d.Add(7), dividends.M(amount), dividends.Q(shares))
	if err != nil {
		t.Fatal(err)
	}
	return rec
}

func testAnalyzer(t *testing.T) *dividends.Analyzer {
	t.Helper()
	l := dividends.NewLedger()
	for _, rec := range []dividends.DividendRecord{
		record(t, "AAPL", "2023-02-10", 0.24, 100),
		record(t, "MSFT", "2023-02-15", 0.75, 50),
		record(t, "AAPL", "2024-02-09", 0.25, 100),
		record(t, "MSFT", "2024-02-14", 0.80, 50),
	} {
		if err := l.Add(rec, false); err != nil {
			t.Fatal(err)
		}
	}
	basis := dividends.M(150)
	h, err := dividends.NewHolding("AAPL", dividends.Q(100), &basis, nil)
	if err != nil {
		t.Fatal(err)
	}
	l.UpsertHolding(h)
	a := dividends.NewAnalyzer(l, 0)
	a.Today = date.MustParse("2025-06-15")
	return a
}

// assertContains checks that every fragment is in the rendered markdown.
func assertContains(t *testing.T, got string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(got, f) {
			t.Errorf("rendered markdown does not contain %q:\n%s", f, got)
		}
	}
}

func TestGrowthMarkdown(t *testing.T) {
	r, err := testAnalyzer(t).GrowthAnalysis([]int{2023, 2024})
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, GrowthMarkdown(r), "# Dividend Growth 2023-2024", "+5.69%", "AAPL", "+4.17%", "MSFT", "+6.67%")
}

func TestGrowthMarkdown_Skipped(t *testing.T) {
	l := dividends.NewLedger()
	for _, rec := range []dividends.DividendRecord{
		record(t, "KO", "2020-03-14", 1, 100),
		record(t, "KO", "2022-03-14", 1, 100),
	} {
		if err := l.Add(rec, false); err != nil {
			t.Fatal(err)
		}
	}
	a := dividends.NewAnalyzer(l, 0)
	a.Today = date.MustParse("2025-06-15")
	r, err := a.GrowthAnalysis([]int{2020, 2021, 2022})
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, GrowthMarkdown(r), "skipped", "Skipped, no dividend in the base year: 2021→2022")
}

func TestYieldMarkdown(t *testing.T) {
	r, err := testAnalyzer(t).YieldAnalysis(nil)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, YieldMarkdown(r), "# Yield on Cost 2024", "0.17%", "unknown: no holding on record", "1 symbol(s) excluded")
}

func TestTopPayersMarkdown(t *testing.T) {
	top, err := testAnalyzer(t).TopDividendPayers(1)
	if err != nil {
		t.Fatal(err)
	}
	got := TopPayersMarkdown(top)
	assertContains(t, got, "MSFT", "$77.50")
	if strings.Contains(got, "AAPL") {
		t.Errorf("TopPayersMarkdown(1) lists AAPL:\n%s", got)
	}
}

func TestMonthlyMarkdown(t *testing.T) {
	a := testAnalyzer(t)
	got := MonthlyMarkdown(2024, a.MonthlyBreakdown(2024))
	assertContains(t, got, "# Monthly Income 2024", time.February.String(), "$65.00")
	// month on the left, amounts on the right
	assertContains(t, got, "|:--------|--------:|--------:|")
}

func TestProjectionMarkdown(t *testing.T) {
	zero := dividends.Custom(dividends.R(0))
	p, err := testAnalyzer(t).Project(dividends.ProjectionRequest{Method: dividends.LastYear, Scenario: &zero, TargetYear: 2027, Monthly: true})
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, ProjectionMarkdown(p), "# Projected Income 2027", "$65.00", "last-year", "## By Year", "## By Month", "## By Symbol",
		"Top Payers", "MSFT, AAPL", "## Data", "Confidence: 55%", "Dividend records: 4", "History: 2023-02-10..2024-02-14")
}

func TestTaxMarkdown_Estimate(t *testing.T) {
	r := testAnalyzer(t).TaxSummary(2024)
	e := r.EstimateTax(dividends.TaxAssumptions{Status: dividends.Single, Bracket: dividends.MediumIncome})
	assertContains(t, TaxMarkdown(r, &e), "# Tax Summary 2024", "## Estimated Tax", "single, medium income bracket", "15.00%", "$9.75")
	if got := TaxMarkdown(r, nil); strings.Contains(got, "Estimated Tax") {
		t.Errorf("TaxMarkdown() without estimate renders it:\n%s", got)
	}
}

func TestForm1099Markdown(t *testing.T) {
	f := testAnalyzer(t).TaxSummary(2024).Form1099DIV()
	assertContains(t, Form1099Markdown(f), "# 1099-DIV 2024", "1b Qualified", "AAPL", "MSFT", "$25.00", "$40.00", "$65.00")
	assertContains(t, Form1099Markdown(dividends.Form1099DIV{Year: 2020}), "No dividend in this year.")
}

func TestConsistencyMarkdown(t *testing.T) {
	got := ConsistencyMarkdown(testAnalyzer(t).ConsistencyList())
	assertContains(t, got, "AAPL", "100.0%", "2/2", "annual")
}

func TestEmptyReports(t *testing.T) {
	assertContains(t, RecordsMarkdown("Dividends", nil), "No dividend on record.")
	assertContains(t, HoldingsMarkdown(nil), "No holding on record.")
	assertContains(t, SummaryMarkdown(dividends.Money{}, nil, nil), "No dividend on record.")
	assertContains(t, TaxMarkdown(dividends.TaxReport{Year: 2024}, nil), "No dividend in this year.")
}
