package dividends

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/etnz/dividends/date"
)

func TestMonthlyBreakdown(t *testing.T) {
	l := quarterlyLedger(t)
	a := analyzer(l, "2025-06-15")

	for _, year := range []int{2022, 2023, 2024} {
		months := a.MonthlyBreakdown(year)
		if len(months) != 12 {
			t.Fatalf("MonthlyBreakdown(%d) returned %d entries", year, len(months))
		}
		var sum Money
		for i, m := range months {
			if m.Month != time.Month(i+1) {
				t.Errorf("entry %d is month %v", i, m.Month)
			}
			sum = sum.Add(m.Total)
		}
		if want := a.TotalIncome(&year); !sum.Equal(want) {
			t.Errorf("MonthlyBreakdown(%d) sums to %s, want %s", year, sum.Exact(), want.Exact())
		}
	}

	months := a.MonthlyBreakdown(2023)
	if !months[1].Total.Equal(USD(22.6)) || months[1].Count != 1 {
		t.Errorf("February 2023 = %v, want 22.6", months[1])
	}
	if !months[0].Total.IsZero() {
		t.Errorf("January 2023 = %v, want zero", months[0])
	}
}

func TestQuarterlyBreakdown(t *testing.T) {
	a := analyzer(quarterlyLedger(t), "2025-06-15")
	quarters := a.QuarterlyBreakdown(2023)
	if len(quarters) != 4 {
		t.Fatalf("QuarterlyBreakdown() returned %d entries", len(quarters))
	}
	for i, q := range quarters {
		if q.Quarter != i+1 || q.Count != 2 {
			t.Errorf("quarter %d = %+v, want 2 payments", i+1, q)
		}
	}
	if got := quarters[0].Total; !got.Equal(USD(68.6)) {
		t.Errorf("Q1 2023 = %s, want 68.6", got.Exact())
	}
}

func TestTopDividendPayers(t *testing.T) {
	a := analyzer(appleMicrosoft(t), "2025-06-15")

	top, err := a.TopDividendPayers(1)
	if err != nil {
		t.Fatalf("TopDividendPayers(1) error = %v", err)
	}
	if len(top) != 1 || top[0].Symbol != "MSFT" || !top[0].Total.Equal(USD(77.5)) {
		t.Errorf("TopDividendPayers(1) = %+v, want MSFT 77.50", top)
	}

	all, err := a.TopDividendPayers(0)
	if err != nil {
		t.Fatalf("TopDividendPayers(0) error = %v", err)
	}
	if len(all) != 2 || all[1].Symbol != "AAPL" || !all[1].Total.Equal(USD(49)) {
		t.Fatalf("TopDividendPayers(0) = %+v, want MSFT then AAPL 49", all)
	}
	aapl := all[1]
	if aapl.Count != 2 || !aapl.Average.Equal(USD(24.5)) {
		t.Errorf("AAPL count = %d, average = %s", aapl.Count, aapl.Average.Exact())
	}
	if aapl.First != date.MustParse("2023-02-10") || aapl.Last != date.MustParse("2024-02-09") {
		t.Errorf("AAPL first/last = %v/%v", aapl.First, aapl.Last)
	}

	if _, err := a.TopDividendPayers(-1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("TopDividendPayers(-1) error = %v, want ErrInvalidParameter", err)
	}
}

func TestTopDividendPayers_Ties(t *testing.T) {
	l := newTestLedger(t,
		div(t, "PEP", "2024-03-01", 1, 10),
		div(t, "KO", "2024-03-01", 1, 10),
		div(t, "ABBV", "2024-03-01", 2, 10),
	)
	top, err := analyzer(l, "2025-06-15").TopDividendPayers(0)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, p := range top {
		got = append(got, p.Symbol)
	}
	if want := []string{"ABBV", "KO", "PEP"}; !slices.Equal(got, want) {
		t.Errorf("TopDividendPayers() order = %v, want %v", got, want)
	}
}

func TestTotalIncome(t *testing.T) {
	a := analyzer(appleMicrosoft(t), "2025-06-15")
	if got := a.TotalIncome(nil); !got.Equal(USD(126.5)) {
		t.Errorf("TotalIncome(nil) = %s, want 126.5", got.Exact())
	}
	y := 2023
	if got := a.TotalIncome(&y); !got.Equal(USD(61.5)) {
		t.Errorf("TotalIncome(2023) = %s, want 61.5", got.Exact())
	}

	totals := a.YearlyTotals()
	if len(totals) != 2 || totals[0].Year != 2023 || totals[0].Symbols != 2 || totals[1].Count != 2 {
		t.Errorf("YearlyTotals() = %+v", totals)
	}
}
