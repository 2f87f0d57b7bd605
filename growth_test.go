package dividends

import (
	"errors"
	"testing"
)

func TestGrowthAnalysis(t *testing.T) {
	a := analyzer(appleMicrosoft(t), "2025-06-15")

	r, err := a.GrowthAnalysis([]int{2023, 2024})
	if err != nil {
		t.Fatalf("GrowthAnalysis() error = %v", err)
	}
	// yearly totals 61.50 -> 65.00
	if got, want := rounded(r.Overall), "0.0569"; got != want {
		t.Errorf("Overall = %s, want %s", got, want)
	}
	if len(r.Pairs) != 1 || r.Pairs[0].Skipped {
		t.Fatalf("Pairs = %+v, want a single defined pair", r.Pairs)
	}
	for symbol, want := range map[string]string{"AAPL": "0.0417", "MSFT": "0.0667"} {
		g, ok := r.Symbol(symbol)
		if !ok || !g.Defined {
			t.Errorf("%s growth missing or undefined", symbol)
			continue
		}
		if got := rounded(g.Rate); got != want {
			t.Errorf("%s rate = %s, want %s", symbol, got, want)
		}
	}
	if !r.CumulativeDefined || rounded(r.Cumulative) != "0.0569" {
		t.Errorf("Cumulative = %v (%v)", r.Cumulative, r.CumulativeDefined)
	}
}

func TestGrowthAnalysis_ZeroYearIsSkipped(t *testing.T) {
	l := newTestLedger(t,
		div(t, "KO", "2020-03-14", 1, 100),   // 100
		div(t, "KO", "2022-03-14", 1, 100),   // 100
		div(t, "KO", "2023-03-14", 1.1, 100), // 110
	)
	a := analyzer(l, "2025-06-15")

	r, err := a.GrowthAnalysis([]int{2020, 2021, 2022, 2023})
	if err != nil {
		t.Fatalf("GrowthAnalysis() error = %v", err)
	}
	want := []struct {
		skipped bool
		rate    string
	}{
		{false, "-1.0000"}, // 2020 -> 2021
		{true, "0.0000"},   // 2021 -> 2022 has no base
		{false, "0.1000"},  // 2022 -> 2023
	}
	for i, w := range want {
		p := r.Pairs[i]
		if p.Skipped != w.skipped || rounded(p.Rate) != w.rate {
			t.Errorf("pair %d-%d = skipped %v rate %s, want skipped %v rate %s", p.From, p.To, p.Skipped, rounded(p.Rate), w.skipped, w.rate)
		}
	}
	// mean of -1 and 0.1
	if got := rounded(r.Overall); got != "-0.4500" {
		t.Errorf("Overall = %s, want -0.4500", got)
	}
	if r.Best == nil || r.Best.To != 2023 || r.Worst == nil || r.Worst.To != 2021 {
		t.Errorf("Best/Worst = %+v/%+v", r.Best, r.Worst)
	}
	// gap years count as zero for a symbol too.
	ko, _ := r.Symbol("KO")
	if got := rounded(ko.Rate); got != "-0.4500" {
		t.Errorf("KO rate = %s, want -0.4500", got)
	}
}

func TestGrowthAnalysis_SymbolWithoutDefinedRate(t *testing.T) {
	l := newTestLedger(t,
		div(t, "KO", "2022-03-14", 1, 100),
		div(t, "KO", "2023-03-14", 1, 100),
		div(t, "PEP", "2023-03-14", 1, 100),
	)
	r, err := analyzer(l, "2025-06-15").GrowthAnalysis([]int{2022, 2023})
	if err != nil {
		t.Fatalf("GrowthAnalysis() error = %v", err)
	}
	pep, ok := r.Symbol("PEP")
	if !ok || pep.Defined {
		t.Errorf("PEP growth = %+v, want undefined", pep)
	}
}

func TestGrowthAnalysis_Errors(t *testing.T) {
	a := analyzer(appleMicrosoft(t), "2025-06-15")
	tests := []struct {
		name  string
		years []int
		want  error
	}{
		{"empty", nil, ErrInsufficientData},
		{"single year", []int{2024}, ErrInsufficientData},
		{"one year with data", []int{2022, 2023}, ErrInsufficientData},
		{"descending", []int{2024, 2023}, ErrInvalidParameter},
		{"duplicate", []int{2023, 2023, 2024}, ErrInvalidParameter},
		{"future", []int{2024, 2026}, ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.GrowthAnalysis(tt.years); !errors.Is(err, tt.want) {
				t.Errorf("GrowthAnalysis(%v) error = %v, want %v", tt.years, err, tt.want)
			}
		})
	}
}
