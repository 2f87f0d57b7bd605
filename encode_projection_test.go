package dividends

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testProjection projects 2026 from the 2024 income of appleMicrosoft without growth.
func testProjection(t *testing.T) *Projection {
	t.Helper()
	p, err := analyzer(appleMicrosoft(t), "2025-06-15").Project(ProjectionRequest{
		Method:     LastYear,
		Scenario:   scenario(Custom(R(0))),
		TargetYear: 2026,
		Monthly:    true,
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	return p
}

func TestExportProjectionCSV(t *testing.T) {
	var sb strings.Builder
	if err := ExportProjectionCSV(&sb, testProjection(t)); err != nil {
		t.Fatalf("ExportProjectionCSV() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "kind,symbol,month,amount,details" {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{
		"summary,,,65,projected income 2026",
		"summary,,,65,baseline 2024",
		"year,,,65,2026",
		"symbol,MSFT,,40,baseline 40",
		"symbol,AAPL,,25,baseline 25",
		"month,,January,0,",
		"month,,February,65,MSFT|AAPL",
		"metadata,,,,method last-year",
		"metadata,,,,rate custom (0.00%)",
		"metadata,,,,confidence 55%",
		"metadata,,,,data points 4",
		"metadata,,,,history 2023-02-10..2024-02-14",
	} {
		if !slices.Contains(lines, want) {
			t.Errorf("ExportProjectionCSV() has no line %q:\n%s", want, sb.String())
		}
	}
	// one line per month
	months := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "month,") {
			months++
		}
	}
	if months != 12 {
		t.Errorf("ExportProjectionCSV() wrote %d months, want 12", months)
	}
}

func TestExportProjectionJSON(t *testing.T) {
	var sb strings.Builder
	if err := ExportProjectionJSON(&sb, testProjection(t)); err != nil {
		t.Fatalf("ExportProjectionJSON() error = %v", err)
	}

	var got struct {
		TargetYear int    `json:"targetYear"`
		Method     string `json:"method"`
		Scenario   string `json:"scenario"`
		Annual     string `json:"annual"`
		Symbols    []struct {
			Symbol    string `json:"symbol"`
			Projected string `json:"projected"`
		} `json:"symbols"`
		Monthly []struct {
			Month  int      `json:"month"`
			Total  string   `json:"total"`
			Count  int      `json:"count"`
			Payers []string `json:"payers"`
		} `json:"monthly"`
		Metadata struct {
			DataPoints  int    `json:"dataPoints"`
			Confidence  int    `json:"confidence"`
			HistoryFrom string `json:"historyFrom"`
			HistoryTo   string `json:"historyTo"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal([]byte(sb.String()), &got); err != nil {
		t.Fatalf("ExportProjectionJSON() is not valid JSON: %v\n%s", err, sb.String())
	}

	if got.TargetYear != 2026 || got.Method != "last-year" || got.Scenario != "custom" || got.Annual != "65" {
		t.Errorf("ExportProjectionJSON() summary = %d %s %s %s", got.TargetYear, got.Method, got.Scenario, got.Annual)
	}
	if len(got.Symbols) != 2 || got.Symbols[0].Symbol != "MSFT" || got.Symbols[0].Projected != "40" {
		t.Errorf("ExportProjectionJSON() symbols = %+v", got.Symbols)
	}
	if len(got.Monthly) != 12 {
		t.Fatalf("ExportProjectionJSON() has %d months, want 12", len(got.Monthly))
	}
	feb := got.Monthly[1]
	if feb.Month != 2 || feb.Total != "65" || feb.Count != 2 {
		t.Errorf("February = %+v", feb)
	}
	if diff := cmp.Diff([]string{"MSFT", "AAPL"}, feb.Payers); diff != "" {
		t.Errorf("February payers mismatch (-want +got):\n%s", diff)
	}
	if md := got.Metadata; md.DataPoints != 4 || md.Confidence != 55 || md.HistoryFrom != "2023-02-10" || md.HistoryTo != "2024-02-14" {
		t.Errorf("metadata = %+v", md)
	}
}
