package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/talentcompass/sourcer/internal/ranking"
)

func samplePeople() map[string]any {
	return map[string]any{
		"id-1": map[string]any{
			"compatibilityScore": float64(92),
			"pros":               []string{"target company"},
			"cons":               []string{"graduation year off"},
			"linkedin": map[string]any{
				"full_name":         "Ada Lovelace",
				"public_identifier": "ada-lovelace",
				"occupation":        "Consultant",
			},
		},
		"id-2": map[string]any{
			"compatibilityScore": float64(75),
			"linkedin":           map[string]any{"full_name": "Grace Hopper"},
		},
		"id-3": map[string]any{
			"compatibilityScore": float64(-1),
		},
	}
}

func TestPrintReport(t *testing.T) {
	var out strings.Builder
	printReport(&out, samplePeople(), 10)

	report := out.String()

	if !strings.Contains(report, "Top 2 candidates (of 3 stored)") {
		t.Fatalf("unexpected header:\n%s", report)
	}
	if !strings.Contains(report, "[ 92.0] Ada Lovelace, Consultant") {
		t.Fatalf("missing top candidate line:\n%s", report)
	}
	if !strings.Contains(report, "https://www.linkedin.com/in/ada-lovelace") {
		t.Fatalf("missing profile url:\n%s", report)
	}
	if !strings.Contains(report, "+ target company") || !strings.Contains(report, "- graduation year off") {
		t.Fatalf("missing pros/cons:\n%s", report)
	}
	if strings.Contains(report, "id-3") {
		t.Fatalf("sentinel candidate must not be reported:\n%s", report)
	}

	if strings.Index(report, "Ada Lovelace") > strings.Index(report, "Grace Hopper") {
		t.Fatalf("candidates must be sorted by score:\n%s", report)
	}
}

func TestPrintReportRespectsLimit(t *testing.T) {
	var out strings.Builder
	printReport(&out, samplePeople(), 1)

	report := out.String()
	if !strings.Contains(report, "Ada Lovelace") {
		t.Fatalf("expected the best candidate:\n%s", report)
	}
	if strings.Contains(report, "Grace Hopper") {
		t.Fatalf("limit must truncate the report:\n%s", report)
	}
}

func TestDumpToTmpFile(t *testing.T) {
	top := ranking.Top(samplePeople(), 10)

	filename, err := dumpToTmpFile(top)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(filename)

	raw, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("reading dump: %v", err)
	}

	var dump []dumpedCandidate
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("parsing dump: %v", err)
	}

	if len(dump) != 2 {
		t.Fatalf("expected 2 dumped candidates, got %d", len(dump))
	}
	if dump[0].ID != "id-1" || dump[0].Score != 92 || dump[0].Name != "Ada Lovelace" {
		t.Fatalf("unexpected first candidate: %+v", dump[0])
	}
}
