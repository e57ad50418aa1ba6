package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/types"
)

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	recs := []types.Record{{
		ID:             "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Identifier:     "svc/handler.go",
		RealityScore:   0.9,
		RiskPercentage: 20.0,
		RiskLevel:      types.RiskHigh,
		FindingsCount:  1,
		Outcome:        types.OutcomeBlocked,
		CreatedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}}
	PrintHistory(&buf, recs, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "svc/handler.go") || !strings.Contains(out, "BLOCKED") {
		t.Fatalf("expected record row; got: %q", out)
	}
	if !strings.Contains(out, "20.0% (high)") {
		t.Fatalf("expected risk column; got: %q", out)
	}
}

func TestPrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintHistory(&buf, nil, PrintOptions{NoColor: true})
	if !strings.Contains(buf.String(), "No gate decisions") {
		t.Fatalf("expected empty message; got: %q", buf.String())
	}
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(&buf, audit.Stats{Total: 4, AllowRate: 0.25, FixRate: 0.25, BlockRate: 0.5, AvgScore: 0.75})
	out := buf.String()
	if !strings.Contains(out, "Decisions: 4") {
		t.Fatalf("expected totals; got: %q", out)
	}
	if !strings.Contains(out, "Blocked: 50%") {
		t.Fatalf("expected rates; got: %q", out)
	}
	if !strings.Contains(out, "Average reality score: 0.75") {
		t.Fatalf("expected avg score; got: %q", out)
	}
}
