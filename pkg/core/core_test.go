package core

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/codegate/codegate/internal/types"
)

func TestScanTree_Smoke(t *testing.T) {
	cfg := Config{
		Root:      t.TempDir(),
		Recursive: true,
	}
	r, err := ScanTree(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ScanTree error: %v", err)
	}
	if r.Overall.Value != 1.0 {
		t.Fatalf("empty tree should score 1.0, got %v", r.Overall.Value)
	}
	names := RuleNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty rule names")
	}
}

func TestScanText(t *testing.T) {
	findings, sc := ScanText("def f():\n    pass\n")
	if len(findings) != 1 {
		t.Fatalf("expected one finding, got %d", len(findings))
	}
	if sc.Value >= 1.0 {
		t.Fatalf("expected score below 1.0, got %v", sc.Value)
	}
}

func TestEvaluate(t *testing.T) {
	p := Proposal{
		Identifier:   "cfg.py",
		ProposedText: `api_key = "c2VjcmV0bWF0ZXJpYWxoZXJl"` + "\n",
	}
	d, err := Evaluate(context.Background(), filepath.Join(t.TempDir(), "audit.jsonl"), p)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if d.Outcome != types.OutcomeBlocked {
		t.Fatalf("expected blocked, got %s", d.Outcome)
	}
}
