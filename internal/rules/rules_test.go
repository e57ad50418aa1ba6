package rules

import (
	"testing"

	"github.com/codegate/codegate/internal/types"
)

func TestLibraryUniqueNames(t *testing.T) {
	lib := Default()
	seen := map[string]bool{}
	for _, r := range lib.Rules() {
		if seen[r.Name] {
			t.Fatalf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
	}
	if len(seen) != 12 {
		t.Fatalf("expected 12 rules, got %d", len(seen))
	}
}

func TestLibraryGet(t *testing.T) {
	lib := Default()
	r, ok := lib.Get("hardcoded_secret")
	if !ok {
		t.Fatal("hardcoded_secret missing")
	}
	if r.Severity != types.SevCritical {
		t.Fatalf("unexpected severity %s", r.Severity)
	}
	if _, ok := lib.Get("nope"); ok {
		t.Fatal("expected miss for unknown rule")
	}
}

func TestWithSeverities(t *testing.T) {
	lib := Default().WithSeverities(map[string]types.Severity{
		"todo_marker":       types.SevHigh,
		"unknown":           types.SevLow,
		"undocumented_stub": "bogus",
	})
	r, _ := lib.Get("todo_marker")
	if r.Severity != types.SevHigh {
		t.Fatalf("override not applied: %s", r.Severity)
	}
	// invalid value ignored
	r, _ = lib.Get("undocumented_stub")
	if r.Severity != types.SevMedium {
		t.Fatalf("bogus severity should be ignored, got %s", r.Severity)
	}
	// original untouched
	r, _ = Default().Get("todo_marker")
	if r.Severity != types.SevLow {
		t.Fatal("Default library mutated by override")
	}
}

func TestInlineIgnoreDirective(t *testing.T) {
	data := []byte(`api_key = "c29tZXRoaW5nbG9uZ2Vub3VnaA" // codegate:ignore`)
	if ms := HardcodedSecret(data); len(ms) != 0 {
		t.Fatalf("expected ignore directive to suppress match, got %d", len(ms))
	}
}
