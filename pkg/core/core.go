package core

import (
	"context"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/engine"
	"github.com/codegate/codegate/internal/gate"
	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/scan"
	"github.com/codegate/codegate/internal/score"
	"github.com/codegate/codegate/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type (
	Config       = engine.Config
	TreeReport   = engine.TreeReport
	Finding      = types.Finding
	RealityScore = types.RealityScore
	BreakageRisk = types.BreakageRisk
	Outcome      = types.Outcome
	Proposal     = gate.Proposal
	Decision     = gate.Decision
)

// Gate outcomes, re-exported for switch statements in callers.
const (
	OutcomeAllowed         = types.OutcomeAllowed
	OutcomeFixedAndAllowed = types.OutcomeFixedAndAllowed
	OutcomeBlocked         = types.OutcomeBlocked
)

// ScanTree is the stable entrypoint for scoring a directory tree.
func ScanTree(ctx context.Context, cfg Config) (*TreeReport, error) {
	return engine.ScanTree(ctx, cfg)
}

// ScanText scores a single piece of text with the default rules.
func ScanText(text string) ([]Finding, RealityScore) {
	res := scan.New(rules.Default()).ScanText(text)
	return res.Findings, score.Score(res.Findings)
}

// Evaluate runs one proposal through the enforcement gate, recording the
// decision in the audit log at auditPath.
func Evaluate(ctx context.Context, auditPath string, p Proposal) (Decision, error) {
	store, err := audit.Open(auditPath)
	if err != nil {
		return Decision{}, err
	}
	g := gate.New(scan.New(rules.Default()), store)
	return g.Evaluate(ctx, p)
}

// RuleNames returns the names of all built-in patterns.
// This is exposed for convenience to avoid importing internals directly.
func RuleNames() []string { return rules.Default().Names() }
