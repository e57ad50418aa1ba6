package types

import "time"

// Severity is the impact class of a detection rule. It is fixed per rule,
// not computed per occurrence; findings copy it at scan time so that
// historical records stay stable if a rule is later retuned.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMedium   Severity = "medium"
	SevLow      Severity = "low"
)

// Finding describes a single pattern match in a scanned text unit.
type Finding struct {
	Pattern  string   `json:"pattern"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
	Snippet  string   `json:"snippet,omitempty"`
}

// Grade buckets a reality score for human reporting. It is never used in
// gating decisions.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// SeverityCounts tallies findings per severity class.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total returns the number of findings across all classes.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// Add merges another tally into this one.
func (c *SeverityCounts) Add(o SeverityCounts) {
	c.Critical += o.Critical
	c.High += o.High
	c.Medium += o.Medium
	c.Low += o.Low
}

// RealityScore is the aggregate authenticity measure of one text unit.
// 1.0 means no detected fake-code patterns.
type RealityScore struct {
	Value  float64        `json:"value"`
	Counts SeverityCounts `json:"counts"`
	Grade  Grade          `json:"grade"`
}

// RiskLevel is the banded classification of a breakage risk percentage.
type RiskLevel string

const (
	RiskZero     RiskLevel = "zero"
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// BreakageRisk estimates how likely a proposed change is to introduce a
// defect, derived from the resulting score and critical/high counts.
type BreakageRisk struct {
	Percentage float64   `json:"percentage"`
	Level      RiskLevel `json:"level"`
	// Regression is set when the proposed state carries more critical or
	// high findings than the previous one. Reporting only; the numeric
	// risk derives from the new state alone.
	Regression bool `json:"regression,omitempty"`
}

// Outcome is the terminal result of one enforcement gate invocation.
type Outcome string

const (
	OutcomeAllowed         Outcome = "allowed"
	OutcomeFixedAndAllowed Outcome = "fixed_and_allowed"
	OutcomeBlocked         Outcome = "blocked"
)

// Record is one append-only audit entry, created per gate invocation and
// immutable thereafter.
type Record struct {
	ID             string    `json:"id"`
	Identifier     string    `json:"identifier,omitempty"`
	InputDigest    string    `json:"input_digest"`
	RealityScore   float64   `json:"reality_score"`
	RiskPercentage float64   `json:"risk_percentage"`
	RiskLevel      RiskLevel `json:"risk_level"`
	FindingsCount  int       `json:"findings_count"`
	FindingsFixed  int       `json:"findings_fixed_count"`
	Outcome        Outcome   `json:"outcome"`
	DurationMs     float64   `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
