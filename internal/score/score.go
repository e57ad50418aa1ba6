// Package score turns findings into reality scores and breakage risk.
//
// The constants here are the contract: downstream gating thresholds are
// defined against these exact formulas, so they must not be retuned
// casually.
package score

import (
	"github.com/codegate/codegate/internal/types"
)

// Severity weights for the reality score. A text unit loses
// weight/100 per finding, floored at zero.
const (
	WeightCritical = 10
	WeightHigh     = 5
	WeightMedium   = 2
	WeightLow      = 1
)

// Count tallies findings by severity.
func Count(findings []types.Finding) types.SeverityCounts {
	var c types.SeverityCounts
	for _, f := range findings {
		switch f.Severity {
		case types.SevCritical:
			c.Critical++
		case types.SevHigh:
			c.High++
		case types.SevMedium:
			c.Medium++
		case types.SevLow:
			c.Low++
		}
	}
	return c
}

// Score aggregates findings into a reality score. An empty finding list is
// a perfect 1.0. The aggregation is a sum, so it is stable under
// reordering of the input.
func Score(findings []types.Finding) types.RealityScore {
	return FromCounts(Count(findings))
}

// FromCounts computes the score directly from severity tallies. The tree
// reporter uses this to re-aggregate combined counts across files.
func FromCounts(c types.SeverityCounts) types.RealityScore {
	penalty := float64(WeightCritical*c.Critical + WeightHigh*c.High + WeightMedium*c.Medium + WeightLow*c.Low)
	v := 1.0 - penalty/100.0
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return types.RealityScore{Value: v, Counts: c, Grade: gradeFor(v)}
}

// gradeFor buckets a score for human reporting only.
func gradeFor(v float64) types.Grade {
	switch {
	case v >= 0.9:
		return types.GradeA
	case v >= 0.8:
		return types.GradeB
	case v >= 0.7:
		return types.GradeC
	case v >= 0.6:
		return types.GradeD
	default:
		return types.GradeF
	}
}
