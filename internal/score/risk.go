package score

import "github.com/codegate/codegate/internal/types"

// Risk surcharges: critical and high findings push a proposed change out
// of the acceptable band even when the base score looks fine.
const (
	SurchargeCritical = 10
	SurchargeHigh     = 5
)

// Risk computes the breakage risk of a proposed change. The numeric value
// derives only from the resulting state; the previous state is consulted
// solely to flag regressions for reporting.
func Risk(prev *types.RealityScore, next types.RealityScore) types.BreakageRisk {
	p := (100.0 - next.Value*100.0) +
		float64(SurchargeCritical*next.Counts.Critical) +
		float64(SurchargeHigh*next.Counts.High)
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	r := types.BreakageRisk{Percentage: p, Level: LevelFor(p)}
	if prev != nil &&
		(next.Counts.Critical > prev.Counts.Critical || next.Counts.High > prev.Counts.High) {
		r.Regression = true
	}
	return r
}

// LevelFor maps a percentage onto the fixed risk bands.
func LevelFor(p float64) types.RiskLevel {
	switch {
	case p <= 0:
		return types.RiskZero
	case p < 1.0:
		return types.RiskMinimal
	case p < 5.0:
		return types.RiskLow
	case p < 15.0:
		return types.RiskMedium
	case p < 30.0:
		return types.RiskHigh
	default:
		return types.RiskCritical
	}
}
