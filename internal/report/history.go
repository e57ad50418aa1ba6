package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/types"
)

// PrintHistory renders recent audit records newest first.
func PrintHistory(w io.Writer, recs []types.Record, opts PrintOptions) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No gate decisions recorded yet.")
		return
	}
	tbl := tablewriter.NewTable(w)
	tbl.Header("WHEN", "IDENTIFIER", "OUTCOME", "SCORE", "RISK", "FINDINGS", "FIXED")
	for _, r := range recs {
		_ = tbl.Append(
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Identifier,
			colorOutcome(r.Outcome, opts.NoColor),
			fmt.Sprintf("%.2f", r.RealityScore),
			fmt.Sprintf("%.1f%% (%s)", r.RiskPercentage, r.RiskLevel),
			strconv.Itoa(r.FindingsCount),
			strconv.Itoa(r.FindingsFixed),
		)
	}
	_ = tbl.Render()
}

// PrintStats renders aggregate gate statistics.
func PrintStats(w io.Writer, s audit.Stats) {
	fmt.Fprintf(w, "Decisions: %d\n", s.Total)
	if s.Total == 0 {
		return
	}
	fmt.Fprintf(w, "Allowed: %.0f%%  Fixed: %.0f%%  Blocked: %.0f%%\n",
		s.AllowRate*100, s.FixRate*100, s.BlockRate*100)
	fmt.Fprintf(w, "Average reality score: %.2f\n", s.AvgScore)
}
