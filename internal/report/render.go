// Package report renders scan and gate results for terminals and CI.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/codegate/codegate/internal/engine"
	"github.com/codegate/codegate/internal/gate"
	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/types"
)

type PrintOptions struct {
	NoColor bool
	// Findings controls whether per-finding rows are printed under each
	// file in tree output.
	Findings bool
}

// PrintTree writes the aggregate table plus a summary footer.
func PrintTree(w io.Writer, r *engine.TreeReport, opts PrintOptions) {
	if r.FileCount == 0 {
		fmt.Fprintln(w, "No scannable files found.")
		return
	}
	tbl := tablewriter.NewTable(w)
	tbl.Header("FILE", "GRADE", "SCORE", "FINDINGS")
	for _, f := range r.Files {
		_ = tbl.Append(
			f.Path,
			colorGrade(f.Score.Grade, opts.NoColor),
			fmt.Sprintf("%.2f", f.Score.Value),
			strconv.Itoa(len(f.Findings)),
		)
	}
	_ = tbl.Render()

	if opts.Findings {
		for _, f := range r.Files {
			for _, fd := range f.Findings {
				fmt.Fprintf(w, "  %s:%d  %s  %s  %s\n",
					f.Path, fd.Line,
					colorSeverity(fd.Severity, opts.NoColor),
					fd.Pattern, fd.Snippet)
			}
		}
	}

	c := r.Overall.Counts
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall: %.2f (%s)  risk: %.1f%% (%s)\n",
		r.Overall.Value, r.Overall.Grade, r.Risk.Percentage, r.Risk.Level)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		r.TotalFindings, c.Critical, c.High, c.Medium, c.Low)
	fmt.Fprintf(w, "Files scanned: %d in %.2fs\n", r.FileCount, r.Elapsed.Seconds())
}

// PrintRules lists the pattern library.
func PrintRules(w io.Writer, lib *rules.Library, opts PrintOptions) {
	tbl := tablewriter.NewTable(w)
	tbl.Header("NAME", "SEVERITY", "FIXABLE", "DESCRIPTION")
	for _, name := range lib.Names() {
		r, _ := lib.Get(name)
		fixable := ""
		if r.Fixable {
			fixable = "yes"
		}
		_ = tbl.Append(r.Name, colorSeverity(r.Severity, opts.NoColor), fixable, r.Description)
	}
	_ = tbl.Render()
}

// PrintDecision writes a single gate verdict.
func PrintDecision(w io.Writer, identifier string, d gate.Decision, opts PrintOptions) {
	fmt.Fprintf(w, "%s  %s  score: %.2f (%s)  risk: %.1f%% (%s)\n",
		colorOutcome(d.Outcome, opts.NoColor), identifier,
		d.RealityScore.Value, d.RealityScore.Grade,
		d.Risk.Percentage, d.Risk.Level)
	if d.FixedCount > 0 {
		fmt.Fprintf(w, "  auto-fixed %d finding(s)\n", d.FixedCount)
	}
	for _, f := range d.Findings {
		fmt.Fprintf(w, "  line %d  %s  %s  %s\n",
			f.Line, colorSeverity(f.Severity, opts.NoColor), f.Pattern, f.Snippet)
	}
	if d.Risk.Regression {
		fmt.Fprintln(w, "  regression: new critical or high findings versus previous version")
	}
}

func colorSeverity(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevCritical:
		return "\x1b[1;31mcritical\x1b[0m"
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m"
	case types.SevMedium:
		return "\x1b[33mmedium\x1b[0m"
	default:
		return "\x1b[36mlow\x1b[0m"
	}
}

func colorGrade(g types.Grade, noColor bool) string {
	if noColor {
		return string(g)
	}
	switch g {
	case types.GradeA, types.GradeB:
		return "\x1b[32m" + string(g) + "\x1b[0m"
	case types.GradeC:
		return "\x1b[33m" + string(g) + "\x1b[0m"
	default:
		return "\x1b[31m" + string(g) + "\x1b[0m"
	}
}

func colorOutcome(o types.Outcome, noColor bool) string {
	label := strings.ToUpper(string(o))
	if noColor {
		return label
	}
	switch o {
	case types.OutcomeAllowed:
		return "\x1b[32m" + label + "\x1b[0m"
	case types.OutcomeFixedAndAllowed:
		return "\x1b[33m" + label + "\x1b[0m"
	default:
		return "\x1b[1;31m" + label + "\x1b[0m"
	}
}
