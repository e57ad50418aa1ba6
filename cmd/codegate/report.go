package codegate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/config"
	"github.com/codegate/codegate/internal/engine"
	"github.com/codegate/codegate/internal/report"
)

var (
	flagPath            string
	flagInclude         string
	flagExclude         string
	flagExtensions      string
	flagMaxBytes        int64
	flagEnable          string
	flagDisable         string
	flagNoRecursive     bool
	flagDefaultExcludes bool
	flagFindings        bool
	flagMinGrade        string
	flagWorst           int
	flagBaseline        bool
	flagUpdateBaseline  bool
	flagNoCache         bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Score a directory tree",
		Long:  "report scans every eligible file under a root, scores each one, and aggregates an overall reality score and breakage risk from the combined findings.",
		RunE:  runReport,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "root to scan")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagExtensions, "ext", "", "only scan these extensions (comma-separated)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these rules (comma-separated names)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these rules (comma-separated names)")
	cmd.Flags().BoolVar(&flagNoRecursive, "no-recursive", false, "do not descend into subdirectories")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	cmd.Flags().BoolVar(&flagFindings, "findings", false, "list individual findings under the table")
	cmd.Flags().StringVar(&flagMinGrade, "min-grade", "", "exit 1 when the overall grade is worse than this (A-F)")
	cmd.Flags().IntVar(&flagWorst, "worst", 0, "only show the N lowest-scoring files")
	cmd.Flags().BoolVar(&flagBaseline, "baseline", false, "filter findings recorded in "+report.BaselinePath)
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "write current findings to "+report.BaselinePath)
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the incremental scan cache")
}

func runReport(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		Extensions:      splitList(pickString(flagExtensions, lcfg.Extensions, gcfg.Extensions)),
		Recursive:       !flagNoRecursive,
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		EnableRules:     pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		DisableRules:    pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		DefaultExcludes: flagDefaultExcludes,
		RuleTimeout:     ruleTimeout(lcfg, gcfg),
		Severities:      severityOverrides(lcfg, gcfg),
		NoCache:         flagNoCache,
	}

	r, err := engine.ScanTree(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	baselinePath := filepath.Join(abs, report.BaselinePath)
	if flagUpdateBaseline {
		if err := report.SaveBaseline(baselinePath, r); err != nil {
			return fmt.Errorf("write baseline: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Wrote", baselinePath)
	}
	if flagBaseline {
		if base, err := report.LoadBaseline(baselinePath); err == nil {
			report.FilterBaseline(r, base)
		}
	}

	if flagWorst > 0 {
		r.Files = r.WorstFiles(flagWorst)
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, r, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return err
		}
	default:
		nc := noColor() || pickBool(false, lcfg.NoColor, gcfg.NoColor)
		report.PrintTree(os.Stdout, r, report.PrintOptions{NoColor: nc, Findings: flagFindings})
	}

	if report.FailsGrade(r.Overall.Grade, strings.ToUpper(flagMinGrade)) {
		os.Exit(1)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
