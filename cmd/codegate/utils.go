package codegate

import (
	"time"

	"github.com/codegate/codegate/internal/config"
	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/scan"
	"github.com/codegate/codegate/internal/types"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// severityOverrides converts config severity names, dropping anything the
// library would reject anyway.
func severityOverrides(lcfg, gcfg config.FileConfig) map[string]types.Severity {
	out := map[string]types.Severity{}
	for name, sev := range gcfg.Severities {
		out[name] = types.Severity(sev)
	}
	for name, sev := range lcfg.Severities {
		out[name] = types.Severity(sev)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func ruleTimeout(lcfg, gcfg config.FileConfig) time.Duration {
	if s := pickString("", lcfg.RuleTimeout, gcfg.RuleTimeout); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return 0
}

// buildScanner assembles the pattern scanner from layered config.
func buildScanner(lcfg, gcfg config.FileConfig) *scan.Scanner {
	lib := rules.Default()
	if ov := severityOverrides(lcfg, gcfg); ov != nil {
		lib = lib.WithSeverities(ov)
	}
	var opts []scan.Option
	if d := ruleTimeout(lcfg, gcfg); d > 0 {
		opts = append(opts, scan.WithRuleTimeout(d))
	}
	if s := pickString("", lcfg.Enable, gcfg.Enable); s != "" {
		opts = append(opts, scan.WithRules(s))
	}
	if s := pickString("", lcfg.Disable, gcfg.Disable); s != "" {
		opts = append(opts, scan.WithoutRules(lib, s))
	}
	return scan.New(lib, opts...)
}
