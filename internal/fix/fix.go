// Package fix applies mechanical rewrites for the restricted set of
// fixable rules. Fixes never guess at business logic; they only convert a
// silent lie into a structurally visible gap that a human must resolve.
//
// Every rewrite must be idempotent and must not retrigger any rule in the
// library, or the gate's fix-then-rescan loop would never converge.
package fix

import (
	"regexp"
	"strings"

	"github.com/codegate/codegate/internal/types"
)

// Result carries the rewritten text plus the findings that were and were
// not fixed.
type Result struct {
	Text      string
	Fixed     []types.Finding
	Unfixable []types.Finding
}

// Changed reports whether any rewrite was applied.
func (r Result) Changed() bool { return len(r.Fixed) > 0 }

type rewriteFunc func(line string) (string, bool)

// Rewrite patterns mirror the trigger rules; an applied rewrite must leave
// a line the corresponding rule no longer matches.
var (
	reFixReturnTrue  = regexp.MustCompile(`(?i)^(\s*return\s+)true(\s*;?\s*)(//|#)(.*)$`)
	reFixSuccessLit  = regexp.MustCompile(`(?i)((["']?)(success|status|ok)(["']?)\s*[:=]>?\s*)(true|["'](ok|success)["'])`)
	reFixPlaceholder = regexp.MustCompile(`(?i)(["'])(change[_ -]?me|replace[_ -]?me|fill[_ -]?me[_ -]?in|your[-_ ][\w-]+[-_ ]here|placeholder|lorem ipsum[^"']*|tbd|to[_ -]?be[_ -]?filled)(["'])`)
	reFixBareStub    = regexp.MustCompile(`^(\s*)(pass|\.\.\.)(\s*)$`)
)

var rewrites = map[string]rewriteFunc{
	"always_returns_true": rewriteAlwaysTrue,
	"placeholder_literal": rewritePlaceholder,
	"undocumented_stub":   rewriteStub,
}

// Fixable reports whether a registered rewrite exists for the rule.
func Fixable(pattern string) bool {
	_, ok := rewrites[pattern]
	return ok
}

// Apply rewrites the lines named by fixable findings and partitions the
// findings into fixed and unfixable. Findings whose rule has no rewrite,
// or whose rewrite cannot be applied safely, land in Unfixable.
func Apply(text string, findings []types.Finding) Result {
	lines := strings.Split(text, "\n")
	res := Result{}
	for _, f := range findings {
		rw, ok := rewrites[f.Pattern]
		if !ok {
			res.Unfixable = append(res.Unfixable, f)
			continue
		}
		idx := f.Line - 1
		if idx < 0 || idx >= len(lines) {
			res.Unfixable = append(res.Unfixable, f)
			continue
		}
		rewritten, applied := rw(lines[idx])
		if !applied {
			res.Unfixable = append(res.Unfixable, f)
			continue
		}
		lines[idx] = rewritten
		res.Fixed = append(res.Fixed, f)
	}
	res.Text = strings.Join(lines, "\n")
	return res
}

// rewriteAlwaysTrue turns an unconditional success into an explicit
// failure: `return true // always works` becomes `return false //
// unimplemented`, and success literals flip to false.
func rewriteAlwaysTrue(line string) (string, bool) {
	if m := reFixReturnTrue.FindStringSubmatch(line); m != nil {
		return m[1] + "false" + m[2] + m[3] + " unimplemented", true
	}
	if reFixSuccessLit.MatchString(line) {
		return reFixSuccessLit.ReplaceAllString(line, "${1}false"), true
	}
	return line, false
}

// rewritePlaceholder swaps the placeholder value for a marker a human must
// fill before merge, keeping the surrounding quotes.
func rewritePlaceholder(line string) (string, bool) {
	if !reFixPlaceholder.MatchString(line) {
		return line, false
	}
	return reFixPlaceholder.ReplaceAllString(line, "${1}<set-before-merge>${3}"), true
}

// rewriteStub annotates a bare stub so the gap is documented where it
// lives.
func rewriteStub(line string) (string, bool) {
	if m := reFixBareStub.FindStringSubmatch(line); m != nil {
		return m[1] + m[2] + "  # stub: awaiting implementation", true
	}
	return line, false
}
