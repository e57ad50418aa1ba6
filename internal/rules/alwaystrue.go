package rules

import "regexp"

var (
	// `return true  // always succeeds` and friends
	reReturnTrueComment = regexp.MustCompile(`(?i)^\s*return\s+true\s*;?\s*(//|#)\s*[^\n]*\b(always|success|succeeds?|works?|ok)\b`)
	// `return {"success": true}` / `return {status: "ok"}`
	reReturnSuccessLit = regexp.MustCompile(`(?i)\breturn\s+[\[{(]?\s*["']?(success|status|ok)["']?\s*[:=]>?\s*(true|["']?(ok|success)["']?)\b`)
)

// AlwaysReturnsTrue flags unconditional success returns that hide the fact
// that nothing was attempted.
func AlwaysReturnsTrue(data []byte) []Match {
	return matchAnyLines(data, reReturnTrueComment, reReturnSuccessLit)
}
