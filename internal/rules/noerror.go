package rules

import "regexp"

var (
	reExceptPass   = regexp.MustCompile(`(?i)\bexcept\b[^:\n]*:\s*pass\b`)
	reEmptyCatch   = regexp.MustCompile(`\bcatch\s*\([^)]*\)\s*\{\s*\}`)
	reIgnoreErrCmt = regexp.MustCompile(`(?i)(//|#)\s*[^\n]*\bignor(e|es|ing)\s+(the\s+|this\s+)?error(s)?\b`)
)

// MissingErrorHandling flags risky calls whose failures are swallowed on
// the spot: bare except/pass, empty catch blocks, or an explicit comment
// waving the error away.
func MissingErrorHandling(data []byte) []Match {
	return matchAnyLines(data, reExceptPass, reEmptyCatch, reIgnoreErrCmt)
}
