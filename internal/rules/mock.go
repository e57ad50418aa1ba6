package rules

import "regexp"

var (
	reMockUse    = regexp.MustCompile(`(?i)\b(use|uses|using|return|returns|returning)\s+(a\s+|the\s+)?mock(ed)?[_ ]?(api|client|service|server|response)\b`)
	reMockAssign = regexp.MustCompile(`(?i)\bmock_?(api|client|service|server)\w*\s*[:=(]`)
)

// MockWithoutReal flags a mock client or service wired into non-test code
// where a real integration is expected.
func MockWithoutReal(data []byte) []Match {
	return matchAnyLines(data, reMockUse, reMockAssign)
}
