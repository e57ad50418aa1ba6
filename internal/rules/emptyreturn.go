package rules

import "regexp"

var reEmptyReturn = regexp.MustCompile(`(?i)^\s*return\s+(\[\s*\]|\{\s*\}|""|'')\s*;?\s*(//|#)\s*[^\n]*\b(for now|placeholder|stub|until|later|temp(orary)?)\b`)

// EmptyCollectionReturn flags empty collections returned as admitted
// stand-ins. A bare `return []` is legitimate; only the excuse comment
// turns it into a finding.
func EmptyCollectionReturn(data []byte) []Match {
	return matchLines(data, reEmptyReturn)
}
