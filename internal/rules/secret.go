package rules

import "regexp"

// Value charset is deliberately narrow: long token-like literals only, so
// short human-readable placeholders fall to the placeholder rule instead.
var reHardcodedSecret = regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|secret[_-]?key|secret|password|passwd|token|access[_-]?key|auth[_-]?key)\b\s*[:=]+\s*["'][A-Za-z0-9+/=_\-]{12,}["']`)

func HardcodedSecret(data []byte) []Match {
	return matchLines(data, reHardcodedSecret)
}
