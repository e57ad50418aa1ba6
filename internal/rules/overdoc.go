package rules

import "regexp"

var reTrivialReturn = regexp.MustCompile(`^\s*return\s+(true|false|nil|null|None|0|1|\[\s*\]|\{\s*\}|"")\s*;?\s*$`)

const overdocMinComments = 3

// OverdocTrivial flags a block of three or more comment lines sitting
// directly on top of a one-line trivial return. The documentation effort
// is a known tell for a body that was never written.
func OverdocTrivial(data []byte) []Match {
	lines := splitLines(data)
	var out []Match
	run := 0
	for i, t := range lines {
		if isComment(t) {
			run++
			continue
		}
		if run >= overdocMinComments && reTrivialReturn.MatchString(t) {
			out = append(out, Match{Line: i + 1, Column: 1, Snippet: snippet(t)})
		}
		run = 0
	}
	return out
}
