package rules

import "regexp"

var reBareStub = regexp.MustCompile(`^\s*(pass|\.\.\.)\s*$`)

// UndocumentedStub flags bare stub bodies (`pass`, `...`) that carry no
// comment at all, on the line or immediately above it. A stub that says
// why it is a stub is someone's deliberate decision; a bare one is usually
// forgotten scaffolding.
func UndocumentedStub(data []byte) []Match {
	lines := splitLines(data)
	var out []Match
	for i, t := range lines {
		if !reBareStub.MatchString(t) {
			continue
		}
		if i > 0 && isComment(lines[i-1]) {
			continue
		}
		out = append(out, Match{Line: i + 1, Column: 1, Snippet: snippet(t)})
	}
	return out
}
