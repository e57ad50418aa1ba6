package rules

import "regexp"

// Uppercase markers only; lowercase "todo" in prose is too noisy.
var reTodoMarker = regexp.MustCompile(`(//|#|/\*|\*|--|<!--)\s*[^\n]*\b(TODO|FIXME|HACK|XXX)\b`)

func TodoMarker(data []byte) []Match {
	return matchLines(data, reTodoMarker)
}
