package rules

import "regexp"

var rePlaceholderLit = regexp.MustCompile(`(?i)["'](change[_ -]?me|replace[_ -]?me|fill[_ -]?me[_ -]?in|your[-_ ][\w-]+[-_ ]here|placeholder|lorem ipsum[^"']*|tbd|to[_ -]?be[_ -]?filled)["']`)

// PlaceholderLiteral flags obvious stand-in values left where real
// configuration or data belongs.
func PlaceholderLiteral(data []byte) []Match {
	return matchLines(data, rePlaceholderLit)
}
