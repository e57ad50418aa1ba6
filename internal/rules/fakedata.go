package rules

import "regexp"

var (
	reFakeReturn = regexp.MustCompile(`(?i)\breturn\b[^\n]*\b(fake|dummy)[_ ]?(data|user|users|response|result|results|payload|record|records)\b`)
	reFakeAssign = regexp.MustCompile(`(?i)\b(fake|dummy)_?(data|response|result)\w*\s*[:=][^=]`)
)

// FakeDataReturn flags code that openly returns fabricated data.
func FakeDataReturn(data []byte) []Match {
	return matchAnyLines(data, reFakeReturn, reFakeAssign)
}
