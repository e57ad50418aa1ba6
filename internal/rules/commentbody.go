package rules

import "regexp"

var reCommentBody = regexp.MustCompile(`(?i)^\s*(//|#|/\*|\*|--)\s*[^\n]*\b(implementation (goes|would go) here|actual (logic|implementation|code)( goes here)?|code goes here|real implementation would|would (normally|actually|typically) (call|query|fetch|send|write)|in a real (implementation|system|app|version))\b`)

// CommentOnlyBody flags comments that narrate what the code would do
// instead of doing it.
func CommentOnlyBody(data []byte) []Match {
	return matchLines(data, reCommentBody)
}
