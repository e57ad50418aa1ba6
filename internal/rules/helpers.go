package rules

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

const maxSnippet = 120

// matchLines scans line-by-line and emits a match wherever the regex hits.
// Lines carrying an inline "codegate:ignore" directive are skipped.
func matchLines(data []byte, re *regexp.Regexp) []Match {
	var out []Match
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		t := sc.Text()
		if strings.Contains(t, "codegate:ignore") {
			continue
		}
		if loc := re.FindStringIndex(t); loc != nil {
			out = append(out, Match{Line: line, Column: loc[0] + 1, Snippet: snippet(t)})
		}
	}
	return out
}

// matchAnyLines behaves like matchLines but accepts several alternative
// regexes, emitting at most one match per line.
func matchAnyLines(data []byte, res ...*regexp.Regexp) []Match {
	var out []Match
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		t := sc.Text()
		if strings.Contains(t, "codegate:ignore") {
			continue
		}
		for _, re := range res {
			if loc := re.FindStringIndex(t); loc != nil {
				out = append(out, Match{Line: line, Column: loc[0] + 1, Snippet: snippet(t)})
				break
			}
		}
	}
	return out
}

// splitLines materializes the text as lines for the few matchers that need
// to look across adjacent lines.
func splitLines(data []byte) []string {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out
}

var reCommentLine = regexp.MustCompile(`^\s*(//|#|/\*|\*|--|<!--)`)

func isComment(line string) bool {
	return reCommentLine.MatchString(line)
}

func snippet(line string) string {
	t := strings.TrimSpace(line)
	if len(t) > maxSnippet {
		t = t[:maxSnippet]
	}
	return t
}
