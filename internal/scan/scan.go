// Package scan applies the rule library to one unit of source text.
//
// Scanning is a pure function of the input text and the configured rule
// set, plus a timing guard: any rule that exceeds its per-rule budget has
// its matches discarded for that scan so a single pathological input
// cannot stall a batch run.
package scan

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/types"
)

// DefaultRuleTimeout bounds a single rule's matcher per text unit.
const DefaultRuleTimeout = 50 * time.Millisecond

// Result is the outcome of scanning one text unit. A non-decodable input
// yields zero findings and DecodeError=true rather than an error, so one
// bad file never aborts a batch.
type Result struct {
	Findings      []types.Finding `json:"findings"`
	DecodeError   bool            `json:"decode_error,omitempty"`
	TimedOutRules []string        `json:"timed_out_rules,omitempty"`
}

// Scanner runs an enabled subset of the library's rules over text.
type Scanner struct {
	lib         *rules.Library
	ruleTimeout time.Duration
	enabled     map[string]bool // nil means every rule
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRuleTimeout overrides the per-rule matcher budget.
func WithRuleTimeout(d time.Duration) Option {
	return func(s *Scanner) {
		if d > 0 {
			s.ruleTimeout = d
		}
	}
}

// WithRules restricts scanning to the named rules. Empty and comma-joined
// forms are both accepted to mirror the CLI flags.
func WithRules(names ...string) Option {
	return func(s *Scanner) {
		set := map[string]bool{}
		for _, n := range names {
			for _, part := range strings.Split(n, ",") {
				if part = strings.TrimSpace(part); part != "" {
					set[part] = true
				}
			}
		}
		if len(set) > 0 {
			s.enabled = set
		}
	}
}

// WithoutRules disables the named rules, keeping the rest.
func WithoutRules(lib *rules.Library, names ...string) Option {
	return func(s *Scanner) {
		drop := map[string]bool{}
		for _, n := range names {
			for _, part := range strings.Split(n, ",") {
				if part = strings.TrimSpace(part); part != "" {
					drop[part] = true
				}
			}
		}
		if len(drop) == 0 {
			return
		}
		set := map[string]bool{}
		for _, r := range lib.Rules() {
			if !drop[r.Name] {
				set[r.Name] = true
			}
		}
		s.enabled = set
	}
}

// New builds a Scanner over the given library.
func New(lib *rules.Library, opts ...Option) *Scanner {
	s := &Scanner{lib: lib, ruleTimeout: DefaultRuleTimeout}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Scan runs every enabled rule over data and returns the findings with
// each rule's current severity stamped on.
func (s *Scanner) Scan(data []byte) Result {
	var res Result
	if !decodable(data) {
		res.DecodeError = true
		return res
	}
	for _, rule := range s.lib.Rules() {
		if s.enabled != nil && !s.enabled[rule.Name] {
			continue
		}
		matches, ok := s.runBounded(rule, data)
		if !ok {
			res.TimedOutRules = append(res.TimedOutRules, rule.Name)
			log.Warn().Str("rule", rule.Name).Dur("budget", s.ruleTimeout).
				Msg("rule exceeded time budget; matches discarded")
			continue
		}
		for _, m := range matches {
			res.Findings = append(res.Findings, types.Finding{
				Pattern:  rule.Name,
				Severity: rule.Severity,
				Line:     m.Line,
				Column:   m.Column,
				Snippet:  m.Snippet,
			})
		}
	}
	sort.SliceStable(res.Findings, func(i, j int) bool {
		a, b := res.Findings[i], res.Findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Pattern < b.Pattern
	})
	return res
}

// ScanText is Scan for string input.
func (s *Scanner) ScanText(text string) Result {
	return s.Scan([]byte(text))
}

// runBounded executes the matcher under the per-rule budget. On timeout
// the matcher goroutine is abandoned; RE2 matching terminates on its own
// shortly after, and its result is dropped.
func (s *Scanner) runBounded(rule rules.Rule, data []byte) ([]rules.Match, bool) {
	done := make(chan []rules.Match, 1)
	go func() {
		done <- rule.Match(data)
	}()
	timer := time.NewTimer(s.ruleTimeout)
	defer timer.Stop()
	select {
	case ms := <-done:
		return ms, true
	case <-timer.C:
		return nil, false
	}
}

// decodable reports whether data is plausibly text: valid UTF-8 with no
// NUL bytes in the sniff window.
func decodable(data []byte) bool {
	const sniff = 800
	n := len(data)
	if n > sniff {
		n = sniff
	}
	for i := 0; i < n; i++ {
		if data[i] == 0 {
			return false
		}
	}
	return utf8.Valid(data)
}
