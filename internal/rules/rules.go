package rules

import (
	"sort"

	"github.com/codegate/codegate/internal/types"
)

// Match is one raw pattern hit inside a text unit. The scanner turns
// matches into findings, stamping the rule's current severity.
type Match struct {
	Line    int
	Column  int
	Snippet string
}

// MatcherFunc inspects a text body and reports zero or more matches.
// Matchers must be pure and deterministic; no full parsing, line-level
// heuristics only.
type MatcherFunc func(data []byte) []Match

// Rule is one named detection pattern. Rules are immutable after the
// library is built.
type Rule struct {
	Name        string
	Severity    types.Severity
	Description string
	Fixable     bool
	match       MatcherFunc
}

// Match runs the rule's matcher against data.
func (r Rule) Match(data []byte) []Match {
	return r.match(data)
}

// Library is an ordered, read-only rule catalog. Build one at startup and
// share it freely; it carries no mutable state.
type Library struct {
	rules  []Rule
	byName map[string]int
}

var builtin = []Rule{
	{Name: "fake_hash_as_id", Severity: types.SevCritical, Description: "identifier fabricated from a hash of time or random input", match: FakeHashAsID},
	{Name: "hardcoded_secret", Severity: types.SevCritical, Description: "credential or API key literal committed in source", match: HardcodedSecret},
	{Name: "fake_data_return", Severity: types.SevCritical, Description: "function returns explicitly fake or dummy data", match: FakeDataReturn},
	{Name: "mock_without_real", Severity: types.SevHigh, Description: "mock client or service wired where a real one is expected", match: MockWithoutReal},
	{Name: "comment_only_body", Severity: types.SevHigh, Description: "comment standing in for an implementation", match: CommentOnlyBody},
	{Name: "always_returns_true", Severity: types.SevHigh, Description: "unconditional success return hiding unimplemented behavior", Fixable: true, match: AlwaysReturnsTrue},
	{Name: "placeholder_literal", Severity: types.SevMedium, Description: "placeholder value left in place of real configuration", Fixable: true, match: PlaceholderLiteral},
	{Name: "undocumented_stub", Severity: types.SevMedium, Description: "bare stub body with no explanation", Fixable: true, match: UndocumentedStub},
	{Name: "empty_collection_return", Severity: types.SevMedium, Description: "empty collection returned as a stand-in result", match: EmptyCollectionReturn},
	{Name: "missing_error_handling", Severity: types.SevMedium, Description: "error from a risky call swallowed or ignored", match: MissingErrorHandling},
	{Name: "overdoc_trivial", Severity: types.SevLow, Description: "heavily documented trivial body", match: OverdocTrivial},
	{Name: "todo_marker", Severity: types.SevLow, Description: "deferred-work marker left in shipped code", match: TodoMarker},
}

// Default returns the built-in library.
func Default() *Library {
	return newLibrary(builtin)
}

func newLibrary(rs []Rule) *Library {
	l := &Library{rules: make([]Rule, len(rs)), byName: make(map[string]int, len(rs))}
	copy(l.rules, rs)
	for i, r := range l.rules {
		l.byName[r.Name] = i
	}
	return l
}

// WithSeverities returns a copy of the library with per-rule severity
// overrides applied. Unknown names are ignored so stale config entries do
// not break startup.
func (l *Library) WithSeverities(overrides map[string]types.Severity) *Library {
	if len(overrides) == 0 {
		return l
	}
	rs := make([]Rule, len(l.rules))
	copy(rs, l.rules)
	for i := range rs {
		if sev, ok := overrides[rs[i].Name]; ok && validSeverity(sev) {
			rs[i].Severity = sev
		}
	}
	return newLibrary(rs)
}

// Rules returns the catalog in registration order.
func (l *Library) Rules() []Rule {
	out := make([]Rule, len(l.rules))
	copy(out, l.rules)
	return out
}

// Get looks a rule up by name.
func (l *Library) Get(name string) (Rule, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Rule{}, false
	}
	return l.rules[i], true
}

// Names returns all rule names sorted alphabetically.
func (l *Library) Names() []string {
	out := make([]string, 0, len(l.rules))
	for _, r := range l.rules {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func validSeverity(s types.Severity) bool {
	switch s {
	case types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow:
		return true
	}
	return false
}
