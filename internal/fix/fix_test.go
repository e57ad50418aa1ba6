package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/scan"
	"github.com/codegate/codegate/internal/types"
)

func scanAll(t *testing.T, text string) []types.Finding {
	t.Helper()
	return scan.New(rules.Default()).ScanText(text).Findings
}

func TestFixAlwaysReturnsTrue(t *testing.T) {
	text := "    return true  // always succeeds\n"
	fs := scanAll(t, text)
	require.Len(t, fs, 1)

	res := Apply(text, fs)
	require.Len(t, res.Fixed, 1)
	assert.Empty(t, res.Unfixable)
	assert.Contains(t, res.Text, "return false")

	// the rewrite must remove the trigger
	assert.Empty(t, scanAll(t, res.Text))
}

func TestFixSuccessLiteral(t *testing.T) {
	text := `    return {"success": true}` + "\n"
	fs := scanAll(t, text)
	require.Len(t, fs, 1)

	res := Apply(text, fs)
	require.Len(t, res.Fixed, 1)
	assert.Contains(t, res.Text, `"success": false`)
	assert.Empty(t, scanAll(t, res.Text))
}

func TestFixPlaceholderLiteral(t *testing.T) {
	text := `host = "your-db-host-here"` + "\n"
	fs := scanAll(t, text)
	require.Len(t, fs, 1)

	res := Apply(text, fs)
	require.Len(t, res.Fixed, 1)
	assert.Contains(t, res.Text, `"<set-before-merge>"`)
	assert.Empty(t, scanAll(t, res.Text))
}

func TestFixUndocumentedStub(t *testing.T) {
	text := "def sync(self):\n    pass\n"
	fs := scanAll(t, text)
	require.Len(t, fs, 1)

	res := Apply(text, fs)
	require.Len(t, res.Fixed, 1)
	assert.Empty(t, scanAll(t, res.Text))
}

func TestFixIdempotent(t *testing.T) {
	text := "    return true  # always ok\n" + `name = "changeme"` + "\n" + "    pass\n"
	first := Apply(text, scanAll(t, text))
	require.True(t, first.Changed())

	second := Apply(first.Text, scanAll(t, first.Text))
	assert.False(t, second.Changed())
	assert.Equal(t, first.Text, second.Text)
}

func TestUnfixableRuleStaysUnfixable(t *testing.T) {
	text := `secret = "c29tZXRoaW5nbG9uZ2Vub3VnaA"` + "\n"
	fs := scanAll(t, text)
	require.Len(t, fs, 1)

	res := Apply(text, fs)
	assert.Empty(t, res.Fixed)
	require.Len(t, res.Unfixable, 1)
	assert.Equal(t, "hardcoded_secret", res.Unfixable[0].Pattern)
	assert.Equal(t, text, res.Text)
}

func TestStaleFindingOutOfRange(t *testing.T) {
	res := Apply("one line", []types.Finding{{Pattern: "undocumented_stub", Line: 42}})
	require.Len(t, res.Unfixable, 1)
}

func TestFixableRegistryMatchesLibrary(t *testing.T) {
	for _, r := range rules.Default().Rules() {
		assert.Equal(t, r.Fixable, Fixable(r.Name), "rule %s", r.Name)
	}
}
