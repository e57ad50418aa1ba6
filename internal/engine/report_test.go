package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate/codegate/internal/types"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return root
}

func TestScanTreeAggregatesCounts(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/clean.go": "func add(a, b int) int { return a + b }\n",
		"b/dirty.py": `api_key = "c2VjcmV0bWF0ZXJpYWxoZXJl"` + "\n",
	})
	r, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true, DefaultExcludes: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.FileCount)
	assert.Equal(t, 1, r.Overall.Counts.Critical)
	// overall comes from the summed counts, not an average of per-file scores
	assert.InDelta(t, 0.90, r.Overall.Value, 1e-9)
	assert.Equal(t, 1, r.TotalFindings)
}

func TestScanTreeEmptyRootPerfect(t *testing.T) {
	r, err := ScanTree(context.Background(), Config{Root: t.TempDir(), Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, 0, r.FileCount)
	assert.Equal(t, 1.0, r.Overall.Value)
	assert.Equal(t, types.GradeA, r.Overall.Grade)
}

func TestScanTreeDefaultExcludes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.js":              "// TODO: cleanup\n",
		"node_modules/pkg/mod.js": "// TODO: vendored\n",
		".git/hooks/pre-commit":   "# TODO: hook\n",
		"dist/bundle.min.js":      "// TODO: built\n",
		"vendor/lib/thing.go":     "// TODO: vendored\n",
		"assets/logo.png":         "\x89PNG\r\n\x1a\nbinarybits",
	})
	r, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true, DefaultExcludes: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "src/app.js", r.Files[0].Path)
}

func TestScanTreeNonRecursive(t *testing.T) {
	root := writeTree(t, map[string]string{
		"top.py":        "# TODO: top\n",
		"nested/sub.py": "# TODO: nested\n",
	})
	r, err := ScanTree(context.Background(), Config{Root: root})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "top.py", r.Files[0].Path)
}

func TestScanTreeExtensionFilter(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "# TODO: py\n",
		"a.js": "// TODO: js\n",
	})
	r, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true, Extensions: []string{"py"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "a.py", r.Files[0].Path)
}

func TestScanTreeGlobs(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/app.go":      "// TODO: app\n",
		"src/app_test.go": "// TODO: test\n",
	})
	r, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true,
		IncludeGlobs: "**/*.go", ExcludeGlobs: "**/*_test.go",
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "src/app.go", r.Files[0].Path)
}

func TestScanTreeIgnoreFileAndDirective(t *testing.T) {
	root := writeTree(t, map[string]string{
		".codegateignore": "skipped.py\n",
		"skipped.py":      "# TODO: never seen\n",
		"directive.py":    "# codegate:ignore-file\n# TODO: never seen either\n",
		"seen.py":         "# TODO: visible\n",
	})
	r, err := ScanTree(context.Background(), Config{Root: root, Recursive: true})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "seen.py", r.Files[0].Path)
}

func TestScanTreeSkipsBinaries(t *testing.T) {
	root := writeTree(t, map[string]string{
		"blob.bin": "TODO\x00binary",
		"ok.txt":   "plain\n",
	})
	r, err := ScanTree(context.Background(), Config{Root: root, Recursive: true})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "ok.txt", r.Files[0].Path)
}

func TestScanTreeMaxBytes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"big.txt":   "# TODO: huge file padded well past the limit\n",
		"small.txt": "ok\n",
	})
	r, err := ScanTree(context.Background(), Config{Root: root, Recursive: true, MaxBytes: 10})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, "small.txt", r.Files[0].Path)
}

func TestScanTreeDisableRules(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "# TODO: later\n",
	})
	r, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true, DisableRules: "todo_marker",
	})
	require.NoError(t, err)
	require.Equal(t, 1, r.FileCount)
	assert.Equal(t, 0, r.TotalFindings)
	assert.Equal(t, 1.0, r.Overall.Value)
}

func TestScanTreeConcurrencyDeterministic(t *testing.T) {
	files := map[string]string{}
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[n+"/f.py"] = "x = 1\n    pass\n# TODO: " + n + "\n"
	}
	root := writeTree(t, files)
	for _, threads := range []int{1, 4} {
		r, err := ScanTree(context.Background(), Config{Root: root, Recursive: true, Threads: threads})
		require.NoError(t, err)
		assert.Equal(t, 8, r.FileCount)
		assert.Equal(t, 16, r.TotalFindings)
		assert.Equal(t, 8, r.Overall.Counts.Medium)
		assert.Equal(t, 8, r.Overall.Counts.Low)
	}
}

func TestScanTreeCacheStaysFresh(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "# TODO: later\n",
	})
	cfg := Config{Root: root, Recursive: true}

	first, err := ScanTree(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalFindings)

	// unchanged content: cached result must match a fresh scan
	second, err := ScanTree(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.TotalFindings, second.TotalFindings)

	// changed content invalidates the entry
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("x = 1\n"), 0644))
	third, err := ScanTree(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, third.TotalFindings)
	assert.Equal(t, 1.0, third.Overall.Value)

	// config change invalidates the whole cache
	fourth, err := ScanTree(context.Background(), Config{
		Root: root, Recursive: true, EnableRules: "todo_marker",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, fourth.TotalFindings)
}

func TestWorstFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"bad.py":  `secret = "c2VjcmV0bWF0ZXJpYWxoZXJl"` + "\n",
		"meh.py":  "# TODO: later\n",
		"good.py": "x = 1\n",
	})
	r, err := ScanTree(context.Background(), Config{Root: root, Recursive: true})
	require.NoError(t, err)
	worst := r.WorstFiles(2)
	require.Len(t, worst, 2)
	assert.Equal(t, "bad.py", worst[0].Path)
	assert.Equal(t, "meh.py", worst[1].Path)
}
