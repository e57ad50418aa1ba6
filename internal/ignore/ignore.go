// Package ignore implements .codegateignore matching: one pattern per
// line, `#` comments, `dir/` prefixes, and shell globs against the path
// base.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Matcher answers whether a relative path is ignored.
type Matcher struct {
	dirs  []string
	globs []string
	exact map[string]bool
}

// Load reads patterns from path. A missing file yields an empty matcher
// and an error the caller may ignore.
func Load(path string) (Matcher, error) {
	m := Matcher{exact: map[string]bool{}}
	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasSuffix(line, "/"):
			m.dirs = append(m.dirs, strings.TrimSuffix(line, "/"))
		case strings.ContainsAny(line, "*?["):
			m.globs = append(m.globs, line)
		default:
			m.exact[line] = true
		}
	}
	return m, sc.Err()
}

// Match reports whether rel is covered by any loaded pattern.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	if m.exact[rel] || m.exact[filepath.Base(rel)] {
		return true
	}
	for _, d := range m.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	for _, g := range m.globs {
		if ok, _ := filepath.Match(g, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
