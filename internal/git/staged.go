// Package git shells out to the git binary for the small set of repo
// queries codegate needs. No libgit2 or go-git; the CLI is assumed
// present like every other pre-commit tool assumes it.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// StagedFile is one file in the index together with its HEAD version,
// Previous is nil for newly added files.
type StagedFile struct {
	Path     string
	Proposed []byte
	Previous []byte
}

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	return abs, nil
}

// RepoMetadata returns (repo, commit, branch) best-effort for the given root.
// Empty strings are returned on failure.
func RepoMetadata(root string) (string, string, string) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return "", "", ""
	}
	repo := ""
	if out, err := exec.Command("git", "-C", validRoot, "config", "--get", "remote.origin.url").Output(); err == nil {
		s := strings.TrimSuffix(strings.TrimSpace(string(out)), ".git")
		if i := strings.LastIndex(s, ":"); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.Index(s, "github.com/"); i >= 0 {
			s = s[i+len("github.com/"):]
		}
		repo = s
	}
	commit := ""
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "HEAD").Output(); err == nil {
		commit = strings.TrimSpace(string(out))
	}
	branch := ""
	if out, err := exec.Command("git", "-C", validRoot, "rev-parse", "--abbrev-ref", "HEAD").Output(); err == nil {
		branch = strings.TrimSpace(string(out))
	}
	return repo, commit, branch
}

// Root resolves the repository toplevel for a path inside a work tree.
func Root(path string) (string, error) {
	valid, err := validateRoot(path)
	if err != nil {
		return "", err
	}
	out, err := exec.Command("git", "-C", valid, "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", path)
	}
	return strings.TrimSpace(string(out)), nil
}

// Staged lists files in the index with their staged content and, when
// the file already exists at HEAD, the committed content.
func Staged(root string) ([]StagedFile, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}
	out, err := exec.Command("git", "-C", validRoot, "diff", "--name-only", "--cached", "--diff-filter=ACM").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	var files []StagedFile
	for _, p := range strings.Fields(string(out)) {
		proposed, err := exec.Command("git", "-C", validRoot, "show", ":"+p).Output()
		if err != nil {
			continue
		}
		sf := StagedFile{Path: p, Proposed: proposed}
		if prev, err := exec.Command("git", "-C", validRoot, "show", "HEAD:"+p).Output(); err == nil {
			sf.Previous = prev
		}
		files = append(files, sf)
	}
	return files, nil
}
