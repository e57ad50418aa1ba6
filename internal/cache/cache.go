// Package cache persists per-file scan results between runs so unchanged
// files are not rescanned.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/codegate/codegate/internal/types"
)

// Entry is one cached file result, valid while the content digest and
// the scanner fingerprint both still match.
type Entry struct {
	Digest   string             `json:"digest"`
	Score    types.RealityScore `json:"reality_score"`
	Findings []types.Finding    `json:"findings,omitempty"`
}

type DB struct {
	// Fingerprint of the scanner configuration the entries were produced
	// under. A mismatch invalidates the whole cache.
	Fingerprint string `json:"fingerprint"`
	// Path relative to repo root -> cached result
	Entries map[string]Entry `json:"entries"`
}

// Digest fingerprints file content or configuration strings.
func Digest(data []byte) string {
	sum := xxhash.Sum64(data)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to repo root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "codegate_cache.json")
	}
	return filepath.Join(root, ".codegate_cache.json")
}

// Load reads the cache for root, returning an empty usable DB when the
// file is missing or unreadable. Entries under a different fingerprint
// are discarded.
func Load(root, fingerprint string) (DB, error) {
	empty := DB{Fingerprint: fingerprint, Entries: map[string]Entry{}}
	f, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return empty, err
	}
	var db DB
	if err := json.Unmarshal(f, &db); err != nil {
		return empty, err
	}
	if db.Entries == nil || db.Fingerprint != fingerprint {
		return empty, nil
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(defaultPath(root), b, 0644)
}
