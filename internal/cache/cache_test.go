package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codegate/codegate/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir, "fp1")
	if db.Entries == nil {
		t.Fatalf("expected entries map initialized")
	}
	db.Entries["a.py"] = Entry{Digest: "deadbeef", Score: types.RealityScore{Value: 0.9}}
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	// file should exist
	if _, err := os.Stat(filepath.Join(dir, ".codegate_cache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	// load again and verify
	db2, err := Load(dir, "fp1")
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	e := db2.Entries["a.py"]
	if e.Digest != "deadbeef" || e.Score.Value != 0.9 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestFingerprintMismatchInvalidates(t *testing.T) {
	dir := t.TempDir()
	db, _ := Load(dir, "fp1")
	db.Entries["a.py"] = Entry{Digest: "deadbeef"}
	if err := Save(dir, db); err != nil {
		t.Fatal(err)
	}
	db2, _ := Load(dir, "fp2")
	if len(db2.Entries) != 0 {
		t.Fatalf("expected entries discarded on fingerprint change, got %d", len(db2.Entries))
	}
}

func TestDigestStable(t *testing.T) {
	a := Digest([]byte("content"))
	b := Digest([]byte("content"))
	if a != b || len(a) != 16 {
		t.Fatalf("digest not stable 16-hex: %q %q", a, b)
	}
	if Digest([]byte("other")) == a {
		t.Fatal("different content must digest differently")
	}
}
