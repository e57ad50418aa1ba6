// Package audit persists one immutable record per enforcement decision.
//
// The store is an append-only JSONL file plus an in-memory view for
// queries and stats. Appends are mutex-guarded so concurrent gate
// invocations cannot lose records.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/codegate/codegate/internal/types"
)

// Store is the audit trail contract the gate writes through.
type Store interface {
	Append(rec types.Record) error
	Query(f Filter) ([]types.Record, error)
	Stats() (Stats, error)
}

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	Outcome types.Outcome
	Level   types.RiskLevel
	Since   time.Time
	Limit   int
}

// Stats summarizes the whole trail for dashboards.
type Stats struct {
	Total     int     `json:"total"`
	AllowRate float64 `json:"allow_rate"`
	FixRate   float64 `json:"fix_rate"`
	BlockRate float64 `json:"block_rate"`
	AvgScore  float64 `json:"avg_score"`
}

// NewID returns a unique, time-ordered record id.
func NewID() string {
	return ulid.Make().String()
}

// Log is the file-backed Store implementation.
type Log struct {
	path string

	mu   sync.Mutex
	recs []types.Record
}

// DefaultPath places the log under .git when present (so it is never
// committed by accident), falling back to a dotfile in root.
func DefaultPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "codegate_audit.jsonl")
	}
	return filepath.Join(root, ".codegate_audit.jsonl")
}

// Open loads any existing records and returns a ready store. A missing
// file is not an error; it is created on first append.
func Open(path string) (*Log, error) {
	l := &Log{path: path}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	for dec.More() {
		var rec types.Record
		if err := dec.Decode(&rec); err != nil {
			// a torn tail write must not make the whole trail unreadable
			break
		}
		l.recs = append(l.recs, rec)
	}
	return l, nil
}

// Append durably writes one record. The in-memory view is updated only
// after the write succeeds.
func (l *Log) Append(rec types.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Owner-only: records carry identifiers and score metadata.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	l.recs = append(l.recs, rec)
	return nil
}

// Query returns matching records, newest first.
func (l *Log) Query(filter Filter) ([]types.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []types.Record
	for i := len(l.recs) - 1; i >= 0; i-- {
		rec := l.recs[i]
		if filter.Outcome != "" && rec.Outcome != filter.Outcome {
			continue
		}
		if filter.Level != "" && rec.RiskLevel != filter.Level {
			continue
		}
		if !filter.Since.IsZero() && rec.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

// Stats aggregates the whole trail.
func (l *Log) Stats() (Stats, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{Total: len(l.recs)}
	if s.Total == 0 {
		return s, nil
	}
	var allowed, fixed, blocked int
	var scoreSum float64
	for _, rec := range l.recs {
		switch rec.Outcome {
		case types.OutcomeAllowed:
			allowed++
		case types.OutcomeFixedAndAllowed:
			fixed++
		case types.OutcomeBlocked:
			blocked++
		}
		scoreSum += rec.RealityScore
	}
	n := float64(s.Total)
	s.AllowRate = float64(allowed) / n
	s.FixRate = float64(fixed) / n
	s.BlockRate = float64(blocked) / n
	s.AvgScore = scoreSum / n
	return s, nil
}
