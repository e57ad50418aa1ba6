// Package engine walks a directory tree and produces per-file and
// aggregate reality reports using a bounded worker pool.
package engine

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codegate/codegate/internal/cache"
	"github.com/codegate/codegate/internal/ignore"
	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/scan"
	"github.com/codegate/codegate/internal/score"
	"github.com/codegate/codegate/internal/types"
)

// Config controls tree traversal and scanning.
type Config struct {
	Root            string
	IncludeGlobs    string // comma-separated doublestar globs
	ExcludeGlobs    string
	Extensions      []string
	Recursive       bool
	MaxBytes        int64
	Threads         int
	EnableRules     string // comma-separated rule names; empty means all
	DisableRules    string
	DefaultExcludes bool
	RuleTimeout     time.Duration
	Severities      map[string]types.Severity
	NoCache         bool
}

// FileReport is the scored result for a single file.
type FileReport struct {
	Path     string             `json:"path"`
	Score    types.RealityScore `json:"reality_score"`
	Findings []types.Finding    `json:"findings,omitempty"`
}

// TreeReport aggregates every scanned file under the root. Overall is
// computed from the summed severity counts of all files, not from
// averaging per-file scores.
type TreeReport struct {
	Root          string             `json:"root"`
	Files         []FileReport       `json:"files"`
	Overall       types.RealityScore `json:"overall"`
	Risk          types.BreakageRisk `json:"risk"`
	FileCount     int                `json:"file_count"`
	TotalFindings int                `json:"total_findings"`
	Elapsed       time.Duration      `json:"-"`
	ElapsedMs     float64            `json:"elapsed_ms"`
}

type workItem struct {
	path string
	data []byte
}

type fileResult struct {
	report FileReport
	digest string
}

// scannerFingerprint keys the cache to everything that changes scan
// results.
func scannerFingerprint(cfg Config) string {
	names := make([]string, 0, len(cfg.Severities))
	for n := range cfg.Severities {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(cfg.EnableRules)
	b.WriteByte('|')
	b.WriteString(cfg.DisableRules)
	b.WriteByte('|')
	b.WriteString(cfg.RuleTimeout.String())
	for _, n := range names {
		b.WriteByte('|')
		b.WriteString(n)
		b.WriteByte('=')
		b.WriteString(string(cfg.Severities[n]))
	}
	return cache.Digest([]byte(b.String()))
}

// ScanTree walks cfg.Root and scans each eligible file concurrently.
func ScanTree(ctx context.Context, cfg Config) (*TreeReport, error) {
	start := time.Now()

	lib := rules.Default()
	if len(cfg.Severities) > 0 {
		lib = lib.WithSeverities(cfg.Severities)
	}
	var opts []scan.Option
	if cfg.RuleTimeout > 0 {
		opts = append(opts, scan.WithRuleTimeout(cfg.RuleTimeout))
	}
	if cfg.EnableRules != "" {
		opts = append(opts, scan.WithRules(cfg.EnableRules))
	}
	if cfg.DisableRules != "" {
		opts = append(opts, scan.WithoutRules(lib, cfg.DisableRules))
	}
	sc := scan.New(lib, opts...)

	ign, err := ignore.Load(filepath.Join(cfg.Root, ".codegateignore"))
	if err == nil {
		log.Debug().Str("root", cfg.Root).Msg("loaded .codegateignore")
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	db := cache.DB{Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root, scannerFingerprint(cfg))
	}

	work := make(chan workItem, threads*2)
	results := make(chan fileResult, threads*2)

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := range work {
				digest := cache.Digest(it.data)
				if e, ok := db.Entries[it.path]; ok && e.Digest == digest {
					results <- fileResult{
						report: FileReport{Path: it.path, Score: e.Score, Findings: e.Findings},
						digest: digest,
					}
					continue
				}
				res := sc.Scan(it.data)
				if res.DecodeError {
					continue
				}
				results <- fileResult{
					report: FileReport{
						Path:     it.path,
						Score:    score.Score(res.Findings),
						Findings: res.Findings,
					},
					digest: digest,
				}
			}
		}()
	}

	// single collector keeps aggregation free of locks
	done := make(chan struct{})
	report := &TreeReport{Root: cfg.Root}
	next := cache.DB{Fingerprint: db.Fingerprint, Entries: map[string]cache.Entry{}}
	var total types.SeverityCounts
	go func() {
		defer close(done)
		for r := range results {
			fr := r.report
			report.Files = append(report.Files, fr)
			report.TotalFindings += len(fr.Findings)
			total.Add(fr.Score.Counts)
			next.Entries[fr.Path] = cache.Entry{Digest: r.digest, Score: fr.Score, Findings: fr.Findings}
		}
	}()

	walkErr := Walk(ctx, cfg, ign, func(path string, data []byte) {
		work <- workItem{path: path, data: data}
	})
	close(work)
	wg.Wait()
	close(results)
	<-done

	if walkErr != nil {
		return nil, walkErr
	}

	if !cfg.NoCache {
		_ = cache.Save(cfg.Root, next)
	}

	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Path < report.Files[j].Path
	})
	report.FileCount = len(report.Files)
	report.Overall = score.FromCounts(total)
	report.Risk = score.Risk(nil, report.Overall)
	report.Elapsed = time.Since(start)
	report.ElapsedMs = float64(report.Elapsed.Microseconds()) / 1000

	log.Debug().
		Int("files", report.FileCount).
		Int("findings", report.TotalFindings).
		Float64("overall", report.Overall.Value).
		Dur("elapsed", report.Elapsed).
		Msg("tree scan complete")
	return report, nil
}

// WorstFiles returns up to n files ordered by ascending score.
func (r *TreeReport) WorstFiles(n int) []FileReport {
	out := make([]FileReport, len(r.Files))
	copy(out, r.Files)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score.Value < out[j].Score.Value
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
