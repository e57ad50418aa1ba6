package audit

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegate/codegate/internal/types"
)

func record(outcome types.Outcome, score float64) types.Record {
	return types.Record{
		ID:             NewID(),
		InputDigest:    "deadbeefdeadbeef",
		RealityScore:   score,
		RiskPercentage: (1 - score) * 100,
		RiskLevel:      types.RiskLow,
		Outcome:        outcome,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestAppendAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	l, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, l.Append(record(types.OutcomeAllowed, 1.0)))
	require.NoError(t, l.Append(record(types.OutcomeBlocked, 0.5)))

	// fresh handle sees both records
	l2, err := Open(path)
	require.NoError(t, err)
	recs, err := l2.Query(Filter{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestQueryFilters(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)
	require.NoError(t, l.Append(record(types.OutcomeAllowed, 1.0)))
	require.NoError(t, l.Append(record(types.OutcomeBlocked, 0.4)))
	require.NoError(t, l.Append(record(types.OutcomeBlocked, 0.3)))

	blocked, err := l.Query(Filter{Outcome: types.OutcomeBlocked})
	require.NoError(t, err)
	assert.Len(t, blocked, 2)

	limited, err := l.Query(Filter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	// newest first
	assert.InDelta(t, 0.3, limited[0].RealityScore, 1e-9)
}

func TestStats(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "audit.jsonl"))
	require.NoError(t, err)

	empty, err := l.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)

	require.NoError(t, l.Append(record(types.OutcomeAllowed, 1.0)))
	require.NoError(t, l.Append(record(types.OutcomeFixedAndAllowed, 0.9)))
	require.NoError(t, l.Append(record(types.OutcomeBlocked, 0.5)))
	require.NoError(t, l.Append(record(types.OutcomeBlocked, 0.6)))

	s, err := l.Stats()
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.InDelta(t, 0.25, s.AllowRate, 1e-9)
	assert.InDelta(t, 0.25, s.FixRate, 1e-9)
	assert.InDelta(t, 0.5, s.BlockRate, 1e-9)
	assert.InDelta(t, 0.75, s.AvgScore, 1e-9)
}

func TestConcurrentAppendsLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	l, err := Open(path)
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Append(record(types.OutcomeAllowed, 1.0))
		}()
	}
	wg.Wait()

	s, err := l.Stats()
	require.NoError(t, err)
	assert.Equal(t, n, s.Total)

	reloaded, err := Open(path)
	require.NoError(t, err)
	rs, err := reloaded.Query(Filter{})
	require.NoError(t, err)
	assert.Len(t, rs, n)
}

func TestIDsAreTimeOrdered(t *testing.T) {
	a := NewID()
	time.Sleep(2 * time.Millisecond)
	b := NewID()
	assert.Less(t, a, b)
}
