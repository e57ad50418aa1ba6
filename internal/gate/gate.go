// Package gate decides whether a proposed change may be applied, can be
// auto-corrected, or must be blocked.
//
// The one invariant that matters: on any internal failure the gate lands
// on blocked, never allowed. Every terminal decision is durably recorded
// before it is returned.
package gate

import (
	"context"
	"fmt"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/fix"
	"github.com/codegate/codegate/internal/scan"
	"github.com/codegate/codegate/internal/score"
	"github.com/codegate/codegate/internal/types"
)

// DefaultTimeout bounds one gate invocation end to end.
const DefaultTimeout = 5 * time.Second

const appendRetries = 3

// Proposal is one candidate change submitted for enforcement.
type Proposal struct {
	Identifier   string
	ProposedText string
	PreviousText string // optional; used only for regression flagging
}

// Decision is the gate's structured answer. FinalText differs from the
// proposed text only for fixed_and_allowed outcomes.
type Decision struct {
	Outcome      types.Outcome      `json:"outcome"`
	FinalText    string             `json:"final_text"`
	RealityScore types.RealityScore `json:"reality_score"`
	Risk         types.BreakageRisk `json:"risk"`
	Findings     []types.Finding    `json:"findings"`
	FixedCount   int                `json:"fixed_count"`
	RecordID     string             `json:"record_id"`
}

// Scanner is the slice of the pattern scanner the gate depends on.
type Scanner interface {
	Scan(data []byte) scan.Result
}

// Gate runs the scan -> risk -> fix -> rescan decision procedure.
type Gate struct {
	scanner Scanner
	store   audit.Store
	timeout time.Duration
	noFix   bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithTimeout overrides the overall wall-clock budget.
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithoutFix disables auto-correction; fixable findings are then judged
// as-is.
func WithoutFix() Option {
	return func(g *Gate) {
		g.noFix = true
	}
}

// New builds a Gate. The store must not be nil: a gate without an audit
// trail has no business allowing anything.
func New(scanner Scanner, store audit.Store, opts ...Option) *Gate {
	g := &Gate{scanner: scanner, store: store, timeout: DefaultTimeout}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Evaluate decides one proposal. The returned error is non-nil only when
// the decision could not be durably recorded; in every other failure mode
// the gate returns a blocked decision.
func (g *Gate) Evaluate(ctx context.Context, p Proposal) (Decision, error) {
	started := time.Now()
	recordID := audit.NewID()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	d := g.decideBounded(ctx, recordID, p)
	d.RecordID = recordID

	rec := types.Record{
		ID:             recordID,
		Identifier:     p.Identifier,
		InputDigest:    digest(p.ProposedText),
		RealityScore:   d.RealityScore.Value,
		RiskPercentage: d.Risk.Percentage,
		RiskLevel:      d.Risk.Level,
		FindingsCount:  len(d.Findings),
		FindingsFixed:  d.FixedCount,
		Outcome:        d.Outcome,
		DurationMs:     float64(time.Since(started).Microseconds()) / 1000.0,
		CreatedAt:      started.UTC(),
	}
	if err := g.appendWithRetry(rec); err != nil {
		// No decision without a durable record.
		log.Error().Err(err).Str("record_id", recordID).Msg("audit append failed; surfacing hard failure")
		return Decision{}, fmt.Errorf("record enforcement decision %s: %w", recordID, err)
	}

	log.Info().
		Str("record_id", recordID).
		Str("identifier", p.Identifier).
		Str("outcome", string(d.Outcome)).
		Float64("reality_score", d.RealityScore.Value).
		Float64("risk_pct", d.Risk.Percentage).
		Msg("enforcement decision")
	return d, nil
}

// decideBounded runs the decision procedure under the gate deadline,
// converting timeouts and panics into blocked.
func (g *Gate) decideBounded(ctx context.Context, recordID string, p Proposal) Decision {
	done := make(chan Decision, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("record_id", recordID).Interface("panic", r).
					Msg("gate internal failure; failing safe to blocked")
				done <- Decision{Outcome: types.OutcomeBlocked, FinalText: p.ProposedText}
			}
		}()
		done <- g.decide(p)
	}()
	select {
	case d := <-done:
		return d
	case <-ctx.Done():
		log.Error().Str("record_id", recordID).Err(ctx.Err()).
			Msg("gate deadline exceeded; failing safe to blocked")
		return Decision{Outcome: types.OutcomeBlocked, FinalText: p.ProposedText}
	}
}

func (g *Gate) decide(p Proposal) Decision {
	res := g.scanner.Scan([]byte(p.ProposedText))
	if res.DecodeError {
		// Text the scanner cannot assess is never waved through.
		return Decision{Outcome: types.OutcomeBlocked, FinalText: p.ProposedText}
	}

	var prev *types.RealityScore
	if p.PreviousText != "" {
		if prevRes := g.scanner.Scan([]byte(p.PreviousText)); !prevRes.DecodeError {
			s := score.Score(prevRes.Findings)
			prev = &s
		}
	}

	sc := score.Score(res.Findings)
	risk := score.Risk(prev, sc)
	d := Decision{
		Outcome:      types.OutcomeBlocked,
		FinalText:    p.ProposedText,
		RealityScore: sc,
		Risk:         risk,
		Findings:     res.Findings,
	}

	if risk.Level == types.RiskZero || risk.Level == types.RiskMinimal {
		d.Outcome = types.OutcomeAllowed
		return d
	}

	// Any unfixable critical or high finding disqualifies outright.
	anyFixable := false
	for _, f := range res.Findings {
		fixable := fix.Fixable(f.Pattern)
		if fixable {
			anyFixable = true
		}
		if !fixable && (f.Severity == types.SevCritical || f.Severity == types.SevHigh) {
			return d
		}
	}

	if anyFixable && !g.noFix {
		fixed := fix.Apply(p.ProposedText, res.Findings)
		rescanned := g.scanner.Scan([]byte(fixed.Text))
		sc2 := score.Score(rescanned.Findings)
		risk2 := score.Risk(prev, sc2)
		d.RealityScore = sc2
		d.Risk = risk2
		d.Findings = rescanned.Findings
		d.FixedCount = len(fixed.Fixed)
		if acceptable(risk2, sc2.Counts) {
			if fixed.Changed() {
				d.Outcome = types.OutcomeFixedAndAllowed
				d.FinalText = fixed.Text
			} else {
				d.Outcome = types.OutcomeAllowed
			}
		}
		return d
	}

	// Nothing to fix: accumulated medium/low findings decide.
	if acceptable(risk, sc.Counts) {
		d.Outcome = types.OutcomeAllowed
	}
	return d
}

// acceptable is the allow band: zero/minimal risk, or low risk carrying no
// critical or high findings. Medium and above always block.
func acceptable(r types.BreakageRisk, c types.SeverityCounts) bool {
	switch r.Level {
	case types.RiskZero, types.RiskMinimal:
		return true
	case types.RiskLow:
		return c.Critical == 0 && c.High == 0
	}
	return false
}

func (g *Gate) appendWithRetry(rec types.Record) error {
	var err error
	for attempt := 1; attempt <= appendRetries; attempt++ {
		if err = g.store.Append(rec); err == nil {
			return nil
		}
		log.Warn().Err(err).Str("record_id", rec.ID).Int("attempt", attempt).
			Msg("audit append failed; retrying")
		time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
	}
	return err
}

// digest fingerprints the submitted text for dedupe and audit. Only the
// hash is stored, never the text itself.
func digest(text string) string {
	sum := xxhash.Sum64String(text)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
