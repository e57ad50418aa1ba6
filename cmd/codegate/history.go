package codegate

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/git"
	"github.com/codegate/codegate/internal/report"
	"github.com/codegate/codegate/internal/types"
)

var (
	flagHistLimit   int
	flagHistOutcome string
	flagHistLevel   string
	flagHistSince   time.Duration
	flagHistStats   bool
	flagHistAudit   string
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded gate decisions",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().IntVar(&flagHistLimit, "limit", 20, "show at most N records (0 = all)")
	cmd.Flags().StringVar(&flagHistOutcome, "outcome", "", "filter by outcome: allowed|fixed_and_allowed|blocked")
	cmd.Flags().StringVar(&flagHistLevel, "level", "", "filter by risk level: zero|minimal|low|medium|high|critical")
	cmd.Flags().DurationVar(&flagHistSince, "since", 0, "only records newer than this age (e.g. 24h)")
	cmd.Flags().BoolVar(&flagHistStats, "stats", false, "print aggregate statistics instead of records")
	cmd.Flags().StringVar(&flagHistAudit, "audit-log", "", "audit log path (default: repo-local)")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cwd, _ := os.Getwd()
	path := flagHistAudit
	if path == "" {
		root := cwd
		if r, err := git.Root(cwd); err == nil {
			root = r
		}
		path = audit.DefaultPath(root)
	}
	store, err := audit.Open(path)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}

	if flagHistStats {
		s, err := store.Stats()
		if err != nil {
			return err
		}
		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		report.PrintStats(os.Stdout, s)
		return nil
	}

	f := audit.Filter{
		Outcome: types.Outcome(flagHistOutcome),
		Level:   types.RiskLevel(flagHistLevel),
		Limit:   flagHistLimit,
	}
	if flagHistSince > 0 {
		f.Since = time.Now().Add(-flagHistSince)
	}
	recs, err := store.Query(f)
	if err != nil {
		return err
	}
	if flagJSON {
		if recs == nil {
			recs = []types.Record{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	report.PrintHistory(os.Stdout, recs, report.PrintOptions{NoColor: noColor()})
	return nil
}
