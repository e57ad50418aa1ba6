package codegate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/audit"
	"github.com/codegate/codegate/internal/config"
	"github.com/codegate/codegate/internal/gate"
	"github.com/codegate/codegate/internal/git"
	"github.com/codegate/codegate/internal/report"
	"github.com/codegate/codegate/internal/types"
)

var (
	flagCheckStaged   bool
	flagCheckPrevious string
	flagCheckTimeout  time.Duration
	flagCheckNoFix    bool
	flagCheckWrite    bool
	flagCheckAudit    string
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Gate proposed changes before they land",
		Long:  "check runs each input through the enforcement gate: scan, score, attempt auto-fix, then allow or block. With no arguments it reads a proposal from stdin. Exits 1 when anything is blocked.",
		RunE:  runCheck,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagCheckStaged, "staged", false, "check files staged in git instead of arguments")
	cmd.Flags().StringVar(&flagCheckPrevious, "previous", "", "path to the previous version (single file input only)")
	cmd.Flags().DurationVar(&flagCheckTimeout, "timeout", 0, "per-evaluation budget (default 5s)")
	cmd.Flags().BoolVar(&flagCheckNoFix, "no-fix", false, "never auto-correct; judge findings as-is")
	cmd.Flags().BoolVar(&flagCheckWrite, "write", false, "write auto-fixed text back to the file")
	cmd.Flags().StringVar(&flagCheckAudit, "audit-log", "", "audit log path (default: repo-local)")
}

type checkResult struct {
	Identifier string        `json:"identifier"`
	Decision   gate.Decision `json:"decision"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cwd, _ := os.Getwd()
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(cwd); err == nil {
		lcfg = c
	}

	g, err := buildGate(cwd, lcfg, gcfg)
	if err != nil {
		return err
	}

	var proposals []gate.Proposal
	switch {
	case flagCheckStaged:
		root, err := git.Root(cwd)
		if err != nil {
			return err
		}
		staged, err := git.Staged(root)
		if err != nil {
			return err
		}
		for _, sf := range staged {
			proposals = append(proposals, gate.Proposal{
				Identifier:   sf.Path,
				ProposedText: string(sf.Proposed),
				PreviousText: string(sf.Previous),
			})
		}
	case len(args) == 0:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		proposals = append(proposals, gate.Proposal{
			Identifier:   "stdin",
			ProposedText: string(b),
			PreviousText: readPrevious(),
		})
	default:
		if flagCheckPrevious != "" && len(args) > 1 {
			return fmt.Errorf("--previous only applies to a single file input")
		}
		for _, p := range args {
			b, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			proposals = append(proposals, gate.Proposal{
				Identifier:   filepath.ToSlash(p),
				ProposedText: string(b),
				PreviousText: readPrevious(),
			})
		}
	}

	if len(proposals) == 0 {
		if !flagJSON {
			fmt.Println("Nothing to check.")
		}
		return nil
	}

	blocked := false
	var results []checkResult
	for _, p := range proposals {
		d, err := g.Evaluate(context.Background(), p)
		if err != nil {
			return err
		}
		if d.Outcome == types.OutcomeBlocked {
			blocked = true
		}
		if flagCheckWrite && d.Outcome == types.OutcomeFixedAndAllowed && !flagCheckStaged && p.Identifier != "stdin" {
			if err := os.WriteFile(filepath.FromSlash(p.Identifier), []byte(d.FinalText), 0644); err != nil {
				return fmt.Errorf("write fixed text: %w", err)
			}
		}
		if flagJSON {
			results = append(results, checkResult{Identifier: p.Identifier, Decision: d})
		} else {
			nc := noColor() || pickBool(false, lcfg.NoColor, gcfg.NoColor)
			report.PrintDecision(os.Stdout, p.Identifier, d, report.PrintOptions{NoColor: nc})
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	}
	if blocked {
		os.Exit(1)
	}
	return nil
}

// buildGate assembles the gate from flags and config, CLI > local > global.
func buildGate(root string, lcfg, gcfg config.FileConfig) (*gate.Gate, error) {
	lg, gg := lcfg.GetGate(), gcfg.GetGate()

	auditPath := pickString(flagCheckAudit, strPtr(lg.AuditLogPath()), strPtr(gg.AuditLogPath()))
	if auditPath == "" {
		auditPath = audit.DefaultPath(root)
	}
	store, err := audit.Open(auditPath)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	var opts []gate.Option
	timeout := flagCheckTimeout
	if timeout == 0 {
		if s := pickString("", strPtr(lg.GateTimeout()), strPtr(gg.GateTimeout())); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				timeout = d
			}
		}
	}
	if timeout > 0 {
		opts = append(opts, gate.WithTimeout(timeout))
	}
	if flagCheckNoFix || lg.FixDisabled() || gg.FixDisabled() {
		opts = append(opts, gate.WithoutFix())
	}

	return gate.New(buildScanner(lcfg, gcfg), store, opts...), nil
}

func readPrevious() string {
	if flagCheckPrevious == "" {
		return ""
	}
	b, err := os.ReadFile(flagCheckPrevious)
	if err != nil {
		return ""
	}
	return string(b)
}
