package codegate

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/codegate/codegate/internal/report"
	"github.com/codegate/codegate/internal/rules"
	"github.com/codegate/codegate/internal/types"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in fabrication patterns",
		RunE: func(_ *cobra.Command, _ []string) error {
			lib := rules.Default()
			if flagJSON {
				type ruleInfo struct {
					Name        string         `json:"name"`
					Severity    types.Severity `json:"severity"`
					Fixable     bool           `json:"fixable"`
					Description string         `json:"description"`
				}
				var out []ruleInfo
				for _, r := range lib.Rules() {
					out = append(out, ruleInfo{r.Name, r.Severity, r.Fixable, r.Description})
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			report.PrintRules(os.Stdout, lib, report.PrintOptions{NoColor: noColor()})
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
