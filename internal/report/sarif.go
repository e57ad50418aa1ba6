package report

import (
	"encoding/json"
	"io"

	"github.com/codegate/codegate/internal/engine"
	"github.com/codegate/codegate/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes a tree report as SARIF 2.1.0 for CI code-scanning
// upload.
func WriteSARIF(w io.Writer, r *engine.TreeReport, version string) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "codegate", Version: version}},
		Results: []sarifResult{},
	}
	for _, file := range r.Files {
		for _, f := range file.Findings {
			run.Results = append(run.Results, sarifResult{
				RuleID:  f.Pattern,
				Level:   sevToLevel(f.Severity),
				Message: sarifMessage{Text: f.Pattern + ": " + f.Snippet},
				Locations: []sarifLoc{{
					PhysicalLocation: sarifPhys{
						ArtifactLocation: sarifArt{URI: file.Path},
						Region:           sarifRegion{StartLine: f.Line, StartColumn: f.Column},
					},
				}},
			})
		}
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
