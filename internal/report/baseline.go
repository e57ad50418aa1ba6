package report

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/codegate/codegate/internal/engine"
	"github.com/codegate/codegate/internal/score"
	"github.com/codegate/codegate/internal/types"
)

// Baseline records accepted findings so existing debt does not fail
// every future run.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

const BaselinePath = "codegate.baseline.json"

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	return b, nil
}

func SaveBaseline(path string, r *engine.TreeReport) error {
	b := Baseline{Items: map[string]bool{}}
	for _, file := range r.Files {
		for _, f := range file.Findings {
			b.Items[key(file.Path, f)] = true
		}
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterBaseline drops baselined findings from every file and rescores
// the report from the remaining counts.
func FilterBaseline(r *engine.TreeReport, base Baseline) {
	if len(base.Items) == 0 {
		return
	}
	var total types.SeverityCounts
	totalFindings := 0
	for i, file := range r.Files {
		var kept []types.Finding
		for _, f := range file.Findings {
			if !base.Items[key(file.Path, f)] {
				kept = append(kept, f)
			}
		}
		r.Files[i].Findings = kept
		r.Files[i].Score = score.Score(kept)
		total.Add(r.Files[i].Score.Counts)
		totalFindings += len(kept)
	}
	r.TotalFindings = totalFindings
	r.Overall = score.FromCounts(total)
	r.Risk = score.Risk(nil, r.Overall)
}

func key(path string, f types.Finding) string {
	return path + "|" + f.Pattern + "|" + strconv.Itoa(f.Line)
}

// FailsGrade reports whether the overall grade is worse than minGrade.
// Grades order A best to F worst; an unknown minGrade never fails.
func FailsGrade(overall types.Grade, minGrade string) bool {
	order := map[types.Grade]int{
		types.GradeA: 5, types.GradeB: 4, types.GradeC: 3,
		types.GradeD: 2, types.GradeF: 1,
	}
	min, ok := order[types.Grade(minGrade)]
	if !ok {
		return false
	}
	return order[overall] < min
}
