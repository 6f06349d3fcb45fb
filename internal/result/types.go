package result

import "github.com/signalnine/interop-score/internal/interop"

// Summary is the stored outcome of one scoring invocation.
type Summary struct {
	Year            int                          `json:"year,omitempty"`
	Runs            []string                     `json:"runs"`
	Categories      []CategoryScores             `json:"categories"`
	Totals          []uint64                     `json:"totals"`
	UnexpectedNotOK []string                     `json:"unexpected_not_ok"`
	Tests           map[string]interop.PassCount `json:"tests,omitempty"`
	Digest          string                       `json:"digest"`
}

type CategoryScores struct {
	Name   string   `json:"name"`
	Scores []uint64 `json:"scores"`
}

// NewSummary builds a Summary from a category outcome. runs names the runs
// in the order they were scored.
func NewSummary(year int, runs []string, out *interop.CategoryOutcome) *Summary {
	s := &Summary{
		Year:            year,
		Runs:            runs,
		Categories:      make([]CategoryScores, 0, len(out.Categories)),
		Totals:          out.Totals,
		UnexpectedNotOK: out.UnexpectedNotOK,
		Tests:           out.Tests,
	}
	for _, c := range out.Categories {
		s.Categories = append(s.Categories, CategoryScores{Name: c.Name, Scores: c.Scores})
	}
	if s.UnexpectedNotOK == nil {
		s.UnexpectedNotOK = []string{}
	}
	return s
}
