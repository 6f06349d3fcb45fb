package interop

import "fmt"

// Category is a named group of interop tests scored together.
type Category struct {
	Name  string
	Tests Set
}

type CategoryScore struct {
	Name   string
	Scores []uint64
}

// CategoryOutcome is the result of ScoreCategories.
type CategoryOutcome struct {
	Categories []CategoryScore
	// Totals[i] is the floored mean of every category's score for run i.
	Totals          []uint64
	UnexpectedNotOK []string
	// Tests holds the per-run pass counts of every scored test. A test that
	// belongs to several categories is recorded once per run.
	Tests map[string]PassCount
}

// ScoreCategories scores all runs once per category and averages the
// category scores into a total per run.
func ScoreCategories(runs []Run, categories []Category, expectedNotOK Set, opts ...Option) (*CategoryOutcome, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	o := buildOptions(opts)

	out := &CategoryOutcome{
		Categories: make([]CategoryScore, 0, len(categories)),
		Totals:     make([]uint64, len(runs)),
		Tests:      make(map[string]PassCount),
	}
	unexpected := NewSet()
	for _, c := range categories {
		scores, tally, err := scoreRuns(runs, c.Tests, expectedNotOK, o)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", c.Name, err)
		}
		out.Categories = append(out.Categories, CategoryScore{Name: c.Name, Scores: scores})
		for i, s := range scores {
			out.Totals[i] += s
		}
		unexpected.Union(tally.UnexpectedNotOK)
		for id, pc := range tally.History {
			if _, ok := out.Tests[id]; !ok {
				out.Tests[id] = *pc
			}
		}
	}
	for i := range out.Totals {
		out.Totals[i] /= uint64(len(categories))
	}
	out.UnexpectedNotOK = unexpected.Sorted()
	return out, nil
}
