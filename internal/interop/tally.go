package interop

// PassCount is the per-run history of a single test. Entry i of Passes and
// Totals belongs to the i-th run in which the test was scored; Runs[i] is
// that run's index in the scored slice. Runs is only filled when runs are
// scored together (ScoreRuns, ScoreCategories), since a single ScoreRun
// cannot know its position.
type PassCount struct {
	Passes []uint32 `json:"passes"`
	Totals []uint32 `json:"totals"`
	Runs   []int    `json:"runs,omitempty"`
}

// Tally collects the side results of scoring. Each run produces its own
// Tally; callers combine them with Merge in run order.
type Tally struct {
	UnexpectedNotOK Set
	History         map[string]*PassCount
}

func NewTally() *Tally {
	return &Tally{
		UnexpectedNotOK: NewSet(),
		History:         make(map[string]*PassCount),
	}
}

func (t *Tally) record(testID string, passes, total uint32) {
	pc, ok := t.History[testID]
	if !ok {
		pc = &PassCount{}
		t.History[testID] = pc
	}
	pc.Passes = append(pc.Passes, passes)
	pc.Totals = append(pc.Totals, total)
}

// tagRun marks every history entry not yet attributed to a run as coming
// from run.
func (t *Tally) tagRun(run int) {
	for _, pc := range t.History {
		for len(pc.Runs) < len(pc.Passes) {
			pc.Runs = append(pc.Runs, run)
		}
	}
}

// Merge folds other into t. History entries from other are appended after
// the ones already in t.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	t.UnexpectedNotOK.Union(other.UnexpectedNotOK)
	for id, pc := range other.History {
		dst, ok := t.History[id]
		if !ok {
			dst = &PassCount{}
			t.History[id] = dst
		}
		dst.Passes = append(dst.Passes, pc.Passes...)
		dst.Totals = append(dst.Totals, pc.Totals...)
		dst.Runs = append(dst.Runs, pc.Runs...)
	}
}
