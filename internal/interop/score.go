package interop

import (
	"sort"

	"github.com/signalnine/interop-score/internal/runner"
)

// maxTestScore is the contribution of a test that fully passes.
const maxTestScore = 1000

type options struct {
	observer    Observer
	parallelism int
}

type Option func(*options)

// WithObserver sets the receiver of per-test trace records.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithParallelism scores up to n runs concurrently. Scores and the merged
// tally are the same as for sequential scoring.
func WithParallelism(n int) Option {
	return func(opts *options) {
		opts.parallelism = n
	}
}

func buildOptions(opts []Option) *options {
	o := &options{observer: NopObserver{}, parallelism: 1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Scorer scores individual runs against a fixed pair of test sets.
type Scorer struct {
	interopTests  Set
	expectedNotOK Set
	observer      Observer
}

func NewScorer(interopTests, expectedNotOK Set, observer Observer) (*Scorer, error) {
	if len(interopTests) == 0 {
		return nil, ErrEmptyInteropSet
	}
	if expectedNotOK == nil {
		expectedNotOK = NewSet()
	}
	if observer == nil {
		observer = NopObserver{}
	}
	return &Scorer{
		interopTests:  interopTests,
		expectedNotOK: expectedNotOK,
		observer:      observer,
	}, nil
}

// ScoreRun returns the run's score on a 0-1000 scale together with the
// run's tally. Interop tests missing from the run count as zero while still
// counting towards the denominator.
func (s *Scorer) ScoreRun(run Run) (uint64, *Tally) {
	tally := NewTally()

	ids := make([]string, 0, len(run))
	for id := range run {
		if s.interopTests.Has(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var sum uint64
	for _, id := range ids {
		res := run[id]
		var passes, total uint32
		if len(res.Subtests) > 0 {
			// Only tests with subtests take part in unexpected-status tracking.
			if res.Status != OK && !s.expectedNotOK.Has(id) {
				tally.UnexpectedNotOK.Add(id)
			}
			for _, st := range res.Subtests {
				if st.Status == Pass {
					passes++
				}
			}
			total = uint32(len(res.Subtests))
		} else {
			total = 1
			if res.Status == Pass {
				passes = 1
			}
		}
		s.observer.Observe(Trace{TestID: id, Status: res.Status, Passes: passes, Total: total})
		tally.record(id, passes, total)
		sum += maxTestScore * uint64(passes) / uint64(total)
	}
	return sum / uint64(len(s.interopTests)), tally
}

// Outcome is the result of ScoreRuns.
type Outcome struct {
	// Scores has one entry per input run, in input order.
	Scores []uint64
	// UnexpectedNotOK lists, sorted, every test with subtests whose overall
	// status was not OK in some run and which was not expected to be.
	UnexpectedNotOK []string
}

// ScoreRuns scores every run against interopTests. It fails with
// ErrEmptyInteropSet, producing nothing, if interopTests is empty.
func ScoreRuns(runs []Run, interopTests, expectedNotOK Set, opts ...Option) (*Outcome, error) {
	scores, tally, err := scoreRuns(runs, interopTests, expectedNotOK, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Scores:          scores,
		UnexpectedNotOK: tally.UnexpectedNotOK.Sorted(),
	}, nil
}

func scoreRuns(runs []Run, interopTests, expectedNotOK Set, o *options) ([]uint64, *Tally, error) {
	scorer, err := NewScorer(interopTests, expectedNotOK, o.observer)
	if err != nil {
		return nil, nil, err
	}

	scores := make([]uint64, len(runs))
	tallies := make([]*Tally, len(runs))
	if o.parallelism > 1 && len(runs) > 1 {
		jobs := make([]runner.Job, len(runs))
		for i, run := range runs {
			jobs[i] = func() error {
				scores[i], tallies[i] = scorer.ScoreRun(run)
				return nil
			}
		}
		runner.RunPool(o.parallelism, jobs)
	} else {
		for i, run := range runs {
			scores[i], tallies[i] = scorer.ScoreRun(run)
		}
	}

	merged := NewTally()
	for i, t := range tallies {
		t.tagRun(i)
		merged.Merge(t)
	}
	return scores, merged, nil
}
