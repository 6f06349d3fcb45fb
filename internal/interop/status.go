package interop

// Status is the outcome of a test or subtest. Anything that isn't an exact
// "PASS" or "OK" collapses to Other and is scored as a failure.
type Status int

const (
	Other Status = iota
	Pass
	OK
)

// ParseStatus never fails; unrecognized strings map to Other.
func ParseStatus(s string) Status {
	switch s {
	case "PASS":
		return Pass
	case "OK":
		return OK
	default:
		return Other
	}
}

func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case OK:
		return "OK"
	default:
		return "OTHER"
	}
}

type SubtestResult struct {
	ID     string
	Status Status
}

// Results holds the outcome of one named test. When Subtests is non-empty the
// test is scored by subtest pass ratio and Status only decides whether the
// test is reported as unexpectedly not OK.
type Results struct {
	Status   Status
	Subtests []SubtestResult
}

// Run maps test identifiers to their results for a single execution of the suite.
type Run map[string]Results
