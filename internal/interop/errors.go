package interop

import "errors"

var (
	// ErrEmptyInteropSet is returned when there are no interop tests to
	// average over.
	ErrEmptyInteropSet = errors.New("interop test set is empty")

	// ErrMalformedInput marks raw results missing a required field. Adapters
	// wrap it; the scoring engine itself never returns it.
	ErrMalformedInput = errors.New("malformed test results")

	ErrNoCategories = errors.New("no categories to score")
)
