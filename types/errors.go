package types

import "errors"

var (
	// ErrDataUnavailable means the table is missing, empty or unreadable.
	// Nothing downstream may run.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrDegenerateTraining means the classifier saw fewer than two classes.
	ErrDegenerateTraining = errors.New("degenerate training data")

	// ErrMalformedCell marks a cell that could not be coerced to its column
	// type. Scorers recover from it with a neutral score.
	ErrMalformedCell = errors.New("malformed cell")
)
