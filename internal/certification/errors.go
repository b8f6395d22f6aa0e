package certification

import "errors"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Errors returned by the scoring pipeline. They can be compared with errors.Is().
var (
	// ErrDegenerateBaseline indicates a baseline <= 0, which makes the
	// improvement percentage undefined.
	ErrDegenerateBaseline = constError("degenerate baseline")

	// ErrInvalidTierTable indicates a tier ladder that is empty or not
	// strictly increasing.
	ErrInvalidTierTable = constError("invalid tier table")

	// ErrNotApplicable indicates an improvement with no financial model.
	// Callers treat it as "no ROI available", not as a failure.
	ErrNotApplicable = constError("roi not applicable")

	// ErrZeroInvestment indicates an improvement whose initial cost is zero,
	// which leaves ROI undefined.
	ErrZeroInvestment = constError("zero initial investment")

	// ErrIncompleteTable indicates a lookup table missing an enum member.
	ErrIncompleteTable = constError("incomplete lookup table")
)

// IsNotApplicable reports whether err marks an ROI as not applicable.
func IsNotApplicable(err error) bool {
	return errors.Is(err, ErrNotApplicable)
}
