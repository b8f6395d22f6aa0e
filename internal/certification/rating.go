package certification

import "fmt"

// Rating is an ordinal performance label derived from earned credits.
type Rating int

const (
	RatingBelowBaseline Rating = iota
	RatingSlightlyAboveBaseline
	RatingAboveAverage
	RatingHighPerformance
	RatingExceptional
)

// Credit floors for each rating.
const (
	exceptionalCredits     = 13
	highPerformanceCredits = 7
	aboveAverageCredits    = 3
	slightlyAboveCredits   = 1
)

//nolint:gochecknoglobals // Constant lookup table.
var ratingNames = map[Rating]string{
	RatingBelowBaseline:         "Below Baseline",
	RatingSlightlyAboveBaseline: "Slightly Above Baseline",
	RatingAboveAverage:          "Above Average",
	RatingHighPerformance:       "High Performance",
	RatingExceptional:           "Exceptional",
}

// Classify maps earned credits to a Rating. It is monotonic non-decreasing
// in credits.
func Classify(credits int) Rating {
	switch {
	case credits >= exceptionalCredits:
		return RatingExceptional
	case credits >= highPerformanceCredits:
		return RatingHighPerformance
	case credits >= aboveAverageCredits:
		return RatingAboveAverage
	case credits >= slightlyAboveCredits:
		return RatingSlightlyAboveBaseline
	default:
		return RatingBelowBaseline
	}
}

func (r Rating) String() string {
	if name, ok := ratingNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
