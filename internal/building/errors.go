package building

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Validation errors returned by NewProfile and the enum parsers.
// They can be compared with errors.Is().
var (
	// ErrInvalidInput indicates a numeric field outside its allowed range.
	ErrInvalidInput = constError("invalid building input")

	// ErrUnknownCategory indicates an unrecognized building category.
	ErrUnknownCategory = constError("unknown building category")

	// ErrUnknownHVAC indicates an unrecognized HVAC system type.
	ErrUnknownHVAC = constError("unknown hvac type")

	// ErrUnknownInsulation indicates an unrecognized insulation rating.
	ErrUnknownInsulation = constError("unknown insulation rating")

	// ErrUnknownClimate indicates an unrecognized climate zone.
	ErrUnknownClimate = constError("unknown climate zone")
)
