// Package greenops translates building emissions into relatable equivalencies
// (cars on the road, miles driven, home electricity, tree seedlings) using
// EPA-published conversion factors, and formats the numbers for display.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyCarYears is passenger vehicles driven for one year.
	EquivalencyCarYears EquivalencyType = iota

	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyCarYears:
		return "CarYears"
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencyHomeDays:
		return "HomeDays"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput is an emissions amount in any recognized unit.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t, lb, optionally suffixed with CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult represents a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput contains all equivalency results for display.
type EquivalencyOutput struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results holds the equivalencies in display order.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form, e.g.
	// "Equivalent to 19 cars driven for a year or 455,381 miles driven".
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated form, e.g. "(≈ 19 cars/yr, 4,767 seedlings)".
	CompactText string `json:"compact_text"`

	// IsEmpty is true when the input was below MinEquivalencyThresholdKg.
	IsEmpty bool `json:"is_empty"`
}
