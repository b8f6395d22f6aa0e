package greenops

import (
	"fmt"
	"math"
)

// equivalencyDef pairs a type with its EPA factor and label.
type equivalencyDef struct {
	kind   EquivalencyType
	factor float64
	label  string
}

//nolint:gochecknoglobals // Constant lookup table, in display order.
var equivalencyDefs = []equivalencyDef{
	{kind: EquivalencyCarYears, factor: EPACarYearFactor, label: "cars driven for a year"},
	{kind: EquivalencyMilesDriven, factor: EPAMilesDrivenFactor, label: "miles driven"},
	{kind: EquivalencyHomeDays, factor: EPAHomeDayFactor, label: "days of home electricity"},
	{kind: EquivalencyTreeSeedlings, factor: EPATreeSeedlingFactor, label: "tree seedlings grown for 10 years"},
}

// Calculate normalizes input to kilograms and computes every equivalency.
//
// Inputs below MinEquivalencyThresholdKg return an empty output with InputKg
// set and no error. Invalid units or negative values return the
// normalization error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	if !IsRecognizedUnit(input.Unit) {
		return EquivalencyOutput{IsEmpty: true}, ErrInvalidUnit
	}
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(equivalencyDefs))
	for _, def := range equivalencyDefs {
		v := kg / def.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           def.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          def.label,
		})
	}

	cars, miles, seedlings := results[0], results[1], results[3]
	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to %s %s or %s %s",
			cars.FormattedValue, cars.Label, miles.FormattedValue, miles.Label),
		CompactText: fmt.Sprintf("(≈ %s cars/yr, %s seedlings)",
			cars.FormattedValue, seedlings.FormattedValue),
	}, nil
}

// CalculateTons is Calculate for an amount in metric tons.
func CalculateTons(tons float64) (EquivalencyOutput, error) {
	return Calculate(CarbonInput{Value: tons, Unit: "t"})
}

// CarYears returns how many passenger vehicles driven for a year emit tons.
func CarYears(tons float64) float64 {
	return tons * TonsToKg / EPACarYearFactor
}

// formatEquivalencyValue scales large values to "~X.X million" and rounds
// the rest. Values under 10 keep one decimal so small car counts stay visible.
func formatEquivalencyValue(v float64) string {
	const oneDecimalBelow = 10
	switch {
	case v >= LargeNumberThreshold:
		return FormatLarge(v)
	case v < oneDecimalBelow:
		return FormatFloat(v, 1)
	default:
		return FormatNumber(int64(math.Round(v)))
	}
}
