package certification

import (
	"fmt"
	"math"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// BenchmarkStatus places an emissions intensity within its category range.
type BenchmarkStatus int

const (
	BenchmarkExcellent BenchmarkStatus = iota
	BenchmarkTypical
	BenchmarkHigh
)

func (s BenchmarkStatus) String() string {
	switch s {
	case BenchmarkExcellent:
		return "excellent"
	case BenchmarkTypical:
		return "typical"
	case BenchmarkHigh:
		return "high"
	default:
		return fmt.Sprintf("BenchmarkStatus(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s BenchmarkStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// intensityRange is the typical kg CO2/sqft/yr band for a category.
type intensityRange struct {
	min, max float64
}

//nolint:gochecknoglobals // Constant lookup table.
var intensityRanges = map[building.Category]intensityRange{
	building.CategoryOffice:      {min: 3, max: 8},
	building.CategoryRetail:      {min: 3, max: 7},
	building.CategoryHealthcare:  {min: 10, max: 20},
	building.CategoryEducational: {min: 4, max: 9},
	building.CategoryWarehouse:   {min: 1.5, max: 4},
	building.CategoryMultiFamily: {min: 3, max: 6},
	building.CategoryHotel:       {min: 5, max: 11},
}

// BenchmarkResult compares a building's intensity with its category band.
type BenchmarkResult struct {
	IntensityKgPerSqft float64         `json:"intensity_kg_per_sqft"`
	TypicalMin         float64         `json:"typical_min"`
	TypicalMax         float64         `json:"typical_max"`
	Status             BenchmarkStatus `json:"status"`
}

// Intensity returns emissions intensity in kg CO2 per sqft per year.
func Intensity(tons, areaSqft float64) (float64, error) {
	if math.IsNaN(areaSqft) || areaSqft <= 0 {
		return 0, fmt.Errorf("%w: floor area must be > 0, got %v", building.ErrInvalidInput, areaSqft)
	}
	return tons * kgPerTon / areaSqft, nil
}

// Benchmark classifies intensityKgPerSqft for category c: below the band is
// excellent, inside it (inclusive) is typical, above it is high.
func Benchmark(c building.Category, intensityKgPerSqft float64) (BenchmarkResult, error) {
	r, ok := intensityRanges[c]
	if !ok {
		return BenchmarkResult{}, fmt.Errorf("%w: %s", building.ErrUnknownCategory, c)
	}
	status := BenchmarkHigh
	switch {
	case intensityKgPerSqft < r.min:
		status = BenchmarkExcellent
	case intensityKgPerSqft <= r.max:
		status = BenchmarkTypical
	}
	return BenchmarkResult{
		IntensityKgPerSqft: intensityKgPerSqft,
		TypicalMin:         r.min,
		TypicalMax:         r.max,
		Status:             status,
	}, nil
}
