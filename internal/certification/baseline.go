package certification

import (
	"fmt"
	"math"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// EmissionFactorKgPerKBtu is the blended grid factor (60% electric, 40% gas).
const EmissionFactorKgPerKBtu = 0.145

// kgPerTon converts kilograms to metric tons.
const kgPerTon = 1000.0

// Baseline energy use intensity in kBtu/sqft/yr (ASHRAE 90.1-2016).
//
//nolint:gochecknoglobals // Constant lookup table.
var baselineEUI = map[building.Category]float64{
	building.CategoryOffice:      58,
	building.CategoryRetail:      52,
	building.CategoryHealthcare:  215,
	building.CategoryEducational: 70,
	building.CategoryWarehouse:   32,
	building.CategoryMultiFamily: 46,
	building.CategoryHotel:       88,
}

// BaselineEUI returns the ASHRAE reference intensity for c.
func BaselineEUI(c building.Category) (float64, error) {
	eui, ok := baselineEUI[c]
	if !ok {
		return 0, fmt.Errorf("%w: %s", building.ErrUnknownCategory, c)
	}
	return eui, nil
}

// EstimateBaseline returns the ASHRAE 90.1 reference emissions in tons
// CO2/yr for a building of the given area and category.
//
// The result is strictly positive and strictly increasing in area.
func EstimateBaseline(areaSqft float64, c building.Category) (float64, error) {
	if math.IsNaN(areaSqft) || math.IsInf(areaSqft, 0) || areaSqft <= 0 {
		return 0, fmt.Errorf("%w: floor area must be > 0, got %v", building.ErrInvalidInput, areaSqft)
	}
	eui, err := BaselineEUI(c)
	if err != nil {
		return 0, err
	}
	return areaSqft * eui * EmissionFactorKgPerKBtu / kgPerTon, nil
}

// checkCategoryTable verifies that table has an entry for every category.
func checkCategoryTable[V any](name string, table map[building.Category]V) error {
	for _, c := range building.AllCategories() {
		if _, ok := table[c]; !ok {
			return fmt.Errorf("%w: %s has no entry for %s", ErrIncompleteTable, name, c)
		}
	}
	return nil
}
