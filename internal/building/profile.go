// Package building defines the immutable per-assessment description of a
// building and the closed enumerations used to key every lookup table.
//
// A Profile is validated once, by NewProfile. Downstream packages assume the
// ranges documented here and do not re-check them.
package building

import (
	"fmt"
	"math"
)

// Range limits for profile fields.
const (
	MinPercent = 0.0
	MaxPercent = 100.0

	MinFloors = 1
	MaxFloors = 60

	MaxAgeYears  = 120.0
	MaxOccupancy = 10000

	MaxWindowWallRatio = 0.5
)

// Profile describes a building for a single assessment. It is passed by value
// and never mutated after NewProfile returns it.
type Profile struct {
	// Name is an optional display label.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// FloorAreaSqft is the gross floor area in square feet. Must be > 0.
	FloorAreaSqft float64 `json:"floor_area_sqft" yaml:"floor_area_sqft"`

	Category   Category   `json:"building_type"     yaml:"building_type"`
	HVAC       HVACType   `json:"hvac_type"         yaml:"hvac_type"`
	Insulation Insulation `json:"insulation_rating" yaml:"insulation_rating"`

	// RenewablePct is the share of on-site renewable energy, 0-100.
	RenewablePct float64 `json:"renewable_pct" yaml:"renewable_pct"`

	// LEDPct is the share of LED lighting, 0-100.
	LEDPct float64 `json:"led_lighting_pct" yaml:"led_lighting_pct"`

	// The fields below only feed the emissions predictor.
	Floors          int         `json:"num_floors,omitempty"         yaml:"num_floors,omitempty"`
	AgeYears        float64     `json:"building_age_years,omitempty" yaml:"building_age_years,omitempty"`
	Occupancy       int         `json:"occupancy_count,omitempty"    yaml:"occupancy_count,omitempty"`
	Climate         ClimateZone `json:"climate_zone"                 yaml:"climate_zone"`
	WindowWallRatio float64     `json:"window_wall_ratio,omitempty"  yaml:"window_wall_ratio,omitempty"`
}

// Features is the subset of a Profile the recommendation rules inspect.
type Features struct {
	RenewablePct float64
	HVAC         HVACType
	Insulation   Insulation
	LEDPct       float64
}

// NewProfile validates p and returns the normalized copy. An unset Floors
// value defaults to MinFloors. Every failure wraps one of the package
// sentinel errors.
func NewProfile(p Profile) (Profile, error) {
	if p.Floors == 0 {
		p.Floors = MinFloors
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks every field of p against its documented range.
func (p Profile) Validate() error {
	if !isFinite(p.FloorAreaSqft) || p.FloorAreaSqft <= 0 {
		return fmt.Errorf("%w: floor area must be > 0, got %v", ErrInvalidInput, p.FloorAreaSqft)
	}
	if !p.Category.Valid() {
		return enumError(ErrUnknownCategory, "building_type", int(p.Category))
	}
	if !p.HVAC.Valid() {
		return enumError(ErrUnknownHVAC, "hvac_type", int(p.HVAC))
	}
	if !p.Insulation.Valid() {
		return enumError(ErrUnknownInsulation, "insulation_rating", int(p.Insulation))
	}
	if !p.Climate.Valid() {
		return enumError(ErrUnknownClimate, "climate_zone", int(p.Climate))
	}
	if err := checkRange("renewable percentage", p.RenewablePct, MinPercent, MaxPercent); err != nil {
		return err
	}
	if err := checkRange("led lighting percentage", p.LEDPct, MinPercent, MaxPercent); err != nil {
		return err
	}
	if p.Floors < MinFloors || p.Floors > MaxFloors {
		return fmt.Errorf("%w: floors must be between %d and %d, got %d",
			ErrInvalidInput, MinFloors, MaxFloors, p.Floors)
	}
	if err := checkRange("building age", p.AgeYears, 0, MaxAgeYears); err != nil {
		return err
	}
	if p.Occupancy < 0 || p.Occupancy > MaxOccupancy {
		return fmt.Errorf("%w: occupancy must be between 0 and %d, got %d",
			ErrInvalidInput, MaxOccupancy, p.Occupancy)
	}
	return checkRange("window to wall ratio", p.WindowWallRatio, 0, MaxWindowWallRatio)
}

// Features returns the recommendation inputs of p.
func (p Profile) Features() Features {
	return Features{
		RenewablePct: p.RenewablePct,
		HVAC:         p.HVAC,
		Insulation:   p.Insulation,
		LEDPct:       p.LEDPct,
	}
}

// DisplayName returns Name, or a label derived from category and area.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s %.0f sqft", p.Category, p.FloorAreaSqft)
}

// enumError reports an unset (zero) or out-of-range enum field.
func enumError(sentinel error, field string, v int) error {
	if v == 0 {
		return fmt.Errorf("%w: %s is required", sentinel, field)
	}
	return fmt.Errorf("%w: %s %d", sentinel, field, v)
}

func checkRange(field string, v, minVal, maxVal float64) error {
	if !isFinite(v) || v < minVal || v > maxVal {
		return fmt.Errorf("%w: %s must be between %v and %v, got %v",
			ErrInvalidInput, field, minVal, maxVal, v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
