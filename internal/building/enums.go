package building

import (
	"fmt"
	"strings"
)

// Category is the building use type. The set is closed; every lookup table
// keyed by Category is checked against AllCategories at construction. The
// zero value is not a member, so an omitted building_type fails validation.
type Category int

const (
	CategoryOffice Category = iota + 1
	CategoryRetail
	CategoryHealthcare
	CategoryEducational
	CategoryWarehouse
	CategoryMultiFamily
	CategoryHotel
)

// AllCategories lists every Category in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryOffice, CategoryRetail, CategoryHealthcare, CategoryEducational,
		CategoryWarehouse, CategoryMultiFamily, CategoryHotel,
	}
}

//nolint:gochecknoglobals // Constant lookup table.
var categoryNames = map[Category]string{
	CategoryOffice:      "Office",
	CategoryRetail:      "Retail",
	CategoryHealthcare:  "Healthcare",
	CategoryEducational: "Educational",
	CategoryWarehouse:   "Warehouse",
	CategoryMultiFamily: "Multi-Family",
	CategoryHotel:       "Hotel",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory converts a display name ("Office", "Multi-Family") to a Category.
// Matching ignores case, surrounding spaces and the separator between words.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if normalizeName(name) == normalizeName(s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// HVACType is the primary heating/cooling system. The zero value is unset.
type HVACType int

const (
	HVACGasFurnace HVACType = iota + 1
	HVACHeatPump
	HVACElectricBaseboard
	HVACGeothermal
	HVACDistrictSteam
	HVACPackagedRooftop
)

// AllHVACTypes lists every HVACType in declaration order.
func AllHVACTypes() []HVACType {
	return []HVACType{
		HVACGasFurnace, HVACHeatPump, HVACElectricBaseboard,
		HVACGeothermal, HVACDistrictSteam, HVACPackagedRooftop,
	}
}

//nolint:gochecknoglobals // Constant lookup table.
var hvacNames = map[HVACType]string{
	HVACGasFurnace:        "Gas Furnace",
	HVACHeatPump:          "Heat Pump",
	HVACElectricBaseboard: "Electric Baseboard",
	HVACGeothermal:        "Geothermal",
	HVACDistrictSteam:     "District Steam",
	HVACPackagedRooftop:   "Packaged Rooftop",
}

func (h HVACType) String() string {
	if name, ok := hvacNames[h]; ok {
		return name
	}
	return fmt.Sprintf("HVACType(%d)", int(h))
}

// Valid reports whether h is one of the declared HVAC types.
func (h HVACType) Valid() bool {
	_, ok := hvacNames[h]
	return ok
}

// ParseHVACType converts a display name ("Gas Furnace") to an HVACType.
func ParseHVACType(s string) (HVACType, error) {
	for h, name := range hvacNames {
		if normalizeName(name) == normalizeName(s) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHVAC, s)
}

// MarshalText implements encoding.TextMarshaler.
func (h HVACType) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHVAC, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HVACType) UnmarshalText(text []byte) error {
	parsed, err := ParseHVACType(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Insulation is the envelope insulation rating. Values are ordered:
// InsulationPoor < InsulationFair < InsulationGood < InsulationExcellent.
// The zero value is unset and sorts below every rating.
type Insulation int

const (
	InsulationPoor Insulation = iota + 1
	InsulationFair
	InsulationGood
	InsulationExcellent
)

// AllInsulationRatings lists every Insulation value from worst to best.
func AllInsulationRatings() []Insulation {
	return []Insulation{InsulationPoor, InsulationFair, InsulationGood, InsulationExcellent}
}

//nolint:gochecknoglobals // Constant lookup table.
var insulationNames = map[Insulation]string{
	InsulationPoor:      "Poor",
	InsulationFair:      "Fair",
	InsulationGood:      "Good",
	InsulationExcellent: "Excellent",
}

func (i Insulation) String() string {
	if name, ok := insulationNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Insulation(%d)", int(i))
}

// Valid reports whether i is one of the declared ratings.
func (i Insulation) Valid() bool {
	_, ok := insulationNames[i]
	return ok
}

// ParseInsulation converts a rating name ("Fair") to an Insulation.
func ParseInsulation(s string) (Insulation, error) {
	for i, name := range insulationNames {
		if normalizeName(name) == normalizeName(s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInsulation, s)
}

// MarshalText implements encoding.TextMarshaler.
func (i Insulation) MarshalText() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInsulation, int(i))
	}
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Insulation) UnmarshalText(text []byte) error {
	parsed, err := ParseInsulation(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// ClimateZone is the heating/cooling climate classification. The zero value
// is unset.
type ClimateZone int

const (
	ClimateHotHumid ClimateZone = iota + 1
	ClimateHotDry
	ClimateMixedHumid
	ClimateCold
	ClimateVeryCold
	ClimateMarine
)

// AllClimateZones lists every ClimateZone in declaration order.
func AllClimateZones() []ClimateZone {
	return []ClimateZone{
		ClimateHotHumid, ClimateHotDry, ClimateMixedHumid,
		ClimateCold, ClimateVeryCold, ClimateMarine,
	}
}

//nolint:gochecknoglobals // Constant lookup table.
var climateNames = map[ClimateZone]string{
	ClimateHotHumid:   "Hot-Humid",
	ClimateHotDry:     "Hot-Dry",
	ClimateMixedHumid: "Mixed-Humid",
	ClimateCold:       "Cold",
	ClimateVeryCold:   "Very Cold",
	ClimateMarine:     "Marine",
}

func (z ClimateZone) String() string {
	if name, ok := climateNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ClimateZone(%d)", int(z))
}

// Valid reports whether z is one of the declared climate zones.
func (z ClimateZone) Valid() bool {
	_, ok := climateNames[z]
	return ok
}

// ParseClimateZone converts a zone name ("Very Cold") to a ClimateZone.
func ParseClimateZone(s string) (ClimateZone, error) {
	for z, name := range climateNames {
		if normalizeName(name) == normalizeName(s) {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClimate, s)
}

// MarshalText implements encoding.TextMarshaler.
func (z ClimateZone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClimate, int(z))
	}
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *ClimateZone) UnmarshalText(text []byte) error {
	parsed, err := ParseClimateZone(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// normalizeName lowercases s and drops spaces, hyphens and underscores so
// "multi family", "Multi-Family" and "multi_family" compare equal.
func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
