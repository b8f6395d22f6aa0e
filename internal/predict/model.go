package predict

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// SupportedSchema is the semver constraint a model artifact must satisfy.
const SupportedSchema = "^1.0.0"

// CurrentSchemaVersion is written into artifacts produced by this build.
const CurrentSchemaVersion = "1.0.0"

// Artifact is the on-disk form of a reference model. Enum-keyed maps use the
// display names of the building enums ("Gas Furnace", "Very Cold").
type Artifact struct {
	SchemaVersion string `yaml:"schema_version"`
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`

	EmissionFactor  float64 `yaml:"emission_factor"`
	AgeDivisor      float64 `yaml:"age_divisor"`
	WindowFactor    float64 `yaml:"window_factor"`
	OccupancyFactor float64 `yaml:"occupancy_factor"`
	LEDDivisor      float64 `yaml:"led_divisor"`

	BaseEUI           map[string]float64 `yaml:"base_eui"`
	HVACFactors       map[string]float64 `yaml:"hvac_factors"`
	InsulationFactors map[string]float64 `yaml:"insulation_factors"`
	ClimateFactors    map[string]float64 `yaml:"climate_factors"`
}

// DefaultArtifact returns the built-in reference coefficients.
func DefaultArtifact() Artifact {
	return Artifact{
		SchemaVersion:   CurrentSchemaVersion,
		Name:            "reference",
		Version:         "1.0.0",
		EmissionFactor:  0.145,
		AgeDivisor:      150,
		WindowFactor:    0.4,
		OccupancyFactor: 2,
		LEDDivisor:      400,
		BaseEUI: map[string]float64{
			"Office":       52,
			"Retail":       48,
			"Healthcare":   195,
			"Educational":  65,
			"Warehouse":    28,
			"Multi-Family": 42,
			"Hotel":        82,
		},
		HVACFactors: map[string]float64{
			"Gas Furnace":        1.15,
			"Heat Pump":          0.75,
			"Electric Baseboard": 1.30,
			"Geothermal":         0.60,
			"District Steam":     0.85,
			"Packaged Rooftop":   1.00,
		},
		InsulationFactors: map[string]float64{
			"Excellent": 0.75,
			"Good":      0.90,
			"Fair":      1.05,
			"Poor":      1.25,
		},
		ClimateFactors: map[string]float64{
			"Hot-Humid":   1.15,
			"Hot-Dry":     1.10,
			"Mixed-Humid": 1.00,
			"Cold":        1.30,
			"Very Cold":   1.50,
			"Marine":      0.95,
		},
	}
}

// Model is a compiled reference model. It is immutable and safe for
// concurrent use.
type Model struct {
	name    string
	version string

	emissionFactor  float64
	ageDivisor      float64
	windowFactor    float64
	occupancyFactor float64
	ledDivisor      float64

	baseEUI    map[building.Category]float64
	hvac       map[building.HVACType]float64
	insulation map[building.Insulation]float64
	climate    map[building.ClimateZone]float64
}

// DefaultModel compiles DefaultArtifact.
func DefaultModel() *Model {
	m, err := DefaultArtifact().Compile()
	if err != nil {
		panic(fmt.Sprintf("built-in model is invalid: %v", err))
	}
	return m
}

// LoadModel reads and compiles the artifact at path.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}
	return ParseModel(data)
}

// ParseModel decodes and compiles a YAML artifact.
func ParseModel(data []byte) (*Model, error) {
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return a.Compile()
}

// Compile validates the artifact and resolves its enum-keyed tables. Every
// enum member must have a positive coefficient.
func (a Artifact) Compile() (*Model, error) {
	if err := checkSchema(a.SchemaVersion); err != nil {
		return nil, err
	}

	scalars := []struct {
		name  string
		value float64
	}{
		{"emission_factor", a.EmissionFactor},
		{"age_divisor", a.AgeDivisor},
		{"led_divisor", a.LEDDivisor},
	}
	for _, s := range scalars {
		if !positive(s.value) {
			return nil, fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidModel, s.name, s.value)
		}
	}
	if a.WindowFactor < 0 || a.OccupancyFactor < 0 {
		return nil, fmt.Errorf("%w: window and occupancy factors must be >= 0", ErrInvalidModel)
	}

	m := &Model{
		name:            a.Name,
		version:         a.Version,
		emissionFactor:  a.EmissionFactor,
		ageDivisor:      a.AgeDivisor,
		windowFactor:    a.WindowFactor,
		occupancyFactor: a.OccupancyFactor,
		ledDivisor:      a.LEDDivisor,
	}

	var err error
	if m.baseEUI, err = compileTable("base_eui", a.BaseEUI, building.AllCategories(), building.ParseCategory); err != nil {
		return nil, err
	}
	if m.hvac, err = compileTable("hvac_factors", a.HVACFactors, building.AllHVACTypes(), building.ParseHVACType); err != nil {
		return nil, err
	}
	if m.insulation, err = compileTable("insulation_factors", a.InsulationFactors,
		building.AllInsulationRatings(), building.ParseInsulation); err != nil {
		return nil, err
	}
	if m.climate, err = compileTable("climate_factors", a.ClimateFactors,
		building.AllClimateZones(), building.ParseClimateZone); err != nil {
		return nil, err
	}
	return m, nil
}

func checkSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrUnsupportedSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	c, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return nil
}

// compileTable parses the names of raw into enum keys and checks that every
// member of all has a positive value.
func compileTable[K comparable](
	name string,
	raw map[string]float64,
	all []K,
	parse func(string) (K, error),
) (map[K]float64, error) {
	out := make(map[K]float64, len(raw))
	for key, value := range raw {
		k, err := parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidModel, name, err)
		}
		if !positive(value) {
			return nil, fmt.Errorf("%w: %s[%s] must be > 0, got %v", ErrInvalidModel, name, key, value)
		}
		out[k] = value
	}
	for _, k := range all {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("%w: %s has no entry for %v", ErrInvalidModel, name, k)
		}
	}
	return out, nil
}

func positive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// Identity returns "name@version".
func (m *Model) Identity() string {
	return m.name + "@" + m.version
}

// Predict computes annual emissions from the physics multipliers:
//
//	eui  = base[category] * hvac * insulation * climate
//	       * (1 + age/ageDivisor) * (1 + wwr*windowFactor)
//	       * (1 + occupancy/area*occupancyFactor) * (1 - led/ledDivisor)
//	tons = eui * area * emissionFactor / 1000 * (100 - renewable) / 100
func (m *Model) Predict(ctx context.Context, p building.Profile) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if !positive(p.FloorAreaSqft) {
		return 0, fmt.Errorf("%w: floor area must be > 0, got %v", building.ErrInvalidInput, p.FloorAreaSqft)
	}
	base, ok := m.baseEUI[p.Category]
	if !ok {
		return 0, fmt.Errorf("%w: %s", building.ErrUnknownCategory, p.Category)
	}
	hvac, ok := m.hvac[p.HVAC]
	if !ok {
		return 0, fmt.Errorf("%w: %s", building.ErrUnknownHVAC, p.HVAC)
	}
	insulation, ok := m.insulation[p.Insulation]
	if !ok {
		return 0, fmt.Errorf("%w: %s", building.ErrUnknownInsulation, p.Insulation)
	}
	climate, ok := m.climate[p.Climate]
	if !ok {
		return 0, fmt.Errorf("%w: %s", building.ErrUnknownClimate, p.Climate)
	}

	eui := base * hvac * insulation * climate
	eui *= 1 + p.AgeYears/m.ageDivisor
	eui *= 1 + p.WindowWallRatio*m.windowFactor
	eui *= 1 + float64(p.Occupancy)/p.FloorAreaSqft*m.occupancyFactor
	eui *= 1 - p.LEDPct/m.ledDivisor

	tons := eui * p.FloorAreaSqft * m.emissionFactor / 1000
	tons *= (100 - p.RenewablePct) / 100
	return math.Max(0, tons), nil
}
