package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/ingest"
)

const portfolioYAML = `buildings:
  - name: HQ Tower
    floor_area_sqft: 15000
    building_type: Office
    hvac_type: Heat Pump
    insulation_rating: Good
    climate_zone: Mixed-Humid
    renewable_pct: 20
    led_lighting_pct: 50
    num_floors: 5
    predicted_tons: 87.2
  - floor_area_sqft: 8000
    building_type: Retail
    hvac_type: Geothermal
    insulation_rating: Excellent
    climate_zone: Marine
    renewable_pct: 60
    led_lighting_pct: 95
  - name: Bad
    floor_area_sqft: -5
    building_type: Office
    hvac_type: Heat Pump
    insulation_rating: Good
    climate_zone: Marine
  - name: Worse
    building_type: Castle
`

func TestParseYAML(t *testing.T) {
	entries, err := ingest.ParseYAML(context.Background(), strings.NewReader(portfolioYAML))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	require.NoError(t, entries[0].Err)
	assert.Equal(t, "HQ Tower", entries[0].ID)
	assert.Equal(t, 5, entries[0].Profile.Floors)
	require.NotNil(t, entries[0].PredictedTons)

	require.NoError(t, entries[1].Err)
	assert.Equal(t, 1, entries[1].Profile.Floors, "floors default to 1")
	assert.Len(t, entries[1].ID, 36)

	require.ErrorIs(t, entries[2].Err, building.ErrInvalidInput)
	require.ErrorIs(t, entries[3].Err, building.ErrUnknownCategory)
}

func TestParseYAML_MissingEnumFields(t *testing.T) {
	doc := `buildings:
  - name: NoEnums
    floor_area_sqft: 15000
    renewable_pct: 50
    led_lighting_pct: 95
  - name: NoClimate
    floor_area_sqft: 15000
    building_type: Office
    hvac_type: Heat Pump
    insulation_rating: Good
`
	entries, err := ingest.ParseYAML(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.ErrorIs(t, entries[0].Err, building.ErrUnknownCategory)
	assert.Contains(t, entries[0].Err.Error(), "building_type is required")

	require.ErrorIs(t, entries[1].Err, building.ErrUnknownClimate)
	assert.Contains(t, entries[1].Err.Error(), "climate_zone is required")
}

func TestParseYAML_Empty(t *testing.T) {
	_, err := ingest.ParseYAML(context.Background(), strings.NewReader(""))
	require.ErrorIs(t, err, ingest.ErrEmptyPortfolio)

	_, err = ingest.ParseYAML(context.Background(), strings.NewReader("buildings: []\n"))
	require.ErrorIs(t, err, ingest.ErrEmptyPortfolio)
}

func TestLoadPortfolio(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "campus.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(portfolioYAML), 0o600))

	entries, err := ingest.LoadPortfolio(context.Background(), yamlPath)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	jsonPath := filepath.Join(dir, "campus.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o600))
	_, err = ingest.LoadPortfolio(context.Background(), jsonPath)
	require.ErrorIs(t, err, ingest.ErrUnsupportedFormat)

	_, err = ingest.LoadPortfolio(context.Background(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}

func TestContentIDStable(t *testing.T) {
	p := building.Profile{FloorAreaSqft: 1000, Category: building.CategoryOffice}
	named := p
	named.Name = "Annex"
	assert.Equal(t, ingest.ContentID(p), ingest.ContentID(named), "name does not affect the content ID")

	p.FloorAreaSqft = 1001
	assert.NotEqual(t, ingest.ContentID(p), ingest.ContentID(named))
}

func TestLoadBuilding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: HQ Tower
floor_area_sqft: 15000
building_type: Office
hvac_type: Gas Furnace
insulation_rating: Good
climate_zone: Mixed-Humid
renewable_pct: 20
led_lighting_pct: 50
predicted_tons: 87.2
`), 0o600))

	p, tons, err := ingest.LoadBuilding(path)
	require.NoError(t, err)
	assert.Equal(t, "HQ Tower", p.Name)
	assert.Equal(t, building.CategoryOffice, p.Category)
	assert.Equal(t, building.HVACGasFurnace, p.HVAC)
	require.NotNil(t, tons)
	assert.InDelta(t, 87.2, *tons, 1e-9)
}

func TestLoadBuilding_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := ingest.LoadBuilding(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, _, err = ingest.LoadBuilding(empty)
	require.ErrorIs(t, err, building.ErrInvalidInput)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("building_type: Castle\n"), 0o600))
	_, _, err = ingest.LoadBuilding(bad)
	require.ErrorIs(t, err, building.ErrInvalidInput)
}
