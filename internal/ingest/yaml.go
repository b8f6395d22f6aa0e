package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// yamlPortfolio is the YAML portfolio document:
//
//	buildings:
//	  - name: HQ Tower
//	    floor_area_sqft: 15000
//	    building_type: Office
//	    ...
//	    predicted_tons: 87.2   # optional
type yamlPortfolio struct {
	Buildings []yaml.Node `yaml:"buildings"`
}

type yamlBuilding struct {
	building.Profile `yaml:",inline"`
	PredictedTons    *float64 `yaml:"predicted_tons,omitempty"`
}

// ParseYAML reads a YAML portfolio. Each list item that fails to decode or
// validate becomes an Entry with Err set.
func ParseYAML(ctx context.Context, r io.Reader) ([]Entry, error) {
	var doc yamlPortfolio
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPortfolio
		}
		return nil, fmt.Errorf("parsing portfolio YAML: %w", err)
	}
	if len(doc.Buildings) == 0 {
		return nil, ErrEmptyPortfolio
	}

	entries := make([]Entry, 0, len(doc.Buildings))
	for i := range doc.Buildings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e := Entry{Row: i + 1}
		var b yamlBuilding
		if err := doc.Buildings[i].Decode(&b); err != nil {
			e.Err = fmt.Errorf("%w: %w", building.ErrInvalidInput, err)
		} else {
			e.Profile = b.Profile
			e.PredictedTons = b.PredictedTons
		}
		e.finish()
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadBuilding reads a single building from a YAML (or JSON) mapping with
// the portfolio field names. The profile is decoded but not validated, so
// callers can apply overrides before building.NewProfile.
func LoadBuilding(path string) (building.Profile, *float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return building.Profile{}, nil, fmt.Errorf("opening building file: %w", err)
	}
	defer f.Close()

	var b yamlBuilding
	if err = yaml.NewDecoder(f).Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return building.Profile{}, nil, fmt.Errorf("%w: %s is empty", building.ErrInvalidInput, path)
		}
		return building.Profile{}, nil, fmt.Errorf("%w: %w", building.ErrInvalidInput, err)
	}
	return b.Profile, b.PredictedTons, nil
}
