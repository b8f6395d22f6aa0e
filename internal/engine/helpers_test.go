package engine_test

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

var errModelDown = errors.New("model unavailable")

func officeProfile() building.Profile {
	return building.Profile{
		Name:          "HQ Tower",
		FloorAreaSqft: 15000,
		Category:      building.CategoryOffice,
		HVAC:          building.HVACGasFurnace,
		Insulation:    building.InsulationGood,
		Climate:       building.ClimateMixedHumid,
		RenewablePct:  20,
		LEDPct:        50,
		Floors:        5,
	}
}

// featureModel is a deterministic predictor whose output moves with the
// features the what-if analysis changes.
type featureModel struct {
	calls atomic.Int32
	id    string
}

func (m *featureModel) Predict(_ context.Context, p building.Profile) (float64, error) {
	m.calls.Add(1)
	if p.Name == "Bad" {
		return 0, errModelDown
	}
	tons := 100 - p.RenewablePct*0.5 - float64(p.Insulation-building.InsulationPoor)*5
	if p.HVAC == building.HVACGeothermal {
		tons -= 10
	}
	return tons, nil
}

func (m *featureModel) Identity() string {
	return m.id
}
