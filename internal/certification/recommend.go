package certification

import (
	"sort"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// Rule thresholds.
const (
	renewableTargetPct = 30.0
	ledTargetPct       = 90.0
)

// Recommendation is one ranked efficiency measure.
//
// ImpactShare is a heuristic estimate of the fraction of the outstanding gap
// the measure could close. Shares are independent, not an allocation, and
// may sum past 1.
type Recommendation struct {
	Category          string          `json:"category"`
	Action            string          `json:"action"`
	CreditReference   string          `json:"credit_reference"`
	ImpactShare       float64         `json:"impact_share"`
	ImpactTons        float64         `json:"impact_tons"`
	CostConsideration string          `json:"cost_consideration"`
	Improvement       Improvement     `json:"improvement"`
	ROI               *ImprovementROI `json:"roi,omitempty"`
}

// rule is one row of the recommendation table.
type rule struct {
	applies           func(building.Features) bool
	category          string
	action            string
	creditReference   string
	costConsideration string
	share             float64
	improvement       Improvement
}

//nolint:gochecknoglobals // Constant rule table, evaluated in order.
var rules = []rule{
	{
		applies:           func(f building.Features) bool { return f.RenewablePct < renewableTargetPct },
		category:          "Renewable Energy",
		action:            "Increase on-site renewable energy to 30%",
		creditReference:   "EA Credit: Renewable Energy Production",
		costConsideration: "High initial investment, 5-7 year payback",
		share:             0.30,
		improvement:       ImprovementSolar,
	},
	{
		applies: func(f building.Features) bool {
			return f.HVAC == building.HVACGasFurnace || f.HVAC == building.HVACElectricBaseboard
		},
		category:          "HVAC Efficiency",
		action:            "Upgrade to high-efficiency heat pump or geothermal",
		creditReference:   "EA Prerequisite: Minimum Energy Performance",
		costConsideration: "Medium investment, 3-5 year payback",
		share:             0.25,
		improvement:       ImprovementHeatPump,
	},
	{
		applies:           func(f building.Features) bool { return f.Insulation <= building.InsulationFair },
		category:          "Building Envelope",
		action:            "Upgrade insulation and air sealing",
		creditReference:   "EA Credit: Optimize Energy Performance",
		costConsideration: "Low-medium investment, immediate impact",
		share:             0.20,
		improvement:       ImprovementEnvelope,
	},
	{
		applies:           func(f building.Features) bool { return f.LEDPct < ledTargetPct },
		category:          "Lighting Systems",
		action:            "Complete LED retrofit with occupancy sensors",
		creditReference:   "EA Credit: Optimize Energy Performance",
		costConsideration: "Low investment, 2-3 year payback",
		share:             0.10,
		improvement:       ImprovementLED,
	},
}

// Generate returns the measures whose conditions hold for f, each sized
// against outstandingTons (the reduction still needed for the next tier),
// ordered by impact descending. Ties keep rule order.
func Generate(f building.Features, outstandingTons float64) []Recommendation {
	recs := make([]Recommendation, 0, len(rules))
	for _, r := range rules {
		if !r.applies(f) {
			continue
		}
		recs = append(recs, Recommendation{
			Category:          r.category,
			Action:            r.action,
			CreditReference:   r.creditReference,
			ImpactShare:       r.share,
			ImpactTons:        r.share * outstandingTons,
			CostConsideration: r.costConsideration,
			Improvement:       r.improvement,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].ImpactTons > recs[j].ImpactTons
	})
	return recs
}
