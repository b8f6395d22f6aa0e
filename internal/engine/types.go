package engine

import (
	"fmt"
	"strings"

	"github.com/qaim-b/the-green-pulse/internal/building"
	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/greenops"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ParseOutputFormat validates a format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", s)
}

// PredictionSource records where a report's emissions figure came from.
type PredictionSource string

// Prediction sources.
const (
	SourceModel    PredictionSource = "model"
	SourceSupplied PredictionSource = "supplied"
)

// Report is the assessment of one building.
type Report struct {
	ID          string                      `json:"id,omitempty"`
	Name        string                      `json:"name"`
	Profile     building.Profile            `json:"building"`
	Model       string                      `json:"model,omitempty"`
	Source      PredictionSource            `json:"prediction_source"`
	Assessment  certification.Assessment    `json:"assessment"`
	Equivalency *greenops.EquivalencyOutput `json:"equivalency,omitempty"`
}
