package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/qaim-b/the-green-pulse/internal/building"
)

// CSV template column names.
const (
	ColName            = "building_name"
	ColFloorArea       = "floor_area_sqft"
	ColFloors          = "num_floors"
	ColAge             = "building_age_years"
	ColOccupancy       = "occupancy_count"
	ColHVAC            = "hvac_type"
	ColInsulation      = "insulation_rating"
	ColClimate         = "climate_zone"
	ColCategory        = "building_type"
	ColWindowWallRatio = "window_wall_ratio"
	ColRenewable       = "renewable_pct"
	ColLED             = "led_lighting_pct"
	ColPredictedTons   = "predicted_tons"
)

// RequiredColumns lists the template columns every portfolio CSV must have.
func RequiredColumns() []string {
	return []string{
		ColName, ColFloorArea, ColFloors, ColAge, ColOccupancy, ColHVAC,
		ColInsulation, ColClimate, ColCategory, ColWindowWallRatio,
		ColRenewable, ColLED,
	}
}

// WriteTemplate writes an empty portfolio CSV with the template header and
// one example row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		RequiredColumns(),
		{"HQ Tower", "15000", "5", "20", "100", "Heat Pump", "Good", "Mixed-Humid", "Office", "0.3", "20", "50"},
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

// ParseCSV reads a portfolio CSV. A header missing any required column
// fails with ErrMissingColumns; a malformed row yields an Entry with Err set.
func ParseCSV(ctx context.Context, r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyPortfolio
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, c := range RequiredColumns() {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var entries []Entry
	for row := 1; ; row++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		record, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		e := Entry{Row: row}
		if readErr != nil {
			e.Err = fmt.Errorf("%w: %w", building.ErrInvalidInput, readErr)
		} else if !blank(record) {
			e.Profile, e.PredictedTons, e.Err = parseRecord(record, cols)
		} else {
			continue
		}
		e.finish()
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, ErrEmptyPortfolio
	}
	return entries, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// rowReader pulls typed fields out of one record and keeps the first error.
type rowReader struct {
	record []string
	cols   map[string]int
	err    error
}

func (r *rowReader) str(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *rowReader) float(col string) float64 {
	s := r.str(col)
	if r.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.err = fmt.Errorf("%w: %s %q is not a number", building.ErrInvalidInput, col, s)
		return 0
	}
	return v
}

func (r *rowReader) whole(col string) int {
	s := r.str(col)
	if r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Whole numbers exported from spreadsheets often carry ".0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			r.err = fmt.Errorf("%w: %s %q is not a whole number", building.ErrInvalidInput, col, s)
			return 0
		}
		v = int(f)
	}
	return v
}

func (r *rowReader) text(col string, dst interface{ UnmarshalText([]byte) error }) {
	if r.err != nil {
		return
	}
	if err := dst.UnmarshalText([]byte(r.str(col))); err != nil {
		r.err = err
	}
}

func parseRecord(record []string, cols map[string]int) (building.Profile, *float64, error) {
	r := &rowReader{record: record, cols: cols}
	p := building.Profile{
		Name:            r.str(ColName),
		FloorAreaSqft:   r.float(ColFloorArea),
		Floors:          r.whole(ColFloors),
		AgeYears:        r.float(ColAge),
		Occupancy:       r.whole(ColOccupancy),
		WindowWallRatio: r.float(ColWindowWallRatio),
		RenewablePct:    r.float(ColRenewable),
		LEDPct:          r.float(ColLED),
	}
	r.text(ColHVAC, &p.HVAC)
	r.text(ColInsulation, &p.Insulation)
	r.text(ColClimate, &p.Climate)
	r.text(ColCategory, &p.Category)

	var predicted *float64
	if s := r.str(ColPredictedTons); s != "" && r.err == nil {
		v := r.float(ColPredictedTons)
		if r.err == nil {
			predicted = &v
		}
	}
	return p, predicted, r.err
}
