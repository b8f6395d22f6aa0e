package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/greenops"
)

// tabwriterPadding is the column gap of table output.
const tabwriterPadding = 2

// maxNameLen truncates building names in portfolio tables.
const maxNameLen = 32

// RenderReport writes one building report.
func RenderReport(w io.Writer, format OutputFormat, r *Report) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, r)
	case OutputNDJSON:
		return renderNDJSON(w, []*Report{r})
	case OutputTable:
		return renderReportTable(w, r)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// RenderPortfolio writes a portfolio result. NDJSON emits one line per
// building and no summary.
func RenderPortfolio(w io.Writer, format OutputFormat, res *PortfolioResult) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, res)
	case OutputNDJSON:
		return renderNDJSON(w, res.Items)
	case OutputTable:
		return renderPortfolioTable(w, res)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// RenderScenarios writes scenario outcomes.
func RenderScenarios(w io.Writer, format OutputFormat, outcomes []ScenarioOutcome) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, outcomes)
	case OutputNDJSON:
		return renderNDJSON(w, outcomes)
	case OutputTable:
		return renderScenarioTable(w, outcomes)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// RenderWhatIf writes a what-if result.
func RenderWhatIf(w io.Writer, format OutputFormat, res *WhatIfResult) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, res)
	case OutputNDJSON:
		return renderNDJSON(w, res.Options)
	case OutputTable:
		return renderWhatIfTable(w, res)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// RenderROI writes improvement ROI projections.
func RenderROI(w io.Writer, format OutputFormat, rois []certification.ImprovementROI) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, rois)
	case OutputNDJSON:
		return renderNDJSON(w, rois)
	case OutputTable:
		return renderROITable(w, rois)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderNDJSON[T any](w io.Writer, items []T) error {
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshaling line: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

// rows writes tab-separated rows and stops at the first error.
type rows struct {
	tw  *tabwriter.Writer
	err error
}

func newRows(w io.Writer) *rows {
	return &rows{tw: tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)}
}

func (r *rows) line(cells ...string) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintln(r.tw, strings.Join(cells, "\t"))
}

func (r *rows) flush() error {
	if r.err != nil {
		return fmt.Errorf("writing table: %w", r.err)
	}
	return r.tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// NextTierText describes the next tier, or that the top tier is reached.
func NextTierText(a certification.Assessment) string {
	if a.NextTier == nil {
		return "top tier reached"
	}
	return fmt.Sprintf("%d pts at %s (cut %s)",
		a.NextTier.Points, greenops.FormatPercent(a.NextTier.ThresholdPct), greenops.FormatTons(a.NextTier.ReductionTons))
}

func renderReportTable(w io.Writer, r *Report) error {
	a := r.Assessment
	t := newRows(w)
	t.line("BUILDING", fmt.Sprintf("%s (%s, %s sqft)",
		r.Name, r.Profile.Category, greenops.FormatFloat(r.Profile.FloorAreaSqft, 0)))
	if r.Model != "" {
		t.line("MODEL", r.Model)
	}
	t.line("PREDICTED", greenops.FormatTons(a.PredictedTons)+"/yr")
	t.line("BASELINE", greenops.FormatTons(a.BaselineTons)+"/yr")
	t.line("IMPROVEMENT", greenops.FormatPercent(a.ImprovementPct))
	t.line("CREDITS", fmt.Sprintf("%d / %d", a.EarnedCredits, a.MaxCredits))
	t.line("RATING", a.Rating.String())
	t.line("ELIGIBLE", yesNo(a.CertificationEligible))
	t.line("NEXT TIER", NextTierText(a))
	t.line("INTENSITY", fmt.Sprintf("%s kg/sqft (%s, typical %s-%s)",
		greenops.FormatFloat(a.Benchmark.IntensityKgPerSqft, 2), a.Benchmark.Status,
		greenops.FormatFloat(a.Benchmark.TypicalMin, 1), greenops.FormatFloat(a.Benchmark.TypicalMax, 1)))
	if r.Equivalency != nil {
		t.line("EQUIVALENT", r.Equivalency.DisplayText)
	}

	if len(a.Recommendations) > 0 {
		t.line("")
		t.line("#", "RECOMMENDATION", "CREDIT", "IMPACT", "COST", "SAVINGS/YR", "ROI 10Y")
		t.line("-", "--------------", "------", "------", "----", "----------", "-------")
		for i, rec := range a.Recommendations {
			cost, savings, roi := "-", "-", "-"
			if rec.ROI != nil {
				cost = greenops.FormatMoney(rec.ROI.InitialCost)
				savings = greenops.FormatMoney(rec.ROI.AnnualSavings)
				roi = greenops.FormatPercent(rec.ROI.ROI10Pct)
			}
			t.line(strconv.Itoa(i+1), rec.Action, rec.CreditReference,
				greenops.FormatTons(rec.ImpactTons), cost, savings, roi)
		}
	}
	return t.flush()
}

func truncateName(s string) string {
	if len(s) <= maxNameLen {
		return s
	}
	return s[:maxNameLen-3] + "..."
}

func renderPortfolioTable(w io.Writer, res *PortfolioResult) error {
	t := newRows(w)
	t.line("BUILDING", "TYPE", "AREA (SQFT)", "CO2 (T/YR)", "KG/SQFT", "CREDITS", "RATING")
	t.line("--------", "----", "-----------", "----------", "-------", "-------", "------")
	for _, it := range res.Items {
		if it.Err != nil || it.Report == nil {
			t.line(truncateName(it.Name), "ERR", "-", "-", "-", "-", it.Error)
			continue
		}
		a := it.Report.Assessment
		t.line(truncateName(it.Name),
			it.Report.Profile.Category.String(),
			greenops.FormatFloat(it.Report.Profile.FloorAreaSqft, 0),
			greenops.FormatFloat(a.PredictedTons, 1),
			greenops.FormatFloat(a.Benchmark.IntensityKgPerSqft, 2),
			fmt.Sprintf("%d/%d", a.EarnedCredits, a.MaxCredits),
			a.Rating.String())
	}

	s := res.Summary
	t.line("")
	t.line("BUILDINGS", fmt.Sprintf("%d assessed, %d failed", s.Assessed, s.Failed))
	t.line("TOTAL CO2", greenops.FormatTons(s.TotalEmissionsTons)+"/yr")
	t.line("AVERAGE CO2", greenops.FormatTons(s.AvgEmissionsTons)+"/yr")
	t.line("TOTAL AREA", greenops.FormatFloat(s.TotalAreaSqft, 0)+" sqft")
	t.line("AVG CREDITS", greenops.FormatFloat(s.AvgCredits, 1))
	t.line("ELIGIBLE", strconv.Itoa(s.CertificationEligible))
	if s.Equivalency != nil {
		t.line("EQUIVALENT", s.Equivalency.DisplayText)
	}
	return t.flush()
}

func renderScenarioTable(w io.Writer, outcomes []ScenarioOutcome) error {
	t := newRows(w)
	t.line("SCENARIO", "CUT", "NEW CO2", "COST", "SAVINGS/YR", "PAYBACK", "ROI 10Y", "CREDITS")
	t.line("--------", "---", "-------", "----", "----------", "-------", "-------", "-------")
	for _, o := range outcomes {
		payback := "never"
		if o.PaybackYears != nil {
			payback = greenops.FormatFloat(*o.PaybackYears, 1) + " yr"
		}
		t.line(o.Scenario,
			greenops.FormatPercent(o.ReductionPct),
			greenops.FormatTons(o.NewEmissionsTons),
			greenops.FormatMoney(o.TotalCost),
			greenops.FormatMoney(o.AnnualSavings),
			payback,
			greenops.FormatPercent(o.ROI10Pct),
			"+"+strconv.Itoa(o.CreditBoost))
	}
	return t.flush()
}

func renderWhatIfTable(w io.Writer, res *WhatIfResult) error {
	t := newRows(w)
	t.line("BUILDING", res.Name)
	t.line("CURRENT", greenops.FormatTons(res.CurrentTons)+"/yr")
	t.line("")
	if len(res.Options) == 0 {
		t.line("No single-feature upgrade lowers emissions.")
		return t.flush()
	}
	t.line("ACTION", "NEW CO2", "SAVES", "COST", "SAVINGS/YR", "ROI 10Y")
	t.line("------", "-------", "-----", "----", "----------", "-------")
	for _, o := range res.Options {
		cost, savings, roi := "-", "-", "-"
		if o.ROI != nil {
			cost = greenops.FormatMoney(o.ROI.InitialCost)
			savings = greenops.FormatMoney(o.ROI.AnnualSavings)
			roi = greenops.FormatPercent(o.ROI.ROI10Pct)
		}
		t.line(o.Action,
			greenops.FormatTons(o.NewTons),
			fmt.Sprintf("%s (%s)", greenops.FormatTons(o.SavingsTons), greenops.FormatPercent(o.SavingsPct)),
			cost, savings, roi)
	}
	return t.flush()
}

func renderROITable(w io.Writer, rois []certification.ImprovementROI) error {
	t := newRows(w)
	t.line("IMPROVEMENT", "COST", "CUT", "SAVINGS/YR", "PAYBACK", "ROI 5Y", "ROI 10Y")
	t.line("-----------", "----", "---", "----------", "-------", "------", "-------")
	for _, r := range rois {
		t.line(string(r.Improvement),
			greenops.FormatMoney(r.InitialCost),
			greenops.FormatTons(r.EmissionsReductionTons),
			greenops.FormatMoney(r.AnnualSavings),
			greenops.FormatFloat(r.PaybackYears, 1)+" yr",
			greenops.FormatPercent(r.ROI5Pct),
			greenops.FormatPercent(r.ROI10Pct))
	}
	return t.flush()
}
