package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qaim-b/the-green-pulse/internal/certification"
	"github.com/qaim-b/the-green-pulse/internal/engine"
	"github.com/qaim-b/the-green-pulse/internal/greenops"
)

// Layout constants.
const (
	borderPadding  = 2
	creditBarWidth = 18
	maxCardWidth   = 100
	labelWidth     = 14
)

// RenderCreditBar draws earned out of max credits as a fixed-width bar.
func RenderCreditBar(earned, maxCredits int) string {
	if maxCredits <= 0 {
		return ""
	}
	filled := min(max(earned*creditBarWidth/maxCredits, 0), creditBarWidth)
	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, creditBarWidth-filled)
	return ratingStyle(certification.Classify(earned)).Render(bar)
}

func ratingStyle(r certification.Rating) lipgloss.Style {
	switch {
	case r >= certification.RatingHighPerformance:
		return OKStyle
	case r >= certification.RatingSlightlyAboveBaseline:
		return WarnStyle
	default:
		return ErrorStyle
	}
}

func benchmarkStyle(s certification.BenchmarkStatus) lipgloss.Style {
	switch s {
	case certification.BenchmarkExcellent:
		return OKStyle
	case certification.BenchmarkTypical:
		return WarnStyle
	default:
		return ErrorStyle
	}
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(LabelStyle.Width(labelWidth).Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func cardWidth(width int) int {
	return min(max(width, 40), maxCardWidth) - borderPadding
}

// RenderAssessmentCard renders one building report as a bordered card.
func RenderAssessmentCard(r *engine.Report, width int) string {
	a := r.Assessment
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(strings.ToUpper(r.Name)))
	b.WriteString(LabelStyle.Render(fmt.Sprintf("  %s, %s sqft",
		r.Profile.Category, greenops.FormatFloat(r.Profile.FloorAreaSqft, 0))))
	b.WriteString("\n\n")

	field(&b, "Emissions", ValueStyle.Render(greenops.FormatTons(a.PredictedTons)+"/yr")+
		LabelStyle.Render("  baseline "+greenops.FormatTons(a.BaselineTons)))
	field(&b, "Improvement", ValueStyle.Render(greenops.FormatPercent(a.ImprovementPct)))
	field(&b, "Credits", RenderCreditBar(a.EarnedCredits, a.MaxCredits)+" "+
		ValueStyle.Render(fmt.Sprintf("%d/%d", a.EarnedCredits, a.MaxCredits)))
	field(&b, "Rating", ratingStyle(a.Rating).Render(a.Rating.String()))
	eligible := ErrorStyle.Render("not eligible")
	if a.CertificationEligible {
		eligible = OKStyle.Render("eligible")
	}
	field(&b, "Certification", eligible)
	field(&b, "Next tier", ValueStyle.Render(engine.NextTierText(a)))
	field(&b, "Intensity", benchmarkStyle(a.Benchmark.Status).Render(
		greenops.FormatFloat(a.Benchmark.IntensityKgPerSqft, 2)+" kg/sqft "+a.Benchmark.Status.String()))

	if len(a.Recommendations) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("RECOMMENDATIONS"))
		b.WriteString("\n")
		for i, rec := range a.Recommendations {
			line := fmt.Sprintf("%d. %s", i+1, rec.Action)
			b.WriteString(ValueStyle.Render(line))
			b.WriteString(LabelStyle.Render(fmt.Sprintf("  %s, cuts %s", rec.CreditReference, greenops.FormatTons(rec.ImpactTons))))
			if rec.ROI != nil {
				b.WriteString(SubtleStyle.Render(fmt.Sprintf("  %s, 10y ROI %s",
					greenops.FormatMoney(rec.ROI.InitialCost), greenops.FormatPercent(rec.ROI.ROI10Pct))))
			}
			b.WriteString("\n")
		}
	}

	if r.Equivalency != nil {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(r.Equivalency.DisplayText))
	}

	return BoxStyle.Width(cardWidth(width)).Render(strings.TrimRight(b.String(), "\n"))
}

// RenderPortfolioSummary renders the portfolio aggregate card.
func RenderPortfolioSummary(res *engine.PortfolioResult, width int) string {
	s := res.Summary
	if s.Buildings == 0 {
		return InfoStyle.Render("No buildings to display.")
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("PORTFOLIO SUMMARY"))
	b.WriteString(LabelStyle.Render("  run " + s.RunID))
	b.WriteString("\n\n")

	assessed := ValueStyle.Render(strconv.Itoa(s.Assessed) + " assessed")
	if s.Failed > 0 {
		assessed += "  " + ErrorStyle.Render(strconv.Itoa(s.Failed)+" failed")
	}
	field(&b, "Buildings", assessed)
	field(&b, "Total CO2", ValueStyle.Render(greenops.FormatTons(s.TotalEmissionsTons)+"/yr"))
	field(&b, "Average CO2", ValueStyle.Render(greenops.FormatTons(s.AvgEmissionsTons)+"/yr"))
	field(&b, "Total area", ValueStyle.Render(greenops.FormatFloat(s.TotalAreaSqft, 0)+" sqft"))
	field(&b, "Intensity", ValueStyle.Render(greenops.FormatFloat(s.AvgIntensityKgPerSqft, 2)+" kg/sqft"))
	field(&b, "Avg credits", ValueStyle.Render(greenops.FormatFloat(s.AvgCredits, 1)))
	field(&b, "Eligible", ValueStyle.Render(fmt.Sprintf("%d of %d", s.CertificationEligible, s.Assessed)))

	if len(s.RatingDistribution) > 0 {
		var parts []string
		for r := certification.RatingExceptional; r >= certification.RatingBelowBaseline; r-- {
			if n := s.RatingDistribution[r.String()]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s: %d", r, n))
			}
		}
		field(&b, "Ratings", LabelStyle.Render(strings.Join(parts, "  ")))
	}

	if s.Equivalency != nil {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(s.Equivalency.DisplayText))
	}

	return BoxStyle.Width(cardWidth(width)).Render(strings.TrimRight(b.String(), "\n"))
}
