package greenops

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators:
// FormatFloat(1234.567, 2) -> "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	formatted := strconv.FormatFloat(f, 'f', max(precision, 0), 64)
	return groupIntegerPart(formatted)
}

// FormatTons formats an emissions amount in metric tons: "87.20 t".
func FormatTons(tons float64) string {
	return FormatFloat(tons, 2) + " t"
}

// FormatPercent formats a percentage with one decimal: "30.9%".
func FormatPercent(pct float64) string {
	return FormatFloat(pct, 1) + "%"
}

// FormatMoney formats a dollar amount rounded to whole dollars: "$85,000".
func FormatMoney(d decimal.Decimal) string {
	rounded := d.Round(0)
	if rounded.IsNegative() {
		return "-$" + groupIntegerPart(rounded.Neg().String())
	}
	return "$" + groupIntegerPart(rounded.String())
}

// groupIntegerPart inserts thousand separators into the integer part of a
// plain decimal string.
func groupIntegerPart(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	grouped := printer.Sprintf("%d", n)
	if intPart == "-0" {
		grouped = "-0"
	}
	if hasFrac {
		return grouped + "." + fracPart
	}
	return grouped
}

// FormatLarge abbreviates large values: "~1.5 million", "~2.0 billion".
// Values below LargeNumberThreshold use comma-separated integers.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}
