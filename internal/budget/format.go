package budget

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber groups thousands and shows cents only for fractional values.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%.0f", v)
	}
	return printer.Sprintf("%.2f", v)
}

// FormatCurrency renders a whole-dollar amount such as "$12,500".
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.0f", -v)
	}
	return "$" + printer.Sprintf("%.0f", v)
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

// FormatCell renders numeric cells with FormatNumber and text unchanged.
func FormatCell(c Cell) string {
	if c.Numeric {
		return FormatNumber(c.Value)
	}
	return c.Raw
}
