package billing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount for display with grouped thousands and a
// fixed two decimal places. Stored values keep full precision; this is the
// only place rounding happens.
func FormatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}
