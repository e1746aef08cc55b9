package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders a whole-rupee amount as display text with the
// rupee sign and locale digit grouping, no fractional digits.
func FormatPrice(amount int) string {
	return "₹" + inr.Sprint(number.Decimal(amount))
}
