package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders an amount in Pakistani rupees with digit grouping,
// e.g. "Rs 2,499". Up to two fraction digits are shown, none are forced.
func FormatPrice(price float64) string {
	return pricePrinter.Sprintf("Rs %v", number.Decimal(price, number.MaxFractionDigits(2)))
}
