package catalog

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// inr formats amounts with en-IN digit grouping (1,23,456.78).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice renders a single amount as a rupee string with exactly two
// decimal places.
func FormatPrice(p decimal.Decimal) string {
	f, _ := p.Float64()
	return inr.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatPriceRange renders a price range. When the upper bound is missing,
// equal to, or below the lower bound, the range collapses to a single value.
func FormatPriceRange(price decimal.Decimal, priceMax decimal.NullDecimal) string {
	if !priceMax.Valid || !priceMax.Decimal.GreaterThan(price) {
		return FormatPrice(price)
	}
	return FormatPrice(price) + " – " + FormatPrice(priceMax.Decimal)
}
