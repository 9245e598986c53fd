package pricing

import (
	"fmt"
	"strings"

	"storefront-gateway/src/models"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Display formatting helpers used by checkout and account surfaces.
// -----------------------------------------------------------------------------

// currencySymbols maps ISO-4217 codes to their display symbols.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
}

// zeroFractionCurrencies have no minor unit.
var zeroFractionCurrencies = map[string]bool{
	"JPY": true,
}

var half = decimal.NewFromFloat(0.5)

// -----------------------------------------------------------------------------

// FormatCurrency renders an amount with its currency symbol, thousands
// grouping and two fraction digits. Negative amounts carry the sign before the
// symbol ("-$10.50"). An empty currency code defaults to USD; unknown codes
// fall back to "<CODE> <amount>".
func FormatCurrency(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(currencyCode)
	if code == "" {
		code = "USD"
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	places := int32(2)
	if zeroFractionCurrencies[code] {
		places = 0
	}

	fixed := amount.StringFixed(places)
	integer, fraction, _ := strings.Cut(fixed, ".")
	body := thousandSep(integer)
	if fraction != "" {
		body += "." + fraction
	}

	symbol, ok := currencySymbols[code]
	if !ok {
		return fmt.Sprintf("%s%s %s", sign, code, body)
	}
	return sign + symbol + body
}

// -----------------------------------------------------------------------------

// thousandSep inserts comma separators into a non-negative integer string.
func thousandSep(s string) string {
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// -----------------------------------------------------------------------------

// DiscountPercentage returns the rounded percentage saved between an original
// and a discounted price. Positive for a reduction, negative for an increase,
// 0 when the original price is 0. Rounding is half-up: an exact -10.5 rounds
// to -10, not -11.
func DiscountPercentage(original, discounted decimal.Decimal) int {
	if original.IsZero() {
		return 0
	}
	pct := original.Sub(discounted).Div(original).Mul(hundred)
	return int(pct.Add(half).Floor().IntPart())
}

// -----------------------------------------------------------------------------

// FormatBreakdown renders every section of a breakdown as a currency string.
// The discount entry is present only when the breakdown carries a discount.
func FormatBreakdown(breakdown *models.MPriceBreakdown) *models.MFormattedBreakdown {
	if breakdown == nil {
		return &models.MFormattedBreakdown{}
	}

	out := &models.MFormattedBreakdown{
		Subtotal: FormatCurrency(breakdown.Subtotal, breakdown.Currency),
		Shipping: FormatCurrency(breakdown.Shipping.Cost, breakdown.Currency),
		Tax:      FormatCurrency(breakdown.Tax.Amount, breakdown.Currency),
		Total:    FormatCurrency(breakdown.Total, breakdown.Currency),
	}
	if breakdown.Discount != nil {
		formatted := FormatCurrency(breakdown.Discount.Amount, breakdown.Currency)
		out.Discount = &formatted
	}
	return out
}

// -----------------------------------------------------------------------------

// Summary builds the one-line pricing summary. Subtotal and Total always
// appear; Shipping and Tax only when non-zero; Discount only when present,
// always rendered negative. Skipped sections leave no stray separators.
func Summary(breakdown *models.MPriceBreakdown) string {
	if breakdown == nil {
		return ""
	}

	segments := make([]string, 0, 5)
	segments = append(segments, "Subtotal: "+FormatCurrency(breakdown.Subtotal, breakdown.Currency))

	if breakdown.Shipping.Cost.IsPositive() {
		segments = append(segments, "Shipping: "+FormatCurrency(breakdown.Shipping.Cost, breakdown.Currency))
	}
	if breakdown.Tax.Amount.IsPositive() {
		segments = append(segments, "Tax: "+FormatCurrency(breakdown.Tax.Amount, breakdown.Currency))
	}
	if breakdown.Discount != nil {
		segments = append(segments, "Discount: "+FormatCurrency(breakdown.Discount.Amount.Abs().Neg(), breakdown.Currency))
	}

	segments = append(segments, "Total: "+FormatCurrency(breakdown.Total, breakdown.Currency))
	return strings.Join(segments, ", ")
}
