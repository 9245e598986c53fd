package pricing

import (
	"testing"

	"storefront-gateway/src/models"

	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// FormatCurrency
// -----------------------------------------------------------------------------

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.56", "USD", "$1,234.56"},
		{"0", "USD", "$0.00"},
		{"-10.50", "USD", "-$10.50"},
		{"99.99", "EUR", "€99.99"},
		{"99.99", "GBP", "£99.99"},
		{"99.99", "CAD", "CA$99.99"},
		{"99.99", "AUD", "A$99.99"},
		{"1234", "JPY", "¥1,234"},
		{"1000000", "USD", "$1,000,000.00"},
		{"99.99", "", "$99.99"},
		{"99.99", "usd", "$99.99"},
		{"99.99", "CHF", "CHF 99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, FormatCurrency(dec(tt.amount), tt.currency))
		})
	}
}

// -----------------------------------------------------------------------------
// DiscountPercentage
// -----------------------------------------------------------------------------

func TestDiscountPercentage(t *testing.T) {
	require.Equal(t, 10, DiscountPercentage(dec("100"), dec("90")))
	require.Equal(t, -10, DiscountPercentage(dec("100"), dec("110")))
	require.Equal(t, 0, DiscountPercentage(dec("0"), dec("10")))
	require.Equal(t, 33, DiscountPercentage(dec("29.99"), dec("19.99")))
	require.Equal(t, 100, DiscountPercentage(dec("50"), dec("0")))
}

func TestDiscountPercentageRoundsHalfUp(t *testing.T) {
	// Exact halves round toward positive infinity on both sides of zero.
	require.Equal(t, 11, DiscountPercentage(dec("100"), dec("89.50")))
	require.Equal(t, -10, DiscountPercentage(dec("200"), dec("221")))
	require.Equal(t, -11, DiscountPercentage(dec("200"), dec("221.20")))
}

// -----------------------------------------------------------------------------
// FormatBreakdown
// -----------------------------------------------------------------------------

func TestFormatBreakdown(t *testing.T) {
	formatted := FormatBreakdown(&models.MPriceBreakdown{
		Subtotal: dec("150.00"),
		Shipping: models.MShippingLine{Cost: dec("5.00")},
		Tax:      models.MTaxLine{Amount: dec("12.00")},
		Discount: &models.MDiscountLine{Code: "SAVE10", Amount: dec("10.00")},
		Total:    dec("157.00"),
		Currency: "USD",
	})

	require.Equal(t, "$150.00", formatted.Subtotal)
	require.Equal(t, "$5.00", formatted.Shipping)
	require.Equal(t, "$12.00", formatted.Tax)
	require.Equal(t, "$157.00", formatted.Total)
	require.NotNil(t, formatted.Discount)
	require.Equal(t, "$10.00", *formatted.Discount)
}

func TestFormatBreakdownWithoutDiscount(t *testing.T) {
	formatted := FormatBreakdown(&models.MPriceBreakdown{
		Subtotal: dec("150.00"),
		Total:    dec("150.00"),
		Currency: "USD",
	})
	require.Nil(t, formatted.Discount)
}

func TestFormatBreakdownNil(t *testing.T) {
	require.NotNil(t, FormatBreakdown(nil))
}

// -----------------------------------------------------------------------------
// Summary
// -----------------------------------------------------------------------------

func TestSummarySkipsZeroSections(t *testing.T) {
	summary := Summary(&models.MPriceBreakdown{
		Subtotal: dec("150.00"),
		Shipping: models.MShippingLine{Cost: dec("0")},
		Tax:      models.MTaxLine{Amount: dec("12.00")},
		Total:    dec("162.00"),
		Currency: "USD",
	})

	require.Equal(t, "Subtotal: $150.00, Tax: $12.00, Total: $162.00", summary)
	require.NotContains(t, summary, "Shipping")
}

func TestSummaryAllSections(t *testing.T) {
	summary := Summary(&models.MPriceBreakdown{
		Subtotal: dec("150.00"),
		Shipping: models.MShippingLine{Cost: dec("5.00")},
		Tax:      models.MTaxLine{Amount: dec("12.00")},
		Discount: &models.MDiscountLine{Code: "SAVE10", Amount: dec("10.00")},
		Total:    dec("157.00"),
		Currency: "USD",
	})

	require.Equal(t,
		"Subtotal: $150.00, Shipping: $5.00, Tax: $12.00, Discount: -$10.00, Total: $157.00",
		summary)
}

func TestSummaryDiscountAlwaysNegative(t *testing.T) {
	// Some backends report the discount as a negative amount already; the
	// summary renders it negative either way.
	summary := Summary(&models.MPriceBreakdown{
		Subtotal: dec("150.00"),
		Discount: &models.MDiscountLine{Code: "SAVE10", Amount: dec("-10.00")},
		Total:    dec("140.00"),
		Currency: "USD",
	})
	require.Contains(t, summary, "Discount: -$10.00")
}

func TestSummaryNil(t *testing.T) {
	require.Equal(t, "", Summary(nil))
}
