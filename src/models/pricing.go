package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

// MPriceBreakdown is the authoritative, server-computed decomposition of an
// order total. It is immutable once received; the checkout backend regenerates
// it on every pricing request.
type MPriceBreakdown struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     MShippingLine   `json:"shipping"`
	Tax          MTaxLine        `json:"tax"`
	Discount     *MDiscountLine  `json:"discount,omitempty"`
	Total        decimal.Decimal `json:"total"`
	Currency     string          `json:"currency"`
	CalculatedAt time.Time       `json:"calculated_at"`
}

// -----------------------------------------------------------------------------

// MShippingLine is the shipping component of a price breakdown.
type MShippingLine struct {
	MethodID   string          `json:"method_id"`
	MethodName string          `json:"method_name"`
	Cost       decimal.Decimal `json:"cost"`
}

// -----------------------------------------------------------------------------

// MTaxLine is the tax component of a price breakdown.
type MTaxLine struct {
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	Location string          `json:"location"`
}

// -----------------------------------------------------------------------------

// MDiscountLine is the optional discount component of a price breakdown.
// Type is "percentage" or "fixed"; Amount is the resolved money value.
type MDiscountLine struct {
	Code   string          `json:"code"`
	Type   string          `json:"type"`
	Value  decimal.Decimal `json:"value"`
	Amount decimal.Decimal `json:"amount"`
}

// -----------------------------------------------------------------------------

// MClientEstimate is a client-computed partial price estimate. Nil fields were
// not computed by the client and are never checked.
type MClientEstimate struct {
	Subtotal     *decimal.Decimal `json:"subtotal,omitempty"`
	ShippingCost *decimal.Decimal `json:"shipping_cost,omitempty"`
	TaxAmount    *decimal.Decimal `json:"tax_amount,omitempty"`
	Total        *decimal.Decimal `json:"total,omitempty"`
}

// -----------------------------------------------------------------------------

// MDiscrepancy is a field-level mismatch between a client estimate and the
// authoritative breakdown exceeding the tolerance.
type MDiscrepancy struct {
	Field      string          `json:"field"` // "subtotal", "shipping", "tax" or "total"
	Frontend   decimal.Decimal `json:"frontend"`
	Backend    decimal.Decimal `json:"backend"`
	Difference decimal.Decimal `json:"difference"`
	Percentage decimal.Decimal `json:"percentage"` // difference/backend*100, 2 decimals, 0 when backend is 0
}

// -----------------------------------------------------------------------------

// MValidationResult is the outcome of a price reconciliation pass.
type MValidationResult struct {
	IsValid       bool           `json:"is_valid"`
	Discrepancies []MDiscrepancy `json:"discrepancies"`
	Warnings      []string       `json:"warnings"`
}

// -----------------------------------------------------------------------------

// MCartLineItem is one cart line as submitted for line-item validation.
type MCartLineItem struct {
	ID         string          `json:"id"`
	VariantID  string          `json:"variant_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Variant    MCartVariant    `json:"variant"`
}

// -----------------------------------------------------------------------------

// MCartVariant carries the pricing expectations for a cart line item.
type MCartVariant struct {
	Name      string           `json:"name"`
	BasePrice decimal.Decimal  `json:"base_price"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	OnSale    bool             `json:"on_sale"`
	Product   *MCartProduct    `json:"product,omitempty"`
}

// -----------------------------------------------------------------------------

// MCartProduct is the product a cart variant belongs to.
type MCartProduct struct {
	Name string `json:"name"`
}

// -----------------------------------------------------------------------------

// MCartIssueReport is the outcome of a single cart line-item validation.
type MCartIssueReport struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues"`
}

// -----------------------------------------------------------------------------

// MFormattedBreakdown holds the display-formatted rendition of a breakdown.
// Discount is nil when the breakdown carries no discount.
type MFormattedBreakdown struct {
	Subtotal string  `json:"subtotal"`
	Shipping string  `json:"shipping"`
	Tax      string  `json:"tax"`
	Discount *string `json:"discount,omitempty"`
	Total    string  `json:"total"`
}
