package pricing

import (
	"fmt"
	"time"

	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Reconciler
// -----------------------------------------------------------------------------

var (
	defaultTolerance  = decimal.NewFromFloat(0.01)
	defaultStaleAfter = 5 * time.Minute
	hundred           = decimal.NewFromInt(100)
)

// Reconciler compares client-computed price estimates against the
// authoritative server breakdown and validates cart line items. All methods
// are synchronous, side-effect-free and never panic on partial input.
type Reconciler struct {
	Name       string
	Logger     *logger.Logger
	tolerance  decimal.Decimal
	staleAfter time.Duration
	now        func() time.Time
}

// -----------------------------------------------------------------------------

// NewReconciler creates a Reconciler from the pricing configuration. Empty or
// unparsable settings fall back to the defaults (one cent, five minutes).
// The logger is required.
func NewReconciler(cfg *models.MPricingConfig, log *logger.Logger) *Reconciler {
	r := &Reconciler{
		Name:       "PriceReconciler",
		Logger:     log,
		tolerance:  defaultTolerance,
		staleAfter: defaultStaleAfter,
		now:        time.Now,
	}

	if cfg == nil {
		return r
	}

	if cfg.Tolerance != "" {
		tol, err := decimal.NewFromString(cfg.Tolerance)
		if err != nil || tol.IsNegative() {
			log.Warning("%s : invalid tolerance %q, keeping default %s", r.Name, cfg.Tolerance, r.tolerance)
		} else {
			r.tolerance = tol
		}
	}

	if cfg.StaleAfter != "" {
		window, err := time.ParseDuration(cfg.StaleAfter)
		if err != nil || window <= 0 {
			log.Warning("%s : invalid stale_after %q, keeping default %s", r.Name, cfg.StaleAfter, r.staleAfter)
		} else {
			r.staleAfter = window
		}
	}

	return r
}

// -----------------------------------------------------------------------------
// Price validation
// -----------------------------------------------------------------------------

// ValidatePrices checks every field the client estimate supplies against the
// authoritative breakdown. Differences within the tolerance are rounding noise
// and ignored; anything beyond it is recorded as a discrepancy with a
// human-readable warning. Fields the estimate omits are never checked.
func (r *Reconciler) ValidatePrices(estimate *models.MClientEstimate, breakdown *models.MPriceBreakdown) *models.MValidationResult {
	result := &models.MValidationResult{
		IsValid:       true,
		Discrepancies: []models.MDiscrepancy{},
		Warnings:      []string{},
	}

	if estimate == nil || breakdown == nil {
		return result
	}

	// Fixed check order: subtotal, shipping, tax, total.
	checks := []struct {
		field  string
		client *decimal.Decimal
		server decimal.Decimal
	}{
		{"subtotal", estimate.Subtotal, breakdown.Subtotal},
		{"shipping", estimate.ShippingCost, breakdown.Shipping.Cost},
		{"tax", estimate.TaxAmount, breakdown.Tax.Amount},
		{"total", estimate.Total, breakdown.Total},
	}

	for _, check := range checks {
		if check.client == nil {
			continue
		}

		difference := check.client.Sub(check.server).Abs()
		if difference.LessThanOrEqual(r.tolerance) {
			continue
		}

		// Percentage is 0 when the server value is 0 (no division by zero).
		percentage := decimal.Zero
		if !check.server.IsZero() {
			percentage = difference.Div(check.server).Mul(hundred).Round(2)
		}

		result.Discrepancies = append(result.Discrepancies, models.MDiscrepancy{
			Field:      check.field,
			Frontend:   *check.client,
			Backend:    check.server,
			Difference: difference,
			Percentage: percentage,
		})
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%s price mismatch: expected $%s, got $%s",
			check.field, check.server.StringFixed(2), check.client.StringFixed(2),
		))
	}

	result.IsValid = len(result.Discrepancies) == 0

	if !result.IsValid {
		r.Logger.Warning("%s : %d price discrepancies detected", r.Name, len(result.Discrepancies))
	}

	return result
}

// -----------------------------------------------------------------------------
// Cart line-item validation
// -----------------------------------------------------------------------------

// ValidateCartItem checks a single cart line for pricing consistency: unit
// price and quantity positivity, line total arithmetic, and whether the unit
// price matches the sale or base price the variant advertises. Multiple issues
// may co-occur on one line.
func (r *Reconciler) ValidateCartItem(item *models.MCartLineItem) *models.MCartIssueReport {
	report := &models.MCartIssueReport{IsValid: true, Issues: []string{}}
	if item == nil {
		return report
	}

	name := itemDisplayName(item)

	if item.UnitPrice.LessThanOrEqual(decimal.Zero) {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"Invalid unit price for %s: %s", name, item.UnitPrice))
	}
	if item.Quantity <= 0 {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"Invalid quantity for %s: %d", name, item.Quantity))
	}

	expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if item.TotalPrice.Sub(expected).Abs().GreaterThan(r.tolerance) {
		report.Issues = append(report.Issues, fmt.Sprintf(
			"Price calculation error for %s: Expected $%s, got $%s",
			name, expected.StringFixed(2), item.TotalPrice.StringFixed(2)))
	}

	if item.Variant.OnSale && item.Variant.SalePrice != nil {
		if item.UnitPrice.Sub(*item.Variant.SalePrice).Abs().GreaterThan(r.tolerance) {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"Sale price mismatch for %s: Expected $%s, got $%s",
				name, item.Variant.SalePrice, item.UnitPrice))
		}
	} else {
		if item.UnitPrice.Sub(item.Variant.BasePrice).Abs().GreaterThan(r.tolerance) {
			report.Issues = append(report.Issues, fmt.Sprintf(
				"Base price mismatch for %s: Expected $%s, got $%s",
				name, item.Variant.BasePrice, item.UnitPrice))
		}
	}

	report.IsValid = len(report.Issues) == 0
	return report
}

// -----------------------------------------------------------------------------

// itemDisplayName resolves the name used in issue strings: the product name if
// present, the variant name as fallback, the literal "item" otherwise.
func itemDisplayName(item *models.MCartLineItem) string {
	if item.Variant.Product != nil && item.Variant.Product.Name != "" {
		return item.Variant.Product.Name
	}
	if item.Variant.Name != "" {
		return item.Variant.Name
	}
	return "item"
}

// -----------------------------------------------------------------------------
// Estimation
// -----------------------------------------------------------------------------

// EstimateTotal computes the client-side order total: line-item subtotal plus
// shipping plus tax minus discount, clamped at zero. A discount larger than
// the sum yields exactly 0, never a negative total.
func (r *Reconciler) EstimateTotal(items []models.MCartLineItem, shippingCost, taxRate, discountAmount decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tax := subtotal.Mul(taxRate)
	total := subtotal.Add(shippingCost).Add(tax).Sub(discountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total.Round(2)
}

// -----------------------------------------------------------------------------
// Staleness
// -----------------------------------------------------------------------------

// IsStale reports whether a breakdown is older than the staleness window,
// strictly. A breakdown aged exactly the window is still fresh, and timestamps
// in the future are never stale.
func (r *Reconciler) IsStale(calculatedAt time.Time) bool {
	return r.now().Sub(calculatedAt) > r.staleAfter
}
