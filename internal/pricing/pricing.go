// Package pricing holds the storefront price tables: flat shipping and
// payment fees, per-category bundle tiers and the direct-mailing surcharge.
// Everything here is pure arithmetic over injected tables so the checkout
// math is testable without a database or network.
package pricing

import (
	"fmt"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

// Table is the complete price list. Fees are flat amounts in Kč.
type Table struct {
	Shipping map[models.ShippingMethod]float64
	Payment  map[models.PaymentMethod]float64

	// Bundles maps product category -> exact quantity -> fixed total price.
	// A tier overrides unit*quantity only on an exact quantity match.
	Bundles map[string]map[int]float64

	// DirectMailingFee is added per unit for categories listed in
	// DirectMailingCategories when the cart line opts in.
	DirectMailingFee        float64
	DirectMailingCategories map[string]bool
}

// Default returns the current price list.
func Default() *Table {
	return &Table{
		Shipping: map[models.ShippingMethod]float64{
			models.ShippingZasilkovna: 65,
			models.ShippingPosta:      100,
			models.ShippingPostaDopis: 77,
			models.ShippingOsobne:     0,
		},
		Payment: map[models.PaymentMethod]float64{
			models.PaymentPrevodem: 0,
			models.PaymentDobirka:  30,
			models.PaymentHotove:   0,
		},
		Bundles: map[string]map[int]float64{
			models.CategoryMagnetsA5: {
				9:  205,
				15: 335,
				30: 640,
			},
			models.CategoryMagnetsClassic: {
				10: 249,
				20: 449,
				50: 999,
			},
			models.CategoryStickers: {
				10:  120,
				20:  220,
				50:  490,
				100: 890,
			},
		},
		DirectMailingFee: 100,
		DirectMailingCategories: map[string]bool{
			models.CategoryPostcards: true,
		},
	}
}

// ShippingCost resolves the flat fee for a shipping method.
func (t *Table) ShippingCost(method models.ShippingMethod) (float64, error) {
	fee, ok := t.Shipping[method]
	if !ok {
		return 0, fmt.Errorf("unknown shipping method %q", method)
	}
	return fee, nil
}

// PaymentCost resolves the surcharge for a payment method.
func (t *Table) PaymentCost(method models.PaymentMethod) (float64, error) {
	fee, ok := t.Payment[method]
	if !ok {
		return 0, fmt.Errorf("unknown payment method %q", method)
	}
	return fee, nil
}

// SupportsDirectMailing reports whether a category may carry the per-unit
// direct-mailing surcharge.
func (t *Table) SupportsDirectMailing(category string) bool {
	return t.DirectMailingCategories[category]
}

// LineTotal prices one cart line. An exact bundle-tier match for the
// category wins over linear unit*quantity; the direct-mailing surcharge is
// added on top either way.
func (t *Table) LineTotal(category string, unitPrice float64, quantity int, directMailing bool) float64 {
	total := unitPrice * float64(quantity)
	if tiers, ok := t.Bundles[category]; ok {
		if bundle, ok := tiers[quantity]; ok {
			total = bundle
		}
	}
	if directMailing && t.SupportsDirectMailing(category) {
		total += t.DirectMailingFee * float64(quantity)
	}
	return total
}

// ItemTotal prices a cart item via LineTotal.
func (t *Table) ItemTotal(item *models.CartItem) float64 {
	return t.LineTotal(item.Category, item.UnitPrice, item.Quantity, item.DirectMailing)
}

// Subtotal sums the line totals of a cart.
func (t *Table) Subtotal(items []models.CartItem) float64 {
	var subtotal float64
	for i := range items {
		subtotal += t.ItemTotal(&items[i])
	}
	return subtotal
}
