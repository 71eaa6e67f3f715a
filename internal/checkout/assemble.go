package checkout

import (
	"fmt"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/pricing"
)

// Assemble combines the cart snapshot, contact fields and selected options
// into an immutable order. Pure apart from the caller-supplied number:
// subtotal comes from the pricing table (bundle tiers included), shipping
// and payment fees are resolved from the same table, and
// total = subtotal + shipping + payment holds exactly.
func Assemble(
	number string,
	items []models.CartItem,
	contact models.CustomerContact,
	shipping models.ShippingMethod,
	payment models.PaymentMethod,
	pickupPoint *models.PickupPoint,
	table *pricing.Table,
) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot assemble an order from an empty cart")
	}

	shippingCost, err := table.ShippingCost(shipping)
	if err != nil {
		return nil, err
	}
	paymentCost, err := table.PaymentCost(payment)
	if err != nil {
		return nil, err
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	var subtotal float64
	for i := range items {
		item := &items[i]
		lineTotal := table.ItemTotal(item)
		subtotal += lineTotal
		orderItems = append(orderItems, models.OrderItem{
			ProductID:     item.ProductID,
			VariantID:     item.VariantID,
			ProductName:   item.ProductName,
			VariantName:   item.VariantName,
			Category:      item.Category,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     lineTotal,
			Photos:        item.Photos,
			CustomFields:  item.CustomFields,
			Orientation:   item.Orientation,
			DirectMailing: item.DirectMailing,
		})
	}

	if shipping != models.ShippingZasilkovna {
		pickupPoint = nil
	}

	return &models.Order{
		Number:       number,
		Contact:      contact,
		Shipping:     shipping,
		Payment:      payment,
		PickupPoint:  pickupPoint,
		Items:        orderItems,
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		PaymentCost:  paymentCost,
		Total:        subtotal + shippingCost + paymentCost,
		Status:       models.OrderStatusReceived,
	}, nil
}
