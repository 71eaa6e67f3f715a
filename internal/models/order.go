package models

import (
	"time"
)

// Shipping method identifiers. The fee for each lives in the pricing table.
type ShippingMethod string

const (
	ShippingZasilkovna ShippingMethod = "zasilkovna"
	ShippingPosta      ShippingMethod = "posta"
	ShippingPostaDopis ShippingMethod = "posta_dopis"
	ShippingOsobne     ShippingMethod = "osobne"
)

// Payment method identifiers.
type PaymentMethod string

const (
	PaymentPrevodem PaymentMethod = "prevodem"
	PaymentDobirka  PaymentMethod = "dobirka"
	PaymentHotove   PaymentMethod = "hotove"
)

// Order status constants
const (
	OrderStatusReceived     = "received"
	OrderStatusInProduction = "in_production"
	OrderStatusShipped      = "shipped"
	OrderStatusCancelled    = "cancelled"
)

// PickupPoint is a parcel-locker point selected through the delivery-network
// widget.
type PickupPoint struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

// CustomerContact holds the checkout contact and address fields. It lives
// only on the order; there are no customer accounts.
type CustomerContact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Note      string `json:"note,omitempty"`
}

// Order is the immutable record minted at successful checkout.
// Invariant: Total == Subtotal + ShippingCost + PaymentCost.
type Order struct {
	ID           int             `json:"id"`
	Number       string          `json:"number"`
	Contact      CustomerContact `json:"contact"`
	Shipping     ShippingMethod  `json:"shipping"`
	Payment      PaymentMethod   `json:"payment"`
	PickupPoint  *PickupPoint    `json:"pickup_point,omitempty"`
	Items        []OrderItem     `json:"items"`
	Subtotal     float64         `json:"subtotal"`
	ShippingCost float64         `json:"shipping_cost"`
	PaymentCost  float64         `json:"payment_cost"`
	Total        float64         `json:"total"`
	Status       string          `json:"status"`
	InvoiceURL   *string         `json:"invoice_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	ID            int               `json:"id"`
	OrderID       int               `json:"-"`
	ProductID     int               `json:"product_id"`
	VariantID     *int              `json:"variant_id,omitempty"`
	ProductName   string            `json:"product_name"`
	VariantName   *string           `json:"variant_name,omitempty"`
	Category      string            `json:"category"`
	Quantity      int               `json:"quantity"`
	UnitPrice     float64           `json:"unit_price"`
	LineTotal     float64           `json:"line_total"`
	Photos        []PhotoRef        `json:"photos"`
	CustomFields  map[string]string `json:"custom_fields,omitempty"`
	Orientation   *string           `json:"orientation,omitempty"`
	DirectMailing bool              `json:"direct_mailing"`
}

// CheckoutRequest carries the whole checkout form. Required-ness is not
// expressed in binding tags: the checkout contract reports every violated
// field at once, which gin's fail-fast binding cannot do.
type CheckoutRequest struct {
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Street        string       `json:"street"`
	City          string       `json:"city"`
	Zip           string       `json:"zip"`
	Note          string       `json:"note"`
	Shipping      string       `json:"shipping"`
	Payment       string       `json:"payment"`
	PickupPoint   *PickupPoint `json:"pickup_point,omitempty"`
	PickupPointID string       `json:"pickup_point_id,omitempty"`
	TermsAccepted bool         `json:"terms_accepted"`
}

// ValidationErrorResponse reports all violated checkout fields together.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

// ShippingOption is one row of the public shipping/payment price list.
type ShippingOption struct {
	Method string  `json:"method"`
	Fee    float64 `json:"fee"`
}

type CheckoutOptionsResponse struct {
	Shipping []ShippingOption `json:"shipping"`
	Payment  []ShippingOption `json:"payment"`
}
