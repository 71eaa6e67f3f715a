package models

import (
	"time"
)

// CartSession ties a cart to the browser session cookie.
type CartSession struct {
	ID        int       `json:"id"`
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PhotoRef is one uploaded photo attached to a cart line.
type PhotoRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// CartItem is one configured line in the cart. The unit price is snapshotted
// at add time and never re-derived from the catalog.
type CartItem struct {
	ID            string            `json:"id"`
	CartSessionID int               `json:"-"`
	ProductID     int               `json:"product_id"`
	VariantID     *int              `json:"variant_id,omitempty"`
	ProductName   string            `json:"product_name"`
	VariantName   *string           `json:"variant_name,omitempty"`
	Category      string            `json:"category"`
	Quantity      int               `json:"quantity"`
	UnitPrice     float64           `json:"unit_price"`
	Photos        []PhotoRef        `json:"photos"`
	PhotoGroupID  *string           `json:"photo_group_id,omitempty"`
	CustomFields  map[string]string `json:"custom_fields,omitempty"`
	Orientation   *string           `json:"orientation,omitempty"`
	DirectMailing bool              `json:"direct_mailing"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CartItemRequest is the add-to-cart payload.
type CartItemRequest struct {
	ProductID     int               `json:"product_id" binding:"required"`
	VariantID     *int              `json:"variant_id,omitempty"`
	Quantity      int               `json:"quantity" binding:"required,min=1"`
	Photos        []PhotoRef        `json:"photos"`
	PhotoGroupID  *string           `json:"photo_group_id,omitempty"`
	CustomFields  map[string]string `json:"custom_fields,omitempty"`
	Orientation   *string           `json:"orientation,omitempty"`
	DirectMailing bool              `json:"direct_mailing"`
}

// CartItemUpdateRequest updates a line's quantity. A quantity of zero or
// below removes the line; the pointer lets an explicit zero survive binding
// while a missing field is still rejected.
type CartItemUpdateRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartItemLine is a cart item with its pricing-table line total.
type CartItemLine struct {
	CartItem
	LineTotal float64 `json:"line_total"`
}

type CartResponse struct {
	Items      []CartItemLine `json:"items"`
	TotalItems int            `json:"total_items"`
	Subtotal   float64        `json:"subtotal"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}
