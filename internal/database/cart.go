package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

type CartQueries struct {
	db *sql.DB
}

func NewCartQueries(db *sql.DB) *CartQueries {
	return &CartQueries{db: db}
}

// GetOrCreateCartSession gets an existing cart session or creates a new one
func (q *CartQueries) GetOrCreateCartSession(sessionID string) (*models.CartSession, error) {
	session, err := q.GetCartSessionByID(sessionID)
	if err == nil {
		return session, nil
	}
	return q.CreateCartSession(sessionID)
}

// GetCartSessionByID gets a cart session by session ID
func (q *CartQueries) GetCartSessionByID(sessionID string) (*models.CartSession, error) {
	query := `
		SELECT id, session_id, created_at, updated_at
		FROM cart_sessions
		WHERE session_id = $1
	`
	session := &models.CartSession{}
	err := q.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.SessionID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cart session not found")
		}
		return nil, fmt.Errorf("failed to get cart session: %w", err)
	}
	return session, nil
}

// CreateCartSession creates a new cart session
func (q *CartQueries) CreateCartSession(sessionID string) (*models.CartSession, error) {
	session := &models.CartSession{SessionID: sessionID}

	query := `
		INSERT INTO cart_sessions (session_id)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	err := q.db.QueryRow(query, session.SessionID).Scan(
		&session.ID,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart session: %w", err)
	}
	return session, nil
}

// AddCartItem appends a new line item. Two adds of the same product always
// create two distinct lines; distinct photo sets make visually identical
// lines different goods.
func (q *CartQueries) AddCartItem(item *models.CartItem) (*models.CartItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	photosJSON, err := json.Marshal(item.Photos)
	if err != nil {
		return nil, fmt.Errorf("failed to encode photos: %w", err)
	}
	var customJSON []byte
	if item.CustomFields != nil {
		customJSON, err = json.Marshal(item.CustomFields)
		if err != nil {
			return nil, fmt.Errorf("failed to encode custom fields: %w", err)
		}
	}

	query := `
		INSERT INTO cart_items (id, cart_session_id, product_id, variant_id, product_name, variant_name,
			category, quantity, unit_price, photos, photo_group_id, custom_fields, orientation, direct_mailing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`
	err = q.db.QueryRow(query,
		item.ID, item.CartSessionID, item.ProductID, item.VariantID, item.ProductName, item.VariantName,
		item.Category, item.Quantity, item.UnitPrice, photosJSON, item.PhotoGroupID, customJSON,
		item.Orientation, item.DirectMailing,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// GetCartItems returns the cart's lines in insertion order.
func (q *CartQueries) GetCartItems(cartSessionID int) ([]models.CartItem, error) {
	query := `
		SELECT id, cart_session_id, product_id, variant_id, product_name, variant_name,
			category, quantity, unit_price, photos, photo_group_id, custom_fields, orientation,
			direct_mailing, created_at, updated_at
		FROM cart_items
		WHERE cart_session_id = $1
		ORDER BY created_at, id
	`
	rows, err := q.db.Query(query, cartSessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		var photosJSON []byte
		var customJSON []byte
		err := rows.Scan(
			&item.ID,
			&item.CartSessionID,
			&item.ProductID,
			&item.VariantID,
			&item.ProductName,
			&item.VariantName,
			&item.Category,
			&item.Quantity,
			&item.UnitPrice,
			&photosJSON,
			&item.PhotoGroupID,
			&customJSON,
			&item.Orientation,
			&item.DirectMailing,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		if err := json.Unmarshal(photosJSON, &item.Photos); err != nil {
			return nil, fmt.Errorf("failed to decode photos: %w", err)
		}
		if customJSON != nil {
			if err := json.Unmarshal(customJSON, &item.CustomFields); err != nil {
				return nil, fmt.Errorf("failed to decode custom fields: %w", err)
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	return items, nil
}

// UpdateCartItemQuantity sets a line's quantity. A quantity of zero or below
// removes the line instead of storing a meaningless zero-priced row.
func (q *CartQueries) UpdateCartItemQuantity(cartSessionID int, itemID string, quantity int) error {
	if quantity <= 0 {
		return q.RemoveCartItem(cartSessionID, itemID)
	}

	result, err := q.db.Exec(
		`UPDATE cart_items SET quantity = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND cart_session_id = $3`,
		quantity, itemID, cartSessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("cart item not found")
	}
	return nil
}

// RemoveCartItem deletes a line. Removing an unknown id is a no-op.
func (q *CartQueries) RemoveCartItem(cartSessionID int, itemID string) error {
	_, err := q.db.Exec(
		`DELETE FROM cart_items WHERE id = $1 AND cart_session_id = $2`,
		itemID, cartSessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// ClearCart empties the cart; invoked once after an order is dispatched.
func (q *CartQueries) ClearCart(cartSessionID int) error {
	_, err := q.db.Exec(`DELETE FROM cart_items WHERE cart_session_id = $1`, cartSessionID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// CountCartItems sums the quantities in the cart.
func (q *CartQueries) CountCartItems(cartSessionID int) (int, error) {
	var count int
	err := q.db.QueryRow(
		`SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE cart_session_id = $1`,
		cartSessionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
