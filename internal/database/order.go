package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/magneticmemoriescz-bit/magnetic-memories-api/internal/models"
)

type OrderQueries struct {
	db *sql.DB
}

func NewOrderQueries(db *sql.DB) *OrderQueries {
	return &OrderQueries{db: db}
}

// CreateOrder persists the order and its item snapshots in one transaction.
func (q *OrderQueries) CreateOrder(order *models.Order) (*models.Order, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pointID, pointName, pointStreet, pointCity, pointZip *string
	if order.PickupPoint != nil {
		pointID = &order.PickupPoint.ID
		pointName = &order.PickupPoint.Name
		pointStreet = &order.PickupPoint.Street
		pointCity = &order.PickupPoint.City
		pointZip = &order.PickupPoint.Zip
	}

	query := `
		INSERT INTO orders (number, first_name, last_name, email, street, city, zip, note,
			shipping, payment, pickup_point_id, pickup_point_name, pickup_point_street,
			pickup_point_city, pickup_point_zip, subtotal, shipping_cost, payment_cost, total, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at
	`
	err = tx.QueryRow(query,
		order.Number,
		order.Contact.FirstName, order.Contact.LastName, order.Contact.Email,
		order.Contact.Street, order.Contact.City, order.Contact.Zip, order.Contact.Note,
		order.Shipping, order.Payment,
		pointID, pointName, pointStreet, pointCity, pointZip,
		order.Subtotal, order.ShippingCost, order.PaymentCost, order.Total,
		models.OrderStatusReceived,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Status = models.OrderStatusReceived

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, variant_id, product_name, variant_name,
			category, quantity, unit_price, line_total, photos, custom_fields, orientation, direct_mailing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	for i := range order.Items {
		item := &order.Items[i]
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
		err = tx.QueryRow(itemQuery,
			order.ID, item.ProductID, item.VariantID, item.ProductName, item.VariantName,
			item.Category, item.Quantity, item.UnitPrice, item.LineTotal,
			photosJSON, customJSON, item.Orientation, item.DirectMailing,
		).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		item.OrderID = order.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}
	return order, nil
}

// GetOrderByNumber returns the order for the confirmation page.
func (q *OrderQueries) GetOrderByNumber(number string) (*models.Order, error) {
	query := `
		SELECT id, number, first_name, last_name, email, street, city, zip, note,
			shipping, payment, pickup_point_id, pickup_point_name, pickup_point_street,
			pickup_point_city, pickup_point_zip, subtotal, shipping_cost, payment_cost, total,
			status, invoice_url, created_at
		FROM orders
		WHERE number = $1
	`
	order, err := q.scanOrder(q.db.QueryRow(query, number))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := q.getOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ListOrders returns a page of orders for the admin panel, optionally
// filtered by status.
func (q *OrderQueries) ListOrders(page, limit int, status string) (*models.OrderListResponse, error) {
	offset := (page - 1) * limit

	where := ""
	args := []interface{}{}
	if status != "" {
		where = "WHERE status = $1"
		args = append(args, status)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM orders %s", where)
	if err := q.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, number, first_name, last_name, email, street, city, zip, note,
			shipping, payment, pickup_point_id, pickup_point_name, pickup_point_street,
			pickup_point_city, pickup_point_zip, subtotal, shipping_cost, payment_cost, total,
			status, invoice_url, created_at
		FROM orders %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := q.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for i := range orders {
		items, err := q.getOrderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return &models.OrderListResponse{
		Orders: orders,
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// UpdateOrderStatus moves an order through the fulfilment states.
func (q *OrderQueries) UpdateOrderStatus(id int, status string) error {
	result, err := q.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

// SetInvoiceURL records the hosted invoice location after dispatch.
func (q *OrderQueries) SetInvoiceURL(id int, invoiceURL string) error {
	_, err := q.db.Exec(`UPDATE orders SET invoice_url = $1 WHERE id = $2`, invoiceURL, id)
	if err != nil {
		return fmt.Errorf("failed to set invoice url: %w", err)
	}
	return nil
}

func (q *OrderQueries) scanOrder(row interface {
	Scan(dest ...interface{}) error
}) (*models.Order, error) {
	order := &models.Order{}
	var pointID, pointName, pointStreet, pointCity, pointZip *string
	err := row.Scan(
		&order.ID,
		&order.Number,
		&order.Contact.FirstName,
		&order.Contact.LastName,
		&order.Contact.Email,
		&order.Contact.Street,
		&order.Contact.City,
		&order.Contact.Zip,
		&order.Contact.Note,
		&order.Shipping,
		&order.Payment,
		&pointID,
		&pointName,
		&pointStreet,
		&pointCity,
		&pointZip,
		&order.Subtotal,
		&order.ShippingCost,
		&order.PaymentCost,
		&order.Total,
		&order.Status,
		&order.InvoiceURL,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if pointID != nil {
		order.PickupPoint = &models.PickupPoint{
			ID:     *pointID,
			Name:   derefString(pointName),
			Street: derefString(pointStreet),
			City:   derefString(pointCity),
			Zip:    derefString(pointZip),
		}
	}
	return order, nil
}

func (q *OrderQueries) getOrderItems(orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, variant_id, product_name, variant_name,
			category, quantity, unit_price, line_total, photos, custom_fields, orientation, direct_mailing
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := q.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		var photosJSON, customJSON []byte
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.VariantID,
			&item.ProductName,
			&item.VariantName,
			&item.Category,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
			&photosJSON,
			&customJSON,
			&item.Orientation,
			&item.DirectMailing,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
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
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return items, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
