package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/verus/warehouse/internal/model"
)

// NewOrder holds the fields for creating an order with its line items.
type NewOrder struct {
	CarNumber  string
	OrderDate  time.Time // zero value means now
	Status     string    // empty means pending
	Notes      string
	IsPairCrew bool
	Items      []model.OrderLineItem
}

// CreateOrder creates an order together with its line items in a single
// transaction, so an order is never persisted without its items. Every
// referenced equipment item must exist at creation time.
func CreateOrder(ctx context.Context, db *sql.DB, o NewOrder) (*model.Order, error) {
	if o.CarNumber == "" {
		return nil, &ValidationError{Field: "car_number", Message: "car number is required"}
	}
	if len(o.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	if o.Status == "" {
		o.Status = model.OrderStatusPending
	}
	if !model.ValidOrderStatus(o.Status) {
		return nil, &ValidationError{Field: "status", Message: "invalid status"}
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Field: "items", Message: "item quantity must be positive"}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Referential check: every line item must point at existing equipment.
	for _, item := range o.Items {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM equipment WHERE id = ?`, item.EquipmentID,
		).Scan(&exists)
		if err == sql.ErrNoRows {
			return nil, &ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("equipment %d does not exist", item.EquipmentID),
			}
		}
		if err != nil {
			return nil, fmt.Errorf("checking equipment %d: %w", item.EquipmentID, err)
		}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (car_number, order_date, status, notes, is_pair_crew)
		 VALUES (?, ?, ?, ?, ?)`,
		o.CarNumber, o.OrderDate, o.Status, o.Notes, o.IsPairCrew,
	)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting order id: %w", err)
	}

	for _, item := range o.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, equipment_id, quantity) VALUES (?, ?, ?)`,
			orderID, item.EquipmentID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("creating order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return GetOrder(ctx, db, orderID)
}

// GetOrder returns an order with its line items by ID.
func GetOrder(ctx context.Context, db *sql.DB, id int64) (*model.Order, error) {
	o := &model.Order{}
	var notes sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, car_number, order_date, status, notes, is_pair_crew, created_at, updated_at
		 FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.CarNumber, &o.OrderDate, &o.Status, &notes, &o.IsPairCrew, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting order: %w", err)
	}
	o.Notes = notes.String

	items, err := loadOrderItems(ctx, db, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

// ListOrders returns orders newest-first by order date, optionally filtered
// by status.
func ListOrders(ctx context.Context, db *sql.DB, status string) ([]model.Order, error) {
	query := `SELECT id, car_number, order_date, status, notes, is_pair_crew, created_at, updated_at
	          FROM orders`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY order_date DESC, id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	index := make(map[int64]int)
	for rows.Next() {
		var o model.Order
		var notes sql.NullString
		if err := rows.Scan(&o.ID, &o.CarNumber, &o.OrderDate, &o.Status, &notes, &o.IsPairCrew, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		o.Notes = notes.String
		o.Items = []model.OrderLineItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.equipment_id, oi.quantity, COALESCE(e.title, '')
		 FROM order_items oi
		 LEFT JOIN equipment e ON e.id = oi.equipment_id
		 ORDER BY oi.order_id, oi.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderLineItem
		var orderID int64
		if err := itemRows.Scan(&item.ID, &orderID, &item.EquipmentID, &item.Quantity, &item.EquipmentTitle); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, itemRows.Err()
}

// UpdateOrder updates an order's fields. Line items are immutable once the
// order is created.
func UpdateOrder(ctx context.Context, db *sql.DB, id int64, carNumber string, orderDate time.Time, status, notes string, isPairCrew bool) (*model.Order, error) {
	if carNumber == "" {
		return nil, &ValidationError{Field: "car_number", Message: "car number is required"}
	}
	if !model.ValidOrderStatus(status) {
		return nil, &ValidationError{Field: "status", Message: "invalid status"}
	}

	result, err := db.ExecContext(ctx,
		`UPDATE orders SET car_number = ?, order_date = ?, status = ?, notes = ?, is_pair_crew = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		carNumber, orderDate, status, notes, isPairCrew, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("updating order: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}

	return GetOrder(ctx, db, id)
}

// DeleteOrder deletes an order and its line items.
func DeleteOrder(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("deleting order: %w", err)
	} else if n == 0 {
		return fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	return nil
}

func loadOrderItems(ctx context.Context, db *sql.DB, orderID int64) ([]model.OrderLineItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT oi.id, oi.equipment_id, oi.quantity, COALESCE(e.title, '')
		 FROM order_items oi
		 LEFT JOIN equipment e ON e.id = oi.equipment_id
		 WHERE oi.order_id = ?
		 ORDER BY oi.id`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderLineItem{}
	for rows.Next() {
		var item model.OrderLineItem
		if err := rows.Scan(&item.ID, &item.EquipmentID, &item.Quantity, &item.EquipmentTitle); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
