package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/verus/warehouse/internal/model"
)

// CreateEquipment creates a new equipment item.
func CreateEquipment(ctx context.Context, db *sql.DB, title string, quantity int, image string) (*model.Equipment, error) {
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity must not be negative"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO equipment (title, quantity, image) VALUES (?, ?, ?)`,
		title, quantity, image,
	)
	if err != nil {
		return nil, fmt.Errorf("creating equipment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting equipment id: %w", err)
	}

	return GetEquipment(ctx, db, id)
}

// GetEquipment returns an equipment item by ID.
func GetEquipment(ctx context.Context, db *sql.DB, id int64) (*model.Equipment, error) {
	eq := &model.Equipment{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, quantity, image, created_at, updated_at
		 FROM equipment WHERE id = ?`, id,
	).Scan(&eq.ID, &eq.Title, &eq.Quantity, &eq.Image, &eq.CreatedAt, &eq.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting equipment: %w", err)
	}
	return eq, nil
}

// ListEquipment returns all equipment items ordered by title.
func ListEquipment(ctx context.Context, db *sql.DB) ([]model.Equipment, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, quantity, image, created_at, updated_at
		 FROM equipment ORDER BY title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()

	var items []model.Equipment
	for rows.Next() {
		var eq model.Equipment
		if err := rows.Scan(&eq.ID, &eq.Title, &eq.Quantity, &eq.Image, &eq.CreatedAt, &eq.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		items = append(items, eq)
	}
	return items, rows.Err()
}

// UpdateEquipment updates all fields of an equipment item.
func UpdateEquipment(ctx context.Context, db *sql.DB, id int64, title string, quantity int, image string) (*model.Equipment, error) {
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "title is required"}
	}
	if quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity must not be negative"}
	}

	result, err := db.ExecContext(ctx,
		`UPDATE equipment SET title = ?, quantity = ?, image = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		title, quantity, image, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating equipment: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("updating equipment: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}

	return GetEquipment(ctx, db, id)
}

// SetEquipmentQuantity sets the absolute stock quantity of an equipment item.
func SetEquipmentQuantity(ctx context.Context, db *sql.DB, id int64, quantity int) (*model.Equipment, error) {
	if quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Message: "quantity must not be negative"}
	}

	result, err := db.ExecContext(ctx,
		`UPDATE equipment SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		quantity, id,
	)
	if err != nil {
		return nil, fmt.Errorf("setting equipment quantity: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("setting equipment quantity: %w", err)
	} else if n == 0 {
		return nil, fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}

	return GetEquipment(ctx, db, id)
}

// DeleteEquipment deletes an equipment item. Historical order line items
// referencing it are kept.
func DeleteEquipment(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	} else if n == 0 {
		return fmt.Errorf("equipment %d: %w", id, ErrNotFound)
	}
	return nil
}
