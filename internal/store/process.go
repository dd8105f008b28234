package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/verus/warehouse/internal/model"
)

// ProcessRequest is a crew's cart: selected quantities keyed by equipment id.
type ProcessRequest struct {
	Selections map[int64]int
	CarNumber  string
	IsPairCrew bool
	Notes      string
}

// StockUpdate reports the quantity of an equipment item after processing.
type StockUpdate struct {
	EquipmentID int64 `json:"equipment_id"`
	NewQuantity int   `json:"new_quantity"`
}

// ProcessResult is the outcome of a processing pass.
type ProcessResult struct {
	// Order is the persisted order record, or nil if no car number was
	// given or persisting it failed.
	Order        *model.Order          `json:"order,omitempty"`
	Items        []model.OrderLineItem `json:"items"`
	StockUpdates []StockUpdate         `json:"stock_updates"`
}

// ProcessOrder converts a cart into stock deductions and an order record.
//
// Items whose title contains marker (case-insensitive) are deducted at
// double the selected quantity when the order is for a pair crew; all other
// items are deducted as selected. If a car number is given, a completed
// order is recorded with the final quantities before stock is touched;
// recording it is best-effort and never blocks the deduction, so callers
// must tolerate an order without a matching deduction if the deduction
// later fails. The deductions themselves are applied atomically: each one
// is guarded against driving the quantity negative, and any shortage rolls
// back the whole batch with an InsufficientStockError.
func ProcessOrder(ctx context.Context, db *sql.DB, marker string, req ProcessRequest) (*ProcessResult, error) {
	if len(req.Selections) == 0 {
		return nil, &ValidationError{Field: "selections", Message: "at least one item must be selected"}
	}

	ids := make([]int64, 0, len(req.Selections))
	for id, qty := range req.Selections {
		if qty < 1 {
			return nil, &ValidationError{
				Field:   "selections",
				Message: fmt.Sprintf("quantity for equipment %d must be positive", id),
			}
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	marker = strings.ToLower(marker)

	// Compute final quantities from a snapshot and fail fast on obvious
	// shortages before anything is written. Races with concurrent
	// processing are caught again at deduction time.
	items := make([]model.OrderLineItem, 0, len(ids))
	for _, id := range ids {
		eq, err := GetEquipment(ctx, db, id)
		if err != nil {
			return nil, err
		}

		final := req.Selections[id]
		if req.IsPairCrew && marker != "" && strings.Contains(strings.ToLower(eq.Title), marker) {
			final *= 2
		}

		if final > eq.Quantity {
			return nil, &InsufficientStockError{
				EquipmentID: id,
				Requested:   final,
				Available:   eq.Quantity,
			}
		}

		items = append(items, model.OrderLineItem{EquipmentID: id, Quantity: final})
	}

	result := &ProcessResult{Items: items}

	// Best-effort order record. A failure here is logged and swallowed:
	// the stock deduction must proceed regardless.
	if req.CarNumber != "" {
		order, err := CreateOrder(ctx, db, NewOrder{
			CarNumber:  req.CarNumber,
			Status:     model.OrderStatusCompleted,
			Notes:      req.Notes,
			IsPairCrew: req.IsPairCrew,
			Items:      items,
		})
		if err != nil {
			slog.Error("failed to record order, continuing with stock deduction",
				"car_number", req.CarNumber, "error", err)
		} else {
			result.Order = order
		}
	}

	updates, err := deductStock(ctx, db, items)
	if err != nil {
		return nil, err
	}
	result.StockUpdates = updates
	return result, nil
}

// deductStock applies all deductions in one transaction. Each update is
// guarded so a concurrent order cannot drive a quantity negative; any
// shortage rolls the whole batch back.
func deductStock(ctx context.Context, db *sql.DB, items []model.OrderLineItem) ([]StockUpdate, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	updates := make([]StockUpdate, 0, len(items))
	for _, item := range items {
		result, err := tx.ExecContext(ctx,
			`UPDATE equipment SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ? AND quantity >= ?`,
			item.Quantity, item.EquipmentID, item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("deducting stock for equipment %d: %w", item.EquipmentID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("deducting stock for equipment %d: %w", item.EquipmentID, err)
		}
		if n == 0 {
			var available int
			err := tx.QueryRowContext(ctx,
				`SELECT quantity FROM equipment WHERE id = ?`, item.EquipmentID,
			).Scan(&available)
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("equipment %d: %w", item.EquipmentID, ErrNotFound)
			}
			if err != nil {
				return nil, fmt.Errorf("checking stock for equipment %d: %w", item.EquipmentID, err)
			}
			return nil, &InsufficientStockError{
				EquipmentID: item.EquipmentID,
				Requested:   item.Quantity,
				Available:   available,
			}
		}

		var newQty int
		err = tx.QueryRowContext(ctx,
			`SELECT quantity FROM equipment WHERE id = ?`, item.EquipmentID,
		).Scan(&newQty)
		if err != nil {
			return nil, fmt.Errorf("reading stock for equipment %d: %w", item.EquipmentID, err)
		}
		updates = append(updates, StockUpdate{EquipmentID: item.EquipmentID, NewQuantity: newQty})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock deduction: %w", err)
	}
	return updates, nil
}
