package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a user-correctable problem with a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InsufficientStockError is returned when a deduction would drive an
// equipment quantity below zero.
type InsufficientStockError struct {
	EquipmentID int64
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for equipment %d: need %d, have %d",
		e.EquipmentID, e.Requested, e.Available)
}
