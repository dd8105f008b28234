// Package report projects the stock ledger and completed orders into the
// tabular view used by the report screen and the spreadsheet export.
package report

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/verus/warehouse/internal/model"
	"github.com/verus/warehouse/internal/store"
)

// StockRow is one equipment item in the report.
type StockRow struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
}

// OrderRow is one completed order in the report, with its line items
// flattened into a single display string.
type OrderRow struct {
	ID         int64  `json:"id"`
	OrderDate  string `json:"order_date"`
	CarNumber  string `json:"car_number"`
	Status     string `json:"status"`
	IsPairCrew string `json:"is_pair_crew"`
	Items      string `json:"items"`
}

// Report holds the stock and order tables.
type Report struct {
	Stock  []StockRow `json:"stock"`
	Orders []OrderRow `json:"orders"`
}

// Build reads current stock (ordered by title) and completed orders
// (newest-first) and renders them into report rows.
func Build(ctx context.Context, db *sql.DB) (*Report, error) {
	equipment, err := store.ListEquipment(ctx, db)
	if err != nil {
		return nil, err
	}

	stock := make([]StockRow, 0, len(equipment))
	for _, eq := range equipment {
		stock = append(stock, StockRow{
			ID:       eq.ID,
			Title:    eq.Title,
			Quantity: eq.Quantity,
			Image:    eq.Image,
		})
	}

	completed, err := store.ListOrders(ctx, db, model.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderRow, 0, len(completed))
	for _, o := range completed {
		orders = append(orders, OrderRow{
			ID:         o.ID,
			OrderDate:  o.OrderDate.Format("2006-01-02 15:04:05"),
			CarNumber:  o.CarNumber,
			Status:     o.Status,
			IsPairCrew: yesNo(o.IsPairCrew),
			Items:      formatItems(o.Items),
		})
	}

	return &Report{Stock: stock, Orders: orders}, nil
}

// formatItems renders line items as "Title x2, Other x1". Items whose
// equipment record has been deleted are skipped.
func formatItems(items []model.OrderLineItem) string {
	var parts []string
	for _, item := range items {
		if item.EquipmentTitle == "" {
			continue
		}
		parts = append(parts, item.EquipmentTitle+" x"+strconv.Itoa(item.Quantity))
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Да"
	}
	return "Нет"
}
