package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/tealeg/xlsx"

	"github.com/verus/warehouse/internal/db"
	"github.com/verus/warehouse/internal/model"
	"github.com/verus/warehouse/internal/store"
)

func seedReportData(t *testing.T) *Report {
	t.Helper()
	database := db.NewTestDB(t)
	ctx := context.Background()

	washer, err := store.CreateEquipment(ctx, database, "Незамерзайка -30", 16, "washer.jpg")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	monitor, _ := store.CreateEquipment(ctx, database, "Монитор", 14, "monitor.jpg")

	_, err = store.CreateOrder(ctx, database, store.NewOrder{
		CarNumber:  "А123ВС",
		OrderDate:  time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
		Status:     model.OrderStatusCompleted,
		IsPairCrew: true,
		Items: []model.OrderLineItem{
			{EquipmentID: washer.ID, Quantity: 4},
			{EquipmentID: monitor.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// Pending orders must not show up in the report.
	store.CreateOrder(ctx, database, store.NewOrder{
		CarNumber: "В456ЕК",
		Items:     []model.OrderLineItem{{EquipmentID: monitor.ID, Quantity: 2}},
	})

	rep, err := Build(ctx, database)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rep
}

func TestBuildReport(t *testing.T) {
	rep := seedReportData(t)

	if len(rep.Stock) != 2 {
		t.Fatalf("expected 2 stock rows, got %d", len(rep.Stock))
	}
	// Stock is ordered by title.
	if rep.Stock[0].Title != "Монитор" || rep.Stock[1].Title != "Незамерзайка -30" {
		t.Errorf("unexpected stock order: %q, %q", rep.Stock[0].Title, rep.Stock[1].Title)
	}

	if len(rep.Orders) != 1 {
		t.Fatalf("expected only the completed order, got %d rows", len(rep.Orders))
	}
	row := rep.Orders[0]
	if row.CarNumber != "А123ВС" {
		t.Errorf("unexpected car number %q", row.CarNumber)
	}
	if row.OrderDate != "2026-02-01 09:30:00" {
		t.Errorf("unexpected order date %q", row.OrderDate)
	}
	if row.IsPairCrew != "Да" {
		t.Errorf("expected pair crew 'Да', got %q", row.IsPairCrew)
	}
	if row.Items != "Незамерзайка -30 x4, Монитор x1" {
		t.Errorf("unexpected items string %q", row.Items)
	}
}

func TestReportSkipsDeletedEquipmentInItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	eq, _ := store.CreateEquipment(ctx, database, "Аптечка", 10, "")
	keep, _ := store.CreateEquipment(ctx, database, "Огнетушитель", 5, "")
	store.CreateOrder(ctx, database, store.NewOrder{
		CarNumber: "А123ВС",
		Status:    model.OrderStatusCompleted,
		Items: []model.OrderLineItem{
			{EquipmentID: eq.ID, Quantity: 1},
			{EquipmentID: keep.ID, Quantity: 2},
		},
	})
	store.DeleteEquipment(ctx, database, eq.ID)

	rep, err := Build(ctx, database)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Orders[0].Items != "Огнетушитель x2" {
		t.Errorf("expected orphaned item skipped, got %q", rep.Orders[0].Items)
	}
}

func TestWriteExcel(t *testing.T) {
	rep := seedReportData(t)

	var buf bytes.Buffer
	if err := WriteExcel(&buf, rep); err != nil {
		t.Fatalf("WriteExcel: %v", err)
	}

	file, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}

	stock, ok := file.Sheet["Остатки"]
	if !ok {
		t.Fatal("missing stock sheet")
	}
	if got := stock.Rows[0].Cells[1].Value; got != "Название" {
		t.Errorf("unexpected stock header %q", got)
	}
	if len(stock.Rows) != 3 {
		t.Errorf("expected header + 2 stock rows, got %d", len(stock.Rows))
	}
	if got := stock.Rows[1].Cells[1].Value; got != "Монитор" {
		t.Errorf("unexpected first stock row title %q", got)
	}

	orders, ok := file.Sheet["Заказы"]
	if !ok {
		t.Fatal("missing orders sheet")
	}
	if len(orders.Rows) != 2 {
		t.Fatalf("expected header + 1 order row, got %d", len(orders.Rows))
	}
	row := orders.Rows[1]
	if got := row.Cells[2].Value; got != "А123ВС" {
		t.Errorf("unexpected car number cell %q", got)
	}
	if got := row.Cells[4].Value; got != "Да" {
		t.Errorf("unexpected pair crew cell %q", got)
	}
	if got := row.Cells[5].Value; got != "Незамерзайка -30 x4, Монитор x1" {
		t.Errorf("unexpected items cell %q", got)
	}
}
