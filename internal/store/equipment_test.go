package store

import (
	"context"
	"errors"
	"testing"

	"github.com/verus/warehouse/internal/db"
)

func TestCreateAndGetEquipment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	eq, err := CreateEquipment(ctx, database, `Монитор Samsung 24"`, 15, "samsung-monitor.jpg")
	if err != nil {
		t.Fatalf("CreateEquipment: %v", err)
	}
	if eq.Title != `Монитор Samsung 24"` {
		t.Errorf("unexpected title %q", eq.Title)
	}
	if eq.Quantity != 15 {
		t.Errorf("expected quantity 15, got %d", eq.Quantity)
	}

	got, err := GetEquipment(ctx, database, eq.ID)
	if err != nil {
		t.Fatalf("GetEquipment: %v", err)
	}
	if got.Image != "samsung-monitor.jpg" {
		t.Errorf("unexpected image %q", got.Image)
	}
}

func TestCreateEquipmentValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	var ve *ValidationError
	if _, err := CreateEquipment(ctx, database, "", 1, ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for empty title, got %v", err)
	}
	if _, err := CreateEquipment(ctx, database, "Огнетушитель", -1, ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for negative quantity, got %v", err)
	} else if ve.Field != "quantity" {
		t.Errorf("expected quantity field error, got %q", ve.Field)
	}
}

func TestListEquipmentOrderedByTitle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateEquipment(ctx, database, "Трос буксировочный", 5, "")
	CreateEquipment(ctx, database, "Аптечка", 10, "")
	CreateEquipment(ctx, database, "Огнетушитель", 7, "")

	items, err := ListEquipment(ctx, database)
	if err != nil {
		t.Fatalf("ListEquipment: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Title > items[i].Title {
			t.Errorf("items not ordered by title: %q before %q", items[i-1].Title, items[i].Title)
		}
	}
}

func TestSetEquipmentQuantity(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	eq, _ := CreateEquipment(ctx, database, "Знак аварийной остановки", 3, "")

	updated, err := SetEquipmentQuantity(ctx, database, eq.ID, 12)
	if err != nil {
		t.Fatalf("SetEquipmentQuantity: %v", err)
	}
	if updated.Quantity != 12 {
		t.Errorf("expected quantity 12, got %d", updated.Quantity)
	}

	var ve *ValidationError
	if _, err := SetEquipmentQuantity(ctx, database, eq.ID, -5); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for negative quantity, got %v", err)
	}
}

func TestSetEquipmentQuantityNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := SetEquipmentQuantity(ctx, database, 999, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateEquipment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	eq, _ := CreateEquipment(ctx, database, "Лопата", 2, "old.jpg")

	updated, err := UpdateEquipment(ctx, database, eq.ID, "Лопата снеговая", 4, "new.jpg")
	if err != nil {
		t.Fatalf("UpdateEquipment: %v", err)
	}
	if updated.Title != "Лопата снеговая" || updated.Quantity != 4 || updated.Image != "new.jpg" {
		t.Errorf("unexpected equipment after update: %+v", updated)
	}

	if _, err := UpdateEquipment(ctx, database, 999, "x", 1, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEquipment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	eq, _ := CreateEquipment(ctx, database, "Перчатки", 20, "")

	if err := DeleteEquipment(ctx, database, eq.ID); err != nil {
		t.Fatalf("DeleteEquipment: %v", err)
	}
	if _, err := GetEquipment(ctx, database, eq.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteEquipment(ctx, database, eq.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}
