package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/records"
)

func TestCreateItem(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		e := newEnv(t)
		item, err := e.catalog.CreateItem(e.ctx, "Momo", "120.50", "40", "steamed")
		if err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
		if item.ID == 0 {
			t.Error("Expected ID to be allocated")
		}
		if !item.Price.Equal(decimal.RequireFromString("120.50")) {
			t.Errorf("Price parsed wrong: %s", item.Price)
		}
	})

	t.Run("invalid input rejected", func(t *testing.T) {
		e := newEnv(t)
		for _, args := range [][3]string{
			{"", "10", "1"},        // empty name
			{"Tea", "abc", "1"},    // non-numeric price
			{"Tea", "-1", "1"},     // negative price
			{"Tea", "10", "x"},     // non-numeric quantity
			{"Tea", "10", "-2"},    // negative quantity
			{"Tea", "10", "1.5"},   // fractional quantity
		} {
			if _, err := e.catalog.CreateItem(e.ctx, args[0], args[1], args[2], ""); !errors.Is(err, records.ErrValidation) {
				t.Errorf("CreateItem(%q,%q,%q): expected ErrValidation, got %v", args[0], args[1], args[2], err)
			}
		}
	})
}

func TestEditItem(t *testing.T) {
	e := newEnv(t)
	item := e.addItem(t, "Momo", "120.50")

	t.Run("overwrites all fields", func(t *testing.T) {
		if err := e.catalog.EditItem(e.ctx, item.ID, "Jhol Momo", "150", "20", "with soup"); err != nil {
			t.Fatalf("EditItem failed: %v", err)
		}
		got, ok := e.catalog.Item(item.ID)
		if !ok {
			t.Fatal("Item disappeared")
		}
		if got.Name != "Jhol Momo" || !got.Price.Equal(decimal.RequireFromString("150")) || got.Quantity != 20 {
			t.Errorf("Item not updated: %+v", got)
		}
	})

	t.Run("unknown item", func(t *testing.T) {
		if err := e.catalog.EditItem(e.ctx, 999, "X", "1", "1", ""); !errors.Is(err, records.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestItems(t *testing.T) {
	e := newEnv(t)
	e.addItem(t, "Momo", "120.50")
	e.addItem(t, "Tea", "25.00")
	e.addItem(t, "Chowmein", "90.00")

	items := e.catalog.Items()
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Errorf("Items not sorted by ID: %d after %d", items[i].ID, items[i-1].ID)
		}
	}
}

func TestItemName(t *testing.T) {
	e := newEnv(t)
	item := e.addItem(t, "Momo", "120.50")

	if got := e.catalog.ItemName(item.ID); got != "Momo" {
		t.Errorf("ItemName = %q, want Momo", got)
	}
	if err := e.catalog.DeleteItem(e.ctx, item.ID); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	want := fmt.Sprintf("Item#%d", item.ID)
	if got := e.catalog.ItemName(item.ID); got != want {
		t.Errorf("ItemName after delete = %q, want %q", got, want)
	}
}
