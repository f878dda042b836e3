package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
)

// Catalog manages the menu items. Price and quantity arrive as the raw
// strings the presentation layer collected, and are validated here.
type Catalog struct {
	store *records.Store
}

// NewCatalog creates a Catalog over the given record store.
func NewCatalog(store *records.Store) *Catalog {
	return &Catalog{store: store}
}

// CreateItem validates the fields, allocates an ID and persists the item.
func (c *Catalog) CreateItem(ctx context.Context, name, price, quantity, description string) (*models.Item, error) {
	item, err := buildItem(name, price, quantity, description)
	if err != nil {
		return nil, err
	}
	if err := c.store.AddItem(ctx, item); err != nil {
		return nil, err
	}
	slog.Info("Item created", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// EditItem overwrites all mutable fields of an existing item.
func (c *Catalog) EditItem(ctx context.Context, id int, name, price, quantity, description string) error {
	updated, err := buildItem(name, price, quantity, description)
	if err != nil {
		return err
	}
	item, ok := c.store.Item(id)
	if !ok {
		return fmt.Errorf("%w: item %d", records.ErrNotFound, id)
	}
	item.Name = updated.Name
	item.Price = updated.Price
	item.Quantity = updated.Quantity
	item.Description = updated.Description
	if err := c.store.PersistItems(ctx); err != nil {
		return err
	}
	slog.Info("Item updated", "item_id", id)
	return nil
}

// DeleteItem removes an item unconditionally. Order lines referencing it
// keep their snapshots and display a placeholder name from then on.
func (c *Catalog) DeleteItem(ctx context.Context, id int) error {
	if err := c.store.RemoveItem(ctx, id); err != nil {
		return err
	}
	slog.Info("Item deleted", "item_id", id)
	return nil
}

// Items returns the catalog sorted by ID ascending.
func (c *Catalog) Items() []*models.Item {
	return c.store.Items()
}

// Item returns one catalog item by ID.
func (c *Catalog) Item(id int) (*models.Item, bool) {
	return c.store.Item(id)
}

// ItemName resolves an item ID to its name, falling back to the
// Item#<id> placeholder when the catalog lookup misses.
func (c *Catalog) ItemName(id int) string {
	if item, ok := c.store.Item(id); ok {
		return item.Name
	}
	return fmt.Sprintf("Item#%d", id)
}

func buildItem(name, price, quantity, description string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", records.ErrValidation)
	}
	p, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || p.IsNegative() {
		return nil, fmt.Errorf("%w: price must be a non-negative number", records.ErrValidation)
	}
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || q < 0 {
		return nil, fmt.Errorf("%w: quantity must be a non-negative integer", records.ErrValidation)
	}
	return &models.Item{
		Name:        name,
		Price:       p,
		Quantity:    q,
		Description: strings.TrimSpace(description),
	}, nil
}
