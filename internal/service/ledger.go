package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
)

// OrderLedger owns the order lifecycle: creation, line mutation with
// price-snapshot semantics, and deletion. Billed orders are immutable; any
// mutation of one fails with ErrOrderBilled.
type OrderLedger struct {
	store   *records.Store
	catalog *Catalog
}

// NewOrderLedger creates an OrderLedger over the given record store and
// catalog.
func NewOrderLedger(store *records.Store, catalog *Catalog) *OrderLedger {
	return &OrderLedger{store: store, catalog: catalog}
}

// CreateOrder opens a new empty order placed by the given staff username.
// An order requires a selectable placing staff member, so creation fails
// while the directory holds no staff at all.
func (l *OrderLedger) CreateOrder(ctx context.Context, placedBy string) (*models.Order, error) {
	placedBy = strings.TrimSpace(placedBy)
	if placedBy == "" {
		return nil, fmt.Errorf("%w: placing staff username is required", records.ErrValidation)
	}
	if l.store.StaffCount() == 0 {
		return nil, fmt.Errorf("%w: no staff accounts exist", records.ErrValidation)
	}

	order := &models.Order{
		CreatedAt: time.Now(),
		PlacedBy:  placedBy,
	}
	if err := l.store.AddOrder(ctx, order); err != nil {
		return nil, err
	}
	slog.Info("Order created", "order_id", order.ID, "placed_by", placedBy)
	return order, nil
}

// AddLine adds qtyDelta of an item to the order, merging into an existing
// line for the same item. A merged line keeps the price snapshot from its
// first addition and does not require the item to still exist in the
// catalog; a new line snapshots the item's current catalog price and fails
// if the item is gone.
func (l *OrderLedger) AddLine(ctx context.Context, order *models.Order, itemID, qtyDelta int) error {
	if order.Billed {
		return fmt.Errorf("%w: order %d", records.ErrOrderBilled, order.ID)
	}
	if qtyDelta <= 0 {
		return fmt.Errorf("%w: quantity must be positive", records.ErrValidation)
	}

	if idx := order.LineFor(itemID); idx >= 0 {
		order.Lines[idx].Qty += qtyDelta
	} else {
		item, ok := l.catalog.Item(itemID)
		if !ok {
			return fmt.Errorf("%w: item %d is not in the catalog", records.ErrValidation, itemID)
		}
		order.Lines = append(order.Lines, models.OrderLine{
			ItemID:    itemID,
			Qty:       qtyDelta,
			UnitPrice: item.Price,
		})
	}
	return l.store.PersistOrders(ctx)
}

// SetLineQty overwrites the quantity of the line at index. The price
// snapshot is unchanged.
func (l *OrderLedger) SetLineQty(ctx context.Context, order *models.Order, index, qty int) error {
	if order.Billed {
		return fmt.Errorf("%w: order %d", records.ErrOrderBilled, order.ID)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive", records.ErrValidation)
	}
	if index < 0 || index >= len(order.Lines) {
		return fmt.Errorf("%w: line %d out of range", records.ErrValidation, index)
	}
	order.Lines[index].Qty = qty
	return l.store.PersistOrders(ctx)
}

// RemoveLine removes the line at index, shifting later lines down.
func (l *OrderLedger) RemoveLine(ctx context.Context, order *models.Order, index int) error {
	if order.Billed {
		return fmt.Errorf("%w: order %d", records.ErrOrderBilled, order.ID)
	}
	if index < 0 || index >= len(order.Lines) {
		return fmt.Errorf("%w: line %d out of range", records.ErrValidation, index)
	}
	order.Lines = append(order.Lines[:index], order.Lines[index+1:]...)
	return l.store.PersistOrders(ctx)
}

// Total returns the order total, always derived from the lines.
func (l *OrderLedger) Total(order *models.Order) decimal.Decimal {
	return order.Total()
}

// DeleteOrder removes an unbilled order.
func (l *OrderLedger) DeleteOrder(ctx context.Context, id int) error {
	if err := l.store.RemoveOrder(ctx, id); err != nil {
		return err
	}
	slog.Info("Order deleted", "order_id", id)
	return nil
}

// Order returns one order by ID.
func (l *OrderLedger) Order(id int) (*models.Order, bool) {
	return l.store.Order(id)
}

// Orders returns all orders sorted by ID ascending.
func (l *OrderLedger) Orders() []*models.Order {
	return l.store.Orders()
}

// LineView is one order line prepared for display, with the item name
// resolved (or the placeholder for a deleted item).
type LineView struct {
	No        int
	ItemID    int
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Lines returns the order's lines in order of addition, ready for display.
func (l *OrderLedger) Lines(order *models.Order) []LineView {
	views := make([]LineView, len(order.Lines))
	for i, line := range order.Lines {
		views[i] = LineView{
			No:        i + 1,
			ItemID:    line.ItemID,
			Name:      l.catalog.ItemName(line.ItemID),
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal(),
		}
	}
	return views
}
