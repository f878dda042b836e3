package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
)

// LoadOrders reads the full order collection including line items, keyed
// by order ID. Lines come back in their original order of addition.
func (s *SQLiteStore) LoadOrders(ctx context.Context) (map[int]*models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, created_at, placed_by, billed FROM orders",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make(map[int]*models.Order)
	for rows.Next() {
		order := &models.Order{}
		var createdAt int64
		var billed int
		if err := rows.Scan(&order.ID, &createdAt, &order.PlacedBy, &billed); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.CreatedAt = time.Unix(createdAt, 0)
		order.Billed = billed != 0
		orders[order.ID] = order
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	lineRows, err := s.db.QueryContext(ctx,
		"SELECT order_id, item_id, qty, unit_price FROM order_lines ORDER BY order_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var orderID int
		var line models.OrderLine
		var unitPrice string
		if err := lineRows.Scan(&orderID, &line.ItemID, &line.Qty, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		line.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to parse order %d line price %q: %w", orderID, unitPrice, err)
		}
		order, ok := orders[orderID]
		if !ok {
			return nil, fmt.Errorf("order line references unknown order %d", orderID)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return orders, nil
}

// SaveOrders replaces the stored order collection with the given one.
func (s *SQLiteStore) SaveOrders(ctx context.Context, orders map[int]*models.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// order_lines rows go with their orders via ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}

	for _, order := range orders {
		billed := 0
		if order.Billed {
			billed = 1
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO orders (id, created_at, placed_by, billed) VALUES (?, ?, ?, ?)",
			order.ID, order.CreatedAt.Unix(), order.PlacedBy, billed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order %d: %w", order.ID, err)
		}

		for pos, line := range order.Lines {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO order_lines (order_id, position, item_id, qty, unit_price) VALUES (?, ?, ?, ?, ?)",
				order.ID, pos, line.ItemID, line.Qty, line.UnitPrice.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert order %d line %d: %w", order.ID, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}
	return nil
}
