package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
)

// LoadItems reads the full catalog collection, keyed by item ID.
// Prices are stored as exact decimal strings.
func (s *SQLiteStore) LoadItems(ctx context.Context) (map[int]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price, quantity, description FROM items",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := make(map[int]*models.Item)
	for rows.Next() {
		item := &models.Item{}
		var price string
		if err := rows.Scan(&item.ID, &item.Name, &price, &item.Quantity, &item.Description); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item %d price %q: %w", item.ID, price, err)
		}
		items[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// SaveItems replaces the stored catalog collection with the given one.
func (s *SQLiteStore) SaveItems(ctx context.Context, items map[int]*models.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, name, price, quantity, description) VALUES (?, ?, ?, ?, ?)",
			item.ID, item.Name, item.Price.String(), item.Quantity, item.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item %d: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit items: %w", err)
	}
	return nil
}
