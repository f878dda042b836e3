package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
)

// LoadBills reads the full bill collection, keyed by bill ID.
func (s *SQLiteStore) LoadBills(ctx context.Context) (map[int]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, order_id, issued_at, amount, statement FROM bills",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := make(map[int]*models.Bill)
	for rows.Next() {
		bill := &models.Bill{}
		var issuedAt int64
		var amount string
		if err := rows.Scan(&bill.ID, &bill.OrderID, &issuedAt, &amount, &bill.Statement); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.IssuedAt = time.Unix(issuedAt, 0)
		bill.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse bill %d amount %q: %w", bill.ID, amount, err)
		}
		bills[bill.ID] = bill
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// SaveBills replaces the stored bill collection with the given one.
func (s *SQLiteStore) SaveBills(ctx context.Context, bills map[int]*models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bills"); err != nil {
		return fmt.Errorf("failed to clear bills: %w", err)
	}

	for _, bill := range bills {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bills (id, order_id, issued_at, amount, statement) VALUES (?, ?, ?, ?, ?)",
			bill.ID, bill.OrderID, bill.IssuedAt.Unix(), bill.Amount.String(), bill.Statement,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill %d: %w", bill.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bills: %w", err)
	}
	return nil
}
