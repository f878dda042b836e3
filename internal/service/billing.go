package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
	"github.com/rkhatiwada/restro/internal/statement"
)

// Billing performs the one-way Open -> Billed transition for orders. The
// statement artifact is written first; only when that succeeds is the Bill
// recorded and the order marked billed, so a failed write changes nothing.
type Billing struct {
	store      *records.Store
	catalog    *Catalog
	statements *statement.Writer
}

// NewBilling creates a Billing engine over the record store, the catalog
// (for item name resolution) and the statement writer.
func NewBilling(store *records.Store, catalog *Catalog, statements *statement.Writer) *Billing {
	return &Billing{store: store, catalog: catalog, statements: statements}
}

// IssueBill bills an order: renders and writes the statement artifact,
// then atomically records the Bill and flips the order's billed flag.
// Fails with ErrEmptyOrder for an order with no lines, ErrAlreadyBilled for a
// billed one, and ErrArtifactWrite (with no state change at all) when the
// statement cannot be written.
func (b *Billing) IssueBill(ctx context.Context, order *models.Order) (*models.Bill, error) {
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("%w: order %d", records.ErrEmptyOrder, order.ID)
	}
	if order.Billed {
		return nil, fmt.Errorf("%w: order %d", records.ErrAlreadyBilled, order.ID)
	}

	issuedAt := time.Now()
	lines := make([]statement.Line, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = statement.Line{
			Name:      b.catalog.ItemName(l.ItemID),
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
		}
	}

	name, err := b.statements.Write(order, lines, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrArtifactWrite, err)
	}

	bill := &models.Bill{
		IssuedAt:  issuedAt,
		Amount:    order.Total(),
		Statement: name,
	}
	if err := b.store.SettleBill(ctx, order.ID, bill); err != nil {
		return nil, err
	}

	slog.Info("Bill issued",
		"bill_id", bill.ID,
		"order_id", order.ID,
		"amount", bill.Amount.StringFixed(2),
		"statement", name,
	)
	return bill, nil
}

// Bills returns the persisted bill records sorted by ID ascending.
func (b *Billing) Bills() []*models.Bill {
	return b.store.Bills()
}

// ListStatements lists the statement artifacts by scanning the artifact
// namespace; an empty or inaccessible namespace yields an empty list.
func (b *Billing) ListStatements() []string {
	return b.statements.List()
}

// ReadStatement returns the contents of one statement artifact.
func (b *Billing) ReadStatement(name string) (string, error) {
	return b.statements.Read(name)
}
