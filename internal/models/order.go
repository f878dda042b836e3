package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one line item inside an Order.
type OrderLine struct {
	// ItemID references a catalog item. The reference may dangle: the
	// item can be deleted after the line was added, and the line stays
	// valid through its price snapshot.
	ItemID int

	// Qty is always positive.
	Qty int

	// UnitPrice is the catalog price captured when the line was first
	// added. It is never recomputed from the live catalog, even when the
	// same item is added again and the quantities merge.
	UnitPrice decimal.Decimal
}

// Subtotal returns Qty times the snapshot unit price.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Order is a customer order. Lines keep their order of addition, which is
// significant for display and statements.
type Order struct {
	ID        int
	CreatedAt time.Time

	// PlacedBy is the username of the staff member who placed the order.
	// It is recorded by value and not re-validated if the account is
	// later deleted.
	PlacedBy string

	Lines []OrderLine

	// Billed transitions false to true exactly once, atomically with the
	// creation of the order's Bill. A billed order is immutable.
	Billed bool
}

// Total sums qty times snapshot price over all lines. It is always derived
// on demand; nothing caches it.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// LineFor returns the index of the line referencing itemID, or -1.
func (o *Order) LineFor(itemID int) int {
	for i, l := range o.Lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}
