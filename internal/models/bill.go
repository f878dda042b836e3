package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill records the billing of one order. At most one Bill ever exists per
// order, and a Bill is immutable once created.
type Bill struct {
	ID       int
	OrderID  int
	IssuedAt time.Time

	// Amount is a copy of the order total at billing time.
	Amount decimal.Decimal

	// Statement is the file name of the printed statement artifact.
	Statement string
}
