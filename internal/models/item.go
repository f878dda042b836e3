package models

import "github.com/shopspring/decimal"

// Item is a menu catalog entry.
type Item struct {
	ID    int
	Name  string
	Price decimal.Decimal

	// Quantity is stock on hand. No stock check is enforced anywhere, so
	// it may go negative.
	Quantity    int
	Description string
}
