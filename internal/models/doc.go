// Package models defines the core domain records for Restro.
//
// Four record kinds make up the system: User (staff and administrator
// accounts), Item (the menu catalog), Order (line items priced by
// snapshot), and Bill (the one-per-order billing record).
//
// Monetary values are decimal.Decimal throughout. They are compared and
// summed exactly and rendered with two decimal places only at the display
// boundary.
//
// Relationships are carried by value (IDs and usernames), never by
// pointer: an OrderLine keeps the item ID and the unit price captured at
// the moment the line was added, so deleting the catalog item later does
// not invalidate the line.
package models
