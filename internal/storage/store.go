// Package storage provides abstractions for durable record storage.
package storage

import (
	"context"

	"github.com/rkhatiwada/restro/internal/models"
)

// Store is the durable-storage collaborator behind the record store.
//
// Each record kind is loaded as a whole once at startup and overwritten as
// a whole on every mutation to that kind; one save is the transaction
// boundary. Implementations must keep the kinds independent: a corrupt or
// missing collection fails its own Load call only. Saves are idempotent.
//
// Users are keyed by username, all other kinds by their numeric ID.
type Store interface {
	LoadUsers(ctx context.Context) (map[string]*models.User, error)
	SaveUsers(ctx context.Context, users map[string]*models.User) error

	LoadItems(ctx context.Context) (map[int]*models.Item, error)
	SaveItems(ctx context.Context, items map[int]*models.Item) error

	LoadOrders(ctx context.Context) (map[int]*models.Order, error)
	SaveOrders(ctx context.Context, orders map[int]*models.Order) error

	LoadBills(ctx context.Context) (map[int]*models.Bill, error)
	SaveBills(ctx context.Context, bills map[int]*models.Bill) error

	// Close releases any resources held by the store.
	Close() error
}
