package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
	"github.com/rkhatiwada/restro/internal/statement"
	"github.com/rkhatiwada/restro/internal/storage/sqlite"
)

// env wires the full stack over a temp SQLite database and a temp bills
// directory, the way cmd/restro does.
type env struct {
	ctx       context.Context
	store     *records.Store
	directory *Directory
	catalog   *Catalog
	ledger    *OrderLedger
	billing   *Billing
	billsDir  string
}

func newEnv(t *testing.T) *env {
	t.Helper()

	ctx := context.Background()
	backend, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { backend.Close() })

	store := records.New(backend)
	store.Load(ctx)
	if err := store.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin failed: %v", err)
	}

	billsDir := filepath.Join(t.TempDir(), "bills")
	statements, err := statement.NewWriter(billsDir)
	if err != nil {
		t.Fatalf("Failed to create statement writer: %v", err)
	}

	catalog := NewCatalog(store)
	return &env{
		ctx:       ctx,
		store:     store,
		directory: NewDirectory(store),
		catalog:   catalog,
		ledger:    NewOrderLedger(store, catalog),
		billing:   NewBilling(store, catalog, statements),
		billsDir:  billsDir,
	}
}

func (e *env) addStaff(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.directory.CreateStaff(e.ctx, username, "pw", username)
	if err != nil {
		t.Fatalf("CreateStaff(%s) failed: %v", username, err)
	}
	return user
}

func (e *env) addItem(t *testing.T, name, price string) *models.Item {
	t.Helper()
	item, err := e.catalog.CreateItem(e.ctx, name, price, "10", "")
	if err != nil {
		t.Fatalf("CreateItem(%s) failed: %v", name, err)
	}
	return item
}

func (e *env) newOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := e.ledger.CreateOrder(e.ctx, "amy")
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	return order
}
