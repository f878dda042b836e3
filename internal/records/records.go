// Package records owns the in-memory record collections and their
// identity allocation, and coordinates persistence through the
// storage.Store collaborator.
//
// The store keeps four identity-keyed collections (users, items, orders,
// bills) and a monotonic ID allocator per kind. Allocators are not
// persisted; Load reseeds each one to max existing ID + 1. A single mutex
// serializes all access, which makes the two read-modify-write sequences
// that matter (allocate-then-insert and the billed-flag transition) atomic.
//
// Persistence is coarse: every mutation saves the whole affected
// collection. Save failures are reported wrapped in ErrPersistence but do
// not roll back the in-memory mutation.
package records

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/storage"
)

// The reserved administrator account. It is created on first load and can
// never be deleted.
const (
	DefaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Administrator"
)

// Store holds all records in memory and writes through to the durable
// storage collaborator.
type Store struct {
	mu      sync.Mutex
	backend storage.Store

	users  map[string]*models.User
	items  map[int]*models.Item
	orders map[int]*models.Order
	bills  map[int]*models.Bill

	nextUserID  int
	nextItemID  int
	nextOrderID int
	nextBillID  int
}

// New creates an empty Store backed by the given storage collaborator.
// Call Load before use.
func New(backend storage.Store) *Store {
	return &Store{
		backend:     backend,
		users:       make(map[string]*models.User),
		items:       make(map[int]*models.Item),
		orders:      make(map[int]*models.Order),
		bills:       make(map[int]*models.Bill),
		nextUserID:  1,
		nextItemID:  1,
		nextOrderID: 1,
		nextBillID:  1,
	}
}

// Load reads all four collections from durable storage and reseeds the ID
// allocators. A collection that fails to load is logged and starts empty;
// the session continues degraded rather than refusing to start.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if users, err := s.backend.LoadUsers(ctx); err != nil {
		slog.Warn("Failed to load users, starting empty", "error", err)
	} else if users != nil {
		s.users = users
	}
	if items, err := s.backend.LoadItems(ctx); err != nil {
		slog.Warn("Failed to load items, starting empty", "error", err)
	} else if items != nil {
		s.items = items
	}
	if orders, err := s.backend.LoadOrders(ctx); err != nil {
		slog.Warn("Failed to load orders, starting empty", "error", err)
	} else if orders != nil {
		s.orders = orders
	}
	if bills, err := s.backend.LoadBills(ctx); err != nil {
		slog.Warn("Failed to load bills, starting empty", "error", err)
	} else if bills != nil {
		s.bills = bills
	}

	// Allocator state is not persisted; recover it from the data.
	s.nextUserID = 1
	for _, u := range s.users {
		if u.ID >= s.nextUserID {
			s.nextUserID = u.ID + 1
		}
	}
	s.nextItemID = 1
	for id := range s.items {
		if id >= s.nextItemID {
			s.nextItemID = id + 1
		}
	}
	s.nextOrderID = 1
	for id := range s.orders {
		if id >= s.nextOrderID {
			s.nextOrderID = id + 1
		}
	}
	s.nextBillID = 1
	for id := range s.bills {
		if id >= s.nextBillID {
			s.nextBillID = id + 1
		}
	}
}

// EnsureDefaultAdmin creates the reserved administrator account if no user
// holds its username, persisting the user collection immediately.
// Idempotent.
func (s *Store) EnsureDefaultAdmin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[DefaultAdminUsername]; ok {
		return nil
	}

	admin := &models.User{
		ID:          s.nextUserID,
		Username:    DefaultAdminUsername,
		Password:    defaultAdminPassword,
		DisplayName: defaultAdminName,
		Role:        models.RoleAdmin,
	}
	s.nextUserID++
	s.users[admin.Username] = admin
	slog.Info("Created default administrator account", "username", admin.Username)
	return s.persistUsersLocked(ctx)
}

// -------- users --------

// AddUser allocates an ID for the user and inserts it. Fails with
// ErrDuplicateUsername if the username is taken; the check and the
// allocation happen under one lock.
func (s *Store) AddUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateUsername, user.Username)
	}
	user.ID = s.nextUserID
	s.nextUserID++
	s.users[user.Username] = user
	return s.persistUsersLocked(ctx)
}

// User returns the user with the given username.
func (s *Store) User(username string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	return u, ok
}

// Users returns all users sorted by username.
func (s *Store) Users() []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users
}

// StaffCount returns the number of non-administrator accounts.
func (s *Store) StaffCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, u := range s.users {
		if u.Role == models.RoleStaff {
			n++
		}
	}
	return n
}

// PersistUsers saves the user collection after an in-place mutation.
func (s *Store) PersistUsers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistUsersLocked(ctx)
}

// RemoveUser deletes the user and persists. Fails with ErrNotFound if the
// username does not exist.
func (s *Store) RemoveUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	delete(s.users, username)
	return s.persistUsersLocked(ctx)
}

// -------- items --------

// AddItem allocates an ID for the item and inserts it.
func (s *Store) AddItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextItemID
	s.nextItemID++
	s.items[item.ID] = item
	return s.persistItemsLocked(ctx)
}

// Item returns the catalog item with the given ID.
func (s *Store) Item(id int) (*models.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	return it, ok
}

// Items returns all catalog items sorted by ID ascending.
func (s *Store) Items() []*models.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*models.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// PersistItems saves the catalog after an in-place mutation.
func (s *Store) PersistItems(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistItemsLocked(ctx)
}

// RemoveItem deletes the item and persists. Removing an absent ID is a
// no-op save; order lines referencing the item keep their snapshots.
func (s *Store) RemoveItem(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return s.persistItemsLocked(ctx)
}

// -------- orders --------

// AddOrder allocates an ID for the order and inserts it.
func (s *Store) AddOrder(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order.ID = s.nextOrderID
	s.nextOrderID++
	s.orders[order.ID] = order
	return s.persistOrdersLocked(ctx)
}

// Order returns the order with the given ID.
func (s *Store) Order(id int) (*models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	return o, ok
}

// Orders returns all orders sorted by ID ascending.
func (s *Store) Orders() []*models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]*models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

// PersistOrders saves the order collection after an in-place mutation.
func (s *Store) PersistOrders(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistOrdersLocked(ctx)
}

// RemoveOrder deletes the order and persists. Fails with ErrNotFound if
// absent and with ErrOrderBilled for a billed order.
func (s *Store) RemoveOrder(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if o.Billed {
		return fmt.Errorf("%w: order %d", ErrOrderBilled, id)
	}
	delete(s.orders, id)
	return s.persistOrdersLocked(ctx)
}

// -------- bills --------

// SettleBill performs the one-way billing transition: under a single lock
// it verifies the order is present and unbilled, allocates the bill ID,
// inserts the bill, marks the order billed, and persists both collections.
// A second call for the same order fails with ErrAlreadyBilled.
func (s *Store) SettleBill(ctx context.Context, orderID int, bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if order.Billed {
		return fmt.Errorf("%w: order %d", ErrAlreadyBilled, orderID)
	}

	bill.ID = s.nextBillID
	s.nextBillID++
	bill.OrderID = orderID
	s.bills[bill.ID] = bill
	order.Billed = true

	if err := s.persistBillsLocked(ctx); err != nil {
		return err
	}
	return s.persistOrdersLocked(ctx)
}

// Bill returns the bill with the given ID.
func (s *Store) Bill(id int) (*models.Bill, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bills[id]
	return b, ok
}

// Bills returns all bills sorted by ID ascending.
func (s *Store) Bills() []*models.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	bills := make([]*models.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		bills = append(bills, b)
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].ID < bills[j].ID })
	return bills
}

// -------- persistence --------

func (s *Store) persistUsersLocked(ctx context.Context) error {
	if err := s.backend.SaveUsers(ctx, s.users); err != nil {
		return fmt.Errorf("%w: users: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) persistItemsLocked(ctx context.Context) error {
	if err := s.backend.SaveItems(ctx, s.items); err != nil {
		return fmt.Errorf("%w: items: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) persistOrdersLocked(ctx context.Context) error {
	if err := s.backend.SaveOrders(ctx, s.orders); err != nil {
		return fmt.Errorf("%w: orders: %v", ErrPersistence, err)
	}
	return nil
}

func (s *Store) persistBillsLocked(ctx context.Context) error {
	if err := s.backend.SaveBills(ctx, s.bills); err != nil {
		return fmt.Errorf("%w: bills: %v", ErrPersistence, err)
	}
	return nil
}
