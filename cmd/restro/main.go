// Command restro is an interactive console for the restaurant record
// system: staff accounts, the menu catalog, orders and billing. It is the
// stand-in for the windowed UI of the original system and only ever calls
// the service-layer operations.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rkhatiwada/restro/internal/config"
	"github.com/rkhatiwada/restro/internal/models"
	"github.com/rkhatiwada/restro/internal/records"
	"github.com/rkhatiwada/restro/internal/service"
	"github.com/rkhatiwada/restro/internal/statement"
	"github.com/rkhatiwada/restro/internal/storage/sqlite"
	"github.com/rkhatiwada/restro/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()
	cfg := config.Load()
	ctx := context.Background()

	backend, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	store := records.New(backend)
	store.Load(ctx)
	if err := store.EnsureDefaultAdmin(ctx); err != nil {
		slog.Error("Failed to ensure administrator account", "error", err)
		os.Exit(1)
	}

	statements, err := statement.NewWriter(cfg.BillsDir)
	if err != nil {
		slog.Error("Failed to prepare bills directory", "dir", cfg.BillsDir, "error", err)
		os.Exit(1)
	}

	catalog := service.NewCatalog(store)
	app := &console{
		in:        bufio.NewScanner(os.Stdin),
		directory: service.NewDirectory(store),
		catalog:   catalog,
		ledger:    service.NewOrderLedger(store, catalog),
		billing:   service.NewBilling(store, catalog, statements),
	}
	app.run(ctx)
}

type console struct {
	in        *bufio.Scanner
	directory *service.Directory
	catalog   *service.Catalog
	ledger    *service.OrderLedger
	billing   *service.Billing
}

func (c *console) run(ctx context.Context) {
	for {
		fmt.Println("\n=== Restro ===")
		username := c.prompt("Username (empty to quit)")
		if username == "" {
			return
		}
		password := c.prompt("Password")
		user, err := c.directory.Authenticate(username, password)
		if err != nil {
			fmt.Println("!", err)
			continue
		}
		fmt.Printf("Welcome, %s (%s)\n", user.DisplayName, user.Role)
		if user.IsAdmin() {
			c.adminMenu(ctx)
		} else {
			c.staffMenu(ctx, user)
		}
	}
}

func (c *console) adminMenu(ctx context.Context) {
	for {
		choice := c.prompt("\n[1] Staff  [2] Menu items  [3] Orders  [4] Bills  [0] Logout")
		switch choice {
		case "1":
			c.staffAdmin(ctx)
		case "2":
			c.itemsAdmin(ctx)
		case "3":
			c.ordersMenu(ctx, "")
		case "4":
			c.billsMenu(ctx)
		case "0":
			return
		}
	}
}

func (c *console) staffMenu(ctx context.Context, user *models.User) {
	for {
		choice := c.prompt("\n[1] View menu  [2] Orders  [3] Bills  [0] Logout")
		switch choice {
		case "1":
			c.printItems()
		case "2":
			c.ordersMenu(ctx, user.Username)
		case "3":
			c.billsMenu(ctx)
		case "0":
			return
		}
	}
}

func (c *console) staffAdmin(ctx context.Context) {
	for {
		for _, u := range c.directory.Users() {
			fmt.Printf("%4d  %-12s %-20s %s\n", u.ID, u.Username, u.DisplayName, u.Role)
		}
		choice := c.prompt("[a]dd  [e]dit  [d]elete  [b]ack")
		switch choice {
		case "a":
			_, err := c.directory.CreateStaff(ctx, c.prompt("Username"), c.prompt("Password"), c.prompt("Display name"))
			c.report(err)
		case "e":
			username := c.prompt("Username")
			c.report(c.directory.EditUser(ctx, username, c.prompt("New display name"), c.prompt("New password")))
		case "d":
			c.report(c.directory.DeleteUser(ctx, c.prompt("Username")))
		case "b":
			return
		}
	}
}

func (c *console) printItems() {
	for _, it := range c.catalog.Items() {
		fmt.Printf("%4d  %-20s Rs %-8s qty %-5d %s\n", it.ID, it.Name, it.Price.StringFixed(2), it.Quantity, it.Description)
	}
}

func (c *console) itemsAdmin(ctx context.Context) {
	for {
		c.printItems()
		choice := c.prompt("[a]dd  [e]dit  [d]elete  [b]ack")
		switch choice {
		case "a":
			_, err := c.catalog.CreateItem(ctx, c.prompt("Name"), c.prompt("Price"), c.prompt("Quantity"), c.prompt("Description"))
			c.report(err)
		case "e":
			id, ok := c.promptInt("Item ID")
			if !ok {
				continue
			}
			c.report(c.catalog.EditItem(ctx, id, c.prompt("Name"), c.prompt("Price"), c.prompt("Quantity"), c.prompt("Description")))
		case "d":
			if id, ok := c.promptInt("Item ID"); ok {
				c.report(c.catalog.DeleteItem(ctx, id))
			}
		case "b":
			return
		}
	}
}

func (c *console) ordersMenu(ctx context.Context, placedBy string) {
	for {
		for _, o := range c.ledger.Orders() {
			fmt.Printf("%4d  %-12s %s  lines=%d  billed=%v  Rs %s\n",
				o.ID, o.PlacedBy, o.CreatedAt.Format("2006-01-02 15:04"), len(o.Lines), o.Billed, o.Total().StringFixed(2))
		}
		choice := c.prompt("[n]ew  [e]dit  [d]elete  [i]ssue bill  [b]ack")
		switch choice {
		case "n":
			by := placedBy
			if by == "" {
				by = c.prompt("Placed by (staff username)")
			}
			order, err := c.ledger.CreateOrder(ctx, by)
			c.report(err)
			if err == nil {
				c.editOrder(ctx, order)
			}
		case "e":
			if order, ok := c.pickOrder(); ok {
				c.editOrder(ctx, order)
			}
		case "d":
			if id, ok := c.promptInt("Order ID"); ok {
				c.report(c.ledger.DeleteOrder(ctx, id))
			}
		case "i":
			if order, ok := c.pickOrder(); ok {
				bill, err := c.billing.IssueBill(ctx, order)
				c.report(err)
				if err == nil {
					fmt.Printf("Bill #%d issued: Rs %s (%s)\n", bill.ID, bill.Amount.StringFixed(2), bill.Statement)
				}
			}
		case "b":
			return
		}
	}
}

func (c *console) editOrder(ctx context.Context, order *models.Order) {
	for {
		for _, v := range c.ledger.Lines(order) {
			fmt.Printf("%4d  #%-4d %-20s qty %-5d Rs %-8s Rs %s\n",
				v.No, v.ItemID, v.Name, v.Qty, v.UnitPrice.StringFixed(2), v.Subtotal.StringFixed(2))
		}
		fmt.Printf("Total: Rs %s\n", c.ledger.Total(order).StringFixed(2))
		choice := c.prompt("[a]dd item  [q]uantity  [r]emove line  [b]ack")
		switch choice {
		case "a":
			itemID, ok := c.promptInt("Item ID")
			if !ok {
				continue
			}
			if qty, ok := c.promptInt("Quantity"); ok {
				c.report(c.ledger.AddLine(ctx, order, itemID, qty))
			}
		case "q":
			no, ok := c.promptInt("Line no")
			if !ok {
				continue
			}
			if qty, ok := c.promptInt("New quantity"); ok {
				c.report(c.ledger.SetLineQty(ctx, order, no-1, qty))
			}
		case "r":
			if no, ok := c.promptInt("Line no"); ok {
				c.report(c.ledger.RemoveLine(ctx, order, no-1))
			}
		case "b":
			return
		}
	}
}

func (c *console) billsMenu(ctx context.Context) {
	for {
		for _, b := range c.billing.Bills() {
			fmt.Printf("%4d  order %-4d %s  Rs %-8s %s\n",
				b.ID, b.OrderID, b.IssuedAt.Format("2006-01-02 15:04"), b.Amount.StringFixed(2), b.Statement)
		}
		for _, name := range c.billing.ListStatements() {
			fmt.Println("  ", name)
		}
		choice := c.prompt("[v]iew statement  [b]ack")
		switch choice {
		case "v":
			text, err := c.billing.ReadStatement(c.prompt("Statement name"))
			c.report(err)
			if err == nil {
				fmt.Println(text)
			}
		case "b":
			return
		}
	}
}

func (c *console) pickOrder() (*models.Order, bool) {
	id, ok := c.promptInt("Order ID")
	if !ok {
		return nil, false
	}
	order, ok := c.ledger.Order(id)
	if !ok {
		fmt.Println("! no such order")
		return nil, false
	}
	return order, true
}

func (c *console) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !c.in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) promptInt(label string) (int, bool) {
	n, err := strconv.Atoi(c.prompt(label))
	if err != nil {
		fmt.Println("! not a number")
		return 0, false
	}
	return n, true
}

func (c *console) report(err error) {
	if err != nil {
		fmt.Println("!", err)
	}
}
