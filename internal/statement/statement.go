// Package statement writes and reads the printed bill statement
// artifacts. Statements are plain-text files in a single directory, named
// bill_order_<orderID>_<YYYYMMDD_HHMMSS>.txt so a lexicographic listing is
// also chronological.
package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
)

const (
	namePrefix  = "bill_order_"
	nameSuffix  = ".txt"
	stampFormat = "20060102_150405"
)

// Line is one itemized row of a rendered statement. The caller resolves
// item names (or placeholders for deleted items) before rendering.
type Line struct {
	Name      string
	Qty       int
	UnitPrice decimal.Decimal
}

// Writer manages the statement artifact directory.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir, creating the directory if
// needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create statement directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Name returns the conventional artifact name for an order billed at the
// given instant.
func Name(orderID int, issuedAt time.Time) string {
	return fmt.Sprintf("%s%d_%s%s", namePrefix, orderID, issuedAt.Format(stampFormat), nameSuffix)
}

// Write renders the statement for an order and creates its artifact file.
// Creation is write-once: an existing artifact with the same name is an
// error. The file appears atomically via a uniquely named temp file and
// rename, so a failed write leaves nothing behind under the final name.
func (w *Writer) Write(order *models.Order, lines []Line, issuedAt time.Time) (string, error) {
	name := Name(order.ID, issuedAt)
	path := filepath.Join(w.dir, name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("statement %s already exists", name)
	}

	var b strings.Builder
	b.WriteString("====== RESTAURANT BILL ======\n")
	fmt.Fprintf(&b, "Order ID: %d\n", order.ID)
	fmt.Fprintf(&b, "Placed by: %s\n", order.PlacedBy)
	fmt.Fprintf(&b, "Date: %s\n\n", issuedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%-4s %-20s %-5s %-10s %-10s\n", "No", "Name", "Qty", "Unit", "Subtotal")
	total := decimal.Zero
	for i, l := range lines {
		sub := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
		total = total.Add(sub)
		fmt.Fprintf(&b, "%-4d %-20s %-5d Rs %-7s Rs %-7s\n",
			i+1, l.Name, l.Qty, l.UnitPrice.StringFixed(2), sub.StringFixed(2))
	}
	b.WriteString("---------------------------------\n")
	fmt.Fprintf(&b, "Total: Rs %s\n\n", total.StringFixed(2))
	b.WriteString("Thank you!\n")

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write statement: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize statement: %w", err)
	}
	return name, nil
}

// List returns the names of all statement artifacts, sorted
// lexicographically (which the timestamp format makes chronological). A
// missing or unreadable directory yields an empty list, not an error.
func (w *Writer) List() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, namePrefix) && strings.HasSuffix(name, nameSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Read returns the contents of one statement artifact by name. Only names
// matching the statement convention are accepted.
func (w *Writer) Read(name string) (string, error) {
	if !strings.HasPrefix(name, namePrefix) || !strings.HasSuffix(name, nameSuffix) || name != filepath.Base(name) {
		return "", fmt.Errorf("not a statement name: %q", name)
	}
	data, err := os.ReadFile(filepath.Join(w.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to read statement %s: %w", name, err)
	}
	return string(data), nil
}
