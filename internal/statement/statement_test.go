package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhatiwada/restro/internal/models"
)

func TestName(t *testing.T) {
	issued := time.Date(2025, 3, 9, 19, 5, 7, 0, time.UTC)
	got := Name(12, issued)
	want := "bill_order_12_20250309_190507.txt"
	if got != want {
		t.Errorf("Name = %q, want %q", got, want)
	}
}

func TestWriter(t *testing.T) {
	newWriter := func(t *testing.T) (*Writer, string) {
		t.Helper()
		dir := t.TempDir()
		w, err := NewWriter(dir)
		if err != nil {
			t.Fatalf("NewWriter failed: %v", err)
		}
		return w, dir
	}

	order := &models.Order{ID: 3, PlacedBy: "amy"}
	lines := []Line{
		{Name: "Momo", Qty: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{Name: "Item#9", Qty: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}
	issued := time.Date(2025, 3, 9, 19, 0, 0, 0, time.UTC)

	t.Run("writes an itemized statement", func(t *testing.T) {
		w, dir := newWriter(t)

		name, err := w.Write(order, lines, issued)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if name != "bill_order_3_20250309_190000.txt" {
			t.Errorf("Unexpected artifact name %q", name)
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("Artifact missing: %v", err)
		}
		text := string(data)
		for _, want := range []string{
			"Order ID: 3",
			"Placed by: amy",
			"Momo",
			"Item#9",
			"Total: Rs 25.00",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("Statement missing %q:\n%s", want, text)
			}
		}

		// No temp files left behind.
		entries, _ := os.ReadDir(dir)
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("Leftover temp file %s", e.Name())
			}
		}
	})

	t.Run("write-once: same name cannot be created twice", func(t *testing.T) {
		w, _ := newWriter(t)
		if _, err := w.Write(order, lines, issued); err != nil {
			t.Fatalf("first Write failed: %v", err)
		}
		if _, err := w.Write(order, lines, issued); err == nil {
			t.Error("Expected second Write with same name to fail")
		}
	})

	t.Run("list is sorted and filtered", func(t *testing.T) {
		w, dir := newWriter(t)
		for _, name := range []string{
			"bill_order_2_20250309_190100.txt",
			"bill_order_1_20250309_190000.txt",
			"notes.txt",
			"bill_order_1_draft", // no .txt suffix
		} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("seed write failed: %v", err)
			}
		}

		got := w.List()
		want := []string{
			"bill_order_1_20250309_190000.txt",
			"bill_order_2_20250309_190100.txt",
		}
		if len(got) != len(want) {
			t.Fatalf("List = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("List = %v, want %v", got, want)
			}
		}
	})

	t.Run("list tolerates a missing directory", func(t *testing.T) {
		w := &Writer{dir: filepath.Join(t.TempDir(), "gone")}
		if got := w.List(); len(got) != 0 {
			t.Errorf("Expected empty list, got %v", got)
		}
	})

	t.Run("read rejects non-statement names", func(t *testing.T) {
		w, dir := newWriter(t)
		if err := os.WriteFile(filepath.Join(dir, "secret"), []byte("x"), 0644); err != nil {
			t.Fatalf("seed write failed: %v", err)
		}
		for _, name := range []string{"secret", "../secret", "bill_order_1.txt/../../etc"} {
			if _, err := w.Read(name); err == nil {
				t.Errorf("Expected Read(%q) to fail", name)
			}
		}
	})

	t.Run("read returns artifact contents", func(t *testing.T) {
		w, _ := newWriter(t)
		name, err := w.Write(order, lines, issued)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		text, err := w.Read(name)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if !strings.Contains(text, "Total: Rs 25.00") {
			t.Errorf("Read returned unexpected content:\n%s", text)
		}
	})
}
