package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/andy/agrione/internal/domain"
)

func TestFileSlotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	slot := NewFileSlot(path)

	inv := testInvoice("INV-1", "Ahmed", "01012345678")
	inv.CustomerAddress = "Giza - Kerdasa"
	inv.CustomerCategory = domain.CategoryWholesaler
	inv.Status = domain.StatusDelivered
	inv.Notes = "cash on delivery"
	inv.Date = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

	second := testInvoice("INV-2", "Mona", "01087654321")
	second.Date = time.Date(2026, 5, 11, 14, 0, 0, 0, time.UTC)

	saved := []domain.Invoice{inv, second}
	if err := slot.Save(saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := NewFileSlot(path).Load()
	if !reflect.DeepEqual(saved, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", saved, loaded)
	}
}

func TestFileSlotLoadMissingFile(t *testing.T) {
	slot := NewFileSlot(filepath.Join(t.TempDir(), "nope.json"))
	if got := slot.Load(); got != nil {
		t.Fatalf("expected nil for missing file, got %v", got)
	}
}

func TestFileSlotLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := NewFileSlot(path).Load(); got != nil {
		t.Fatalf("expected nil for corrupt file, got %v", got)
	}
}

func TestFileSlotSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoices.json")
	slot := NewFileSlot(path)

	if err := slot.Save(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file written: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty array, got %q", string(data))
	}
}

func TestFileSlotSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoices.json")
	slot := NewFileSlot(path)

	slot.Save([]domain.Invoice{testInvoice("INV-1", "Ahmed", "0100")})
	slot.Save([]domain.Invoice{testInvoice("INV-2", "Mona", "0101")})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the slot file, found %d entries", len(entries))
	}

	loaded := slot.Load()
	if len(loaded) != 1 || loaded[0].ID != "INV-2" {
		t.Fatalf("expected latest save to win, got %+v", loaded)
	}
}
