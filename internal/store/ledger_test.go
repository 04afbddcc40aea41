package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andy/agrione/internal/domain"
)

func testInvoice(id, name, phone string) domain.Invoice {
	inv := domain.NewInvoice(id, name, phone, []domain.InvoiceItem{
		{ID: "1", Name: "Tomatoes", Price: 50, Quantity: 2},
	})
	return *inv
}

// failSlot always fails to save, to verify write errors surface.
type failSlot struct{}

func (failSlot) Load() []domain.Invoice      { return nil }
func (failSlot) Save([]domain.Invoice) error { return errors.New("disk full") }

// flakySlot succeeds for a fixed number of saves, then fails.
type flakySlot struct {
	saves    int
	okBudget int
}

func (s *flakySlot) Load() []domain.Invoice { return nil }
func (s *flakySlot) Save([]domain.Invoice) error {
	s.saves++
	if s.saves > s.okBudget {
		return errors.New("disk full")
	}
	return nil
}

func TestLedgerAddPrepends(t *testing.T) {
	ctx := context.Background()
	l := Open(NewMemorySlot())

	if err := l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Add(ctx, testInvoice("INV-2", "Mona", "0101")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := l.List(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(got))
	}
	if got[0].ID != "INV-2" || got[1].ID != "INV-1" {
		t.Fatalf("expected newest first, got %s, %s", got[0].ID, got[1].ID)
	}
}

func TestLedgerAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	l := Open(NewMemorySlot())

	if err := l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := l.Add(ctx, testInvoice("INV-1", "Mona", "0101"))
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if l.Len(ctx) != 1 {
		t.Fatalf("expected 1 invoice after rejected add, got %d", l.Len(ctx))
	}
}

func TestLedgerUpdatePreservesOrder(t *testing.T) {
	ctx := context.Background()
	l := Open(NewMemorySlot())

	for _, id := range []string{"INV-1", "INV-2", "INV-3"} {
		if err := l.Add(ctx, testInvoice(id, "Ahmed", "0100")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	updated := testInvoice("INV-2", "Mona", "0101")
	updated.Total = 999
	if err := l.Update(ctx, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := l.List(ctx)
	if got[0].ID != "INV-3" || got[1].ID != "INV-2" || got[2].ID != "INV-1" {
		t.Fatalf("order changed after update: %s, %s, %s", got[0].ID, got[1].ID, got[2].ID)
	}
	if got[1].CustomerName != "Mona" {
		t.Fatalf("expected updated record, got %s", got[1].CustomerName)
	}
}

func TestLedgerUpdateAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	l := Open(slot)

	if err := l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := slot.Load()

	if err := l.Update(ctx, testInvoice("INV-404", "Ghost", "0000")); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if l.Len(ctx) != 1 {
		t.Fatalf("expected 1 invoice, got %d", l.Len(ctx))
	}
	after := slot.Load()
	if len(before) != len(after) {
		t.Fatalf("absent update must not persist")
	}
}

func TestLedgerDelete(t *testing.T) {
	ctx := context.Background()
	l := Open(NewMemorySlot())

	l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100"))
	l.Add(ctx, testInvoice("INV-2", "Mona", "0101"))

	if err := l.Delete(ctx, "INV-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := l.Get(ctx, "INV-1"); ok {
		t.Fatalf("expected INV-1 gone")
	}

	// Absent delete is a no-op
	if err := l.Delete(ctx, "INV-404"); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if l.Len(ctx) != 1 {
		t.Fatalf("expected 1 invoice, got %d", l.Len(ctx))
	}
}

func TestLedgerListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	l := Open(NewMemorySlot())
	l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100"))

	got := l.List(ctx)
	got[0].Items[0].Name = "mutated"

	fresh, _ := l.Get(ctx, "INV-1")
	if fresh.Items[0].Name != "Tomatoes" {
		t.Fatalf("ledger state leaked through List: %s", fresh.Items[0].Name)
	}
}

func TestLedgerSurfacesPersistErrors(t *testing.T) {
	ctx := context.Background()
	l := Open(failSlot{})

	err := l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100"))
	if err == nil {
		t.Fatalf("expected persist error to surface")
	}
}

func TestLedgerFailedPersistLeavesCollectionUnchanged(t *testing.T) {
	ctx := context.Background()
	l := Open(&flakySlot{okBudget: 1})

	if err := l.Add(ctx, testInvoice("INV-1", "Ahmed", "0100")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every further save fails; memory must not diverge from disk.
	if err := l.Add(ctx, testInvoice("INV-2", "Mona", "0101")); err == nil {
		t.Fatalf("expected persist error")
	}
	if l.Len(ctx) != 1 {
		t.Fatalf("failed add must not change the collection, got %d invoices", l.Len(ctx))
	}

	changed := testInvoice("INV-1", "Changed", "0100")
	if err := l.Update(ctx, changed); err == nil {
		t.Fatalf("expected persist error")
	}
	got, _ := l.Get(ctx, "INV-1")
	if got.CustomerName != "Ahmed" {
		t.Fatalf("failed update must not change the record, got %s", got.CustomerName)
	}

	if err := l.Delete(ctx, "INV-1"); err == nil {
		t.Fatalf("expected persist error")
	}
	if _, ok := l.Get(ctx, "INV-1"); !ok {
		t.Fatalf("failed delete must not remove the record")
	}
}

func TestLedgerOpenLoadsSlot(t *testing.T) {
	slot := NewMemorySlot()
	seed := testInvoice("INV-1", "Ahmed", "0100")
	seed.Date = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	slot.Save([]domain.Invoice{seed})

	l := Open(slot)
	got, ok := l.Get(context.Background(), "INV-1")
	if !ok {
		t.Fatalf("expected invoice loaded from slot")
	}
	if !got.Date.Equal(seed.Date) {
		t.Fatalf("expected date %v, got %v", seed.Date, got.Date)
	}
}
