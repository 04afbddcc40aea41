package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/andy/agrione/internal/domain"
)

var ErrDuplicateID = errors.New("invoice id already exists")

// Ledger is the authoritative ordered collection of invoices. All reads hand
// out deep copies; all writes go through the defined operations and are
// persisted to the slot before returning.
type Ledger struct {
	mu       sync.RWMutex
	invoices []domain.Invoice
	slot     Slot
}

// Open creates a ledger backed by the given slot, loading whatever the slot
// currently holds. Absent or malformed persisted data yields an empty
// ledger, never an error.
func Open(slot Slot) *Ledger {
	return &Ledger{
		invoices: slot.Load(),
		slot:     slot,
	}
}

// Add prepends an invoice to the collection. An invoice whose id is already
// present is rejected. On a slot write failure the collection is unchanged.
func (l *Ledger) Add(ctx context.Context, inv domain.Invoice) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.invoices {
		if l.invoices[i].ID == inv.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, inv.ID)
		}
	}

	next := append([]domain.Invoice{inv.Clone()}, l.invoices...)
	return l.persist(next)
}

// Update replaces the record whose id matches, preserving all other records
// and their order. Updating an absent id is a no-op. On a slot write failure
// the collection is unchanged.
func (l *Ledger) Update(ctx context.Context, inv domain.Invoice) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.invoices {
		if l.invoices[i].ID == inv.ID {
			next := make([]domain.Invoice, len(l.invoices))
			copy(next, l.invoices)
			next[i] = inv.Clone()
			return l.persist(next)
		}
	}
	return nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op. On a slot write failure the collection is unchanged.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.invoices {
		if l.invoices[i].ID == id {
			next := make([]domain.Invoice, 0, len(l.invoices)-1)
			next = append(next, l.invoices[:i]...)
			next = append(next, l.invoices[i+1:]...)
			return l.persist(next)
		}
	}
	return nil
}

// List returns the current ordered collection as a deep copy.
func (l *Ledger) List(ctx context.Context) []domain.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Invoice, len(l.invoices))
	for i := range l.invoices {
		out[i] = l.invoices[i].Clone()
	}
	return out
}

// Get returns the invoice with the given id, or false if absent.
func (l *Ledger) Get(ctx context.Context, id string) (domain.Invoice, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := range l.invoices {
		if l.invoices[i].ID == id {
			return l.invoices[i].Clone(), true
		}
	}
	return domain.Invoice{}, false
}

// Len returns the number of invoices.
func (l *Ledger) Len(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.invoices)
}

// persist writes the candidate collection to the slot and commits it to
// memory only after the save succeeds, so a failed write never leaves memory
// and disk divergent. Caller holds the lock.
func (l *Ledger) persist(next []domain.Invoice) error {
	if err := l.slot.Save(next); err != nil {
		return fmt.Errorf("persist invoices: %w", err)
	}
	l.invoices = next
	return nil
}
