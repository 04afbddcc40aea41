package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/agrione/internal/domain"
)

// Slot is a single storage location for the serialized invoice collection.
type Slot interface {
	// Load returns the previously saved collection. Absent or malformed
	// content yields an empty collection; loading never fails.
	Load() []domain.Invoice
	// Save overwrites the slot with the full collection.
	Save(invoices []domain.Invoice) error
}

// FileSlot persists the collection as one JSON array in one file.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot at the given path.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// Load reads and decodes the slot, falling back to an empty collection on
// any failure. A missing or corrupt file must never prevent startup.
func (s *FileSlot) Load() []domain.Invoice {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var invoices []domain.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil
	}
	return invoices
}

// Save serializes the full collection and replaces the slot content. The
// write goes through a temp file and rename so a failed write cannot leave
// a truncated slot behind.
func (s *FileSlot) Save(invoices []domain.Invoice) error {
	if invoices == nil {
		invoices = []domain.Invoice{}
	}

	data, err := json.MarshalIndent(invoices, "", "  ")
	if err != nil {
		return fmt.Errorf("encode invoices: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".invoices-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace slot: %w", err)
	}
	return nil
}

// MemorySlot holds the collection in memory. Used by tests and as the
// fallback when no storage path is configured.
type MemorySlot struct {
	invoices []domain.Invoice
}

func NewMemorySlot() *MemorySlot { return &MemorySlot{} }

func (s *MemorySlot) Load() []domain.Invoice {
	out := make([]domain.Invoice, len(s.invoices))
	copy(out, s.invoices)
	return out
}

func (s *MemorySlot) Save(invoices []domain.Invoice) error {
	s.invoices = make([]domain.Invoice, len(invoices))
	copy(s.invoices, invoices)
	return nil
}
