package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/projection"
	"github.com/andy/agrione/internal/store"
	"github.com/google/uuid"
)

var (
	ErrCustomerIncomplete = errors.New("customer name and phone are required")
	ErrNoItems            = errors.New("invoice needs at least one item")
	ErrNegativeAmount     = errors.New("item price and quantity cannot be negative")
	ErrInvoiceNotFound    = errors.New("invoice not found")
)

// Draft is the editor's working copy of an invoice before validation.
type Draft struct {
	CustomerName     string
	CustomerPhone    string
	CustomerAddress  string
	CustomerCategory domain.CustomerCategory
	Items            []domain.InvoiceItem
	Status           domain.InvoiceStatus
	Notes            string
}

// InvoiceService is the invoice editor: it validates and normalizes drafts
// into persistable records and owns all ledger mutations.
type InvoiceService interface {
	// Create validates a draft and adds it to the ledger with a fresh id.
	Create(ctx context.Context, draft Draft) (*domain.Invoice, error)

	// Edit replaces every field of an existing invoice wholesale, keeping
	// the id and recomputing the total.
	Edit(ctx context.Context, id string, draft Draft) (*domain.Invoice, error)

	// SetStatus changes only the delivery/collection status.
	SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error

	// Delete removes the invoice. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// Get returns the invoice with the given id, or false if absent.
	Get(ctx context.Context, id string) (domain.Invoice, bool)

	// List returns the current ordered invoice collection.
	List(ctx context.Context) []domain.Invoice

	// AutofillCustomer returns the first-seen customer whose name matches
	// exactly, for pre-filling phone/address/category in the form.
	AutofillCustomer(ctx context.Context, name string) (domain.Customer, bool)

	// ProductNames returns the distinct item names across all invoices,
	// sorted, for form suggestions.
	ProductNames(ctx context.Context) []string
}

type invoiceService struct {
	ledger *store.Ledger
	prefix string
}

// NewInvoiceService creates an invoice service over the given ledger.
// prefix is the invoice id prefix, "INV" when empty.
func NewInvoiceService(ledger *store.Ledger, prefix string) InvoiceService {
	if prefix == "" {
		prefix = "INV"
	}
	return &invoiceService{ledger: ledger, prefix: prefix}
}

// newID generates a collision-resistant invoice identifier in the familiar
// PREFIX-XXXXXXXX shape, sourced from a random UUID rather than the clock.
func (s *invoiceService) newID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s", s.prefix, token)
}

// normalize trims fields, drops untouched blank item rows, and validates
// what remains. The returned items are the draft's persistable lines.
func normalize(draft *Draft) ([]domain.InvoiceItem, error) {
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	draft.CustomerPhone = strings.TrimSpace(draft.CustomerPhone)
	draft.CustomerAddress = strings.TrimSpace(draft.CustomerAddress)
	draft.Notes = strings.TrimSpace(draft.Notes)

	if draft.CustomerName == "" || draft.CustomerPhone == "" {
		return nil, ErrCustomerIncomplete
	}

	items := make([]domain.InvoiceItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		if it.IsBlank() {
			continue
		}
		if it.Price < 0 || it.Quantity < 0 {
			return nil, ErrNegativeAmount
		}
		it.Name = strings.TrimSpace(it.Name)
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

func (s *invoiceService) Create(ctx context.Context, draft Draft) (*domain.Invoice, error) {
	items, err := normalize(&draft)
	if err != nil {
		return nil, err
	}

	inv := domain.NewInvoice(s.newID(), draft.CustomerName, draft.CustomerPhone, items)
	inv.CustomerAddress = draft.CustomerAddress
	inv.Notes = draft.Notes
	if draft.CustomerCategory != "" {
		inv.CustomerCategory = draft.CustomerCategory
	}
	if draft.Status != "" {
		inv.Status = draft.Status
	}

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice: %w", err)
	}
	if err := s.ledger.Add(ctx, *inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) Edit(ctx context.Context, id string, draft Draft) (*domain.Invoice, error) {
	existing, ok := s.ledger.Get(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
	}

	items, err := normalize(&draft)
	if err != nil {
		return nil, err
	}

	// Full-record replacement: id and original date survive, everything
	// else comes from the draft.
	inv := domain.Invoice{
		ID:               existing.ID,
		CustomerName:     draft.CustomerName,
		CustomerPhone:    draft.CustomerPhone,
		CustomerAddress:  draft.CustomerAddress,
		CustomerCategory: draft.CustomerCategory,
		Items:            items,
		Status:           draft.Status,
		Notes:            draft.Notes,
		Date:             existing.Date,
	}
	if inv.CustomerCategory == "" {
		inv.CustomerCategory = existing.CustomerCategory
	}
	if inv.Status == "" {
		inv.Status = existing.Status
	}
	inv.RecalculateTotal()

	if err := inv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid invoice: %w", err)
	}
	if err := s.ledger.Update(ctx, inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *invoiceService) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}

	inv, ok := s.ledger.Get(ctx, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvoiceNotFound, id)
	}

	inv.Status = status
	return s.ledger.Update(ctx, inv)
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	return s.ledger.Delete(ctx, id)
}

func (s *invoiceService) Get(ctx context.Context, id string) (domain.Invoice, bool) {
	return s.ledger.Get(ctx, id)
}

func (s *invoiceService) List(ctx context.Context) []domain.Invoice {
	return s.ledger.List(ctx)
}

func (s *invoiceService) AutofillCustomer(ctx context.Context, name string) (domain.Customer, bool) {
	return projection.FindCustomerByName(s.ledger.List(ctx), name)
}

func (s *invoiceService) ProductNames(ctx context.Context) []string {
	seen := make(map[string]bool)
	var names []string
	for _, inv := range s.ledger.List(ctx) {
		for _, it := range inv.Items {
			if it.Name == "" || seen[it.Name] {
				continue
			}
			seen[it.Name] = true
			names = append(names, it.Name)
		}
	}
	sort.Strings(names)
	return names
}
