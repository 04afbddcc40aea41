package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/store"
)

func newTestService() InvoiceService {
	return NewInvoiceService(store.Open(store.NewMemorySlot()), "INV")
}

func validDraft() Draft {
	return Draft{
		CustomerName:  "Ahmed Hassan",
		CustomerPhone: "01012345678",
		Items: []domain.InvoiceItem{
			{ID: "1", Name: "Tomatoes", Price: 100, Quantity: 3},
		},
	}
}

func TestCreateComputesTotalAndDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	inv, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inv.Total != 300 {
		t.Fatalf("expected total 300, got %v", inv.Total)
	}
	if inv.Status != domain.StatusPending {
		t.Fatalf("expected default status pending, got %s", inv.Status)
	}
	if inv.CustomerCategory != domain.CategoryNew {
		t.Fatalf("expected default category new, got %s", inv.CustomerCategory)
	}
	if inv.Date.IsZero() {
		t.Fatalf("expected date set on create")
	}
}

func TestCreateIDShape(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	inv, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(inv.ID, "INV-") {
		t.Fatalf("expected INV- prefix, got %s", inv.ID)
	}
	token := strings.TrimPrefix(inv.ID, "INV-")
	if len(token) != 8 {
		t.Fatalf("expected 8-char token, got %q", token)
	}
	if token != strings.ToUpper(token) {
		t.Fatalf("expected uppercase token, got %q", token)
	}

	// Two creates never share an id
	other, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ID == inv.ID {
		t.Fatalf("duplicate id generated: %s", inv.ID)
	}
}

func TestCreatePrependsToList(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	first, _ := svc.Create(ctx, validDraft())
	second, _ := svc.Create(ctx, validDraft())

	list := svc.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 invoices, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %s then %s", list[0].ID, list[1].ID)
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	d := validDraft()
	d.CustomerPhone = "   "
	if _, err := svc.Create(ctx, d); !errors.Is(err, ErrCustomerIncomplete) {
		t.Fatalf("expected ErrCustomerIncomplete, got %v", err)
	}

	d = validDraft()
	d.Items = []domain.InvoiceItem{{ID: "1"}} // blank row only
	if _, err := svc.Create(ctx, d); !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}

	d = validDraft()
	d.Items[0].Price = -5
	if _, err := svc.Create(ctx, d); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestCreateDropsBlankRows(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	d := validDraft()
	d.Items = append(d.Items, domain.InvoiceItem{ID: "2"}) // untouched row

	inv, err := svc.Create(ctx, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("expected blank row dropped, got %d items", len(inv.Items))
	}
	if inv.Total != 300 {
		t.Fatalf("expected total 300, got %v", inv.Total)
	}
}

func TestEditReplacesAndRecomputes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.Create(ctx, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := validDraft()
	d.CustomerName = "Mona"
	d.Items = []domain.InvoiceItem{
		{ID: "1", Name: "Oranges", Price: 200, Quantity: 2},
	}
	edited, err := svc.Edit(ctx, created.ID, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if edited.ID != created.ID {
		t.Fatalf("edit must keep the id, got %s", edited.ID)
	}
	if !edited.Date.Equal(created.Date) {
		t.Fatalf("edit must keep the original date")
	}
	if edited.Total != 400 {
		t.Fatalf("expected total 400, got %v", edited.Total)
	}
	if edited.CustomerName != "Mona" {
		t.Fatalf("expected replaced customer, got %s", edited.CustomerName)
	}
	if n := len(svc.List(ctx)); n != 1 {
		t.Fatalf("edit must not add records, got %d", n)
	}
}

func TestEditAbsentID(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Edit(ctx, "INV-404", validDraft())
	if !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, _ := svc.Create(ctx, validDraft())

	if err := svc.SetStatus(ctx, created.ID, domain.StatusCollected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Status != domain.StatusCollected {
		t.Fatalf("expected collected, got %s", got.Status)
	}
	if got.Total != created.Total || got.CustomerName != created.CustomerName {
		t.Fatalf("status change must not touch other fields")
	}

	if err := svc.SetStatus(ctx, created.ID, "shipped"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if err := svc.SetStatus(ctx, "INV-404", domain.StatusPending); !errors.Is(err, ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestDeleteEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, _ := svc.Create(ctx, validDraft())
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.Get(ctx, created.ID); ok {
		t.Fatalf("expected invoice gone after delete")
	}

	// Deleting again is a no-op
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestAutofillCustomer(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	d := validDraft()
	d.CustomerAddress = "Giza - Kerdasa"
	d.CustomerCategory = domain.CategoryWholesaler
	svc.Create(ctx, d)

	c, ok := svc.AutofillCustomer(ctx, "Ahmed Hassan")
	if !ok {
		t.Fatalf("expected autofill hit")
	}
	if c.Phone != "01012345678" || c.Address != "Giza - Kerdasa" || c.Category != domain.CategoryWholesaler {
		t.Fatalf("unexpected customer: %+v", c)
	}

	if _, ok := svc.AutofillCustomer(ctx, "ahmed hassan"); ok {
		t.Fatalf("autofill must be exact-match only")
	}
}

func TestProductNames(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	d := validDraft()
	d.Items = []domain.InvoiceItem{
		{ID: "1", Name: "Tomatoes", Price: 10, Quantity: 1},
		{ID: "2", Name: "Cucumbers", Price: 5, Quantity: 1},
	}
	svc.Create(ctx, d)

	d2 := validDraft()
	d2.Items = []domain.InvoiceItem{
		{ID: "1", Name: "Tomatoes", Price: 12, Quantity: 1},
		{ID: "2", Name: "Apples", Price: 30, Quantity: 1},
	}
	svc.Create(ctx, d2)

	names := svc.ProductNames(ctx)
	want := []string{"Apples", "Cucumbers", "Tomatoes"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
