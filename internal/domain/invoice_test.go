package domain

import (
	"testing"
	"time"
)

func TestNewInvoiceDefaults(t *testing.T) {
	inv := NewInvoice("INV-1", "  Ahmed  ", " 0100 ", []InvoiceItem{
		{ID: "1", Name: "Tomatoes", Price: 50, Quantity: 2},
		{ID: "2", Name: "Cucumbers", Price: 25, Quantity: 4},
	})

	if inv.CustomerName != "Ahmed" || inv.CustomerPhone != "0100" {
		t.Fatalf("expected trimmed fields, got %q / %q", inv.CustomerName, inv.CustomerPhone)
	}
	if inv.Status != StatusPending {
		t.Fatalf("expected pending, got %s", inv.Status)
	}
	if inv.CustomerCategory != CategoryNew {
		t.Fatalf("expected new category, got %s", inv.CustomerCategory)
	}
	if inv.Total != 200 {
		t.Fatalf("expected total 200, got %v", inv.Total)
	}
}

func TestRecalculateTotal(t *testing.T) {
	inv := Invoice{Items: []InvoiceItem{
		{Price: 10, Quantity: 1.5},
		{Price: 100, Quantity: 2},
	}}
	inv.RecalculateTotal()
	if inv.Total != 215 {
		t.Fatalf("expected 215, got %v", inv.Total)
	}

	inv.Items = nil
	inv.RecalculateTotal()
	if inv.Total != 0 {
		t.Fatalf("expected 0 for empty items, got %v", inv.Total)
	}
}

func TestInvoiceItemIsBlank(t *testing.T) {
	if !(InvoiceItem{ID: "1", Name: "  "}).IsBlank() {
		t.Fatalf("whitespace-only row should be blank")
	}
	if (InvoiceItem{Name: "Tomatoes"}).IsBlank() {
		t.Fatalf("named row is not blank")
	}
	if (InvoiceItem{Quantity: 2}).IsBlank() {
		t.Fatalf("row with quantity is not blank")
	}
}

func TestInvoiceValidate(t *testing.T) {
	valid := func() *Invoice {
		return NewInvoice("INV-1", "Ahmed", "0100", []InvoiceItem{
			{ID: "1", Name: "Tomatoes", Price: 50, Quantity: 2},
		})
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid invoice, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Invoice)
	}{
		{"missing id", func(i *Invoice) { i.ID = " " }},
		{"missing name", func(i *Invoice) { i.CustomerName = "" }},
		{"missing phone", func(i *Invoice) { i.CustomerPhone = "" }},
		{"bad category", func(i *Invoice) { i.CustomerCategory = "vip" }},
		{"bad status", func(i *Invoice) { i.Status = "shipped" }},
		{"no items", func(i *Invoice) { i.Items = nil }},
		{"negative price", func(i *Invoice) { i.Items[0].Price = -1 }},
		{"negative quantity", func(i *Invoice) { i.Items[0].Quantity = -1 }},
		{"zero date", func(i *Invoice) { i.Date = time.Time{} }},
	}
	for _, tc := range cases {
		inv := valid()
		tc.mutate(inv)
		if err := inv.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestInvoiceCloneIsDeep(t *testing.T) {
	inv := NewInvoice("INV-1", "Ahmed", "0100", []InvoiceItem{
		{ID: "1", Name: "Tomatoes", Price: 50, Quantity: 2},
	})

	clone := inv.Clone()
	clone.Items[0].Name = "mutated"

	if inv.Items[0].Name != "Tomatoes" {
		t.Fatalf("clone shares item storage with original")
	}
}

func TestEnumLabels(t *testing.T) {
	if StatusPending.Label() != "Pending" {
		t.Fatalf("got %q", StatusPending.Label())
	}
	if CategoryWholesaler.Label() != "Wholesaler" {
		t.Fatalf("got %q", CategoryWholesaler.Label())
	}
	// Unknown values fall through to their raw string
	if InvoiceStatus("weird").Label() != "weird" {
		t.Fatalf("got %q", InvoiceStatus("weird").Label())
	}
}
