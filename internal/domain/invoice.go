package domain

import (
	"errors"
	"strings"
	"time"
)

type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusDelivered InvoiceStatus = "delivered"
	StatusCollected InvoiceStatus = "collected"
)

// Statuses lists all invoice statuses in lifecycle order.
var Statuses = []InvoiceStatus{StatusPending, StatusDelivered, StatusCollected}

// Valid reports whether the status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCollected:
		return true
	}
	return false
}

// Label returns the display name for the status.
func (s InvoiceStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusDelivered:
		return "Delivered"
	case StatusCollected:
		return "Collected"
	default:
		return string(s)
	}
}

type CustomerCategory string

const (
	CategoryNew        CustomerCategory = "new"
	CategoryRegular    CustomerCategory = "regular"
	CategoryWholesaler CustomerCategory = "wholesaler"
	CategoryFarm       CustomerCategory = "farm"
)

// Categories lists all customer categories. Analytics reports a bucket for
// every one of these even when its total is zero.
var Categories = []CustomerCategory{CategoryNew, CategoryRegular, CategoryWholesaler, CategoryFarm}

// Valid reports whether the category is one of the known values.
func (c CustomerCategory) Valid() bool {
	switch c {
	case CategoryNew, CategoryRegular, CategoryWholesaler, CategoryFarm:
		return true
	}
	return false
}

// Label returns the display name for the category.
func (c CustomerCategory) Label() string {
	switch c {
	case CategoryNew:
		return "New"
	case CategoryRegular:
		return "Regular"
	case CategoryWholesaler:
		return "Wholesaler"
	case CategoryFarm:
		return "Farm"
	default:
		return string(c)
	}
}

// InvoiceItem is a single product line on an invoice.
type InvoiceItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// LineTotal returns price * quantity for the item.
func (it InvoiceItem) LineTotal() float64 {
	return it.Price * it.Quantity
}

// IsBlank reports whether the item is an untouched form row.
func (it InvoiceItem) IsBlank() bool {
	return strings.TrimSpace(it.Name) == "" && it.Price == 0 && it.Quantity == 0
}

type Invoice struct {
	ID               string           `json:"id"`
	CustomerName     string           `json:"customerName"`
	CustomerPhone    string           `json:"customerPhone"`
	CustomerAddress  string           `json:"customerAddress"`
	CustomerCategory CustomerCategory `json:"customerCategory"`
	Items            []InvoiceItem    `json:"items"`
	Status           InvoiceStatus    `json:"status"`
	Notes            string           `json:"notes"`
	Date             time.Time        `json:"date"`
	Total            float64          `json:"total"`
}

// NewInvoice creates a pending invoice dated now with derived total.
func NewInvoice(id, name, phone string, items []InvoiceItem) *Invoice {
	inv := &Invoice{
		ID:               id,
		CustomerName:     strings.TrimSpace(name),
		CustomerPhone:    strings.TrimSpace(phone),
		CustomerCategory: CategoryNew,
		Items:            items,
		Status:           StatusPending,
		Date:             time.Now(),
	}
	inv.RecalculateTotal()
	return inv
}

// RecalculateTotal recomputes the stored total from the item lines.
// The total is always embedded at save time, never derived lazily.
func (i *Invoice) RecalculateTotal() {
	total := 0.0
	for _, it := range i.Items {
		total += it.LineTotal()
	}
	i.Total = total
}

// Customer returns the customer snapshot carried by this invoice.
func (i *Invoice) Customer() Customer {
	return Customer{
		Name:     i.CustomerName,
		Phone:    i.CustomerPhone,
		Address:  i.CustomerAddress,
		Category: i.CustomerCategory,
	}
}

// Validate returns an error if the invoice is not persistable.
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("invoice id is required")
	}
	if strings.TrimSpace(i.CustomerName) == "" {
		return errors.New("customer name is required")
	}
	if strings.TrimSpace(i.CustomerPhone) == "" {
		return errors.New("customer phone is required")
	}
	if !i.CustomerCategory.Valid() {
		return errors.New("unknown customer category")
	}
	if !i.Status.Valid() {
		return errors.New("unknown invoice status")
	}
	if len(i.Items) == 0 {
		return errors.New("invoice needs at least one item")
	}
	for _, it := range i.Items {
		if it.Price < 0 {
			return errors.New("item price cannot be negative")
		}
		if it.Quantity < 0 {
			return errors.New("item quantity cannot be negative")
		}
	}
	if i.Date.IsZero() {
		return errors.New("invoice date is required")
	}
	return nil
}

// Clone returns a deep copy. The ledger hands out clones so no caller holds
// a mutable reference into stored state.
func (i *Invoice) Clone() Invoice {
	out := *i
	out.Items = make([]InvoiceItem, len(i.Items))
	copy(out.Items, i.Items)
	return out
}
