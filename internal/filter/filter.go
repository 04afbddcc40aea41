// Package filter applies compound search predicates to invoices and
// customers. Predicates compose with logical AND only; a predicate left at
// its zero value always matches.
package filter

import (
	"strings"
	"time"

	"github.com/andy/agrione/internal/domain"
)

// InvoiceFilter is a conjunction of independent invoice predicates.
type InvoiceFilter struct {
	// Query matches case-insensitively against customer name or invoice id.
	Query string
	// Product matches case-insensitively against line item names.
	Product string
	// Status of "" means all statuses.
	Status domain.InvoiceStatus
	// Category of "" means all categories.
	Category domain.CustomerCategory
	// From and To are inclusive bounds on the invoice's own timestamp.
	// Zero values mean unbounded.
	From time.Time
	To   time.Time
}

// Match reports whether the invoice satisfies every predicate.
func (f InvoiceFilter) Match(inv domain.Invoice) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(inv.CustomerName), q) &&
			!strings.Contains(strings.ToLower(inv.ID), q) {
			return false
		}
	}

	if f.Product != "" {
		p := strings.ToLower(f.Product)
		found := false
		for _, it := range inv.Items {
			if strings.Contains(strings.ToLower(it.Name), p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.Category != "" && inv.CustomerCategory != f.Category {
		return false
	}

	if !f.From.IsZero() && inv.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && inv.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the invoices matching the filter, order preserved.
func (f InvoiceFilter) Apply(invoices []domain.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, 0, len(invoices))
	for i := range invoices {
		if f.Match(invoices[i]) {
			out = append(out, invoices[i])
		}
	}
	return out
}

// CustomerFilter is a conjunction of independent customer predicates.
type CustomerFilter struct {
	// Query matches case-insensitively against name or phone.
	Query string
	// Category of "" means all categories.
	Category domain.CustomerCategory
}

// Match reports whether the customer satisfies every predicate.
func (f CustomerFilter) Match(c domain.Customer) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.Phone), q) {
			return false
		}
	}
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the customers matching the filter, order preserved.
func (f CustomerFilter) Apply(customers []domain.Customer) []domain.Customer {
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// ParseDay parses a YYYY-MM-DD bound. endOfDay pushes the time to 23:59:59
// so the bound stays inclusive for invoices dated later that day.
func ParseDay(s string, endOfDay bool) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}
