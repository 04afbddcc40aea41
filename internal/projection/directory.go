// Package projection derives read-only views from an invoice snapshot.
// Everything here is a pure function of its input, recomputed from scratch
// on every call; the snapshot is small enough that caching is not worth
// the invalidation bookkeeping.
package projection

import "github.com/andy/agrione/internal/domain"

// Directory derives the deduplicated customer list from invoice history.
// Identity is the phone number; for each phone the name, address and
// category come from the first invoice carrying it in list order
// (first occurrence wins, not most recent). Output preserves first-seen
// order.
func Directory(invoices []domain.Invoice) []domain.Customer {
	seen := make(map[string]bool, len(invoices))
	customers := make([]domain.Customer, 0, len(invoices))

	for i := range invoices {
		phone := invoices[i].CustomerPhone
		if seen[phone] {
			continue
		}
		seen[phone] = true
		customers = append(customers, invoices[i].Customer())
	}
	return customers
}

// CustomerInvoices returns all invoices for a phone number, in list order.
func CustomerInvoices(invoices []domain.Invoice, phone string) []domain.Invoice {
	var out []domain.Invoice
	for i := range invoices {
		if invoices[i].CustomerPhone == phone {
			out = append(out, invoices[i])
		}
	}
	return out
}

// FindCustomerByName returns the first-seen customer whose name matches
// exactly. Used by the editor's autofill; no fuzzy matching.
func FindCustomerByName(invoices []domain.Invoice, name string) (domain.Customer, bool) {
	for _, c := range Directory(invoices) {
		if c.Name == name {
			return c, true
		}
	}
	return domain.Customer{}, false
}
