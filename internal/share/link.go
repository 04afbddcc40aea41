// Package share is the read-only public surface of an invoice: resolving it
// by identifier, building the shareable link, rendering the QR code, and
// producing the printable document. Nothing here mutates the ledger.
package share

import (
	"fmt"
	"strings"

	"github.com/andy/agrione/internal/domain"
)

// Linker builds shareable public-view links for invoices.
type Linker struct {
	// BaseURL is the site root, e.g. "https://agri-one.example".
	BaseURL string
}

// InvoiceURL returns the public view link for an invoice id. The fragment
// route matches the original hash-router layout so existing printed codes
// keep resolving.
func (l Linker) InvoiceURL(id string) string {
	base := strings.TrimRight(l.BaseURL, "/")
	return fmt.Sprintf("%s/#/invoice/view/%s", base, id)
}

// Resolve looks up an invoice by id in the full list. Any holder of a valid
// id may view the invoice; there is no access control. An unknown id yields
// a not-found state, not an error.
func Resolve(invoices []domain.Invoice, id string) (domain.Invoice, bool) {
	for i := range invoices {
		if invoices[i].ID == id {
			return invoices[i], true
		}
	}
	return domain.Invoice{}, false
}
