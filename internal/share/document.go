package share

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andy/agrione/internal/domain"
)

// Company is the seller identity printed on the document header.
type Company struct {
	Name    string
	Phone   string
	Website string
	Address string
}

// RenderDocument produces the full-page printable invoice: header, bill-to
// block, item table, totals, notes, and terms. Controls and navigation are
// a screen concern and never appear here.
func RenderDocument(co Company, inv domain.Invoice, link string) string {
	var b strings.Builder

	sep := strings.Repeat("=", 62)
	line := strings.Repeat("-", 62)

	b.WriteString("INVOICE\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Invoice #:  %s\n", inv.ID))
	b.WriteString(fmt.Sprintf("Date:       %s\n", inv.Date.Format("Jan 02, 2006")))
	b.WriteString(fmt.Sprintf("Status:     %s\n", inv.Status.Label()))

	if co.Name != "" {
		b.WriteString("\nFrom:\n")
		b.WriteString(fmt.Sprintf("  %s\n", co.Name))
		if co.Phone != "" {
			b.WriteString(fmt.Sprintf("  %s\n", co.Phone))
		}
		if co.Website != "" {
			b.WriteString(fmt.Sprintf("  %s\n", co.Website))
		}
		if co.Address != "" {
			b.WriteString(fmt.Sprintf("  %s\n", co.Address))
		}
	}

	b.WriteString("\nBill To:\n")
	b.WriteString(fmt.Sprintf("  %s\n", inv.CustomerName))
	b.WriteString(fmt.Sprintf("  %s\n", inv.CustomerPhone))
	if inv.CustomerAddress != "" {
		b.WriteString(fmt.Sprintf("  %s\n", inv.CustomerAddress))
	}
	b.WriteString(fmt.Sprintf("  [%s]\n", inv.CustomerCategory.Label()))

	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-28s %10s %8s %12s\n", "Item", "Price", "Qty", "Total"))
	b.WriteString(line + "\n")

	for _, it := range inv.Items {
		name := it.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		b.WriteString(fmt.Sprintf("%-28s %10s %8s %12s\n",
			name,
			formatAmount(it.Price),
			formatQuantity(it.Quantity),
			formatAmount(it.LineTotal()),
		))
	}

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%48s %12s\n", "TOTAL", formatAmount(inv.Total)))
	b.WriteString(sep + "\n")

	if inv.Notes != "" {
		b.WriteString("\nNotes:\n")
		b.WriteString(fmt.Sprintf("  %s\n", inv.Notes))
	}

	if link != "" {
		b.WriteString(fmt.Sprintf("\nVerify online: %s\n", link))
	}

	b.WriteString("\nTerms:\n")
	b.WriteString("  - Keep this invoice for exchange and collection claims.\n")
	b.WriteString("  - Collection is due within the period agreed with the customer.\n")

	return b.String()
}

// WriteDocument writes the printable invoice to a file, creating parent
// directories as needed, and returns the path written.
func WriteDocument(co Company, inv domain.Invoice, link, path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderDocument(co, inv, link)), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// formatAmount formats money with comma thousands separators.
func formatAmount(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, byte(c))
	}

	if negative {
		return "-" + string(grouped) + decPart
	}
	return string(grouped) + decPart
}

// formatQuantity drops the fraction when the quantity is whole.
func formatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}
