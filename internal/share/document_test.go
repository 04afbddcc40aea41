package share

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andy/agrione/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocInvoice() domain.Invoice {
	return domain.Invoice{
		ID:               "INV-AB12CD34",
		CustomerName:     "Ahmed Hassan",
		CustomerPhone:    "01012345678",
		CustomerAddress:  "Giza - Kerdasa",
		CustomerCategory: domain.CategoryWholesaler,
		Items: []domain.InvoiceItem{
			{ID: "1", Name: "Baladi Tomatoes", Price: 1250.5, Quantity: 2},
			{ID: "2", Name: "Cucumbers", Price: 100, Quantity: 0.5},
		},
		Status: domain.StatusDelivered,
		Notes:  "deliver before noon",
		Date:   time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		Total:  2551,
	}
}

func TestRenderDocument(t *testing.T) {
	co := Company{Name: "Agri One", Phone: "0111", Website: "www.agri-one.com", Address: "Cairo"}
	doc := RenderDocument(co, testDocInvoice(), "https://www.agri-one.com/#/invoice/view/INV-AB12CD34")

	assert.Contains(t, doc, "Invoice #:  INV-AB12CD34")
	assert.Contains(t, doc, "Date:       Jun 15, 2026")
	assert.Contains(t, doc, "Status:     Delivered")
	assert.Contains(t, doc, "Agri One")
	assert.Contains(t, doc, "Ahmed Hassan")
	assert.Contains(t, doc, "[Wholesaler]")
	assert.Contains(t, doc, "Baladi Tomatoes")
	assert.Contains(t, doc, "1,250.50")
	assert.Contains(t, doc, "2,551.00")
	assert.Contains(t, doc, "deliver before noon")
	assert.Contains(t, doc, "Verify online: https://www.agri-one.com/#/invoice/view/INV-AB12CD34")
	assert.Contains(t, doc, "Terms:")
}

func TestRenderDocumentOmitsEmptySections(t *testing.T) {
	inv := testDocInvoice()
	inv.Notes = ""
	inv.CustomerAddress = ""

	doc := RenderDocument(Company{}, inv, "")

	assert.NotContains(t, doc, "From:")
	assert.NotContains(t, doc, "Notes:")
	assert.NotContains(t, doc, "Verify online")
}

func TestWriteDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "INV-1.txt")

	written, err := WriteDocument(Company{Name: "Agri One"}, testDocInvoice(), "", path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "INVOICE\n"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "999.90", formatAmount(999.9))
	assert.Equal(t, "1,000.00", formatAmount(1000))
	assert.Equal(t, "1,234,567.89", formatAmount(1234567.89))
	assert.Equal(t, "-1,500.00", formatAmount(-1500))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", formatQuantity(3))
	assert.Equal(t, "0.50", formatQuantity(0.5))
}
