package cli

import (
	"context"
	"fmt"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/share"
	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share [id]",
	Short: "Print the public link and QR code for an invoice",
	Long: `Print the shareable read-only link for an invoice, with its QR code
rendered in the terminal. Anyone holding the link or scanning the code can
view the invoice; there is no access control on the public view.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, ok := share.Resolve(appInstance.InvoiceService.List(ctx), args[0])
		if !ok {
			return fmt.Errorf("invoice not found: %s", args[0])
		}

		link := appInstance.Linker.InvoiceURL(inv.ID)
		fmt.Println(shareSummary(inv))
		fmt.Printf("\nLink: %s\n\n", link)

		qr, err := share.QRText(link)
		if err != nil {
			return fmt.Errorf("failed to render QR code: %w", err)
		}
		fmt.Print(qr)
		return nil
	},
}

// shareSummary is the one-line header above the link and QR code.
func shareSummary(inv domain.Invoice) string {
	return fmt.Sprintf("Invoice %s | %s | %.2f", inv.ID, inv.CustomerName, inv.Total)
}
