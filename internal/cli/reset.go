package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all invoices",
	Long: `Delete every invoice in the registry and persist the empty slot.

This cannot be undone. The customer directory and analytics are derived
from invoices, so they are emptied as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		yes, _ := cmd.Flags().GetBool("yes")
		n := appInstance.Ledger.Len(ctx)
		if n == 0 {
			fmt.Println("Registry is already empty")
			return nil
		}

		if !yes && !confirmPrompt(fmt.Sprintf("Delete all %d invoice(s)? This cannot be undone", n)) {
			fmt.Println("Cancelled")
			return nil
		}

		for _, inv := range appInstance.InvoiceService.List(ctx) {
			if err := appInstance.InvoiceService.Delete(ctx, inv.ID); err != nil {
				return fmt.Errorf("failed to delete %s: %w", inv.ID, err)
			}
		}

		fmt.Printf("Deleted %d invoice(s)\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}
