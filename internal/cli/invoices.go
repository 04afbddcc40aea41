package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/service"
	"github.com/andy/agrione/internal/share"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage invoices",
	Long:  `Create, list, edit, and manage sales invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		f, err := invoiceFilterFromFlags(cmd)
		if err != nil {
			return err
		}

		invoices := f.Apply(appInstance.InvoiceService.List(ctx))
		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		// Print table header
		fmt.Printf("%-14s %-20s %-12s %-12s %12s  %-10s\n", "ID", "Customer", "Category", "Date", "Total", "Status")
		fmt.Println(strings.Repeat("-", 88))

		for _, inv := range invoices {
			fmt.Printf("%-14s %-20s %-12s %-12s %12.2f  %-10s\n",
				inv.ID,
				truncate(inv.CustomerName, 20),
				inv.CustomerCategory.Label(),
				inv.Date.Format("2006-01-02"),
				inv.Total,
				inv.Status.Label(),
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new invoice",
	Long: `Create a new invoice for a customer.

Items are given as repeated --item flags in "name:price:quantity" form:

  agrione invoices create --customer "Ahmed" --phone 0103000000 \
      --item "Wheat:100:3" --item "Corn:50:2"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := draftFromFlags(cmd)
		if err != nil {
			return err
		}

		// Autofill address/category from the directory when the name
		// matches an existing customer exactly and no value was given.
		if c, ok := appInstance.InvoiceService.AutofillCustomer(ctx, draft.CustomerName); ok {
			if draft.CustomerPhone == "" {
				draft.CustomerPhone = c.Phone
			}
			if draft.CustomerAddress == "" {
				draft.CustomerAddress = c.Address
			}
			if draft.CustomerCategory == "" {
				draft.CustomerCategory = c.Category
			}
		}

		inv, err := appInstance.InvoiceService.Create(ctx, draft)
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("✓ Invoice created: %s\n", inv.ID)
		fmt.Printf("  Customer: %s (%s)\n", inv.CustomerName, inv.CustomerPhone)
		fmt.Printf("  Items: %d\n", len(inv.Items))
		fmt.Printf("  Total: %.2f\n", inv.Total)
		return nil
	},
}

var invoicesEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace an invoice's fields wholesale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		draft, err := draftFromFlags(cmd)
		if err != nil {
			return err
		}

		inv, err := appInstance.InvoiceService.Edit(ctx, args[0], draft)
		if err != nil {
			return fmt.Errorf("failed to edit invoice: %w", err)
		}

		fmt.Printf("✓ Invoice updated: %s\n", inv.ID)
		fmt.Printf("  Total: %.2f\n", inv.Total)
		return nil
	},
}

var invoicesSetStatusCmd = &cobra.Command{
	Use:   "set-status [id] [pending|delivered|collected]",
	Short: "Change an invoice's delivery/collection status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		status := domain.InvoiceStatus(args[1])
		if err := appInstance.InvoiceService.SetStatus(ctx, args[0], status); err != nil {
			return fmt.Errorf("failed to set status: %w", err)
		}

		fmt.Printf("✓ Invoice %s marked %s\n", args[0], status.Label())
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if _, ok := appInstance.InvoiceService.Get(ctx, args[0]); !ok {
			return fmt.Errorf("invoice not found: %s", args[0])
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(fmt.Sprintf("Delete invoice %s? This cannot be undone.", args[0])) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}

		fmt.Printf("✓ Invoice %s deleted\n", args[0])
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, ok := appInstance.InvoiceService.Get(ctx, args[0])
		if !ok {
			return fmt.Errorf("invoice not found: %s", args[0])
		}

		link := appInstance.Linker.InvoiceURL(inv.ID)
		fmt.Print(share.RenderDocument(appInstance.Company(), inv, link))
		return nil
	},
}

var invoicesPrintCmd = &cobra.Command{
	Use:   "print [id]",
	Short: "Write the printable invoice document and QR image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, ok := appInstance.InvoiceService.Get(ctx, args[0])
		if !ok {
			return fmt.Errorf("invoice not found: %s", args[0])
		}

		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = appInstance.Config.Invoice.OutputDir
		}

		link := appInstance.Linker.InvoiceURL(inv.ID)

		docPath := filepath.Join(outDir, inv.ID+".txt")
		if _, err := share.WriteDocument(appInstance.Company(), inv, link, docPath); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}

		qrPath := filepath.Join(outDir, inv.ID+".png")
		if err := share.WriteQRPNG(link, qrPath); err != nil {
			return fmt.Errorf("failed to write QR image: %w", err)
		}

		fmt.Printf("✓ Printed invoice %s\n", inv.ID)
		fmt.Printf("  Document: %s\n", docPath)
		fmt.Printf("  QR image: %s\n", qrPath)
		return nil
	},
}

// draftFromFlags builds an editor draft from the shared create/edit flags.
func draftFromFlags(cmd *cobra.Command) (service.Draft, error) {
	name, _ := cmd.Flags().GetString("customer")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")
	region, _ := cmd.Flags().GetString("region")
	category, _ := cmd.Flags().GetString("category")
	status, _ := cmd.Flags().GetString("status")
	notes, _ := cmd.Flags().GetString("notes")
	itemSpecs, _ := cmd.Flags().GetStringArray("item")

	// Region prefixes the address unless already present, compared
	// case-insensitively like the TUI form.
	if region != "" && !strings.Contains(strings.ToLower(address), strings.ToLower(region)) {
		if address == "" {
			address = region
		} else {
			address = region + " - " + address
		}
	}

	draft := service.Draft{
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerAddress: address,
		Notes:           notes,
	}

	if category != "" {
		c := domain.CustomerCategory(category)
		if !c.Valid() {
			return service.Draft{}, fmt.Errorf("unknown category %q (new, regular, wholesaler, farm)", category)
		}
		draft.CustomerCategory = c
	}

	if status != "" {
		s := domain.InvoiceStatus(status)
		if !s.Valid() {
			return service.Draft{}, fmt.Errorf("unknown status %q (pending, delivered, collected)", status)
		}
		draft.Status = s
	}

	for i, spec := range itemSpecs {
		item, err := parseItemSpec(spec)
		if err != nil {
			return service.Draft{}, err
		}
		item.ID = fmt.Sprintf("%d", i+1)
		draft.Items = append(draft.Items, item)
	}

	return draft, nil
}

// parseItemSpec parses "name:price:quantity". Quantity defaults to 1.
func parseItemSpec(spec string) (domain.InvoiceItem, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.InvoiceItem{}, fmt.Errorf("invalid item %q, want name:price[:quantity]", spec)
	}

	item := domain.InvoiceItem{Name: strings.TrimSpace(parts[0]), Quantity: 1}

	if _, err := fmt.Sscanf(strings.TrimSpace(parts[1]), "%g", &item.Price); err != nil {
		return domain.InvoiceItem{}, fmt.Errorf("invalid price in item %q: %w", spec, err)
	}
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(strings.TrimSpace(parts[2]), "%g", &item.Quantity); err != nil {
			return domain.InvoiceItem{}, fmt.Errorf("invalid quantity in item %q: %w", spec, err)
		}
	}
	return item, nil
}

// invoiceFilterFromFlags builds the registry filter from list flags.
func invoiceFilterFromFlags(cmd *cobra.Command) (filter.InvoiceFilter, error) {
	var f filter.InvoiceFilter

	f.Query, _ = cmd.Flags().GetString("search")
	f.Product, _ = cmd.Flags().GetString("product")

	if statusStr, _ := cmd.Flags().GetString("status"); statusStr != "" {
		s := domain.InvoiceStatus(statusStr)
		if !s.Valid() {
			return f, fmt.Errorf("unknown status %q", statusStr)
		}
		f.Status = s
	}
	if catStr, _ := cmd.Flags().GetString("category"); catStr != "" {
		c := domain.CustomerCategory(catStr)
		if !c.Valid() {
			return f, fmt.Errorf("unknown category %q", catStr)
		}
		f.Category = c
	}

	if fromStr, _ := cmd.Flags().GetString("from"); fromStr != "" {
		t, err := filter.ParseDay(fromStr, false)
		if err != nil {
			return f, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = t
	}
	if toStr, _ := cmd.Flags().GetString("to"); toStr != "" {
		t, err := filter.ParseDay(toStr, true)
		if err != nil {
			return f, fmt.Errorf("invalid --to date: %w", err)
		}
		f.To = t
	}

	return f, nil
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("customer", "", "Customer name (required)")
	cmd.Flags().String("phone", "", "Customer phone")
	cmd.Flags().String("address", "", "Customer address")
	cmd.Flags().String("region", "", "Region prefixed to the address")
	cmd.Flags().String("category", "", "Customer category (new, regular, wholesaler, farm)")
	cmd.Flags().String("status", "", "Invoice status (pending, delivered, collected)")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().StringArray("item", nil, "Line item as name:price[:quantity] (repeatable)")
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesEditCmd)
	invoicesCmd.AddCommand(invoicesSetStatusCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesPrintCmd)

	// List flags
	invoicesListCmd.Flags().String("search", "", "Match customer name or invoice id")
	invoicesListCmd.Flags().String("product", "", "Match line item names")
	invoicesListCmd.Flags().String("status", "", "Filter by status (pending, delivered, collected)")
	invoicesListCmd.Flags().String("category", "", "Filter by customer category")
	invoicesListCmd.Flags().String("from", "", "Inclusive start date (YYYY-MM-DD)")
	invoicesListCmd.Flags().String("to", "", "Inclusive end date (YYYY-MM-DD)")

	// Create/edit flags
	addDraftFlags(invoicesCreateCmd)
	addDraftFlags(invoicesEditCmd)
	invoicesCreateCmd.MarkFlagRequired("customer")

	// Delete flags
	invoicesDeleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	// Print flags
	invoicesPrintCmd.Flags().String("out", "", "Output directory (defaults to configured output_dir)")
}
