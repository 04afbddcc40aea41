package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/projection"
	"github.com/spf13/cobra"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Browse the customer directory",
	Long: `Browse the customer directory derived from invoice history.

Customers are not stored separately: each distinct phone number appearing
on an invoice is one customer, with details taken from that phone's first
invoice in the registry.`,
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var f filter.CustomerFilter
		f.Query, _ = cmd.Flags().GetString("search")
		if catStr, _ := cmd.Flags().GetString("category"); catStr != "" {
			c := domain.CustomerCategory(catStr)
			if !c.Valid() {
				return fmt.Errorf("unknown category %q", catStr)
			}
			f.Category = c
		}

		customers := f.Apply(projection.Directory(appInstance.InvoiceService.List(ctx)))
		if len(customers) == 0 {
			fmt.Println("No customers found")
			return nil
		}

		fmt.Printf("%-20s %-14s %-12s %s\n", "Name", "Phone", "Category", "Address")
		fmt.Println(strings.Repeat("-", 76))
		for _, c := range customers {
			fmt.Printf("%-20s %-14s %-12s %s\n",
				truncate(c.Name, 20),
				c.Phone,
				c.Category.Label(),
				truncate(c.Address, 28),
			)
		}

		fmt.Printf("\nTotal: %d customer(s)\n", len(customers))
		return nil
	},
}

var customersShowCmd = &cobra.Command{
	Use:   "show [phone]",
	Short: "Show a customer and their invoice history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		invoices := appInstance.InvoiceService.List(ctx)

		var customer *domain.Customer
		for _, c := range projection.Directory(invoices) {
			if c.Phone == args[0] {
				customer = &c
				break
			}
		}
		if customer == nil {
			return fmt.Errorf("no customer with phone %s", args[0])
		}

		fmt.Printf("%s\n", customer.Name)
		fmt.Printf("  Phone:    %s\n", customer.Phone)
		if customer.Address != "" {
			fmt.Printf("  Address:  %s\n", customer.Address)
		}
		fmt.Printf("  Category: %s\n", customer.Category.Label())

		history := projection.CustomerInvoices(invoices, customer.Phone)
		fmt.Printf("\nInvoices (%d):\n", len(history))
		for _, inv := range history {
			fmt.Printf("  %-14s %-12s %12.2f  %s\n",
				inv.ID,
				inv.Date.Format("2006-01-02"),
				inv.Total,
				inv.Status.Label(),
			)
		}
		return nil
	},
}

func init() {
	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersShowCmd)

	customersListCmd.Flags().String("search", "", "Match customer name or phone")
	customersListCmd.Flags().String("category", "", "Filter by category (new, regular, wholesaler, farm)")
}
