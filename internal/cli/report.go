package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/projection"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Sales analytics",
	Long: `Show aggregate sales metrics: totals, status counts, category
breakdown, month-over-month growth, and the recent daily series.

A date range (--from/--to) narrows every metric except month-over-month
growth, which always reflects the full registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var f filter.InvoiceFilter
		if fromStr, _ := cmd.Flags().GetString("from"); fromStr != "" {
			t, err := filter.ParseDay(fromStr, false)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			f.From = t
		}
		if toStr, _ := cmd.Flags().GetString("to"); toStr != "" {
			t, err := filter.ParseDay(toStr, true)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}
			f.To = t
		}

		all := appInstance.InvoiceService.List(ctx)
		summary := projection.Summarize(all, f.Apply(all), time.Now())

		fmt.Println("Sales Summary")
		fmt.Println(strings.Repeat("=", 44))
		fmt.Printf("Total sales:       %.2f\n", summary.TotalSales)
		fmt.Printf("Pending:           %d\n", summary.Pending)
		fmt.Printf("Delivered:         %d\n", summary.Delivered)
		fmt.Printf("Collected:         %d\n", summary.Collected)

		fmt.Println("\nBy category:")
		for _, cat := range domain.Categories {
			fmt.Printf("  %-12s %12.2f\n", cat.Label(), summary.ByCategory[cat])
		}

		fmt.Println("\nMonth over month:")
		fmt.Printf("  This month:  %12.2f\n", summary.CurrentMonthTotal)
		fmt.Printf("  Last month:  %12.2f\n", summary.PreviousMonthTotal)
		fmt.Printf("  Growth:      %+11.1f%%\n", summary.GrowthPercent)

		if len(summary.Daily) > 0 {
			fmt.Println("\nRecent active days:")
			for _, p := range summary.Daily {
				fmt.Printf("  %s  %12.2f\n", p.Day.Format("2006-01-02"), p.Total)
			}
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("from", "", "Inclusive start date (YYYY-MM-DD)")
	reportCmd.Flags().String("to", "", "Inclusive end date (YYYY-MM-DD)")
}
