package cli

import (
	"github.com/andy/agrione/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "agrione",
	Short: "Invoicing for small agricultural sales operations",
	Long: `Agrione records sales invoices, tracks delivery and collection status,
derives a customer directory from invoice history, and produces shareable
read-only invoice documents with QR codes.

By default, running agrione without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(customersCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(resetCmd)
}
