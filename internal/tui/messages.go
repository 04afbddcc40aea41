package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// ViewInvoiceMsg opens the public invoice view for the given id
type ViewInvoiceMsg struct {
	ID string
}

// EditInvoiceMsg opens the invoice form pre-filled from an existing invoice
type EditInvoiceMsg struct {
	ID string
}

// firstRunCheckMsg reports whether the registry holds any invoices
type firstRunCheckMsg struct {
	hasInvoices bool
}
