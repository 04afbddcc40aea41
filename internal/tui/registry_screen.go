package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andy/agrione/internal/app"
	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/share"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// registryMode represents the current screen mode
type registryMode int

const (
	registryModeList registryMode = iota
	registryModeConfirmDelete
)

// RegistryModel displays the invoice registry with search, status filtering,
// in-place status changes and deletion.
type RegistryModel struct {
	app      *app.App
	invoices []domain.Invoice
	cursor   int

	searchInput  textinput.Model
	searching    bool
	query        string
	statusFilter domain.InvoiceStatus // empty means all

	mode      registryMode
	loading   bool
	err       error
	statusMsg string
}

type registryDataMsg struct {
	invoices []domain.Invoice
	err      error
}

type invoiceDeletedMsg struct {
	id  string
	err error
}

type invoicePrintedMsg struct {
	id   string
	path string
	err  error
}

// NewRegistryModel creates a new registry screen model
func NewRegistryModel(a *app.App) tea.Model {
	return &RegistryModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true while the search box is focused
func (m *RegistryModel) IsCapturingInput() bool {
	return m.searching
}

func (m *RegistryModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *RegistryModel) loadInvoices() tea.Cmd {
	f := filter.InvoiceFilter{Query: m.query, Status: m.statusFilter}
	return func() tea.Msg {
		ctx := context.Background()
		return registryDataMsg{invoices: f.Apply(m.app.InvoiceService.List(ctx))}
	}
}

func (m *RegistryModel) selected() (domain.Invoice, bool) {
	if len(m.invoices) == 0 || m.cursor >= len(m.invoices) {
		return domain.Invoice{}, false
	}
	return m.invoices[m.cursor], true
}

func (m *RegistryModel) deleteSelected() tea.Cmd {
	inv, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		err := m.app.InvoiceService.Delete(context.Background(), inv.ID)
		return invoiceDeletedMsg{id: inv.ID, err: err}
	}
}

// cycleStatus advances the selected invoice to the next lifecycle status.
func (m *RegistryModel) cycleStatus() tea.Cmd {
	inv, ok := m.selected()
	if !ok {
		return nil
	}
	next := domain.Statuses[0]
	for i, s := range domain.Statuses {
		if s == inv.Status {
			next = domain.Statuses[(i+1)%len(domain.Statuses)]
			break
		}
	}
	return func() tea.Msg {
		if err := m.app.InvoiceService.SetStatus(context.Background(), inv.ID, next); err != nil {
			return ErrorMsg{Err: err}
		}
		return RefreshDataMsg{}
	}
}

// printSelected writes the printable document and QR code to the output dir.
func (m *RegistryModel) printSelected() tea.Cmd {
	inv, ok := m.selected()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		link := m.app.Linker.InvoiceURL(inv.ID)
		docPath := filepath.Join(m.app.Config.Invoice.OutputDir, inv.ID+".txt")
		if _, err := share.WriteDocument(m.app.Company(), inv, link, docPath); err != nil {
			return invoicePrintedMsg{id: inv.ID, err: err}
		}
		qrPath := filepath.Join(m.app.Config.Invoice.OutputDir, inv.ID+".png")
		if err := share.WriteQRPNG(link, qrPath); err != nil {
			return invoicePrintedMsg{id: inv.ID, err: err}
		}
		return invoicePrintedMsg{id: inv.ID, path: docPath}
	}
}

func (m *RegistryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoices()

	case registryDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			if m.cursor >= len(m.invoices) {
				m.cursor = max(0, len(m.invoices)-1)
			}
		}
		return m, nil

	case invoiceDeletedMsg:
		m.mode = registryModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted %s", msg.id)
		m.loading = true
		return m, m.loadInvoices()

	case invoicePrintedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Printed %s to %s", msg.id, msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.mode == registryModeConfirmDelete {
			switch msg.String() {
			case "y", "Y":
				return m, m.deleteSelected()
			default:
				m.mode = registryModeList
				return m, nil
			}
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.invoices)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Search):
			m.searchInput = textinput.New()
			m.searchInput.Placeholder = "customer or invoice id"
			m.searchInput.CharLimit = 60
			m.searchInput.Width = 30
			m.searchInput.SetValue(m.query)
			m.searching = true
			return m, m.searchInput.Focus()
		case msg.String() == "s":
			m.statusFilter = nextStatusFilter(m.statusFilter)
			m.cursor = 0
			m.loading = true
			return m, m.loadInvoices()
		case key.Matches(msg, DefaultKeyMap.Status):
			return m, m.cycleStatus()
		case key.Matches(msg, DefaultKeyMap.Delete):
			if _, ok := m.selected(); ok {
				m.mode = registryModeConfirmDelete
			}
		case key.Matches(msg, DefaultKeyMap.Edit):
			if inv, ok := m.selected(); ok {
				return m, func() tea.Msg { return EditInvoiceMsg{ID: inv.ID} }
			}
		case key.Matches(msg, DefaultKeyMap.Print):
			return m, m.printSelected()
		case key.Matches(msg, DefaultKeyMap.Select):
			if inv, ok := m.selected(); ok {
				return m, func() tea.Msg { return ViewInvoiceMsg{ID: inv.ID} }
			}
		}
	}

	return m, nil
}

func (m *RegistryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.query = ""
		m.cursor = 0
		m.loading = true
		return m, m.loadInvoices()
	case "enter":
		m.searching = false
		m.query = m.searchInput.Value()
		m.cursor = 0
		m.loading = true
		return m, m.loadInvoices()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// nextStatusFilter cycles all -> pending -> delivered -> collected -> all.
func nextStatusFilter(s domain.InvoiceStatus) domain.InvoiceStatus {
	switch s {
	case "":
		return domain.StatusPending
	case domain.StatusPending:
		return domain.StatusDelivered
	case domain.StatusDelivered:
		return domain.StatusCollected
	default:
		return ""
	}
}

func (m *RegistryModel) View() string {
	if m.loading {
		return "Loading invoices..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	header := "Invoices"
	if m.statusFilter != "" {
		header += subtitleStyle.Render(fmt.Sprintf("  (status: %s)", m.statusFilter.Label()))
	}
	if m.query != "" {
		header += subtitleStyle.Render(fmt.Sprintf("  (search: %q)", m.query))
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.searching {
		s += fmt.Sprintf("  Search: %s\n\n", m.searchInput.View())
	}

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.mode == registryModeConfirmDelete {
		if inv, ok := m.selected(); ok {
			s += lipgloss.NewStyle().Foreground(warningColor).
				Render(fmt.Sprintf("  Delete %s (%s)? This cannot be undone. [y/N]", inv.ID, inv.CustomerName)) + "\n\n"
		}
	}

	if len(m.invoices) == 0 {
		s += subtitleStyle.Render("  No invoices found. Press 'n' to create one.") + "\n"
		return s
	}

	for i, inv := range m.invoices {
		s += m.renderInvoice(i, inv) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: view  e: edit  t: cycle status  x: delete  p: print  /: search  s: filter status")

	return s
}

func (m *RegistryModel) renderInvoice(index int, inv domain.Invoice) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%-13s %-10s %s", indicator, inv.ID,
		inv.Date.Format("2006-01-02"), truncateStr(inv.CustomerName, 24))
	line2 := fmt.Sprintf("    %s  |  %d item(s)  |  %s",
		formatMoney(inv.Total), len(inv.Items), statusStyle(inv.Status).Render(inv.Status.Label()))

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}
