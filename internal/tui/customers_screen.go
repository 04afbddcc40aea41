package tui

import (
	"context"
	"fmt"

	"github.com/andy/agrione/internal/app"
	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/projection"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// customersMode represents the current screen mode
type customersMode int

const (
	customersModeList customersMode = iota
	customersModeDetail
)

// CustomersModel shows the directory derived from invoice history: one entry
// per distinct phone number, details taken from that phone's first invoice.
type CustomersModel struct {
	app       *app.App
	customers []domain.Customer
	cursor    int

	searchInput    textinput.Model
	searching      bool
	query          string
	categoryFilter domain.CustomerCategory // empty means all

	mode    customersMode
	history []domain.Invoice

	loading bool
	err     error
}

type customersDataMsg struct {
	customers []domain.Customer
	err       error
}

type customerHistoryMsg struct {
	history []domain.Invoice
}

// NewCustomersModel creates a new customers screen model
func NewCustomersModel(a *app.App) tea.Model {
	return &CustomersModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true while the search box is focused
func (m *CustomersModel) IsCapturingInput() bool {
	return m.searching
}

func (m *CustomersModel) Init() tea.Cmd {
	return m.loadCustomers()
}

func (m *CustomersModel) loadCustomers() tea.Cmd {
	f := filter.CustomerFilter{Query: m.query, Category: m.categoryFilter}
	return func() tea.Msg {
		ctx := context.Background()
		directory := projection.Directory(m.app.InvoiceService.List(ctx))
		return customersDataMsg{customers: f.Apply(directory)}
	}
}

func (m *CustomersModel) loadHistory(phone string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return customerHistoryMsg{
			history: projection.CustomerInvoices(m.app.InvoiceService.List(ctx), phone),
		}
	}
}

func (m *CustomersModel) selected() (domain.Customer, bool) {
	if len(m.customers) == 0 || m.cursor >= len(m.customers) {
		return domain.Customer{}, false
	}
	return m.customers[m.cursor], true
}

func (m *CustomersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		m.mode = customersModeList
		return m, m.loadCustomers()

	case customersDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.customers = msg.customers
			if m.cursor >= len(m.customers) {
				m.cursor = max(0, len(m.customers)-1)
			}
		}
		return m, nil

	case customerHistoryMsg:
		m.history = msg.history
		m.mode = customersModeDetail
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.mode == customersModeDetail {
			if key.Matches(msg, DefaultKeyMap.Back) {
				m.mode = customersModeList
			}
			return m, nil
		}

		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.customers)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Search):
			m.searchInput = textinput.New()
			m.searchInput.Placeholder = "name or phone"
			m.searchInput.CharLimit = 60
			m.searchInput.Width = 30
			m.searchInput.SetValue(m.query)
			m.searching = true
			return m, m.searchInput.Focus()
		case msg.String() == "s":
			m.categoryFilter = nextCategoryFilter(m.categoryFilter)
			m.cursor = 0
			m.loading = true
			return m, m.loadCustomers()
		case key.Matches(msg, DefaultKeyMap.Select):
			if c, ok := m.selected(); ok {
				return m, m.loadHistory(c.Phone)
			}
		}
	}

	return m, nil
}

func (m *CustomersModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.query = ""
		m.cursor = 0
		m.loading = true
		return m, m.loadCustomers()
	case "enter":
		m.searching = false
		m.query = m.searchInput.Value()
		m.cursor = 0
		m.loading = true
		return m, m.loadCustomers()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// nextCategoryFilter cycles all -> new -> regular -> wholesaler -> farm -> all.
func nextCategoryFilter(c domain.CustomerCategory) domain.CustomerCategory {
	if c == "" {
		return domain.Categories[0]
	}
	for i, cat := range domain.Categories {
		if cat == c {
			if i == len(domain.Categories)-1 {
				return ""
			}
			return domain.Categories[i+1]
		}
	}
	return ""
}

func (m *CustomersModel) View() string {
	if m.loading {
		return "Loading customers..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.mode == customersModeDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m *CustomersModel) viewList() string {
	var s string

	header := "Customers"
	if m.categoryFilter != "" {
		header += subtitleStyle.Render(fmt.Sprintf("  (category: %s)", m.categoryFilter.Label()))
	}
	if m.query != "" {
		header += subtitleStyle.Render(fmt.Sprintf("  (search: %q)", m.query))
	}
	s += titleStyle.Render(header) + "\n\n"

	if m.searching {
		s += fmt.Sprintf("  Search: %s\n\n", m.searchInput.View())
	}

	if len(m.customers) == 0 {
		s += subtitleStyle.Render("  No customers yet. They appear here once invoiced.") + "\n"
		return s
	}

	for i, c := range m.customers {
		selected := i == m.cursor
		indicator := "  "
		nameStyle := lipgloss.NewStyle()
		if selected {
			indicator = "> "
			nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
		}
		line1 := fmt.Sprintf("%s%-24s %s", indicator, truncateStr(c.Name, 24), c.Phone)
		line2 := fmt.Sprintf("    %s", c.Category.Label())
		if c.Address != "" {
			line2 += "  |  " + truncateStr(c.Address, 40)
		}
		s += nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: history  /: search  s: filter category")
	return s
}

func (m *CustomersModel) viewDetail() string {
	c, ok := m.selected()
	if !ok {
		return ""
	}

	var s string
	s += titleStyle.Render(c.Name) + "\n\n"
	s += fmt.Sprintf("  Phone:    %s\n", c.Phone)
	if c.Address != "" {
		s += fmt.Sprintf("  Address:  %s\n", c.Address)
	}
	s += fmt.Sprintf("  Category: %s\n", c.Category.Label())

	total := 0.0
	for _, inv := range m.history {
		total += inv.Total
	}
	s += fmt.Sprintf("\n  Invoices: %d   Lifetime: %s\n\n", len(m.history), formatMoney(total))

	for _, inv := range m.history {
		s += fmt.Sprintf("  %-13s %-10s %12s  %s\n",
			inv.ID,
			inv.Date.Format("2006-01-02"),
			formatMoney(inv.Total),
			statusStyle(inv.Status).Render(inv.Status.Label()),
		)
	}

	s += "\n" + helpStyle.Render("  esc: back")
	return s
}
