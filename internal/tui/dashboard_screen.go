package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/andy/agrione/internal/app"
	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/filter"
	"github.com/andy/agrione/internal/projection"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DashboardModel is the analytics home screen: sales totals, status counts,
// category breakdown, month-over-month growth and the recent daily series.
// An optional date range narrows every metric except the growth figures.
type DashboardModel struct {
	app *app.App

	summary  projection.Summary
	count    int
	from, to time.Time

	// Date filter form
	filtering  bool
	fromInput  textinput.Model
	toInput    textinput.Model
	filterStep int

	loading bool
	err     error
}

type dashboardDataMsg struct {
	summary projection.Summary
	count   int
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true while the date filter form is open
func (m *DashboardModel) IsCapturingInput() bool {
	return m.filtering
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	from, to := m.from, m.to
	return func() tea.Msg {
		ctx := context.Background()

		all := m.app.InvoiceService.List(ctx)
		f := filter.InvoiceFilter{From: from, To: to}
		filtered := f.Apply(all)

		return dashboardDataMsg{
			summary: projection.Summarize(all, filtered, time.Now()),
			count:   len(filtered),
		}
	}
}

func (m *DashboardModel) openFilter() tea.Cmd {
	m.fromInput = textinput.New()
	m.fromInput.Placeholder = "YYYY-MM-DD"
	m.fromInput.CharLimit = 10
	m.fromInput.Width = 12
	if !m.from.IsZero() {
		m.fromInput.SetValue(m.from.Format("2006-01-02"))
	}

	m.toInput = textinput.New()
	m.toInput.Placeholder = "YYYY-MM-DD"
	m.toInput.CharLimit = 10
	m.toInput.Width = 12
	if !m.to.IsZero() {
		m.toInput.SetValue(m.to.Format("2006-01-02"))
	}

	m.filtering = true
	m.filterStep = 0
	return m.fromInput.Focus()
}

func (m *DashboardModel) applyFilter() tea.Cmd {
	m.from, m.to = time.Time{}, time.Time{}
	if v := m.fromInput.Value(); v != "" {
		t, err := filter.ParseDay(v, false)
		if err != nil {
			m.err = fmt.Errorf("invalid from date: %s", v)
			return nil
		}
		m.from = t
	}
	if v := m.toInput.Value(); v != "" {
		t, err := filter.ParseDay(v, true)
		if err != nil {
			m.err = fmt.Errorf("invalid to date: %s", v)
			return nil
		}
		m.to = t
	}
	m.filtering = false
	m.err = nil
	m.loading = true
	return m.loadData()
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.count = msg.count
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "f":
			return m, m.openFilter()
		case "r":
			// Clear the date range
			m.from, m.to = time.Time{}, time.Time{}
			m.loading = true
			return m, m.loadData()
		}
	}

	return m, nil
}

func (m *DashboardModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.err = nil
			return m, nil

		case "tab", "shift+tab", "up", "down":
			if m.filterStep == 0 {
				m.fromInput.Blur()
				m.filterStep = 1
				return m, m.toInput.Focus()
			}
			m.toInput.Blur()
			m.filterStep = 0
			return m, m.fromInput.Focus()

		case "enter":
			if m.filterStep == 0 {
				m.fromInput.Blur()
				m.filterStep = 1
				return m, m.toInput.Focus()
			}
			return m, m.applyFilter()
		}
	}

	var cmd tea.Cmd
	if m.filterStep == 0 {
		m.fromInput, cmd = m.fromInput.Update(msg)
	} else {
		m.toInput, cmd = m.toInput.Update(msg)
	}
	return m, cmd
}

func (m *DashboardModel) View() string {
	if m.filtering {
		return m.viewFilter()
	}

	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	if !m.from.IsZero() || !m.to.IsZero() {
		s += subtitleStyle.Render(fmt.Sprintf("  Range: %s – %s (%d invoices)",
			formatDay(m.from), formatDay(m.to), m.count)) + "\n\n"
	}

	s += fmt.Sprintf("  Total Sales:  %s\n\n", titleStyle.Render(formatMoney(m.summary.TotalSales)))

	s += fmt.Sprintf("  %s %-10d %s %-10d %s %d\n\n",
		statusPendingStyle.Render("Pending:"), m.summary.Pending,
		statusDeliveredStyle.Render("Delivered:"), m.summary.Delivered,
		statusCollectedStyle.Render("Collected:"), m.summary.Collected,
	)

	s += "  Sales by category\n"
	for _, cat := range domain.Categories {
		s += fmt.Sprintf("  %-12s %12s\n", cat.Label(), formatMoney(m.summary.ByCategory[cat]))
	}

	s += "\n  Month over month\n"
	s += fmt.Sprintf("  This month:  %12s\n", formatMoney(m.summary.CurrentMonthTotal))
	s += fmt.Sprintf("  Last month:  %12s\n", formatMoney(m.summary.PreviousMonthTotal))
	growth := fmt.Sprintf("%+.1f%%", m.summary.GrowthPercent)
	if m.summary.GrowthPercent >= 0 {
		s += fmt.Sprintf("  Growth:      %12s\n", lipgloss.NewStyle().Foreground(successColor).Render(growth))
	} else {
		s += fmt.Sprintf("  Growth:      %12s\n", lipgloss.NewStyle().Foreground(errorColor).Render(growth))
	}

	s += "\n" + m.renderDailyChart()

	s += "\n" + helpStyle.Render("  f: date filter  r: clear range")
	return s
}

func (m *DashboardModel) renderDailyChart() string {
	header := "  Recent active days\n"
	if len(m.summary.Daily) == 0 {
		return header + subtitleStyle.Render("  No sales recorded") + "\n"
	}

	max := 0.0
	for _, p := range m.summary.Daily {
		if p.Total > max {
			max = p.Total
		}
	}

	s := header
	for _, p := range m.summary.Daily {
		s += fmt.Sprintf("  %s  %-24s %s\n",
			p.Day.Format("Jan 02"),
			renderBar(p.Total, max, 24),
			subtitleStyle.Render(formatMoney(p.Total)),
		)
	}
	return s
}

func (m *DashboardModel) viewFilter() string {
	var s string
	s += titleStyle.Render("Date Range") + "\n\n"

	labels := []string{"From:", "To:"}
	inputs := []string{m.fromInput.View(), m.toInput.View()}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.filterStep {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), inputs[i])
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: switch field  enter: apply  esc: cancel")
	return s
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "…"
	}
	return t.Format("2006-01-02")
}
