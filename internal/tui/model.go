package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/agrione/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenRegistry
	ScreenCreate
	ScreenCustomers
	ScreenPublicView
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenRegistry:
		return "Invoices"
	case ScreenCreate:
		return "Invoice Form"
	case ScreenCustomers:
		return "Customers"
	case ScreenPublicView:
		return "Invoice View"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	dashboard  tea.Model
	registry   tea.Model
	create     tea.Model
	customers  tea.Model
	publicview tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	dashboard := NewDashboardModel(a)
	return Model{
		app:           a,
		currentScreen: ScreenDashboard,
		dashboard:     dashboard,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.checkFirstRun(),
	}
	if m.dashboard != nil {
		cmds = append(cmds, m.dashboard.Init())
	}
	return tea.Batch(cmds...)
}

// checkFirstRun checks if any invoices exist in the registry
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		n := m.app.Ledger.Len(context.Background())
		return firstRunCheckMsg{hasInvoices: n > 0}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenDashboard:
		if m.dashboard == nil {
			m.dashboard = NewDashboardModel(m.app)
			return m.dashboard.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenRegistry:
		if m.registry == nil {
			m.registry = NewRegistryModel(m.app)
			return m.registry.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenCreate:
		// Always start from a blank form; edits come in via EditInvoiceMsg.
		m.create = NewCreateModel(m.app, "")
		return m.create.Init()
	case ScreenCustomers:
		if m.customers == nil {
			m.customers = NewCustomersModel(m.app)
			return m.customers.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (D, I, N, C, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenDashboard:
		return m.dashboard
	case ScreenRegistry:
		return m.registry
	case ScreenCreate:
		return m.create
	case ScreenCustomers:
		return m.customers
	case ScreenPublicView:
		return m.publicview
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			// Global key handlers (screen navigation)
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Dashboard):
				m.currentScreen = ScreenDashboard
				cmd := m.initScreen(ScreenDashboard)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Invoices):
				m.currentScreen = ScreenRegistry
				cmd := m.initScreen(ScreenRegistry)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.New):
				m.currentScreen = ScreenCreate
				cmd := m.initScreen(ScreenCreate)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Customers):
				m.currentScreen = ScreenCustomers
				cmd := m.initScreen(ScreenCustomers)
				return m, cmd
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasInvoices {
			m.checkedFirstRun = true
			m.currentScreen = ScreenCreate
			return m, m.initScreen(ScreenCreate)
		}
		m.checkedFirstRun = true
		return m, nil

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case ViewInvoiceMsg:
		m.currentScreen = ScreenPublicView
		m.publicview = NewPublicViewModel(m.app, msg.ID)
		return m, m.publicview.Init()

	case EditInvoiceMsg:
		m.currentScreen = ScreenCreate
		m.create = NewCreateModel(m.app, msg.ID)
		return m, m.create.Init()

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenDashboard:
		if m.dashboard != nil {
			m.dashboard, cmd = m.dashboard.Update(msg)
		}
	case ScreenRegistry:
		if m.registry != nil {
			m.registry, cmd = m.registry.Update(msg)
		}
	case ScreenCreate:
		if m.create != nil {
			m.create, cmd = m.create.Update(msg)
		}
	case ScreenCustomers:
		if m.customers != nil {
			m.customers, cmd = m.customers.Update(msg)
		}
	case ScreenPublicView:
		if m.publicview != nil {
			m.publicview, cmd = m.publicview.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("agrione - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[D]ashboard  [I]nvoices  [N]ew  [C]ustomers  [Q]uit")

	// Current screen content
	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
