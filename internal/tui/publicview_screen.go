package tui

import (
	"context"
	"fmt"

	"github.com/andy/agrione/internal/app"
	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/share"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PublicViewModel renders an invoice the way the shared public page does:
// the printable document, the share link and its QR code. Unknown ids get
// a not-found notice instead of an error.
type PublicViewModel struct {
	app *app.App
	id  string

	invoice  domain.Invoice
	found    bool
	document string
	link     string
	qr       string

	loading bool
	err     error
}

type publicViewDataMsg struct {
	invoice  domain.Invoice
	found    bool
	document string
	link     string
	qr       string
	err      error
}

// NewPublicViewModel creates the public view for one invoice id
func NewPublicViewModel(a *app.App, id string) tea.Model {
	return &PublicViewModel{
		app:     a,
		id:      id,
		loading: true,
	}
}

func (m *PublicViewModel) Init() tea.Cmd {
	return m.loadInvoice()
}

func (m *PublicViewModel) loadInvoice() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		inv, ok := share.Resolve(m.app.InvoiceService.List(ctx), m.id)
		if !ok {
			return publicViewDataMsg{found: false}
		}

		link := m.app.Linker.InvoiceURL(inv.ID)
		qr, err := share.QRText(link)
		if err != nil {
			return publicViewDataMsg{err: fmt.Errorf("render QR code: %w", err)}
		}

		return publicViewDataMsg{
			invoice:  inv,
			found:    true,
			document: share.RenderDocument(m.app.Company(), inv, link),
			link:     link,
			qr:       qr,
		}
	}
}

func (m *PublicViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case publicViewDataMsg:
		m.loading = false
		m.err = msg.err
		m.invoice = msg.invoice
		m.found = msg.found
		m.document = msg.document
		m.link = msg.link
		m.qr = msg.qr
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadInvoice()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Back) {
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenRegistry} }
		}
	}

	return m, nil
}

func (m *PublicViewModel) View() string {
	if m.loading {
		return "Loading invoice..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	if !m.found {
		var s string
		s += titleStyle.Render("Invoice Not Found") + "\n\n"
		s += subtitleStyle.Render(fmt.Sprintf("  No invoice with id %q exists.", m.id)) + "\n"
		s += subtitleStyle.Render("  It may have been deleted, or the link is wrong.") + "\n\n"
		s += helpStyle.Render("  esc: back")
		return s
	}

	var s string
	s += m.document + "\n"
	s += subtitleStyle.Render("  Share: "+m.link) + "\n\n"
	s += m.qr + "\n"
	s += helpStyle.Render("  esc: back")
	return s
}
