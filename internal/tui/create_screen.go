package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/agrione/internal/app"
	"github.com/andy/agrione/internal/domain"
	"github.com/andy/agrione/internal/service"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// customer field indices; the category selector sits after them, item rows
// follow, and notes is always the last focusable field
const (
	fieldCustomerName = iota
	fieldCustomerPhone
	fieldRegion
	fieldAddress
	fieldCategory
	customerFieldCount
)

const inputsPerItem = 3 // name, price, quantity

// itemInputs holds the three text inputs of one invoice line
type itemInputs struct {
	name     textinput.Model
	price    textinput.Model
	quantity textinput.Model
}

// CreateModel is the invoice form: customer details, a category selector,
// a growable list of item rows and notes. It serves both creation and
// editing; edits keep the invoice id and original date.
type CreateModel struct {
	app       *app.App
	editingID string // empty for new invoice

	nameInput    textinput.Model
	phoneInput   textinput.Model
	regionInput  textinput.Model
	addressInput textinput.Model
	notesInput   textinput.Model
	category     domain.CustomerCategory
	status       domain.InvoiceStatus
	items        []itemInputs

	focusIndex int
	baseline   string // serialized form state at open, for dirty detection

	confirmDiscard bool
	products       []string
	err            error
}

type invoiceSavedMsg struct {
	id  string
	err error
}

// NewCreateModel creates the invoice form, pre-filled from an existing
// invoice when editingID is set.
func NewCreateModel(a *app.App, editingID string) tea.Model {
	m := &CreateModel{
		app:       a,
		editingID: editingID,
		category:  domain.CategoryNew,
		status:    domain.StatusPending,
	}

	m.nameInput = newField("Customer name", 100, 40)
	m.phoneInput = newField("01xxxxxxxxx", 20, 20)
	m.regionInput = newField("Governorate or region (optional)", 60, 30)
	m.addressInput = newField("Street / village / details", 120, 50)
	m.notesInput = newField("Optional notes", 200, 50)
	m.items = []itemInputs{newItemRow()}

	if editingID != "" {
		if inv, ok := a.InvoiceService.Get(context.Background(), editingID); ok {
			m.nameInput.SetValue(inv.CustomerName)
			m.phoneInput.SetValue(inv.CustomerPhone)
			m.addressInput.SetValue(inv.CustomerAddress)
			m.notesInput.SetValue(inv.Notes)
			m.category = inv.CustomerCategory
			m.status = inv.Status
			m.items = make([]itemInputs, 0, len(inv.Items))
			for _, it := range inv.Items {
				row := newItemRow()
				row.name.SetValue(it.Name)
				row.price.SetValue(strconv.FormatFloat(it.Price, 'f', -1, 64))
				row.quantity.SetValue(strconv.FormatFloat(it.Quantity, 'f', -1, 64))
				m.items = append(m.items, row)
			}
			if len(m.items) == 0 {
				m.items = []itemInputs{newItemRow()}
			}
		}
	}

	m.baseline = m.snapshot()
	m.focusIndex = fieldCustomerName
	m.nameInput.Focus()
	return m
}

func newField(placeholder string, charLimit, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = charLimit
	in.Width = width
	return in
}

func newItemRow() itemInputs {
	return itemInputs{
		name:     newField("Product", 80, 24),
		price:    newField("0.00", 12, 10),
		quantity: newField("1", 10, 8),
	}
}

// IsCapturingInput is always true: the form owns the keyboard while open
func (m *CreateModel) IsCapturingInput() bool {
	return true
}

func (m *CreateModel) Init() tea.Cmd {
	return m.loadProducts()
}

func (m *CreateModel) loadProducts() tea.Cmd {
	return func() tea.Msg {
		return productNamesMsg{names: m.app.InvoiceService.ProductNames(context.Background())}
	}
}

type productNamesMsg struct {
	names []string
}

// totalFields is customer fields + item inputs + notes
func (m *CreateModel) totalFields() int {
	return customerFieldCount + len(m.items)*inputsPerItem + 1
}

func (m *CreateModel) notesIndex() int {
	return customerFieldCount + len(m.items)*inputsPerItem
}

// fieldAt maps a focus index to its text input; nil for the category selector
func (m *CreateModel) fieldAt(idx int) *textinput.Model {
	switch idx {
	case fieldCustomerName:
		return &m.nameInput
	case fieldCustomerPhone:
		return &m.phoneInput
	case fieldRegion:
		return &m.regionInput
	case fieldAddress:
		return &m.addressInput
	case fieldCategory:
		return nil
	}
	if idx == m.notesIndex() {
		return &m.notesInput
	}
	n := idx - customerFieldCount
	row := &m.items[n/inputsPerItem]
	switch n % inputsPerItem {
	case 0:
		return &row.name
	case 1:
		return &row.price
	default:
		return &row.quantity
	}
}

func (m *CreateModel) setFocus(idx int) tea.Cmd {
	if in := m.fieldAt(m.focusIndex); in != nil {
		in.Blur()
	}
	m.focusIndex = idx
	if in := m.fieldAt(idx); in != nil {
		return in.Focus()
	}
	return nil
}

// advance moves focus forward, running autofill when leaving the name field
func (m *CreateModel) advance(delta int) tea.Cmd {
	if m.focusIndex == fieldCustomerName && delta > 0 {
		m.autofill()
	}
	total := m.totalFields()
	return m.setFocus((m.focusIndex + delta + total) % total)
}

// autofill pre-fills phone, address and category from the first invoice of a
// customer whose name matches exactly. Only empty fields are filled.
func (m *CreateModel) autofill() {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return
	}
	c, ok := m.app.InvoiceService.AutofillCustomer(context.Background(), name)
	if !ok {
		return
	}
	if m.phoneInput.Value() == "" {
		m.phoneInput.SetValue(c.Phone)
	}
	if m.addressInput.Value() == "" && m.regionInput.Value() == "" {
		m.addressInput.SetValue(c.Address)
	}
	if m.editingID == "" {
		m.category = c.Category
	}
}

// snapshot serializes every form value for dirty comparison
func (m *CreateModel) snapshot() string {
	var b strings.Builder
	b.WriteString(m.nameInput.Value())
	b.WriteByte(0)
	b.WriteString(m.phoneInput.Value())
	b.WriteByte(0)
	b.WriteString(m.regionInput.Value())
	b.WriteByte(0)
	b.WriteString(m.addressInput.Value())
	b.WriteByte(0)
	b.WriteString(string(m.category))
	b.WriteByte(0)
	b.WriteString(string(m.status))
	b.WriteByte(0)
	b.WriteString(m.notesInput.Value())
	for _, row := range m.items {
		b.WriteByte(0)
		b.WriteString(row.name.Value())
		b.WriteByte(0)
		b.WriteString(row.price.Value())
		b.WriteByte(0)
		b.WriteString(row.quantity.Value())
	}
	return b.String()
}

func (m *CreateModel) dirty() bool {
	return m.snapshot() != m.baseline
}

// draft builds the service draft from the current form values
func (m *CreateModel) draft() (service.Draft, error) {
	d := service.Draft{
		CustomerName:     m.nameInput.Value(),
		CustomerPhone:    m.phoneInput.Value(),
		CustomerAddress:  m.addressInput.Value(),
		CustomerCategory: m.category,
		Status:           m.status,
		Notes:            m.notesInput.Value(),
	}

	// A region prefixes the address unless already part of it
	region := strings.TrimSpace(m.regionInput.Value())
	address := strings.TrimSpace(m.addressInput.Value())
	if region != "" && !strings.Contains(strings.ToLower(address), strings.ToLower(region)) {
		if address == "" {
			d.CustomerAddress = region
		} else {
			d.CustomerAddress = region + " - " + address
		}
	}

	for _, row := range m.items {
		item := domain.InvoiceItem{Name: strings.TrimSpace(row.name.Value()), Quantity: 1}
		if v := row.price.Value(); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return d, fmt.Errorf("invalid price: %s", v)
			}
			item.Price = p
		}
		if v := row.quantity.Value(); v != "" {
			q, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return d, fmt.Errorf("invalid quantity: %s", v)
			}
			item.Quantity = q
		}
		d.Items = append(d.Items, item)
	}
	return d, nil
}

func (m *CreateModel) save() tea.Cmd {
	draft, err := m.draft()
	if err != nil {
		m.err = err
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		if m.editingID != "" {
			inv, err := m.app.InvoiceService.Edit(ctx, m.editingID, draft)
			if err != nil {
				return invoiceSavedMsg{err: err}
			}
			return invoiceSavedMsg{id: inv.ID}
		}
		inv, err := m.app.InvoiceService.Create(ctx, draft)
		if err != nil {
			return invoiceSavedMsg{err: err}
		}
		return invoiceSavedMsg{id: inv.ID}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productNamesMsg:
		m.products = msg.names
		return m, nil

	case invoiceSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenRegistry} }

	case tea.KeyMsg:
		if m.confirmDiscard {
			switch msg.String() {
			case "y", "Y":
				return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenRegistry} }
			default:
				m.confirmDiscard = false
				return m, nil
			}
		}

		switch msg.String() {
		case "esc":
			if m.dirty() {
				m.confirmDiscard = true
				return m, nil
			}
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenRegistry} }

		case "tab", "down":
			return m, m.advance(1)

		case "shift+tab", "up":
			return m, m.advance(-1)

		case "enter":
			if m.focusIndex == m.notesIndex() {
				return m, m.save()
			}
			return m, m.advance(1)

		case "ctrl+s":
			return m, m.save()

		case "ctrl+a":
			m.items = append(m.items, newItemRow())
			return m, m.setFocus(customerFieldCount + (len(m.items)-1)*inputsPerItem)

		case "ctrl+x":
			if row, ok := m.focusedItemRow(); ok && len(m.items) > 1 {
				m.items = append(m.items[:row], m.items[row+1:]...)
				return m, m.setFocus(fieldCustomerName)
			}
			return m, nil

		case "left", "right":
			if m.focusIndex == fieldCategory {
				m.cycleCategory(msg.String() == "right")
				return m, nil
			}
		}

		// Category selector has no text input
		if m.focusIndex == fieldCategory {
			return m, nil
		}
	}

	var cmd tea.Cmd
	if in := m.fieldAt(m.focusIndex); in != nil {
		*in, cmd = in.Update(msg)
	}
	return m, cmd
}

// focusedItemRow returns the item row the focus is in, if any
func (m *CreateModel) focusedItemRow() (int, bool) {
	if m.focusIndex < customerFieldCount || m.focusIndex >= m.notesIndex() {
		return 0, false
	}
	return (m.focusIndex - customerFieldCount) / inputsPerItem, true
}

func (m *CreateModel) cycleCategory(forward bool) {
	idx := 0
	for i, c := range domain.Categories {
		if c == m.category {
			idx = i
			break
		}
	}
	n := len(domain.Categories)
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx - 1 + n) % n
	}
	m.category = domain.Categories[idx]
}

// runningTotal sums the parseable item rows for live display
func (m *CreateModel) runningTotal() float64 {
	total := 0.0
	for _, row := range m.items {
		p, err := strconv.ParseFloat(row.price.Value(), 64)
		if err != nil {
			continue
		}
		q := 1.0
		if v := row.quantity.Value(); v != "" {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		total += p * q
	}
	return total
}

// suggestions returns product names matching the focused item name input
func (m *CreateModel) suggestions() []string {
	row, ok := m.focusedItemRow()
	if !ok || (m.focusIndex-customerFieldCount)%inputsPerItem != 0 {
		return nil
	}
	typed := strings.ToLower(strings.TrimSpace(m.items[row].name.Value()))
	if typed == "" {
		return nil
	}
	var out []string
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p), typed) && !strings.EqualFold(p, typed) {
			out = append(out, p)
			if len(out) == 5 {
				break
			}
		}
	}
	return out
}

func (m *CreateModel) View() string {
	var s string

	if m.editingID != "" {
		s += titleStyle.Render(fmt.Sprintf("Edit Invoice %s", m.editingID)) + "\n\n"
	} else {
		s += titleStyle.Render("New Invoice") + "\n\n"
	}

	if m.confirmDiscard {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render("  Discard unsaved changes? [y/N]") + "\n\n"
	}

	s += m.renderField(fieldCustomerName, "Name:", m.nameInput.View())
	s += m.renderField(fieldCustomerPhone, "Phone:", m.phoneInput.View())
	s += m.renderField(fieldRegion, "Region:", m.regionInput.View())
	s += m.renderField(fieldAddress, "Address:", m.addressInput.View())
	s += m.renderField(fieldCategory, "Category:", m.renderCategorySelector())

	s += subtitleStyle.Render("  Items") + "\n"
	for i, row := range m.items {
		indicator := "  "
		if r, ok := m.focusedItemRow(); ok && r == i {
			indicator = "> "
		}
		s += fmt.Sprintf("%s%s  %s  x %s\n", indicator, row.name.View(), row.price.View(), row.quantity.View())
	}

	if sug := m.suggestions(); len(sug) > 0 {
		s += subtitleStyle.Render("    previously sold: "+strings.Join(sug, ", ")) + "\n"
	}

	s += fmt.Sprintf("\n  Total: %s\n\n", titleStyle.Render(formatMoney(m.runningTotal())))

	s += m.renderField(m.notesIndex(), "Notes:", m.notesInput.View())

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  ctrl+a: add item  ctrl+x: remove item  ctrl+s: save  esc: cancel")
	return s
}

func (m *CreateModel) renderField(idx int, label, input string) string {
	indicator := "  "
	labelStyle := subtitleStyle
	if idx == m.focusIndex {
		indicator = "> "
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	}
	return fmt.Sprintf("%s%-10s %s\n", indicator, labelStyle.Render(label), input)
}

func (m *CreateModel) renderCategorySelector() string {
	parts := make([]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		label := c.Label()
		if c == m.category {
			if m.focusIndex == fieldCategory {
				label = selectedStyle.Render(" " + label + " ")
			} else {
				label = titleStyle.Render(label)
			}
		} else {
			label = subtitleStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}
