package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/agrione/internal/domain"
)

var (
	// Colors
	primaryColor = lipgloss.Color("40")  // Green
	accentColor  = lipgloss.Color("178") // Wheat gold
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	// Box styles
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1)

	// Layout
	borderColor    = lipgloss.Color("64") // Olive
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Status specific
	statusPendingStyle   = lipgloss.NewStyle().Bold(true).Foreground(warningColor)
	statusDeliveredStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusCollectedStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)

	chartBarStyle = lipgloss.NewStyle().Foreground(accentColor)
)

// statusStyle returns the display style for an invoice status.
func statusStyle(s domain.InvoiceStatus) lipgloss.Style {
	switch s {
	case domain.StatusDelivered:
		return statusDeliveredStyle
	case domain.StatusCollected:
		return statusCollectedStyle
	default:
		return statusPendingStyle
	}
}
