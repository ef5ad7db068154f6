// Package ui holds terminal styling shared by rollcall's commands.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	primaryColor   = "#7C3AED" // Purple
	secondaryColor = "#10B981" // Green
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

var (
	// TitleStyle renders die headers.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// HeaderStyle renders section headings such as "For Everyone Else".
	HeaderStyle = lipgloss.NewStyle().
			Bold(true)

	// DimStyle renders separators and secondary text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// BarStyle renders histogram bars.
	BarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// WarningStyle renders hints on stderr.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// ErrorStyle renders fatal errors on stderr.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor)).
			Bold(true)
)
