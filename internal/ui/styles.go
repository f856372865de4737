package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Core color palette
	primaryColor = lipgloss.Color("#0969DA") // GitHub blue
	accentColor  = lipgloss.Color("#2DA44E") // Green
	warningColor = lipgloss.Color("#D29922") // Orange
	errorColor   = lipgloss.Color("#CF222E") // Red
	textColor    = lipgloss.Color("#FFFFFF") // White
	dimColor     = lipgloss.Color("#6E7681") // Gray
	linkColor    = lipgloss.Color("#58A6FF") // Light blue
	titleColor   = lipgloss.Color("#39D353") // Bright green
	dateColor    = lipgloss.Color("#A371F7") // Light purple
	sourceColor  = lipgloss.Color("#FFA657") // Light orange

	HeaderStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(titleColor).
			Bold(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(sourceColor)

	DateStyle = lipgloss.NewStyle().
			Foreground(dateColor).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(textColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(linkColor).
			Underline(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)
)
