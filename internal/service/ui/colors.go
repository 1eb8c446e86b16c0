package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle uses ANSI 1 (Red) — on brand for the digest.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true).MarginBottom(1)

	// UsageStyle uses ANSI 2 (Green) for arguments and usage lines.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle uses ANSI 8 (Gray) to keep descriptions quiet.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle uses ANSI 3 (Yellow) for flags.
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// YearStyle marks the event year in digest output.
	YearStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	// StatusStyle renders per-event image pipeline status.
	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	// ErrorStyle renders failures.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
