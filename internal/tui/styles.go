package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("39")  // Blue
	colorOn      = lipgloss.Color("42")  // Green
	colorOff     = lipgloss.Color("241") // Gray
	colorError   = lipgloss.Color("196") // Red
	colorSubtle  = lipgloss.Color("240") // Dark gray
)

var (
	// TitleStyle renders the dashboard header bar
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(colorPrimary).
			Padding(0, 1)

	// DeviceStyle renders the device identity line
	DeviceStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	// SelectedStyle highlights the outlet under the cursor
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// OnStyle renders an outlet that is on
	OnStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorOn)

	// OffStyle renders an outlet that is off
	OffStyle = lipgloss.NewStyle().
			Foreground(colorOff)

	// ErrorStyle renders the status line after a failure
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	// StatusStyle renders the informational status line
	StatusStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Italic(true)

	// SpinnerStyle renders the busy spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
