package theme

import "github.com/charmbracelet/lipgloss"

// Progress line styles
var (
	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorCheckout).
			Bold(true)

	PercentStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	WaitingStyle = lipgloss.NewStyle().
			Foreground(ColorWaiting)
)

// Phase label styles
var (
	CheckoutStyle = lipgloss.NewStyle().
			Foreground(ColorCheckout)

	DeltasStyle = lipgloss.NewStyle().
			Foreground(ColorDeltas)

	FetchStyle = lipgloss.NewStyle().
			Foreground(ColorFetch)
)

// Results table styles
var (
	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	CellStyle = lipgloss.NewStyle().
			Foreground(ColorNormal).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TotalStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Padding(0, 1)
)

// Misc styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
