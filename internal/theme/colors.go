package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles, table header
	ColorSecondary Color = "86" // Cyan - source URIs
)

// Fetch phase colors
const (
	ColorCheckout Color = "2"   // Green - checking out
	ColorDeltas   Color = "214" // Orange - resolving deltas
	ColorFetch    Color = "33"  // Blue - receiving objects
	ColorWaiting  Color = "8"   // Gray - no event yet
)

// UI semantic colors
const (
	ColorBorder    Color = "238" // Dark gray - table borders
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis, totals
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
)

// Progress bar gradient
const (
	ColorBarEnd   = "#04B575"
	ColorBarStart = "#5A56E0"
)
