package tui

// Color constants for the vaga TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#0F1B17" // Dark green
	ColorBorder         = "#3A5549" // Grey-green

	// Text Colors
	ColorPrimaryText   = "#E8F2EC" // Primary text (labels, user input, plates)
	ColorSecondaryText = "#AFC4B8" // Secondary text - subtle green-tinted grey
	ColorDisabledText  = "#6D837A" // Disabled/muted text
	ColorPlaceholder   = "#AFC4B8" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Green theme)
	ColorAccentMain   = "#10B981" // Logo, accent elements, active borders
	ColorAccentBright = "#6EE7B7" // Highlights, selected card, live preview

	// State Colors
	ColorError   = "#EF4444" // Failed calls, full lot
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Stale snapshot, overrides
)
