// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Register keys, secondary info
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Accent for the selected row and focused elements
	AccentColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Register kind colors, used for the kind tag in listings
	KindLayoutColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"} // window/frame configs
	KindMarkerColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	KindFileColor   = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	KindNumberColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}
	KindTextColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	KindOtherColor  = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}

	// Selection indicator style (used for ">" prefix in lists)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	KeyStyle      = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Detail pane border
	DetailBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderDefaultColor).
				Padding(0, 1)
)

// ApplyTheme applies custom theme colors from configuration. Keys use dot
// notation matching the config file; empty or unknown entries are ignored.
func ApplyTheme(colors map[string]string) {
	set := func(dst *lipgloss.AdaptiveColor, key string) {
		if c := colors[key]; c != "" {
			*dst = lipgloss.AdaptiveColor{Light: c, Dark: c}
		}
	}

	set(&TextPrimaryColor, "text.primary")
	set(&TextSecondaryColor, "text.secondary")
	set(&TextMutedColor, "text.muted")
	set(&BorderDefaultColor, "border")
	set(&StatusSuccessColor, "status.success")
	set(&StatusErrorColor, "status.error")
	set(&AccentColor, "accent")

	// Styles derived from the colors above are rebuilt so overrides take
	// effect after startup.
	KeyStyle = lipgloss.NewStyle().Bold(true).Foreground(TextSecondaryColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true).Padding(1, 2)
	DetailBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Padding(0, 1)
}

// KindColor maps a register kind name to its listing color.
func KindColor(kind string) lipgloss.AdaptiveColor {
	switch kind {
	case "window-config", "frame-config":
		return KindLayoutColor
	case "marker":
		return KindMarkerColor
	case "file", "deferred-file":
		return KindFileColor
	case "number":
		return KindNumberColor
	case "text", "rectangle":
		return KindTextColor
	default:
		return KindOtherColor
	}
}
