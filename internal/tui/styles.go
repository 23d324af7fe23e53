package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the resolved style set for one palette. The view layer derives
// it from the theme store and swaps the whole set on toggle.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Chip     lipgloss.Style
	ChipOn   lipgloss.Style
	Box      lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
}

func lightTheme() Theme {
	var (
		accent = lipgloss.Color("#2563EB")
		text   = lipgloss.Color("#111827")
		muted  = lipgloss.Color("#6B7280")
		border = lipgloss.Color("#D1D5DB")
	)
	return buildTheme(accent, text, muted, border)
}

func darkTheme() Theme {
	var (
		accent = lipgloss.Color("#60A5FA")
		text   = lipgloss.Color("#F3F4F6")
		muted  = lipgloss.Color("#9CA3AF")
		border = lipgloss.Color("#4B5563")
	)
	return buildTheme(accent, text, muted, border)
}

func buildTheme(accent, text, muted, border lipgloss.Color) Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Text: lipgloss.NewStyle().
			Foreground(text),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
		Accent: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			PaddingLeft(1),
		Chip: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		ChipOn: lipgloss.NewStyle().
			Foreground(text).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(border),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// ThemeFor resolves the style set for the given dark flag.
func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}
