package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the resolved style set for one palette. The active theme
// comes from persisted preferences and can be flipped from Settings at
// runtime.
type Theme struct {
	Name string

	Header   lipgloss.Style
	Accent   lipgloss.Style
	Dim      lipgloss.Style
	Danger   lipgloss.Style
	Success  lipgloss.Style
	Selected lipgloss.Style
	Box      lipgloss.Style
	Sidebar  lipgloss.Style
}

func darkTheme() Theme {
	return Theme{
		Name:     "dark",
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		Danger:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:     "light",
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B8860B")),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E5AA8")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Danger:   lipgloss.NewStyle().Foreground(lipgloss.Color("#B00020")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1B5E20")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B8860B")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1),
	}
}

func themeNamed(name string) Theme {
	if name == "dark" {
		return darkTheme()
	}
	return lightTheme()
}
