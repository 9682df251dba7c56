package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	TopBar      lipgloss.Style
	StatusBar   lipgloss.Style
	PanelTitle  lipgloss.Style
	BorderFocus lipgloss.Style
	BorderDim   lipgloss.Style

	Cursor    lipgloss.Style
	Active    lipgloss.Style
	Pinned    lipgloss.Style
	Dim       lipgloss.Style
	Done      lipgloss.Style
	Origin    lipgloss.Style
	Highlight lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
}

func newTheme(accent, top, statusFg, statusBg string) Theme {
	return Theme{
		TopBar:      lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Bold(true).Padding(0, 1),
		StatusBar:   lipgloss.NewStyle().Foreground(lipgloss.Color(statusFg)).Background(lipgloss.Color(statusBg)).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true),
		BorderFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		BorderDim:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#585b70")).Padding(0, 1),

		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("#313244")),
		Active:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Pinned:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8")).Faint(true),
		Done:      lipgloss.NewStyle().Strikethrough(true).Faint(true),
		Origin:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#F9E2AF")),

		ModalBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(1, 2).Width(60),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(top)),
		Error:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	}
}

var (
	DefaultTheme = newTheme("#89B4FA", "#cdd6f4", "#a6adc8", "#313244")
	GreenTheme   = newTheme("#a6e3a1", "#a6e3a1", "#94e2d5", "#1e1e2e")
	PurpleTheme  = newTheme("#cba6f7", "#cba6f7", "#f5c2e7", "#313244")
)

// ThemeByName maps the config "theme" value to a theme. Unknown names get
// the default.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "green":
		return GreenTheme
	case "purple":
		return PurpleTheme
	}
	return DefaultTheme
}
