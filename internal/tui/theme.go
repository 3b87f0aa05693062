package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin palettes, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

type palette struct {
	Accent   lipgloss.Color
	Focus    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Info     lipgloss.Color
	Text     lipgloss.Color
	Subtext  lipgloss.Color
	Overlay  lipgloss.Color
	Surface  lipgloss.Color
	Base     lipgloss.Color
	Fallback lipgloss.Color
}

// Mocha
var darkPalette = palette{
	Accent:   "#f5c2e7",
	Focus:    "#b4befe",
	Success:  "#a6e3a1",
	Warning:  "#f9e2af",
	Error:    "#f38ba8",
	Info:     "#94e2d5",
	Text:     "#cdd6f4",
	Subtext:  "#a6adc8",
	Overlay:  "#6c7086",
	Surface:  "#313244",
	Base:     "#1e1e2e",
	Fallback: "#fab387",
}

// Latte
var lightPalette = palette{
	Accent:   "#ea76cb",
	Focus:    "#7287fd",
	Success:  "#40a02b",
	Warning:  "#df8e1d",
	Error:    "#d20f39",
	Info:     "#179299",
	Text:     "#4c4f69",
	Subtext:  "#6c6f85",
	Overlay:  "#9ca0b0",
	Surface:  "#ccd0da",
	Base:     "#eff1f5",
	Fallback: "#fe640b",
}

type theme struct {
	name string

	Title    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style
	NavItem  lipgloss.Style
	NavOn    lipgloss.Style
	Card     lipgloss.Style
	Frame    lipgloss.Style

	StopActive   lipgloss.Style
	StopOnTour   lipgloss.Style
	StopNeutral  lipgloss.Style
	PathComputed lipgloss.Style
	PathFallback lipgloss.Style
	Unlocked     lipgloss.Style
}

// newTheme builds styles for "light", "dark" or "auto". auto follows the
// terminal background.
func newTheme(name string) theme {
	p := darkPalette
	switch name {
	case "light":
		p = lightPalette
	case "dark":
	default:
		name = "auto"
		if !lipgloss.HasDarkBackground() {
			p = lightPalette
		}
	}
	return theme{
		name:     name,
		Title:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.Accent),
		Muted:    lipgloss.NewStyle().Foreground(p.Subtext),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Focus),
		Status:   lipgloss.NewStyle().Foreground(p.Info),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		Footer:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Surface).Padding(0, 2),
		NavItem:  lipgloss.NewStyle().Foreground(p.Subtext).Padding(0, 1),
		NavOn:    lipgloss.NewStyle().Bold(true).Foreground(p.Base).Background(p.Accent).Padding(0, 1),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Focus).Padding(0, 1),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Overlay),

		StopActive:   lipgloss.NewStyle().Bold(true).Foreground(p.Error),
		StopOnTour:   lipgloss.NewStyle().Foreground(p.Focus),
		StopNeutral:  lipgloss.NewStyle().Foreground(p.Overlay),
		PathComputed: lipgloss.NewStyle().Foreground(p.Success),
		PathFallback: lipgloss.NewStyle().Foreground(p.Fallback),
		Unlocked:     lipgloss.NewStyle().Foreground(p.Success),
	}
}
