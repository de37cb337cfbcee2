package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Header lipgloss.Style
	Panel  PanelTheme
	Status StatusTheme
	Chart  ChartTheme
	Footer FooterTheme
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// StatusTheme styles the reminder line.
type StatusTheme struct {
	Due    lipgloss.Style
	Asleep lipgloss.Style
	Calm   lipgloss.Style
}

// ChartTheme styles the weekly bars and planner picks.
type ChartTheme struct {
	Bar     lipgloss.Style
	Missing lipgloss.Style
	Best    lipgloss.Style
	Muted   lipgloss.Style
	Insight lipgloss.Style
}

// FooterTheme groups styles used by the bottom help/status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Accent is the badge teal.
var Accent = lipgloss.Color("#5eead4")

// Default returns the built-in theme.
func Default() Theme {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	return Theme{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true),
			Body:  lipgloss.NewStyle(),
		},
		Status: StatusTheme{
			Due:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(Accent).Padding(0, 1),
			Asleep: lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
			Calm:   muted,
		},
		Chart: ChartTheme{
			Bar:     lipgloss.NewStyle().Foreground(Accent),
			Missing: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Best:    lipgloss.NewStyle().Bold(true).Foreground(Accent),
			Muted:   muted,
			Insight: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("229")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: muted,
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
	}
}
