package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Theme is a named color palette.
type Theme struct {
	Name string

	Background    string // behind overlays
	Surface       string // header and footer bars
	SelectionBg   string // selected post
	SelectionText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style
	Draft    lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	strip := lipgloss.NewStyle().
		Background(lipgloss.Color(t.Surface)).
		Padding(0, 1)

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: strip.Foreground(lipgloss.Color(t.Text)),
		Footer: strip.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Warning).Bold(true),
		Title:  fg(t.Accent).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true),
		Draft: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Warning)).
			Padding(0, 1),
	}
}

// LevelColor returns the color used for a log level.
func (t Theme) LevelColor(level zerolog.Level) string {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return t.Faint
	case zerolog.InfoLevel:
		return t.Info
	case zerolog.WarnLevel:
		return t.Warning
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return t.Danger
	default:
		return t.Muted
	}
}

// themes in cycle order. The first is the default.
var themes = []Theme{
	// https://github.com/EdenEast/nightfox.nvim
	{
		Name: "Nightfox", Background: "#131a24", Surface: "#192330",
		SelectionBg: "#2b3b51", SelectionText: "#cdcecf",
		Text: "#cdcecf", Muted: "#738091", Faint: "#71839b", Accent: "#719cd6",
		Success: "#81b29a", Warning: "#dbc074", Danger: "#c94f6d", Info: "#63cdcf",
	},
	// https://github.com/rebelot/kanagawa.nvim
	{
		Name: "Kanagawa", Background: "#16161D", Surface: "#1F1F28",
		SelectionBg: "#2D4F67", SelectionText: "#DCD7BA",
		Text: "#DCD7BA", Muted: "#C8C093", Faint: "#727169", Accent: "#7E9CD8",
		Success: "#98BB6C", Warning: "#E6C384", Danger: "#E46876", Info: "#7FB4CA",
	},
	// Tailwind slate/sky
	{
		Name: "Slate", Background: "#020617", Surface: "#0f172a",
		SelectionBg: "#0284c7", SelectionText: "#f8fafc",
		Text: "#f1f5f9", Muted: "#94a3b8", Faint: "#64748b", Accent: "#38bdf8",
		Success: "#22c55e", Warning: "#f59e0b", Danger: "#ef4444", Info: "#06b6d4",
	},
}

// GetTheme returns a theme by name, or the default theme.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
