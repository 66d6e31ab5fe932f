// Package styles provides shared lipgloss styles for the CLI and TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Shared styles, rebuilt whenever the theme changes.
var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	MutedStyle    lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
	WarningStyle  lipgloss.Style

	PaneBorderStyle       lipgloss.Style
	ActivePaneBorderStyle lipgloss.Style

	ListItemStyle       lipgloss.Style
	ListItemActiveStyle lipgloss.Style
	BadgeStyle          lipgloss.Style

	StatusBarStyle      lipgloss.Style
	StatusLabelStyle    lipgloss.Style
	StatusValueStyle    lipgloss.Style
	FieldLabelStyle     lipgloss.Style
	FieldDisabledStyle  lipgloss.Style
	HelpStyle           lipgloss.Style
	DiffInsertStyle     lipgloss.Style
	DiffDeleteStyle     lipgloss.Style
	DiffPaneTitleStyle  lipgloss.Style
	SpinnerMessageStyle lipgloss.Style
)

func init() {
	SetTheme(themes[DefaultTheme])
}

// SetTheme applies the palette and rebuilds all shared styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Secondary)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(p.Warning)

	PaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface)
	ActivePaneBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary)

	ListItemStyle = lipgloss.NewStyle().Foreground(p.Foreground).PaddingLeft(1)
	ListItemActiveStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		PaddingLeft(1)
	BadgeStyle = lipgloss.NewStyle().Foreground(p.Muted)

	StatusBarStyle = lipgloss.NewStyle().Foreground(p.Foreground)
	StatusLabelStyle = lipgloss.NewStyle().Foreground(p.Muted).Bold(true)
	StatusValueStyle = lipgloss.NewStyle().Bold(true)
	FieldLabelStyle = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	FieldDisabledStyle = lipgloss.NewStyle().Foreground(p.Muted).Faint(true)
	HelpStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DiffInsertStyle = lipgloss.NewStyle().Foreground(p.Success)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(p.Error).Strikethrough(true)
	DiffPaneTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	SpinnerMessageStyle = lipgloss.NewStyle().Foreground(p.Secondary)
}
