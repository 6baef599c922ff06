package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/storefront/internal/config"
)

const (
	colorGreen  lipgloss.Color = "#00FF88"
	colorViolet lipgloss.Color = "#8A2BE2"
	colorYellow lipgloss.Color = "#F9E2AF"
	colorText   lipgloss.Color = "#FFFFFF"
	colorBody   lipgloss.Color = "#DDDDDD"
	colorMuted  lipgloss.Color = "#808080"
	colorCard   lipgloss.Color = "#1E1E1E"
	colorBase   lipgloss.Color = "#0A0A0A"
	colorError  lipgloss.Color = "#F38BA8"
)

type styles struct {
	title      lipgloss.Style
	card       lipgloss.Style
	cardActive lipgloss.Style
	name       lipgloss.Style
	subtitle   lipgloss.Style
	rating     lipgloss.Style
	muted      lipgloss.Style
	body       lipgloss.Style
	button     lipgloss.Style
	dotOn      lipgloss.Style
	dotOff     lipgloss.Style
	status     lipgloss.Style
	statusErr  lipgloss.Style
	spinner    lipgloss.Style
	tab        lipgloss.Style
	tabActive  lipgloss.Style
}

func colorOr(value string, fallback lipgloss.Color) lipgloss.Color {
	if v := strings.TrimSpace(value); v != "" {
		return lipgloss.Color(v)
	}
	return fallback
}

func newStyles(ui config.UIConfig) styles {
	accent := colorOr(ui.Accent, colorGreen)
	secondary := colorOr(ui.Secondary, colorViolet)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1)

	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		card:       card,
		cardActive: card.BorderForeground(accent),
		name:       lipgloss.NewStyle().Bold(true).Foreground(colorText),
		subtitle:   lipgloss.NewStyle().Foreground(accent),
		rating:     lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		muted:      lipgloss.NewStyle().Foreground(colorMuted),
		body:       lipgloss.NewStyle().Foreground(colorBody),
		button:     lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(accent).Padding(0, 2),
		dotOn:      lipgloss.NewStyle().Foreground(accent),
		dotOff:     lipgloss.NewStyle().Foreground(secondary),
		status:     lipgloss.NewStyle().Foreground(colorBody).Background(colorCard).Padding(0, 1),
		statusErr:  lipgloss.NewStyle().Foreground(colorError).Background(colorCard).Padding(0, 1),
		spinner:    lipgloss.NewStyle().Foreground(accent),
		tab:        lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2),
		tabActive:  lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 2),
	}
}
