package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/metcalfc/lrn/internal/variant"
)

const (
	dotCurrent = "●"
	dotIdle    = "○"
	bullet     = "•"
)

var (
	dimColor   = lipgloss.Color("#6B7280")
	faintColor = lipgloss.Color("#4B5563")
)

// styles is the lipgloss palette for one variant.
type styles struct {
	progress lipgloss.Style
	back     lipgloss.Style
	title    lipgloss.Style
	label    lipgloss.Style
	bullet   lipgloss.Style
	toggle   lipgloss.Style
	panel    lipgloss.Style
	panelHd  lipgloss.Style
	dot      lipgloss.Style
	dotIdle  lipgloss.Style
	dotFocus lipgloss.Style
	navOn    lipgloss.Style
	navOff   lipgloss.Style
	status   lipgloss.Style
	empty    lipgloss.Style
}

func newStyles(t variant.Theme) styles {
	accent := lipgloss.Color(t.Accent)
	return styles{
		progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AccentMuted)),
		back: lipgloss.NewStyle().
			Foreground(dimColor),
		title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			MarginTop(1),
		bullet: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Bullet)),
		toggle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.AccentMuted)).
			Underline(true).
			MarginTop(1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.PanelText)).
			Background(lipgloss.Color(t.Panel)).
			Foreground(lipgloss.Color(t.PanelText)).
			Padding(0, 1),
		panelHd: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.PanelText)).
			Background(lipgloss.Color(t.Panel)).
			Bold(true),
		dot: lipgloss.NewStyle().
			Foreground(accent),
		dotIdle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.DotIdle)),
		dotFocus: lipgloss.NewStyle().
			Underline(true),
		navOn: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		navOff: lipgloss.NewStyle().
			Foreground(faintColor).
			Faint(true),
		status: lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true),
		empty: lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Padding(1, 2),
	}
}
