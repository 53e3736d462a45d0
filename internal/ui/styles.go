package ui

import (
	"github.com/babarot/xcom/internal/config"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	index lipgloss.Style
	date  lipgloss.Style
	name  lipgloss.Style
	path  lipgloss.Style
	meta  lipgloss.Style

	header   lipgloss.Style
	empty    lipgloss.Style
	restored lipgloss.Style
	deleted  lipgloss.Style
	failed   lipgloss.Style
	notice   lipgloss.Style
	detail   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, cfg config.Style) styles {
	fg := func(c string) lipgloss.Style {
		s := r.NewStyle()
		if c != "" {
			s = s.Foreground(lipgloss.Color(c))
		}
		return s
	}
	badge := func(fg, bg string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(fg)).Background(lipgloss.Color(bg))
	}

	return styles{
		index: fg(cfg.Index),
		date:  fg(cfg.Date),
		name:  fg(cfg.Name),
		path:  fg(cfg.Path),
		meta:  fg("#808080"),

		header:   badge("#000000", "#00AAAA"),
		empty:    fg("#FF00AA"),
		restored: badge("#000000", "#FFFF55"),
		deleted:  badge("#FFFFFF", "#AA0000"),
		failed:   badge("#FFFFFF", "#AA0000"),
		notice:   badge("#000000", "#FFFF55"),
		detail:   badge("#FFFFFF", "#0000AA"),
	}
}
