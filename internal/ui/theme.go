package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Border  lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Cursor  lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Text:    lipgloss.Color("#cdd6f4"),
		Muted:   lipgloss.Color("#a6adc8"),
		Accent:  lipgloss.Color("#cba6f7"),
		Border:  lipgloss.Color("#585b70"),
		Success: lipgloss.Color("#94e2d5"),
		Warning: lipgloss.Color("#f9e2af"),
		Cursor:  lipgloss.Color("#f38ba8"),
	},
	"dracula": {
		Text:    lipgloss.Color("#f8f8f2"),
		Muted:   lipgloss.Color("#6272a4"),
		Accent:  lipgloss.Color("#ff79c6"),
		Border:  lipgloss.Color("#44475a"),
		Success: lipgloss.Color("#50fa7b"),
		Warning: lipgloss.Color("#f1fa8c"),
		Cursor:  lipgloss.Color("#bd93f9"),
	},
	"gruvbox": {
		Text:    lipgloss.Color("#ebdbb2"),
		Muted:   lipgloss.Color("#a89984"),
		Accent:  lipgloss.Color("#fabd2f"),
		Border:  lipgloss.Color("#665c54"),
		Success: lipgloss.Color("#b8bb26"),
		Warning: lipgloss.Color("#fe8019"),
		Cursor:  lipgloss.Color("#d3869b"),
	},
	"solarized_dark": {
		Text:    lipgloss.Color("#fdf6e3"),
		Muted:   lipgloss.Color("#93a1a1"),
		Accent:  lipgloss.Color("#b58900"),
		Border:  lipgloss.Color("#586e75"),
		Success: lipgloss.Color("#859900"),
		Warning: lipgloss.Color("#cb4b16"),
		Cursor:  lipgloss.Color("#268bd2"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	hint   lipgloss.Style
	cursor lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
	box    lipgloss.Style
	bar    lipgloss.Style
}

func stylesFor(p palette) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		label:  lipgloss.NewStyle().Foreground(p.Text).Width(16),
		value:  lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		hint:   lipgloss.NewStyle().Foreground(p.Muted),
		cursor: lipgloss.NewStyle().Foreground(p.Cursor).Bold(true),
		ok:     lipgloss.NewStyle().Foreground(p.Success),
		warn:   lipgloss.NewStyle().Foreground(p.Warning),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(1, 2),
		bar:    lipgloss.NewStyle().Foreground(p.Muted),
	}
}
