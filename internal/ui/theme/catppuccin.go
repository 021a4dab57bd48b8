package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha (dark) and Latte (light). Apply swaps the active
// palette before the program starts; styles are rebuilt from it.

type palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
}

var mocha = palette{
	Base:     lipgloss.Color("#1e1e2e"),
	Mantle:   lipgloss.Color("#181825"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),
	Text:     lipgloss.Color("#cdd6f4"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Lavender: lipgloss.Color("#b4befe"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Green:    lipgloss.Color("#a6e3a1"),
	Peach:    lipgloss.Color("#fab387"),
}

var latte = palette{
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Text:     lipgloss.Color("#4c4f69"),
	Subtext0: lipgloss.Color("#6c6f85"),
	Lavender: lipgloss.Color("#7287fd"),
	Sapphire: lipgloss.Color("#209fb5"),
	Green:    lipgloss.Color("#40a02b"),
	Peach:    lipgloss.Color("#fe640b"),
}

var (
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
)

var active string

func init() {
	Apply("dark")
}

// Current reports the name of the palette in effect, "dark" or "light".
func Current() string { return active }

// Apply selects the palette for the given theme name. Anything other
// than "light" selects the dark palette. Call outside a render pass;
// styles are package-level and not safe to swap mid-render.
func Apply(name string) {
	p := mocha
	active = "dark"
	if name == "light" {
		p = latte
		active = "light"
	}

	Base = p.Base
	Mantle = p.Mantle
	Surface0 = p.Surface0
	Surface1 = p.Surface1
	Text = p.Text
	Subtext0 = p.Subtext0
	Lavender = p.Lavender
	Sapphire = p.Sapphire
	Green = p.Green
	Peach = p.Peach

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green).Bold(true)
}
