package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/sysinfo"
)

// Palette is the set of colours a theme is built from.
type Palette struct {
	Accent   lipgloss.Color
	Green    lipgloss.Color
	Orange   lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color
	Magenta  lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Subtle   lipgloss.Color
	Border   lipgloss.Color
	HeaderFg lipgloss.Color
}

var (
	Light = Palette{
		Accent:   "#2B6CB0",
		Green:    "#2F855A",
		Orange:   "#C05621",
		Red:      "#C53030",
		Yellow:   "#B7791F",
		Magenta:  "#805AD5",
		Text:     "#1A202C",
		Muted:    "#718096",
		Subtle:   "#CBD5E0",
		Border:   "#E2E8F0",
		HeaderFg: "#F8F9FA",
	}
	Dark = Palette{
		Accent:   "#5B9BD5",
		Green:    "#6BCB77",
		Orange:   "#FFA94D",
		Red:      "#FF6B6B",
		Yellow:   "#FFD93D",
		Magenta:  "#CC5DE8",
		Text:     "#F8F9FA",
		Muted:    "#868E96",
		Subtle:   "#495057",
		Border:   "#495057",
		HeaderFg: "#F8F9FA",
	}
)

// Styles rebuilt by Apply. They are only read from the UI goroutine.
var (
	current model.Theme
	colors  Palette

	// HeaderStyle is used for the top bar and the application title.
	HeaderStyle lipgloss.Style
	// StatusBarStyle is used for the bottom status bar.
	StatusBarStyle lipgloss.Style
	// PanelStyle frames an unfocused dashboard widget.
	PanelStyle lipgloss.Style
	// FocusedPanelStyle frames the widget receiving keys.
	FocusedPanelStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	ListItemStyle     lipgloss.Style
	SelectedItemStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	DimmedStyle       lipgloss.Style
	CompletedStyle    lipgloss.Style
	NoticeStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style
	ToastStyle        lipgloss.Style
	// DetailPanelStyle wraps full-screen views such as help and settings.
	DetailPanelStyle lipgloss.Style
)

func init() {
	Apply(model.DefaultTheme)
}

// Current returns the active theme.
func Current() model.Theme {
	return current
}

// Colors returns the active palette.
func Colors() Palette {
	return colors
}

// Apply switches every style to the palette of t.
func Apply(t model.Theme) {
	p := Light
	if t == model.ThemeDark {
		p = Dark
	} else {
		t = model.ThemeLight
	}
	current = t
	colors = p

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.HeaderFg).
		Background(p.Accent).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.Subtle).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)

	FocusedPanelStyle = PanelStyle.
		BorderForeground(p.Accent)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Text)

	ListItemStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(p.Accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(p.Accent)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	DimmedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	CompletedStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)

	NoticeStyle = lipgloss.NewStyle().
		Foreground(p.Yellow).
		Italic(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Red)

	ToastStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.HeaderFg).
		Background(p.Green).
		Padding(0, 1)

	DetailPanelStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border)
}

// BandColor maps a severity band to green, orange or red.
func BandColor(b sysinfo.Band) lipgloss.Color {
	switch b {
	case sysinfo.BandCritical:
		return colors.Red
	case sysinfo.BandWarn:
		return colors.Orange
	default:
		return colors.Green
	}
}

// BandStyle returns a bold style in the band's colour.
func BandStyle(b sysinfo.Band) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(BandColor(b))
}

// ProjectStatusStyle returns a colour-coded style for a project status badge.
func ProjectStatusStyle(status model.ProjectStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case model.ProjectPlanning:
		return base.Foreground(colors.Accent)
	case model.ProjectInProgress:
		return base.Foreground(colors.Yellow)
	case model.ProjectTesting:
		return base.Foreground(colors.Magenta)
	case model.ProjectCompleted:
		return base.Foreground(colors.Green)
	case model.ProjectOnHold:
		return base.Foreground(colors.Orange)
	default:
		return base.Foreground(colors.Muted)
	}
}
