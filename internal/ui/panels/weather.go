package panels

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/refresh"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// WeatherFetchedMsg carries the result of one weather refresh.
type WeatherFetchedMsg struct {
	Snapshot model.WeatherSnapshot
}

// Weather renders the weather refresher's latest snapshot.
type Weather struct {
	weather  *refresh.Weather
	spinner  spinner.Model
	snapshot model.WeatherSnapshot
	focused  bool
	width    int
	height   int
}

func NewWeather(w *refresh.Weather) Weather {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Weather{weather: w, spinner: sp}
}

// Refresh starts a fetch for city. An empty city uses the default.
func (m *Weather) Refresh(city string) tea.Cmd {
	w := m.weather
	m.snapshot.State = model.WeatherLoading
	fetch := func() tea.Msg {
		return WeatherFetchedMsg{Snapshot: w.Refresh(context.Background(), city)}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// Snapshot returns what the panel currently shows.
func (m Weather) Snapshot() model.WeatherSnapshot {
	return m.snapshot
}

func (m Weather) Update(msg tea.Msg) (Weather, tea.Cmd) {
	switch msg := msg.(type) {
	case WeatherFetchedMsg:
		if !m.weather.Current(msg.Snapshot.Generation) {
			return m, nil
		}
		m.snapshot = msg.Snapshot
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.State != model.WeatherLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Weather) Focus() { m.focused = true }
func (m *Weather) Blur()  { m.focused = false }

func (m *Weather) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Weather) View() string {
	return ui.Panel("Weather", m.body(), m.width, m.height, m.focused)
}

func (m Weather) body() string {
	snap := m.snapshot
	switch snap.State {
	case model.WeatherIdle:
		return theme.DimmedStyle.Render("Waiting for weather...")
	case model.WeatherLoading:
		return m.spinner.View() + " Loading weather..."
	case model.WeatherFailed:
		return theme.ErrorStyle.Render(snap.Error)
	}
	if snap.Report == nil {
		return theme.ErrorStyle.Render(refresh.FailureMessage(snap.City))
	}

	r := snap.Report
	var b strings.Builder

	if snap.State == model.WeatherDegraded {
		b.WriteString(theme.NoticeStyle.Render("⚠ " + snap.Notice))
		b.WriteString("\n")
	}

	tempStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Colors().Accent)
	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		r.Condition.Icon(),
		tempStyle.Render(fmt.Sprintf("%.0f°C", r.TempC)),
		r.Description,
	))
	b.WriteString(theme.ListItemStyle.Render(r.Location))
	b.WriteString("\n")

	details := []string{
		fmt.Sprintf("Humidity %d%%", r.Humidity),
		fmt.Sprintf("Wind %.1f m/s %s", r.WindMS, r.WindDir),
	}
	if r.HasDetail {
		details = append(details,
			fmt.Sprintf("Feels like %.0f°C", r.FeelsLikeC),
			fmt.Sprintf("High %.0f°C  Low %.0f°C", r.MaxC, r.MinC),
			fmt.Sprintf("Pressure %d mb  Visibility %d km", r.PressureMb, r.VisibilityKm),
			fmt.Sprintf("UV %d  Clouds %d%%", r.UVIndex, r.CloudCover),
			fmt.Sprintf("Sunrise %s  Sunset %s", r.Sunrise, r.Sunset),
			fmt.Sprintf("Moon %s (%d%%)", r.MoonPhase, r.MoonIllumination),
		)
	}
	for _, d := range details {
		b.WriteString(theme.DimmedStyle.Render(d))
		b.WriteString("\n")
	}
	b.WriteString(theme.DimmedStyle.Render(fmt.Sprintf("via %s at %s", r.Provider, r.FetchedAt.Format("15:04"))))

	return b.String()
}
