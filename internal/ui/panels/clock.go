package panels

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/clock"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// Clock shows the greeting, current time and date.
type Clock struct {
	now         time.Time
	userName    string
	showSeconds bool
	width       int
	height      int
}

func NewClock(now time.Time) Clock {
	return Clock{now: now, showSeconds: true}
}

// Tick advances the displayed time.
func (c *Clock) Tick(now time.Time) {
	c.now = now
}

// ApplySettings picks up the user name and seconds preference.
func (c *Clock) ApplySettings(s model.Settings) {
	c.userName = s.UserName
	c.showSeconds = s.ShowSeconds
}

func (c *Clock) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c Clock) View() string {
	timeStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Colors().Accent)

	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.ListItemStyle.Render(clock.Greeting(c.now, c.userName)),
		"",
		timeStyle.Render(clock.Time(c.now, c.showSeconds)),
		theme.DimmedStyle.Render(clock.Date(c.now)),
	)
	return ui.Panel("Today", body, c.width, c.height, false)
}
