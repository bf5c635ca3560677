package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/sysinfo"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// BatteryReadMsg carries a battery reading.
type BatteryReadMsg struct {
	Status model.BatteryStatus
}

// Battery shows the host battery or "Not available".
type Battery struct {
	probe   *sysinfo.Probe
	status  model.BatteryStatus
	read    bool
	focused bool
	width   int
	height  int
}

func NewBattery(p *sysinfo.Probe) Battery {
	return Battery{probe: p}
}

func (m Battery) Refresh() tea.Cmd {
	p := m.probe
	return func() tea.Msg {
		return BatteryReadMsg{Status: p.Battery()}
	}
}

func (m Battery) Update(msg tea.Msg) (Battery, tea.Cmd) {
	if msg, ok := msg.(BatteryReadMsg); ok {
		m.status = msg.Status
		m.read = true
	}
	return m, nil
}

func (m *Battery) Focus() { m.focused = true }
func (m *Battery) Blur()  { m.focused = false }

func (m *Battery) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Battery) View() string {
	return ui.Panel("Battery", m.body(), m.width, m.height, m.focused)
}

func (m Battery) body() string {
	switch {
	case !m.read:
		return theme.DimmedStyle.Render("Reading...")
	case !m.status.Supported:
		return theme.DimmedStyle.Render(model.NotAvailable)
	}

	s := m.status
	var b strings.Builder
	level := theme.BandStyle(sysinfo.BatteryBand(s.Level)).Render(fmt.Sprintf("%d%%", s.Level))
	icon := "🔋"
	if s.Charging {
		icon = "⚡"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s\n", icon, level, s.StatusText))
	b.WriteString(theme.DimmedStyle.Render("Time: " + s.TimeRemaining))
	b.WriteString("\n")
	b.WriteString(theme.DimmedStyle.Render("Health: " + s.Health))
	return b.String()
}
