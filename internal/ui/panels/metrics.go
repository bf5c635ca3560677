package panels

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/sysinfo"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// cpuHistoryLen is the number of CPU samples kept for the chart.
const cpuHistoryLen = 12

// MetricsSampledMsg carries one metrics sample.
type MetricsSampledMsg struct {
	Metrics model.SystemMetrics
}

// Metrics shows simulated load, a CPU history chart and hardware specs.
type Metrics struct {
	probe   *sysinfo.Probe
	metrics model.SystemMetrics
	history []int
	sampled bool
	focused bool
	width   int
	height  int
}

func NewMetrics(p *sysinfo.Probe) Metrics {
	return Metrics{probe: p}
}

// Refresh samples the probe.
func (m Metrics) Refresh() tea.Cmd {
	p := m.probe
	return func() tea.Msg {
		return MetricsSampledMsg{Metrics: p.Metrics()}
	}
}

// History returns the retained CPU samples, oldest first.
func (m Metrics) History() []int {
	return m.history
}

func (m Metrics) Update(msg tea.Msg) (Metrics, tea.Cmd) {
	if msg, ok := msg.(MetricsSampledMsg); ok {
		m.metrics = msg.Metrics
		m.sampled = true
		m.history = append(m.history, msg.Metrics.Usage.CPU)
		if len(m.history) > cpuHistoryLen {
			m.history = append([]int(nil), m.history[len(m.history)-cpuHistoryLen:]...)
		}
	}
	return m, nil
}

func (m *Metrics) Focus() { m.focused = true }
func (m *Metrics) Blur()  { m.focused = false }

func (m *Metrics) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Metrics) View() string {
	return ui.Panel("System (simulated load)", m.body(), m.width, m.height, m.focused)
}

func (m Metrics) body() string {
	if !m.sampled {
		return theme.DimmedStyle.Render("Sampling...")
	}

	u := m.metrics.Usage
	s := m.metrics.Specs
	var b strings.Builder

	b.WriteString(usageLine("CPU", u.CPU))
	b.WriteString(usageLine("Memory", u.Memory))
	b.WriteString(usageLine("Disk", u.Disk))

	if chart := m.chart(); chart != "" {
		b.WriteString(chart)
		b.WriteString("\n")
	}

	specs := []string{
		fmt.Sprintf("%s cores · %s · %s", s.CPUCores, s.Architecture, s.OS),
		fmt.Sprintf("Memory %s total, %s free", s.TotalMemory, s.FreeMemory),
		fmt.Sprintf("Storage %s used of %s (%s free)", s.StorageUsed, s.StorageTotal, s.StorageFree),
		fmt.Sprintf("Heap %s · %d goroutines · %s", s.HeapSize, s.NumGoroutines, s.GoVersion),
	}
	for _, line := range specs {
		b.WriteString(theme.DimmedStyle.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func usageLine(label string, pct int) string {
	style := theme.BandStyle(sysinfo.LoadBand(pct))
	return fmt.Sprintf("%-7s %s\n", label, style.Render(fmt.Sprintf("%3d%%", pct)))
}

// chart draws the CPU history as bars coloured by load band.
func (m Metrics) chart() string {
	if len(m.history) < 2 {
		return ""
	}
	w := m.width - 4
	h := ui.PanelRows(m.height) - 8
	if w < 10 || h < 3 {
		return ""
	}

	bc := barchart.New(w, h)
	bars := make([]barchart.BarData, 0, len(m.history))
	for _, v := range m.history {
		bars = append(bars, barchart.BarData{
			Values: []barchart.BarValue{{
				Name:  "cpu",
				Value: float64(v),
				Style: lipgloss.NewStyle().Foreground(theme.BandColor(sysinfo.LoadBand(v))),
			}},
		})
	}
	bc.PushAll(bars)
	bc.Draw()
	return bc.View()
}
