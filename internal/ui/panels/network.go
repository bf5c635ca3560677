package panels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/sysinfo"
	"github.com/nhle/dashboard/internal/theme"
	"github.com/nhle/dashboard/internal/ui"
)

// SpeedStageMsg reports progress of a running speed test.
type SpeedStageMsg struct {
	Stage model.SpeedTestStage
	run   int
	ch    <-chan model.SpeedTestStage
}

// SpeedDoneMsg is sent when a speed test finishes.
type SpeedDoneMsg struct {
	Result model.SpeedTestResult
	Err    error
	run    int
}

type speedResetMsg struct{ run int }

// Network runs the simulated speed test and shows its results.
type Network struct {
	probe      *sysinfo.Probe
	bar        progress.Model
	stage      model.SpeedTestStage
	result     model.SpeedTestResult
	hasResult  bool
	running    bool
	run        int
	resetAfter time.Duration
	focused    bool
	width      int
	height     int
}

func NewNetwork(p *sysinfo.Probe) Network {
	return Network{
		probe:      p,
		bar:        progress.New(progress.WithDefaultGradient()),
		stage:      model.SpeedTestStage{Label: sysinfo.SpeedTestIdle},
		resetAfter: sysinfo.SpeedTestResetAfter,
	}
}

// Running reports whether a speed test is in progress.
func (m Network) Running() bool {
	return m.running
}

// Status is the current stage label.
func (m Network) Status() string {
	return m.stage.Label
}

// Start launches a speed test unless one is already running.
func (m *Network) Start() tea.Cmd {
	if m.running {
		return nil
	}
	m.running = true
	m.run++

	run := m.run
	probe := m.probe
	stages := make(chan model.SpeedTestStage, len(sysinfo.SpeedTestStages)+1)
	done := make(chan SpeedDoneMsg, 1)

	go func() {
		result, err := probe.SpeedTest(context.Background(), func(s model.SpeedTestStage) {
			stages <- s
		})
		close(stages)
		done <- SpeedDoneMsg{Result: result, Err: err, run: run}
	}()

	return tea.Batch(
		waitForStage(stages, run),
		func() tea.Msg { return <-done },
	)
}

func waitForStage(ch <-chan model.SpeedTestStage, run int) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return SpeedStageMsg{Stage: s, run: run, ch: ch}
	}
}

func (m Network) Update(msg tea.Msg) (Network, tea.Cmd) {
	switch msg := msg.(type) {
	case SpeedStageMsg:
		if msg.run != m.run || !m.running {
			return m, nil
		}
		m.stage = msg.Stage
		return m, waitForStage(msg.ch, msg.run)

	case SpeedDoneMsg:
		if msg.run != m.run {
			return m, nil
		}
		m.running = false
		if msg.Err != nil {
			m.stage = model.SpeedTestStage{Label: "Test failed"}
		} else {
			m.result = msg.Result
			m.hasResult = true
			m.stage = sysinfo.SpeedTestComplete
		}
		run := m.run
		return m, tea.Tick(m.resetAfter, func(time.Time) tea.Msg {
			return speedResetMsg{run: run}
		})

	case speedResetMsg:
		if msg.run == m.run && !m.running {
			m.stage = model.SpeedTestStage{Label: sysinfo.SpeedTestIdle}
		}
		return m, nil
	}
	return m, nil
}

func (m *Network) Focus() { m.focused = true }
func (m *Network) Blur()  { m.focused = false }

func (m *Network) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.bar.Width = max(width-6, 10)
}

func (m Network) View() string {
	return ui.Panel("Network (simulated)", m.body(), m.width, m.height, m.focused)
}

func (m Network) body() string {
	var b strings.Builder

	b.WriteString(theme.ListItemStyle.Render(m.stage.Label))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(float64(m.stage.Progress) / 100))
	b.WriteString("\n")

	if !m.hasResult {
		b.WriteString(theme.DimmedStyle.Render("Press 't' to run a speed test."))
		return b.String()
	}

	r := m.result
	b.WriteString(fmt.Sprintf("↓ %.1f Mbps  ↑ %.1f Mbps  Ping %d ms\n", r.DownloadMbps, r.UploadMbps, r.PingMs))
	b.WriteString(theme.DimmedStyle.Render(fmt.Sprintf("Connection: %s · tested %s", r.ConnectionType, r.TestedAt.Format("15:04"))))
	return b.String()
}
