package sysinfo

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/nhle/dashboard/internal/model"
)

// SpeedTestIdle is the status shown when no test is running.
const SpeedTestIdle = "Ready to test"

// SpeedTestResetAfter is how long the completed status stays visible.
const SpeedTestResetAfter = 3 * time.Second

// SpeedTestStages are shown in order while a test runs.
var SpeedTestStages = []model.SpeedTestStage{
	{Label: "Preparing test...", Progress: 10},
	{Label: "Testing download speed...", Progress: 40},
	{Label: "Testing upload speed...", Progress: 70},
	{Label: "Testing ping...", Progress: 90},
}

// SpeedTestComplete is the final stage.
var SpeedTestComplete = model.SpeedTestStage{Label: "Test complete", Progress: 100}

// SpeedTest runs the simulated staged speed test, reporting each stage to
// progress (which may be nil). It only fails when ctx is done.
func (p *Probe) SpeedTest(ctx context.Context, progress func(model.SpeedTestStage)) (model.SpeedTestResult, error) {
	report := func(s model.SpeedTestStage) {
		if progress != nil {
			progress(s)
		}
	}

	for _, stage := range SpeedTestStages {
		report(stage)

		timer := time.NewTimer(p.StageDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.SpeedTestResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	result := model.SpeedTestResult{
		DownloadMbps:   p.betweenTenths(20, 100),
		UploadMbps:     p.betweenTenths(10, 50),
		PingMs:         p.between(10, 40),
		ConnectionType: p.ConnectionType(),
		Simulated:      true,
		TestedAt:       p.now(),
	}
	report(SpeedTestComplete)

	return result, nil
}

// ConnectionType guesses the link type from the first interface that is up
// and not a loopback.
func (p *Probe) ConnectionType() string {
	ifaces, err := p.Host.Interfaces()
	if err != nil {
		return model.Unknown
	}

	for _, iface := range ifaces {
		if !slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback") {
			continue
		}
		name := strings.ToLower(iface.Name)
		switch {
		case strings.HasPrefix(name, "wl"), strings.HasPrefix(name, "wifi"):
			return "wifi"
		case strings.HasPrefix(name, "en"), strings.HasPrefix(name, "eth"):
			return "ethernet"
		case strings.HasPrefix(name, "ww"), strings.HasPrefix(name, "rmnet"):
			return "cellular"
		}
	}
	return model.Unknown
}
