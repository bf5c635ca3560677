package sysinfo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
)

var testNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func testProbe(t *testing.T) *Probe {
	t.Helper()
	p := NewProbe()
	p.StageDelay = 0
	p.now = func() time.Time { return testNow }
	p.Host = Host{
		VirtualMemory: func() (*mem.VirtualMemoryStat, error) { return nil, errors.New("unsupported") },
		DiskUsage:     func(string) (*disk.UsageStat, error) { return nil, errors.New("unsupported") },
		Interfaces:    func() (psnet.InterfaceStatList, error) { return nil, errors.New("no interfaces") },
		Batteries:     func() ([]*battery.Battery, error) { return nil, errors.New("no batteries") },
	}
	return p
}

func withBattery(p *Probe, b *battery.Battery) {
	p.Host.Batteries = func() ([]*battery.Battery, error) { return []*battery.Battery{b}, nil }
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{1288490189, "1.2 GB"},
		{3 << 40, "3 TB"},
		{2048 << 40, "2048 TB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "bytes %d", tt.in)
	}
}

func TestBands(t *testing.T) {
	assert.Equal(t, BandOK, LoadBand(50))
	assert.Equal(t, BandWarn, LoadBand(51))
	assert.Equal(t, BandWarn, LoadBand(70))
	assert.Equal(t, BandCritical, LoadBand(71))

	assert.Equal(t, BandOK, BatteryBand(51))
	assert.Equal(t, BandWarn, BatteryBand(50))
	assert.Equal(t, BandWarn, BatteryBand(21))
	assert.Equal(t, BandCritical, BatteryBand(20))
}

func TestMetricsStayInBands(t *testing.T) {
	p := testProbe(t)

	p.intn = func(int) int { return 0 }
	low := p.Metrics()
	assert.Equal(t, model.UsageMetrics{CPU: 10, Memory: 30, Disk: 45, Simulated: true}, low.Usage)
	assert.Equal(t, testNow, low.SampledAt)

	p.intn = func(n int) int { return n - 1 }
	high := p.Metrics()
	assert.Equal(t, model.UsageMetrics{CPU: 40, Memory: 70, Disk: 65, Simulated: true}, high.Usage)
}

func TestMetricsRandomWithinBands(t *testing.T) {
	p := testProbe(t)
	for i := 0; i < 200; i++ {
		u := p.Metrics().Usage
		assert.True(t, u.CPU >= 10 && u.CPU <= 40, "cpu %d", u.CPU)
		assert.True(t, u.Memory >= 30 && u.Memory <= 70, "memory %d", u.Memory)
		assert.True(t, u.Disk >= 45 && u.Disk <= 65, "disk %d", u.Disk)
	}
}

func TestSpecsFromHost(t *testing.T) {
	p := testProbe(t)
	p.Host.VirtualMemory = func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Total: 16384000 * 1024, Available: 8192000 * 1024}, nil
	}
	p.Host.DiskUsage = func(path string) (*disk.UsageStat, error) {
		assert.Equal(t, "/", path)
		return &disk.UsageStat{Total: 100 << 30, Used: 40 << 30, Free: 60 << 30}, nil
	}

	specs := p.Specs()
	assert.Equal(t, "15.63 GB", specs.TotalMemory)
	assert.Equal(t, "7.81 GB", specs.FreeMemory)
	assert.Equal(t, "100 GB", specs.StorageTotal)
	assert.Equal(t, "40 GB", specs.StorageUsed)
	assert.Equal(t, "60 GB", specs.StorageFree)
	assert.NotEmpty(t, specs.Architecture)
	assert.NotEmpty(t, specs.CPUCores)
}

func TestSpecsWhenHostProbesFail(t *testing.T) {
	specs := testProbe(t).Specs()
	assert.Equal(t, model.NotAvailable, specs.TotalMemory)
	assert.Equal(t, model.NotAvailable, specs.FreeMemory)
	assert.Equal(t, model.NotAvailable, specs.StorageTotal)
}

func TestSpeedTestStages(t *testing.T) {
	p := testProbe(t)
	p.intn = func(int) int { return 0 }
	p.float = func() float64 { return 0.5 }

	var stages []model.SpeedTestStage
	result, err := p.SpeedTest(context.Background(), func(s model.SpeedTestStage) {
		stages = append(stages, s)
	})
	require.NoError(t, err)

	var progress []int
	for _, s := range stages {
		progress = append(progress, s.Progress)
	}
	assert.Equal(t, []int{10, 40, 70, 90, 100}, progress)
	assert.Equal(t, "Test complete", stages[len(stages)-1].Label)

	assert.Equal(t, 60.0, result.DownloadMbps)
	assert.Equal(t, 30.0, result.UploadMbps)
	assert.Equal(t, 10, result.PingMs)
	assert.Equal(t, model.Unknown, result.ConnectionType)
	assert.True(t, result.Simulated)
	assert.Equal(t, testNow, result.TestedAt)
}

func TestSpeedTestRandomRanges(t *testing.T) {
	p := testProbe(t)
	for i := 0; i < 50; i++ {
		r, err := p.SpeedTest(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, r.DownloadMbps >= 20 && r.DownloadMbps <= 100, "download %v", r.DownloadMbps)
		assert.True(t, r.UploadMbps >= 10 && r.UploadMbps <= 50, "upload %v", r.UploadMbps)
		assert.True(t, r.PingMs >= 10 && r.PingMs <= 40, "ping %v", r.PingMs)
	}
}

func TestSpeedTestCancelled(t *testing.T) {
	p := testProbe(t)
	p.StageDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	var seen int
	_, err := p.SpeedTest(ctx, func(model.SpeedTestStage) {
		seen++
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, seen)
}

func TestConnectionType(t *testing.T) {
	p := testProbe(t)

	p.Host.Interfaces = func() (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{
			{Name: "lo", Flags: []string{"up", "loopback"}},
			{Name: "eth0"},
			{Name: "wlp3s0", Flags: []string{"up", "broadcast"}},
		}, nil
	}
	assert.Equal(t, "wifi", p.ConnectionType())

	p.Host.Interfaces = func() (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{{Name: "enp0s31f6", Flags: []string{"up"}}}, nil
	}
	assert.Equal(t, "ethernet", p.ConnectionType())

	p.Host.Interfaces = func() (psnet.InterfaceStatList, error) {
		return psnet.InterfaceStatList{{Name: "docker0", Flags: []string{"up"}}}, nil
	}
	assert.Equal(t, model.Unknown, p.ConnectionType())
}

func TestBatteryUnsupported(t *testing.T) {
	b := testProbe(t).Battery()
	assert.False(t, b.Supported)
	assert.Equal(t, model.NotAvailable, b.StatusText)
}

func TestBatteryUnreadableIsUnsupported(t *testing.T) {
	p := testProbe(t)
	p.Host.Batteries = func() ([]*battery.Battery, error) {
		return []*battery.Battery{nil, {}}, errors.New("partial read")
	}
	assert.False(t, p.Battery().Supported)
}

func TestBatteryDischarging(t *testing.T) {
	p := testProbe(t)
	withBattery(p, &battery.Battery{
		State:      battery.State{Raw: battery.Discharging},
		Current:    30000,
		Full:       60000,
		Design:     62000,
		ChargeRate: 12000,
	})

	assert.Equal(t, model.BatteryStatus{
		Supported:     true,
		Level:         50,
		Charging:      false,
		TimeRemaining: "2h 30m remaining",
		Health:        "Good",
		StatusText:    "On Battery",
	}, p.Battery())
}

func TestBatteryCharging(t *testing.T) {
	p := testProbe(t)
	withBattery(p, &battery.Battery{
		State:      battery.State{Raw: battery.Charging},
		Current:    40000,
		Full:       50000,
		Design:     80000,
		ChargeRate: 20000,
	})

	b := p.Battery()
	assert.True(t, b.Supported)
	assert.True(t, b.Charging)
	assert.Equal(t, 80, b.Level)
	assert.Equal(t, "Charging", b.StatusText)
	assert.Equal(t, "0h 30m to full", b.TimeRemaining)
	assert.Equal(t, "Fair", b.Health)
}

func TestBatteryUnknownTime(t *testing.T) {
	p := testProbe(t)
	withBattery(p, &battery.Battery{
		State:   battery.State{Raw: battery.Full},
		Current: 50000,
		Full:    50000,
	})

	b := p.Battery()
	assert.True(t, b.Charging)
	assert.Equal(t, 100, b.Level)
	assert.Equal(t, model.Unknown, b.TimeRemaining)
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "1h 5m remaining", FormatRemaining(65*time.Minute, "remaining"))
}
