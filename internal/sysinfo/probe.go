package sysinfo

import (
	"math/rand/v2"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// Host reads the machine. NewProbe fills it with the gopsutil and battery
// implementations; tests swap single readers.
type Host struct {
	VirtualMemory func() (*mem.VirtualMemoryStat, error)
	DiskUsage     func(path string) (*disk.UsageStat, error)
	Interfaces    func() (psnet.InterfaceStatList, error)
	Batteries     func() ([]*battery.Battery, error)
}

// DefaultHost returns the readers for the current machine.
func DefaultHost() Host {
	return Host{
		VirtualMemory: mem.VirtualMemory,
		DiskUsage:     disk.Usage,
		Interfaces:    psnet.Interfaces,
		Batteries:     battery.GetAll,
	}
}

// Probe gathers host information for the metrics, network and battery
// widgets. Load percentages and network speeds are simulated.
type Probe struct {
	// DiskPath is the filesystem whose capacity is reported.
	DiskPath string
	// StageDelay is the pause between speed test stages.
	StageDelay time.Duration
	Host       Host

	intn  func(n int) int
	float func() float64
	now   func() time.Time
}

// NewProbe returns a Probe reading the real host.
func NewProbe() *Probe {
	return &Probe{
		DiskPath:   "/",
		StageDelay: time.Second,
		Host:       DefaultHost(),
		intn:       rand.IntN,
		float:      rand.Float64,
		now:        time.Now,
	}
}

// between returns a random integer in [lo, hi].
func (p *Probe) between(lo, hi int) int {
	return lo + p.intn(hi-lo+1)
}

// betweenTenths returns a random value in [lo, hi) rounded to one decimal.
func (p *Probe) betweenTenths(lo, hi float64) float64 {
	v := lo + p.float()*(hi-lo)
	return float64(int(v*10)) / 10
}
