package sysinfo

import (
	"runtime"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/model"
)

// Simulated usage bands, in percent.
const (
	cpuMin, cpuMax   = 10, 40
	memMin, memMax   = 30, 70
	diskMin, diskMax = 45, 65
)

// Metrics samples simulated usage and probes hardware specs. It never fails;
// unsupported probes read NotAvailable.
func (p *Probe) Metrics() model.SystemMetrics {
	return model.SystemMetrics{
		Usage: model.UsageMetrics{
			CPU:       p.between(cpuMin, cpuMax),
			Memory:    p.between(memMin, memMax),
			Disk:      p.between(diskMin, diskMax),
			Simulated: true,
		},
		Specs:     p.Specs(),
		SampledAt: p.now(),
	}
}

// Specs probes the Go runtime and the operating system.
func (p *Probe) Specs() model.HardwareSpecs {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	specs := model.HardwareSpecs{
		CPUCores:      strconv.Itoa(runtime.NumCPU()),
		Architecture:  runtime.GOARCH,
		OS:            runtime.GOOS,
		TotalMemory:   model.NotAvailable,
		FreeMemory:    model.NotAvailable,
		HeapSize:      FormatBytes(ms.HeapAlloc),
		StorageTotal:  model.NotAvailable,
		StorageUsed:   model.NotAvailable,
		StorageFree:   model.NotAvailable,
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
	}

	if vm, err := p.Host.VirtualMemory(); err == nil && vm.Total > 0 {
		specs.TotalMemory = FormatBytes(vm.Total)
		specs.FreeMemory = FormatBytes(vm.Available)
	} else if err != nil {
		log.Debug().Err(err).Msg("memory probe unavailable")
	}

	if du, err := p.Host.DiskUsage(p.DiskPath); err == nil && du.Total > 0 {
		specs.StorageTotal = FormatBytes(du.Total)
		specs.StorageUsed = FormatBytes(du.Used)
		specs.StorageFree = FormatBytes(du.Free)
	} else if err != nil {
		log.Debug().Err(err).Str("path", p.DiskPath).Msg("disk probe unavailable")
	}

	return specs
}
