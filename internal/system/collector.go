// Package system assembles host metrics for the HTTP surface. CPU counters
// and the process census come from the procfs reader; host identification,
// memory and load averages come from gopsutil, which covers ground the
// counter reader deliberately does not.
package system

import (
	"fmt"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/kipkorir-dev/procpulse-agent/internal/procfs"
)

// Collector handles system metrics collection. StatPath and ProcPath default
// to the live kernel files and are overridable for tests.
type Collector struct {
	StatPath string
	ProcPath string
}

// NewCollector creates a collector reading the given sources; empty paths
// fall back to the kernel defaults.
func NewCollector(statPath, procPath string) *Collector {
	if statPath == "" {
		statPath = procfs.DefaultStatPath
	}
	if procPath == "" {
		procPath = procfs.DefaultProcPath
	}
	return &Collector{StatPath: statPath, ProcPath: procPath}
}

// CPUTimes returns the aggregate counter snapshot.
func (c *Collector) CPUTimes() (*CPUTimesInfo, error) {
	times, err := procfs.TotalFromPath(c.StatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu times: %w", err)
	}
	return &CPUTimesInfo{Timestamp: time.Now().UTC(), Times: times}, nil
}

// PerCPUTimes returns one counter snapshot per core.
func (c *Collector) PerCPUTimes() (*PerCPUTimesInfo, error) {
	times, err := procfs.PerCPUFromPath(c.StatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read per-cpu times: %w", err)
	}
	return &PerCPUTimesInfo{
		Timestamp: time.Now().UTC(),
		Cores:     len(times),
		Times:     times,
	}, nil
}

// CPUUsage takes two snapshots interval apart and returns the busy share of
// each core and of the whole host over that window. It blocks for the full
// interval.
func (c *Collector) CPUUsage(interval time.Duration) (*CPUUsageInfo, error) {
	before, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	time.Sleep(interval)

	after, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	perCPU := make([]float64, 0, len(after.perCore))
	for i, curr := range after.perCore {
		if i >= len(before.perCore) {
			break
		}
		perCPU = append(perCPU, busyPercent(before.perCore[i], curr))
	}

	return &CPUUsageInfo{
		Timestamp:   time.Now().UTC(),
		Interval:    interval.String(),
		UsageTotal:  busyPercent(before.total, after.total),
		UsagePerCPU: perCPU,
	}, nil
}

type cpuSnapshot struct {
	total   procfs.CPUTimes
	perCore []procfs.CPUTimes
}

func (c *Collector) snapshot() (*cpuSnapshot, error) {
	total, err := procfs.TotalFromPath(c.StatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu times: %w", err)
	}
	perCore, err := procfs.PerCPUFromPath(c.StatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read per-cpu times: %w", err)
	}
	return &cpuSnapshot{total: total, perCore: perCore}, nil
}

// busyPercent computes the busy share of the interval between two snapshots
// of the same counter line.
func busyPercent(prev, curr procfs.CPUTimes) float64 {
	totalDelta := curr.Total() - prev.Total()
	if curr.Total() < prev.Total() || totalDelta == 0 {
		return 0
	}
	busyDelta := curr.Busy() - prev.Busy()
	if curr.Busy() < prev.Busy() {
		return 0
	}
	return float64(busyDelta) / float64(totalDelta) * 100
}

// Pids returns the sorted process census.
func (c *Collector) Pids() (*PidsInfo, error) {
	seq, err := procfs.PidsFromPath(c.ProcPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	pids := slices.Sorted(seq)
	return &PidsInfo{
		Timestamp: time.Now().UTC(),
		Pids:      pids,
		Total:     len(pids),
	}, nil
}

// GetHostInfo retrieves system host information.
func GetHostInfo() (*HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	return &HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		Uptime:          info.Uptime,
		BootTime:        info.BootTime,
		Procs:           info.Procs,
	}, nil
}

// GetMemoryInfo retrieves memory usage information.
func GetMemoryInfo() (*MemoryInfo, error) {
	vmem, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get virtual memory: %w", err)
	}

	return &MemoryInfo{
		Total:       vmem.Total,
		Available:   vmem.Available,
		Used:        vmem.Used,
		UsedPercent: vmem.UsedPercent,
		Free:        vmem.Free,
		Buffers:     vmem.Buffers,
		Cached:      vmem.Cached,
	}, nil
}

// GetLoadInfo retrieves load averages.
func GetLoadInfo() (*LoadInfo, error) {
	avg, err := load.Avg()
	if err != nil {
		return nil, fmt.Errorf("failed to get load average: %w", err)
	}

	return &LoadInfo{
		Load1:  avg.Load1,
		Load5:  avg.Load5,
		Load15: avg.Load15,
	}, nil
}
