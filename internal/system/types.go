package system

import (
	"time"

	"github.com/kipkorir-dev/procpulse-agent/internal/procfs"
)

// CPUTimesInfo is a single aggregate counter snapshot with its read time.
type CPUTimesInfo struct {
	Timestamp time.Time       `json:"timestamp"`
	Times     procfs.CPUTimes `json:"times"`
}

// PerCPUTimesInfo holds one counter snapshot per core, in core-index order.
type PerCPUTimesInfo struct {
	Timestamp time.Time         `json:"timestamp"`
	Cores     int               `json:"cores"`
	Times     []procfs.CPUTimes `json:"times"`
}

// CPUUsageInfo is the differential utilization between two snapshots taken
// Interval apart.
type CPUUsageInfo struct {
	Timestamp   time.Time `json:"timestamp"`
	Interval    string    `json:"interval"`
	UsageTotal  float64   `json:"usage_total"`
	UsagePerCPU []float64 `json:"usage_per_cpu"`
}

// PidsInfo is a point-in-time process census.
type PidsInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Pids      []int32   `json:"pids"`
	Total     int       `json:"total"`
}

// HostInfo contains system identification information.
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	KernelArch      string `json:"kernel_arch"`
	Uptime          uint64 `json:"uptime"`
	BootTime        uint64 `json:"boot_time"`
	Procs           uint64 `json:"procs"`
}

// MemoryInfo contains memory usage information.
type MemoryInfo struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
	Free        uint64  `json:"free"`
	Buffers     uint64  `json:"buffers"`
	Cached      uint64  `json:"cached"`
}

// LoadInfo contains load averages.
type LoadInfo struct {
	Load1  float64 `json:"load_1"`
	Load5  float64 `json:"load_5"`
	Load15 float64 `json:"load_15"`
}
