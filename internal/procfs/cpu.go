package procfs

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// DefaultStatPath is the kernel's CPU accounting file.
const DefaultStatPath = "/proc/stat"

// cpuPrefix identifies accounting records; the aggregate line is "cpu" and
// per-core lines are "cpu0", "cpu1", ...
const cpuPrefix = "cpu"

// CPUTimes is one snapshot of cumulative CPU time counters, in clock ticks
// since boot. Values never decrease over the life of the host; meaningful
// utilization comes from subtracting two snapshots taken at different times.
type CPUTimes struct {
	User    uint64 `json:"user"`
	Nice    uint64 `json:"nice"`
	System  uint64 `json:"system"`
	Idle    uint64 `json:"idle"`
	IOWait  uint64 `json:"iowait"`
	IRQ     uint64 `json:"irq"`
	SoftIRQ uint64 `json:"softirq"`
	// Steal, Guest and GuestNice were added in later kernels; older formats
	// omit them and they read as zero.
	Steal     uint64 `json:"steal"`
	Guest     uint64 `json:"guest"`
	GuestNice uint64 `json:"guest_nice"`
}

// Total returns the sum of all counters in the snapshot.
func (t CPUTimes) Total() uint64 {
	return t.User + t.Nice + t.System + t.Idle + t.IOWait +
		t.IRQ + t.SoftIRQ + t.Steal + t.Guest + t.GuestNice
}

// Busy returns the sum of all non-idle counters.
func (t CPUTimes) Busy() uint64 {
	return t.Total() - t.Idle - t.IOWait
}

// parseCPULine converts one whitespace-delimited accounting line into a
// CPUTimes. The first field is the record label and is skipped. The next
// seven fields are mandatory; steal, guest and guest_nice default to zero
// when the line ends early. Parsing is strict: a malformed counter fails the
// whole line with a *ParseError rather than being coerced to zero.
func parseCPULine(line string) (CPUTimes, error) {
	fields := strings.Fields(line)
	if len(fields) < 8 {
		return CPUTimes{}, &RuntimeError{
			Msg: fmt.Sprintf("procfs: cpu line has %d fields, want at least 8: %q", len(fields), line),
		}
	}

	counters := make([]uint64, 0, 10)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return CPUTimes{}, &ParseError{Err: err}
		}
		counters = append(counters, v)
		if len(counters) == 10 {
			break
		}
	}

	at := func(i int) uint64 {
		if i < len(counters) {
			return counters[i]
		}
		return 0
	}

	return CPUTimes{
		User:      counters[0],
		Nice:      counters[1],
		System:    counters[2],
		Idle:      counters[3],
		IOWait:    counters[4],
		IRQ:       counters[5],
		SoftIRQ:   counters[6],
		Steal:     at(7),
		Guest:     at(8),
		GuestNice: at(9),
	}, nil
}

// Total reads the aggregate CPU counters from /proc/stat.
func Total() (CPUTimes, error) {
	return TotalFromPath(DefaultStatPath)
}

// TotalFromPath reads the aggregate CPU counters from the first line of the
// accounting file at path. An unopenable file yields an *IOError, an empty
// file a *RuntimeError, and a malformed counter a *ParseError.
func TotalFromPath(path string) (CPUTimes, error) {
	f, err := os.Open(path)
	if err != nil {
		return CPUTimes{}, &IOError{Err: err}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return CPUTimes{}, &RuntimeError{Msg: fmt.Sprintf("procfs: reading cpu line: %v", err)}
		}
		return CPUTimes{}, &RuntimeError{Msg: "procfs: expected cpu line but none found"}
	}

	return parseCPULine(sc.Text())
}

// PerCPU reads the per-core CPU counters from /proc/stat, one CPUTimes per
// core in core-index order.
func PerCPU() ([]CPUTimes, error) {
	return PerCPUFromPath(DefaultStatPath)
}

// PerCPUFromPath reads per-core counters from the accounting file at path.
// The first line (the aggregate) is skipped; subsequent lines are parsed
// while they carry the cpu prefix, and reading stops at the first line that
// does not. A file with no per-core lines returns an empty, non-nil slice.
func PerCPUFromPath(path string) ([]CPUTimes, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	defer f.Close()

	// NumCPU only pre-sizes the result; the returned length is always the
	// number of matching lines actually found.
	cpus := make([]CPUTimes, 0, runtime.NumCPU())

	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		if first {
			first = false
			continue
		}
		line := sc.Text()
		if !strings.HasPrefix(line, cpuPrefix) {
			break
		}
		t, err := parseCPULine(line)
		if err != nil {
			return nil, err
		}
		cpus = append(cpus, t)
	}
	if err := sc.Err(); err != nil {
		return nil, &RuntimeError{Msg: fmt.Sprintf("procfs: reading cpu lines: %v", err)}
	}

	return cpus, nil
}
