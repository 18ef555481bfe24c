//go:build linux

package procfs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ja7ad/procmon/pkg/system/util"
)

// idleField is the position of the idle counter on the aggregate cpu line,
// counting the "cpu" label as field 0:
//
//	cpu user nice system idle iowait irq softirq steal guest guest_nice
const idleField = 4

// CPUStats is one snapshot of the aggregate CPU tick counters.
type CPUStats struct {
	Idle  uint64
	Total uint64
}

// ReadCPUStats parses the aggregate cpu line at the top of stat. Total is
// the sum of every counter on the line.
func ReadCPUStats(root string) (CPUStats, error) {
	line, err := readFirstLine(root, "stat")
	if err != nil {
		return CPUStats{}, err
	}
	fs := strings.Fields(line)
	if len(fs) == 0 || fs[0] != "cpu" {
		return CPUStats{}, ErrNoCPU
	}
	if len(fs) <= idleField {
		return CPUStats{}, fmt.Errorf("%w: stat cpu line has %d fields", ErrParse, len(fs))
	}

	var s CPUStats
	for i, raw := range fs[1:] {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return CPUStats{}, parseErr("stat", "cpu", raw, err)
		}
		if i+1 == idleField {
			s.Idle = v
		}
		s.Total += v
	}
	return s, nil
}

// CPUUsage returns the busy fraction between two snapshots:
//
//	1 - Δidle/Δtotal
//
// It is 0 when either counter went backwards or no ticks elapsed.
func CPUUsage(prev, curr CPUStats) float64 {
	dIdle, ok := util.DeltaU64(curr.Idle, prev.Idle)
	if !ok {
		return 0
	}
	dTotal, ok := util.DeltaU64(curr.Total, prev.Total)
	if !ok || dTotal == 0 {
		return 0
	}
	return util.Clamp01(1 - util.SafeDiv(float64(dIdle), float64(dTotal)))
}

// Usage reads a fresh snapshot and returns the usage since prev along with
// the snapshot, which the caller passes as prev on the next poll.
func Usage(root string, prev CPUStats) (float64, CPUStats, error) {
	curr, err := ReadCPUStats(root)
	if err != nil {
		return 0, prev, err
	}
	return CPUUsage(prev, curr), curr, nil
}
