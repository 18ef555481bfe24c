//go:build linux

package monitor

import (
	"time"

	"github.com/ja7ad/procmon/pkg/system/procfs"
)

// Config holds sampler settings.
//   - Root: procfs mount point
//   - TaskCapacity: bound on the active task list
//   - Match: which cpuinfo "model name" line wins
//   - EMA: smoothing factor for CPU usage [0..1], 0 disables
type Config struct {
	Root         string
	TaskCapacity int
	Match        procfs.Match
	EMA          float64
}

// _defaultConfig returns a Config pre-filled with the kernel defaults.
func _defaultConfig() *Config {
	return &Config{
		Root:         procfs.DefaultRoot,
		TaskCapacity: procfs.DefaultTaskCapacity,
		Match:        procfs.MatchLast,
		EMA:          0,
	}
}

// Snapshot is one poll of every extractor.
type Snapshot struct {
	At       time.Time
	Hostname string
	Kernel   string
	CPUModel string
	CPUUnits int
	Uptime   float64 // seconds
	Load     procfs.LoadAvg
	CPUUsage float64 // [0,1]
	Mem      procfs.MemStats
	Tasks    *procfs.TaskStats
}

// Averages are means over every sample taken so far.
type Averages struct {
	Samples  int
	CPUUsage float64
	MemUsed  float64 // GiB
	Load1    float64
}
