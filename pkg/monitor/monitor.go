//go:build linux

package monitor

import (
	"errors"
	"fmt"
	"time"

	"github.com/ja7ad/procmon/pkg/system/procfs"
	"github.com/ja7ad/procmon/pkg/system/util"
)

// Sampler polls procfs and keeps the one piece of state CPU usage needs:
// the previous tick counters.
type Sampler struct {
	cfg  *Config
	prev procfs.CPUStats
	ema  *util.EMA
	now  func() time.Time

	count      int
	sumCPU     float64
	sumMemUsed float64
	sumLoad1   float64
}

// New creates a sampler and seeds the CPU baseline, so the first Sample
// reports usage since New rather than since boot.
// Notes:
//   - A nil cfg uses the defaults.
//   - Empty Root and non-positive TaskCapacity are treated as unset.
//   - EMA outside [0..1] is clamped.
func New(cfg *Config) (*Sampler, error) {
	merged := *_defaultConfig()
	if cfg != nil {
		if cfg.Root != "" {
			merged.Root = cfg.Root
		}
		if cfg.TaskCapacity > 0 {
			merged.TaskCapacity = cfg.TaskCapacity
		}
		merged.Match = cfg.Match
		merged.EMA = util.Clamp01(cfg.EMA)
	}

	prev, err := procfs.ReadCPUStats(merged.Root)
	if err != nil {
		return nil, fmt.Errorf("monitor: seed cpu stats: %w", err)
	}

	s := &Sampler{cfg: &merged, prev: prev, now: time.Now}
	if merged.EMA > 0 {
		s.ema = util.NewEMA(merged.EMA)
	}
	return s, nil
}

// Config returns the effective configuration.
func (s *Sampler) Config() Config { return *s.cfg }

// Sample reads every metric once. Extractor failures do not stop the poll:
// the snapshot carries whatever was read and the failures come back joined.
// Tasks is nil only when the census could not start.
func (s *Sampler) Sample() (Snapshot, error) {
	root := s.cfg.Root
	snap := Snapshot{At: s.now()}

	var errs []error
	keep := func(what string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}

	var err error
	snap.Hostname, err = procfs.Hostname(root)
	keep("hostname", err)
	snap.Kernel, err = procfs.KernelVersion(root)
	keep("kernel version", err)
	snap.CPUModel, err = procfs.CPUModel(root, s.cfg.Match)
	keep("cpu model", err)
	snap.CPUUnits, err = procfs.CPUUnits(root)
	keep("cpu units", err)
	snap.Uptime, err = procfs.Uptime(root)
	keep("uptime", err)
	snap.Load, err = procfs.ReadLoadAvg(root)
	keep("load average", err)
	snap.Mem, err = procfs.MemUsage(root)
	keep("memory", err)

	usage, curr, err := procfs.Usage(root, s.prev)
	keep("cpu usage", err)
	if err == nil {
		s.prev = curr
		if s.ema != nil {
			usage = util.Clamp01(s.ema.Next(usage))
		}
	}
	snap.CPUUsage = usage

	snap.Tasks, err = procfs.Tasks(root, procfs.CensusOptions{Capacity: s.cfg.TaskCapacity})
	keep("tasks", err)

	s.count++
	s.sumCPU += snap.CPUUsage
	s.sumMemUsed += snap.Mem.Used
	s.sumLoad1 += snap.Load.One

	return snap, errors.Join(errs...)
}

// Averages returns the means over all samples taken so far.
func (s *Sampler) Averages() Averages {
	if s.count == 0 {
		return Averages{}
	}
	n := float64(s.count)
	return Averages{
		Samples:  s.count,
		CPUUsage: s.sumCPU / n,
		MemUsed:  s.sumMemUsed / n,
		Load1:    s.sumLoad1 / n,
	}
}
