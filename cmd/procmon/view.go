//go:build linux

package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/ja7ad/procmon/pkg/monitor"
	"github.com/ja7ad/procmon/pkg/system/procfs"
	"github.com/ja7ad/procmon/pkg/system/util"
	"github.com/ja7ad/procmon/pkg/types"
	"github.com/ja7ad/procmon/pkg/ui"
	"github.com/ja7ad/procmon/pkg/users"
)

// headerLines is the number of lines render prints before the first task row.
const headerLines = 11

type viewOptions struct {
	rows  int // task rows to print, <= 0 prints all
	users users.Resolver
}

func render(w io.Writer, s monitor.Snapshot, o viewOptions) error {
	uptime := ui.FormatDuration(s.Uptime)
	if uptime == "" {
		uptime = "0 seconds"
	}
	memFrac := util.SafeDiv(s.Mem.Used, s.Mem.Total)

	fmt.Fprintf(w, "Hostname: %s | Kernel Version: %s\n", orUnknown(s.Hostname), orUnknown(s.Kernel))
	fmt.Fprintf(w, "CPU: %s | Processing Units: %d\n", orUnknown(s.CPUModel), s.CPUUnits)
	fmt.Fprintf(w, "Uptime: %s\n", uptime)
	fmt.Fprintf(w, "Load Average (1/5/15 min): %.2f %.2f %.2f\n", s.Load.One, s.Load.Five, s.Load.Fifteen)
	fmt.Fprintf(w, "CPU Usage:    %s\n", ui.DrawPercBar(s.CPUUsage))
	fmt.Fprintf(w, "Memory Usage: %s (%s / %s)\n", ui.DrawPercBar(memFrac),
		types.FromGiB(s.Mem.Used).Humanized(), types.FromGiB(s.Mem.Total).Humanized())
	fmt.Fprintln(w)

	t := s.Tasks
	if t == nil {
		t = procfs.NewTaskStats(0)
	}
	fmt.Fprintf(w, "Tasks: %d total\n", t.Total)
	fmt.Fprintf(w, "%d running, %d waiting, %d sleeping, %d stopped, %d zombie\n",
		t.Running, t.Waiting, t.Sleeping, t.Stopped, t.Zombie)
	fmt.Fprintln(w)

	active := slices.Clone(t.Active)
	slices.SortFunc(active, func(a, b procfs.TaskInfo) int { return cmp.Compare(a.PID, b.PID) })
	shown := active
	if o.rows > 0 && len(shown) > o.rows {
		shown = shown[:o.rows]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tUSER\tNAME\tSTATE")
	for _, ti := range shown {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", ti.PID, username(o.users, ti.UID), ti.Name, stateLabel(ti.State))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if hidden := len(active) - len(shown); hidden > 0 {
		fmt.Fprintf(w, "... %d more\n", hidden)
	}
	return nil
}

func username(r users.Resolver, uid int) string {
	if r == nil {
		return users.Static(nil).Username(uid)
	}
	return r.Username(uid)
}

func stateLabel(s procfs.TaskState) string {
	if s == procfs.StateUnknown {
		return "unknown"
	}
	return string(s)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
